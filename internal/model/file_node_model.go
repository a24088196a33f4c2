package model

import (
	"time"

	"github.com/google/uuid"
)

type FileNode struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Path      string    `gorm:"type:text;not null;uniqueIndex"`
	Name      string    `gorm:"type:text;not null"`
	Type      string    `gorm:"type:varchar(10);not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (FileNode) TableName() string {
	return "file_nodes"
}
