package model

import (
	"time"

	"github.com/google/uuid"
)

type ImageArtifact struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`
	Prompt    string    `gorm:"type:text;not null"`
	Size      string    `gorm:"type:varchar(32)"`
	Model     string    `gorm:"type:varchar(128)"`
	Source    string    `gorm:"type:varchar(16)"`
	SourceURL *string   `gorm:"type:text"`
	SessionId *string   `gorm:"type:text"`
	HasBytes  bool      `gorm:"not null;default:false"`
}

func (ImageArtifact) TableName() string {
	return "image_artifacts"
}
