package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RequestLog struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Seq             int64          `gorm:"autoIncrement;not null;uniqueIndex"`
	Kind            string         `gorm:"type:varchar(20);not null;index"`
	Timestamp       time.Time      `gorm:"default:now();not null"`
	RequestSummary  datatypes.JSON `gorm:"type:jsonb"`
	ResponseSummary datatypes.JSON `gorm:"type:jsonb"`
}

func (RequestLog) TableName() string {
	return "request_logs"
}
