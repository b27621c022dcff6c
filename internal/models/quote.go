package models

import (
	"time"

	"github.com/google/uuid"
)

// Quote is a passage noted against a reading log. Quotes live and die with their log.
type Quote struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ReadingLogID uuid.UUID  `gorm:"type:uuid;not null;index" json:"reading_log_id"`
	OwnerID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	Text         string     `gorm:"type:text;not null" json:"text"`
	PageNumber   int        `gorm:"not null" json:"page_number"`
	NotedAt      *time.Time `json:"noted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Quote) TableName() string {
	return "quotes"
}
