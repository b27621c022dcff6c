package models

import (
	"time"

	"github.com/google/uuid"
)

type ReadingStatus string

const (
	StatusWantToRead ReadingStatus = "want_to_read"
	StatusReading    ReadingStatus = "reading"
	StatusFinished   ReadingStatus = "finished"
	StatusAbandoned  ReadingStatus = "abandoned"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityFriends Visibility = "friends"
	VisibilityPrivate Visibility = "private"
)

func ValidReadingStatus(s ReadingStatus) bool {
	switch s {
	case StatusWantToRead, StatusReading, StatusFinished, StatusAbandoned:
		return true
	}
	return false
}

func ValidVisibility(v Visibility) bool {
	switch v {
	case VisibilityPublic, VisibilityFriends, VisibilityPrivate:
		return true
	}
	return false
}

// ReadingLog tracks one owner's progress through one book. CurrentPage is stored as
// given; clamping it to the book's page count is left to clients.
type ReadingLog struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	BookID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"book_id"`
	OwnerID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"owner_id"`
	Status      ReadingStatus `gorm:"size:20;not null;default:'want_to_read'" json:"status"`
	Visibility  Visibility    `gorm:"size:20;not null;default:'private'" json:"visibility"`
	CurrentPage *int          `json:"current_page,omitempty"`
	Rating      *int          `json:"rating,omitempty"`
	StartDate   *time.Time    `json:"start_date,omitempty"`
	EndDate     *time.Time    `json:"end_date,omitempty"`
	Review      *string       `gorm:"type:text" json:"review,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Book    Book     `gorm:"foreignKey:BookID" json:"-"`
	Quotes  []Quote  `gorm:"foreignKey:ReadingLogID" json:"-"`
	Reviews []Review `gorm:"foreignKey:ReadingLogID" json:"-"`
}

func (ReadingLog) TableName() string {
	return "reading_logs"
}
