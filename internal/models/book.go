package models

import (
	"time"

	"github.com/google/uuid"
)

// Book is created and deleted together with its reading log. A book row is only
// retained while a reading log references it; the delete path enforces that.
type Book struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID       uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title         string    `gorm:"size:500;not null" json:"title"`
	Author        string    `gorm:"size:255;not null" json:"author"`
	CoverImageURL *string   `gorm:"size:1000" json:"cover_image_url,omitempty"`
	TotalPages    *int      `json:"total_pages,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}
