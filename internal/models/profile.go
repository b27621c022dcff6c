package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Profile is the public face of a user, owned 1:1 and read-mostly.
type Profile struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Nickname    string         `gorm:"size:100;not null" json:"nickname"`
	AvatarURL   *string        `gorm:"size:500" json:"avatar_url,omitempty"`
	Bio         *string        `gorm:"type:text" json:"bio,omitempty"`
	Preferences datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"preferences"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	User        User           `gorm:"foreignKey:UserID" json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}
