package models

import (
	"time"

	"github.com/google/uuid"
)

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipRejected FriendshipStatus = "rejected"
	FriendshipBlocked  FriendshipStatus = "blocked"
)

// Friendship holds the single row per unordered user pair. The requester/addressee
// direction is kept for audit; accepted and blocked are treated as symmetric when
// resolving access. For blocked rows the requester is the blocker.
type Friendship struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	RequesterID uuid.UUID        `gorm:"type:uuid;not null;index" json:"requester_id"`
	AddresseeID uuid.UUID        `gorm:"type:uuid;not null;index" json:"addressee_id"`
	Status      FriendshipStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Requester   User             `gorm:"foreignKey:RequesterID" json:"-"`
	Addressee   User             `gorm:"foreignKey:AddresseeID" json:"-"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// OtherParty returns the participant that is not userID.
func (f *Friendship) OtherParty(userID uuid.UUID) uuid.UUID {
	if f.RequesterID == userID {
		return f.AddresseeID
	}
	return f.RequesterID
}

// Involves reports whether userID is a participant of the pair.
func (f *Friendship) Involves(userID uuid.UUID) bool {
	return f.RequesterID == userID || f.AddresseeID == userID
}
