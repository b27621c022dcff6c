package dto

import "github.com/google/uuid"

// FriendshipAction tags the variants accepted by the friendship action endpoint.
// Dispatch happens through a lookup table in the handler, one function per variant.
type FriendshipAction string

const (
	FriendshipActionSendRequest FriendshipAction = "request"
	FriendshipActionAccept      FriendshipAction = "accept"
	FriendshipActionReject      FriendshipAction = "reject"
	FriendshipActionCancel      FriendshipAction = "cancel"
	FriendshipActionDelete      FriendshipAction = "delete"
	FriendshipActionBlock       FriendshipAction = "block"
	FriendshipActionUnblock     FriendshipAction = "unblock"
	FriendshipActionList        FriendshipAction = "list"
	FriendshipActionReceived    FriendshipAction = "received"
	FriendshipActionSent        FriendshipAction = "sent"
)

// FriendshipActionRequest carries one action. request/block/unblock address a user
// (target_id); accept/reject/cancel/delete address an existing row (friendship_id);
// list/received/sent take only the pagination fields.
type FriendshipActionRequest struct {
	Action       FriendshipAction `json:"action"`
	TargetID     *uuid.UUID       `json:"target_id,omitempty"`
	FriendshipID *uuid.UUID       `json:"friendship_id,omitempty"`
	Limit        int              `json:"limit,omitempty"`
	Offset       int              `json:"offset,omitempty"`
}
