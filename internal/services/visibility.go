package services

import (
	"github.com/google/uuid"
	"github.com/readcircle/readcircle-server/internal/models"
)

// IDSet is a membership set of user ids.
type IDSet map[uuid.UUID]struct{}

func NewIDSet(ids ...uuid.UUID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Contains(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Slice() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

// Scope narrows which owners' records a list query considers.
type Scope string

const (
	ScopeMe      Scope = "me"
	ScopeFriends Scope = "friends"
	ScopeAll     Scope = "all"
)

// ParseScope defaults to "all" when the query string omits the scope.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeMe, ScopeFriends, ScopeAll:
		return Scope(s), nil
	case "":
		return ScopeAll, nil
	}
	return "", validationErr("invalid scope %q: must be me, friends or all", s)
}

// IsVisible decides whether viewer may see a record. Blocking wins over
// everything, including friendship and public visibility. Owners always see
// their own records; private records are owner-only even for friends.
func IsVisible(viewer, owner uuid.UUID, visibility models.Visibility, friendIDs, blockedIDs IDSet) bool {
	if blockedIDs.Contains(owner) {
		return false
	}
	if viewer == owner {
		return true
	}
	switch visibility {
	case models.VisibilityPrivate:
		return false
	case models.VisibilityPublic:
		return true
	case models.VisibilityFriends:
		return friendIDs.Contains(owner)
	}
	return false
}

// OwnerFilter turns a scope into a candidate owner set. restricted=false means
// every owner is a candidate (scope "all"); blocking and per-row visibility are
// applied separately. The "friends" scope always includes the viewer.
func OwnerFilter(viewer uuid.UUID, scope Scope, friendIDs IDSet) (owners []uuid.UUID, restricted bool) {
	switch scope {
	case ScopeMe:
		return []uuid.UUID{viewer}, true
	case ScopeFriends:
		return append(friendIDs.Slice(), viewer), true
	default:
		return nil, false
	}
}
