package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/readcircle/readcircle-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsVisibleMatrix(t *testing.T) {
	viewer := uuid.New()
	owner := uuid.New()

	tests := []struct {
		name       string
		owner      uuid.UUID
		visibility models.Visibility
		friends    IDSet
		blocked    IDSet
		want       bool
	}{
		{"own private record", viewer, models.VisibilityPrivate, NewIDSet(), NewIDSet(), true},
		{"own public record", viewer, models.VisibilityPublic, NewIDSet(), NewIDSet(), true},
		{"stranger public", owner, models.VisibilityPublic, NewIDSet(), NewIDSet(), true},
		{"stranger friends-only", owner, models.VisibilityFriends, NewIDSet(), NewIDSet(), false},
		{"stranger private", owner, models.VisibilityPrivate, NewIDSet(), NewIDSet(), false},
		{"friend friends-only", owner, models.VisibilityFriends, NewIDSet(owner), NewIDSet(), true},
		{"friend private stays hidden", owner, models.VisibilityPrivate, NewIDSet(owner), NewIDSet(), false},
		{"block beats public", owner, models.VisibilityPublic, NewIDSet(), NewIDSet(owner), false},
		{"block beats friendship", owner, models.VisibilityFriends, NewIDSet(owner), NewIDSet(owner), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsVisible(viewer, tt.owner, tt.visibility, tt.friends, tt.blocked)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseScope(t *testing.T) {
	scope, err := ParseScope("")
	require.NoError(t, err)
	assert.Equal(t, ScopeAll, scope)

	for _, valid := range []string{"me", "friends", "all"} {
		scope, err := ParseScope(valid)
		require.NoError(t, err)
		assert.Equal(t, Scope(valid), scope)
	}

	_, err = ParseScope("everyone")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestOwnerFilter(t *testing.T) {
	viewer := uuid.New()
	friend := uuid.New()
	friends := NewIDSet(friend)

	owners, restricted := OwnerFilter(viewer, ScopeMe, friends)
	assert.True(t, restricted)
	assert.Equal(t, []uuid.UUID{viewer}, owners)

	owners, restricted = OwnerFilter(viewer, ScopeFriends, friends)
	assert.True(t, restricted)
	assert.ElementsMatch(t, []uuid.UUID{viewer, friend}, owners)

	_, restricted = OwnerFilter(viewer, ScopeAll, friends)
	assert.False(t, restricted)
}
