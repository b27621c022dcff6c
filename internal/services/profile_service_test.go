package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/readcircle/readcircle-server/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOwnCreatesProfileOnFirstAccess(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewProfileService(db)
	user := createTestUser(t, db, "newcomer@example.com")

	profile, err := svc.GetOwn(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "newcomer", profile.Nickname)

	again, err := svc.GetOwn(user.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)

	_, err = svc.GetOwn(uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetProfileIsPublic(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewProfileService(db)
	user := createTestUser(t, db, "someone@example.com")
	createTestProfile(t, db, user.ID, "someone")

	profile, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "someone", profile.Nickname)

	_, err = svc.Get(uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfileFields(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewProfileService(db)
	user := createTestUser(t, db, "editor@example.com")

	blank := "   "
	_, err := svc.Update(user.ID, &dto.UpdateProfileRequest{Nickname: &blank})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	nickname := "bookworm"
	bio := "reads a lot"
	profile, err := svc.Update(user.ID, &dto.UpdateProfileRequest{
		Nickname: &nickname,
		Bio:      &bio,
	})
	require.NoError(t, err)
	assert.Equal(t, "bookworm", profile.Nickname)
	require.NotNil(t, profile.Bio)
	assert.Equal(t, "reads a lot", *profile.Bio)

	// empty update is a no-op, not an error
	unchanged, err := svc.Update(user.ID, &dto.UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "bookworm", unchanged.Nickname)
}
