package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/readcircle/readcircle-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestCreatesPending(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewFriendshipService(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	result, err := svc.Request(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, result.AutoAccepted)
	assert.Equal(t, models.FriendshipPending, result.Friendship.Status)
	assert.Equal(t, alice.ID, result.Friendship.RequesterID)
	assert.Equal(t, bob.ID, result.Friendship.AddresseeID)

	var count int64
	db.Model(&models.Friendship{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRequestToSelfRejected(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewFriendshipService(db)

	alice := createTestUser(t, db, "alice@example.com")

	_, err := svc.Request(alice.ID, alice.ID)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestRequestIsIdempotentForRequester(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewFriendshipService(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	first, err := svc.Request(alice.ID, bob.ID)
	require.NoError(t, err)
	second, err := svc.Request(alice.ID, bob.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Friendship.ID, second.Friendship.ID)
	assert.Equal(t, models.FriendshipPending, second.Friendship.Status)

	var count int64
	db.Model(&models.Friendship{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestReciprocalRequestAutoAccepts(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewFriendshipService(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	_, err := svc.Request(alice.ID, bob.ID)
	require.NoError(t, err)

	result, err := svc.Request(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, result.AutoAccepted)
	assert.Equal(t, models.FriendshipAccepted, result.Friendship.Status)

	// still a single row for the pair
	var count int64
	db.Model(&models.Friendship{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRequestWhenAlreadyFriendsConflicts(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewFriendshipService(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	befriend(t, svc, alice.ID, bob.ID)

	_, err := svc.Request(alice.ID, bob.ID)
	require.ErrorIs(t, err, ErrConflict)
	_, err = svc.Request(bob.ID, alice.ID)
	require.ErrorIs(t, err, ErrConflict)
}

func TestAcceptOnlyByAddressee(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewFriendshipService(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	carol := createTestUser(t, db, "carol@example.com")

	result, err := svc.Request(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.Accept(alice.ID, result.Friendship.ID)
	require.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Accept(carol.ID, result.Friendship.ID)
	require.ErrorIs(t, err, ErrForbidden)

	accepted, err := svc.Accept(bob.ID, result.Friendship.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipAccepted, accepted.Status)
}

func TestFriendshipIsSymmetric(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewFriendshipService(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	befriend(t, svc, alice.ID, bob.ID)

	aliceFriends, err := svc.FriendIDsOf(alice.ID)
	require.NoError(t, err)
	bobFriends, err := svc.FriendIDsOf(bob.ID)
	require.NoError(t, err)

	assert.True(t, aliceFriends.Contains(bob.ID))
	assert.True(t, bobFriends.Contains(alice.ID))
}

func TestRejectAndCancelSides(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewFriendshipService(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	result, err := svc.Request(alice.ID, bob.ID)
	require.NoError(t, err)

	// requester cannot reject, addressee cannot cancel
	require.ErrorIs(t, svc.Reject(alice.ID, result.Friendship.ID), ErrForbidden)
	require.ErrorIs(t, svc.Cancel(bob.ID, result.Friendship.ID), ErrForbidden)

	require.NoError(t, svc.Reject(bob.ID, result.Friendship.ID))

	var count int64
	db.Model(&models.Friendship{}).Count(&count)
	assert.Equal(t, int64(0), count)

	result, err = svc.Request(alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(alice.ID, result.Friendship.ID))

	db.Model(&models.Friendship{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUnfriendByEitherParticipant(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewFriendshipService(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	carol := createTestUser(t, db, "carol@example.com")
	befriend(t, svc, alice.ID, bob.ID)

	var f models.Friendship
	require.NoError(t, db.First(&f).Error)

	require.ErrorIs(t, svc.Unfriend(carol.ID, f.ID), ErrForbidden)
	require.NoError(t, svc.Unfriend(bob.ID, f.ID))

	friends, err := svc.FriendIDsOf(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestBlockOverwritesExistingState(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewFriendshipService(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	befriend(t, svc, alice.ID, bob.ID)

	blocked, err := svc.Block(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipBlocked, blocked.Status)
	assert.Equal(t, alice.ID, blocked.RequesterID)

	// the accepted state is gone, not layered under the block
	var count int64
	db.Model(&models.Friendship{}).Count(&count)
	assert.Equal(t, int64(1), count)

	friends, err := svc.FriendIDsOf(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestBlockIsIdempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewFriendshipService(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	first, err := svc.Block(alice.ID, bob.ID)
	require.NoError(t, err)
	second, err := svc.Block(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestRequestBlockedPairForbidden(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewFriendshipService(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	_, err := svc.Block(alice.ID, bob.ID)
	require.NoError(t, err)

	// neither side can request while the block stands
	_, err = svc.Request(alice.ID, bob.ID)
	require.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Request(bob.ID, alice.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestUnblockOnlyByBlocker(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewFriendshipService(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	_, err := svc.Block(alice.ID, bob.ID)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Unblock(bob.ID, alice.ID), ErrForbidden)
	require.NoError(t, svc.Unblock(alice.ID, bob.ID))

	// unblocking does not restore any prior state
	var count int64
	db.Model(&models.Friendship{}).Count(&count)
	assert.Equal(t, int64(0), count)

	require.ErrorIs(t, svc.Unblock(alice.ID, bob.ID), ErrNotFound)
}

func TestBlockedIDsSeenFromBothSides(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewFriendshipService(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	_, err := svc.Block(alice.ID, bob.ID)
	require.NoError(t, err)

	fromBlocker, err := svc.BlockedIDsOf(alice.ID)
	require.NoError(t, err)
	fromBlocked, err := svc.BlockedIDsOf(bob.ID)
	require.NoError(t, err)

	assert.True(t, fromBlocker.Contains(bob.ID))
	assert.True(t, fromBlocked.Contains(alice.ID))
}

func TestListFriendsPagination(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewFriendshipService(db)

	alice := createTestUser(t, db, "alice@example.com")
	others := make([]uuid.UUID, 0, 5)
	for i := 0; i < 5; i++ {
		u := createTestUser(t, db, "friend"+string(rune('a'+i))+"@example.com")
		befriend(t, svc, alice.ID, u.ID)
		others = append(others, u.ID)
	}

	firstPage, total, err := svc.ListFriends(alice.ID, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, firstPage, 3)

	secondPage, _, err := svc.ListFriends(alice.ID, 3, 3)
	require.NoError(t, err)
	assert.Len(t, secondPage, 2)

	seen := make(map[uuid.UUID]bool)
	for _, f := range append(firstPage, secondPage...) {
		seen[f.OtherParty(alice.ID)] = true
	}
	for _, id := range others {
		assert.True(t, seen[id])
	}
}

func TestListRequestsSplitBySide(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewFriendshipService(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	carol := createTestUser(t, db, "carol@example.com")

	_, err := svc.Request(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.Request(carol.ID, alice.ID)
	require.NoError(t, err)

	sent, total, err := svc.ListSentRequests(alice.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, sent, 1)
	assert.Equal(t, bob.ID, sent[0].AddresseeID)

	received, total, err := svc.ListReceivedRequests(alice.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, received, 1)
	assert.Equal(t, carol.ID, received[0].RequesterID)
}
