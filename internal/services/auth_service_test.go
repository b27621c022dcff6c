package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/readcircle/readcircle-server/internal/config"
	"github.com/readcircle/readcircle-server/internal/dto"
	"github.com/readcircle/readcircle-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:    "reader@example.com",
		Password: "correct horse",
		Nickname: "reader",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "reader@example.com", resp.User.Email)

	// registration creates the profile alongside the user
	var profile models.Profile
	require.NoError(t, db.First(&profile, "user_id = ?", resp.User.ID).Error)
	assert.Equal(t, "reader", profile.Nickname)

	// password is stored hashed
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", resp.User.ID).Error)
	assert.NotEqual(t, "correct horse", user.Password)

	login, err := svc.Login(&dto.LoginRequest{Email: "reader@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(&dto.LoginRequest{Email: "reader@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Email: "x@example.com", Password: "short"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, err = svc.Register(&dto.RegisterRequest{Email: "x@example.com", Password: "long enough"})
	require.NoError(t, err)
	_, err = svc.Register(&dto.RegisterRequest{Email: "x@example.com", Password: "long enough"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAccessTokenCarriesSubject(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	resp, err := svc.Register(&dto.RegisterRequest{Email: "reader@example.com", Password: "correct horse"})
	require.NoError(t, err)

	parsed, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.ID.String(), claims["sub"])
	assert.Equal(t, "reader@example.com", claims["email"])
}

func TestRefreshRotatesToken(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{Email: "reader@example.com", Password: "correct horse"})
	require.NoError(t, err)

	rotated, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	// the spent token cannot be replayed
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: "garbage"})
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{Email: "reader@example.com", Password: "correct horse"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestDeleteAccountRemovesOwnedData(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewAuthService(db, testConfig())
	friendships := NewFriendshipService(db)

	resp, err := svc.Register(&dto.RegisterRequest{Email: "leaver@example.com", Password: "correct horse"})
	require.NoError(t, err)
	other := createTestUser(t, db, "stays@example.com")
	befriend(t, friendships, resp.User.ID, other.ID)
	createTestReading(t, db, resp.User.ID, "Orphan Candidate", models.VisibilityPublic)
	keep := createTestReading(t, db, other.ID, "Kept Book", models.VisibilityPublic)

	require.ErrorIs(t, svc.DeleteAccount(resp.User.ID, "wrong"), ErrInvalidCredentials)
	require.NoError(t, svc.DeleteAccount(resp.User.ID, "correct horse"))

	var users, profiles, pairs, logs, books, tokens int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Profile{}).Count(&profiles)
	db.Model(&models.Friendship{}).Count(&pairs)
	db.Model(&models.ReadingLog{}).Count(&logs)
	db.Model(&models.Book{}).Count(&books)
	db.Model(&models.RefreshToken{}).Count(&tokens)

	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(0), profiles)
	assert.Equal(t, int64(0), pairs)
	assert.Equal(t, int64(1), logs)
	assert.Equal(t, int64(1), books)
	assert.Equal(t, int64(0), tokens)

	var survivor models.ReadingLog
	require.NoError(t, db.First(&survivor, "id = ?", keep.ID).Error)
}
