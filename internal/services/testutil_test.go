package services

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/readcircle/readcircle-server/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	dbPath := "./test_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Friendship{},
		&models.Book{},
		&models.ReadingLog{},
		&models.Quote{},
		&models.Review{},
		&models.Report{},
		&models.RefreshToken{},
	)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProfile(t *testing.T, db *gorm.DB, userID uuid.UUID, nickname string) *models.Profile {
	profile := &models.Profile{
		ID:       uuid.New(),
		UserID:   userID,
		Nickname: nickname,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

// createTestReading seeds a book plus a reading log owned by ownerID.
func createTestReading(t *testing.T, db *gorm.DB, ownerID uuid.UUID, title string, visibility models.Visibility) *models.ReadingLog {
	book := &models.Book{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Title:   title,
		Author:  "Test Author",
	}
	require.NoError(t, db.Create(book).Error)

	log := &models.ReadingLog{
		ID:         uuid.New(),
		BookID:     book.ID,
		OwnerID:    ownerID,
		Status:     models.StatusReading,
		Visibility: visibility,
	}
	require.NoError(t, db.Create(log).Error)
	return log
}

// befriend wires an accepted friendship between two users through the service.
func befriend(t *testing.T, svc *FriendshipService, a, b uuid.UUID) {
	result, err := svc.Request(a, b)
	require.NoError(t, err)
	_, err = svc.Accept(b, result.Friendship.ID)
	require.NoError(t, err)
}
