package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/readcircle/readcircle-server/internal/dto"
	"github.com/readcircle/readcircle-server/internal/models"
	"gorm.io/gorm"
)

// ProfileService manages the read-mostly 1:1 user profile.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetOwn returns the actor's profile, creating an empty one on first access.
func (s *ProfileService) GetOwn(actor uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.First(&profile, "user_id = ?", actor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var user models.User
		if err := s.db.First(&user, "id = ?", actor).Error; err != nil {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		profile = models.Profile{
			ID:       uuid.New(),
			UserID:   actor,
			Nickname: strings.Split(user.Email, "@")[0],
		}
		if err := s.db.Create(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Get returns any user's profile; profiles are public.
func (s *ProfileService) Get(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: profile", ErrNotFound)
		}
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) Update(actor uuid.UUID, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	if req.Nickname != nil && strings.TrimSpace(*req.Nickname) == "" {
		return nil, validationErr("nickname must not be blank")
	}

	profile, err := s.GetOwn(actor)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Nickname != nil {
		updates["nickname"] = *req.Nickname
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if len(req.Preferences) > 0 {
		updates["preferences"] = req.Preferences
	}
	if len(updates) == 0 {
		return profile, nil
	}

	if err := s.db.Model(profile).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(actor)
}
