package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/readcircle/readcircle-server/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPairBlocked      = errors.New("friendship blocked between these users")
	ErrAlreadyFriends   = errors.New("users are already friends")
	ErrNotRequestTarget = errors.New("only the addressee may act on this request")
)

// FriendshipService owns relationship state between user pairs. At most one row
// exists per unordered pair; every mutation runs in a single transaction so two
// overlapping calls on the same pair serialize against the store.
type FriendshipService struct {
	db *gorm.DB
}

func NewFriendshipService(db *gorm.DB) *FriendshipService {
	return &FriendshipService{db: db}
}

// RequestResult distinguishes a freshly created pending request from the
// auto-accept of a reciprocal pending one.
type RequestResult struct {
	Friendship   *models.Friendship
	AutoAccepted bool
}

// pairRow loads the single row for the unordered pair {a,b} in any status.
func pairRow(tx *gorm.DB, a, b uuid.UUID) (*models.Friendship, error) {
	var f models.Friendship
	err := tx.Where(
		"(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
		a, b, b, a,
	).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Request creates a pending friendship from actor to target. A reciprocal
// pending request from target is auto-accepted instead of creating a second
// row; re-requesting an own pending request is idempotent.
func (s *FriendshipService) Request(actor, target uuid.UUID) (*RequestResult, error) {
	if actor == target {
		return nil, validationErr("cannot send a friend request to yourself")
	}

	var result *RequestResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := pairRow(tx, actor, target)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if existing != nil {
			switch existing.Status {
			case models.FriendshipBlocked:
				return fmt.Errorf("%w: %s", ErrForbidden, ErrPairBlocked)
			case models.FriendshipAccepted:
				return fmt.Errorf("%w: %s", ErrConflict, ErrAlreadyFriends)
			case models.FriendshipPending:
				if existing.RequesterID == actor {
					result = &RequestResult{Friendship: existing}
					return nil
				}
				// Reciprocal request: the target already asked. Accept theirs.
				if err := tx.Model(existing).Update("status", models.FriendshipAccepted).Error; err != nil {
					return err
				}
				existing.Status = models.FriendshipAccepted
				result = &RequestResult{Friendship: existing, AutoAccepted: true}
				return nil
			}
		}

		f := &models.Friendship{
			ID:          uuid.New(),
			RequesterID: actor,
			AddresseeID: target,
			Status:      models.FriendshipPending,
		}
		if err := tx.Create(f).Error; err != nil {
			return err
		}
		result = &RequestResult{Friendship: f}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Accept sets a pending request to accepted. Only the addressee may accept.
func (s *FriendshipService) Accept(actor, friendshipID uuid.UUID) (*models.Friendship, error) {
	var f models.Friendship
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&f, "id = ?", friendshipID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: friendship", ErrNotFound)
			}
			return err
		}
		if f.Status != models.FriendshipPending {
			return fmt.Errorf("%w: request is not pending", ErrForbidden)
		}
		if f.AddresseeID != actor {
			return fmt.Errorf("%w: %s", ErrForbidden, ErrNotRequestTarget)
		}
		if err := tx.Model(&f).Update("status", models.FriendshipAccepted).Error; err != nil {
			return err
		}
		f.Status = models.FriendshipAccepted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Reject removes a pending request; only the addressee may decline.
func (s *FriendshipService) Reject(actor, friendshipID uuid.UUID) error {
	return s.removePending(actor, friendshipID, false)
}

// Cancel removes a pending request; only the requester may withdraw.
func (s *FriendshipService) Cancel(actor, friendshipID uuid.UUID) error {
	return s.removePending(actor, friendshipID, true)
}

func (s *FriendshipService) removePending(actor, friendshipID uuid.UUID, byRequester bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var f models.Friendship
		if err := tx.First(&f, "id = ?", friendshipID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: friendship", ErrNotFound)
			}
			return err
		}
		if f.Status != models.FriendshipPending {
			return fmt.Errorf("%w: request is not pending", ErrForbidden)
		}
		allowed := f.AddresseeID
		if byRequester {
			allowed = f.RequesterID
		}
		if actor != allowed {
			return fmt.Errorf("%w: not your side of this request", ErrForbidden)
		}
		return tx.Delete(&f).Error
	})
}

// Unfriend removes an accepted friendship; either participant may do it.
func (s *FriendshipService) Unfriend(actor, friendshipID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var f models.Friendship
		if err := tx.First(&f, "id = ?", friendshipID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: friendship", ErrNotFound)
			}
			return err
		}
		if f.Status != models.FriendshipAccepted {
			return fmt.Errorf("%w: friendship is not accepted", ErrForbidden)
		}
		if !f.Involves(actor) {
			return fmt.Errorf("%w: not a participant", ErrForbidden)
		}
		return tx.Delete(&f).Error
	})
}

// Block overwrites the pair's row with a blocked status, the actor recorded as
// blocker. Any prior pending or accepted state is replaced, never layered.
// Idempotent for the same blocker.
func (s *FriendshipService) Block(actor, target uuid.UUID) (*models.Friendship, error) {
	if actor == target {
		return nil, validationErr("cannot block yourself")
	}

	var blocked *models.Friendship
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := pairRow(tx, actor, target)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if existing != nil {
			if existing.Status == models.FriendshipBlocked {
				blocked = existing
				return nil
			}
			if err := tx.Model(existing).Updates(map[string]interface{}{
				"requester_id": actor,
				"addressee_id": target,
				"status":       models.FriendshipBlocked,
			}).Error; err != nil {
				return err
			}
			existing.RequesterID = actor
			existing.AddresseeID = target
			existing.Status = models.FriendshipBlocked
			blocked = existing
			return nil
		}

		f := &models.Friendship{
			ID:          uuid.New(),
			RequesterID: actor,
			AddresseeID: target,
			Status:      models.FriendshipBlocked,
		}
		if err := tx.Create(f).Error; err != nil {
			return err
		}
		blocked = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blocked, nil
}

// Unblock removes the blocked row. Only the blocker may unblock, and no prior
// friendship state is restored.
func (s *FriendshipService) Unblock(actor, target uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := pairRow(tx, actor, target)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: block", ErrNotFound)
			}
			return err
		}
		if existing.Status != models.FriendshipBlocked {
			return fmt.Errorf("%w: block", ErrNotFound)
		}
		if existing.RequesterID != actor {
			return fmt.Errorf("%w: only the blocker may unblock", ErrForbidden)
		}
		return tx.Delete(existing).Error
	})
}

// ListFriends returns the actor's accepted friendships, newest first.
func (s *FriendshipService) ListFriends(actor uuid.UUID, limit, offset int) ([]models.Friendship, int64, error) {
	query := s.db.Model(&models.Friendship{}).
		Where("status = ?", models.FriendshipAccepted).
		Where("requester_id = ? OR addressee_id = ?", actor, actor)
	return paginateFriendships(query, limit, offset)
}

// ListReceivedRequests returns pending requests addressed to the actor.
func (s *FriendshipService) ListReceivedRequests(actor uuid.UUID, limit, offset int) ([]models.Friendship, int64, error) {
	query := s.db.Model(&models.Friendship{}).
		Where("status = ? AND addressee_id = ?", models.FriendshipPending, actor)
	return paginateFriendships(query, limit, offset)
}

// ListSentRequests returns pending requests the actor initiated.
func (s *FriendshipService) ListSentRequests(actor uuid.UUID, limit, offset int) ([]models.Friendship, int64, error) {
	query := s.db.Model(&models.Friendship{}).
		Where("status = ? AND requester_id = ?", models.FriendshipPending, actor)
	return paginateFriendships(query, limit, offset)
}

func paginateFriendships(query *gorm.DB, limit, offset int) ([]models.Friendship, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Friendship
	err := query.Order("created_at DESC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FriendIDsOf returns the symmetric closure of the user's accepted friendships.
func (s *FriendshipService) FriendIDsOf(userID uuid.UUID) (IDSet, error) {
	return s.otherPartyIDs(userID, models.FriendshipAccepted)
}

// BlockedIDsOf returns every user involved in a blocked pair with userID,
// regardless of which side created the block.
func (s *FriendshipService) BlockedIDsOf(userID uuid.UUID) (IDSet, error) {
	return s.otherPartyIDs(userID, models.FriendshipBlocked)
}

func (s *FriendshipService) otherPartyIDs(userID uuid.UUID, status models.FriendshipStatus) (IDSet, error) {
	var rows []models.Friendship
	err := s.db.Where("status = ?", status).
		Where("requester_id = ? OR addressee_id = ?", userID, userID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	set := make(IDSet, len(rows))
	for i := range rows {
		set[rows[i].OtherParty(userID)] = struct{}{}
	}
	return set, nil
}
