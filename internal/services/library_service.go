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

// LibraryService coordinates multi-entity writes: a book, its reading log and
// the log's quotes and reviews change as one unit. Every call runs inside a
// single transaction; a failure at any step leaves nothing committed.
type LibraryService struct {
	db *gorm.DB
}

func NewLibraryService(db *gorm.DB) *LibraryService {
	return &LibraryService{db: db}
}

// UpsertResult reports the resolved ids; Created is true when a new book or
// reading log was inserted (drives 201 vs 200 at the boundary).
type UpsertResult struct {
	BookID       uuid.UUID
	ReadingLogID uuid.UUID
	Created      bool
}

// Upsert applies the payload's book, reading-log, quote and review steps
// atomically. Each referenced entity is ownership-checked against actor.
func (s *LibraryService) Upsert(actor uuid.UUID, req *dto.UpsertLibraryRequest) (*UpsertResult, error) {
	if err := validateUpsert(req); err != nil {
		return nil, err
	}

	result := &UpsertResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		bookID, bookCreated, err := s.upsertBook(tx, actor, req.Book)
		if err != nil {
			return err
		}

		logID, logCreated, err := s.upsertReadingLog(tx, actor, req.ReadingLog, bookID)
		if err != nil {
			return err
		}
		result.Created = bookCreated || logCreated

		if bookID == uuid.Nil && logID != uuid.Nil {
			var log models.ReadingLog
			if err := tx.First(&log, "id = ?", logID).Error; err != nil {
				return err
			}
			bookID = log.BookID
		}
		result.BookID = bookID
		result.ReadingLogID = logID

		if err := s.upsertQuotes(tx, actor, logID, req.Quotes); err != nil {
			return err
		}
		if err := s.upsertReviews(tx, actor, logID, req.Reviews); err != nil {
			return err
		}

		for _, id := range req.DeleteQuoteIDs {
			if err := deleteOwned(tx, &models.Quote{}, id, actor, "quote"); err != nil {
				return err
			}
		}
		for _, id := range req.DeleteReviewIDs {
			if err := deleteOwned(tx, &models.Review{}, id, actor, "review"); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func validateUpsert(req *dto.UpsertLibraryRequest) error {
	if req.Book == nil && req.ReadingLog == nil && len(req.Quotes) == 0 &&
		len(req.Reviews) == 0 && len(req.DeleteQuoteIDs) == 0 && len(req.DeleteReviewIDs) == 0 {
		return validationErr("payload is empty")
	}

	if req.Book != nil && req.Book.ID == nil {
		if strings.TrimSpace(req.Book.Title) == "" || strings.TrimSpace(req.Book.Author) == "" {
			return validationErr("a new book requires title and author")
		}
	}

	if log := req.ReadingLog; log != nil {
		if log.ID == nil {
			if req.Book == nil {
				return validationErr("a new reading log requires a book")
			}
			if !models.ValidReadingStatus(models.ReadingStatus(log.Status)) {
				return validationErr("invalid reading status %q", log.Status)
			}
			if !models.ValidVisibility(models.Visibility(log.Visibility)) {
				return validationErr("invalid visibility %q", log.Visibility)
			}
		} else {
			if log.Status != "" && !models.ValidReadingStatus(models.ReadingStatus(log.Status)) {
				return validationErr("invalid reading status %q", log.Status)
			}
			if log.Visibility != "" && !models.ValidVisibility(models.Visibility(log.Visibility)) {
				return validationErr("invalid visibility %q", log.Visibility)
			}
		}
		if log.Rating != nil && (*log.Rating < 1 || *log.Rating > 5) {
			return validationErr("rating must be between 1 and 5")
		}
		if log.CurrentPage != nil && *log.CurrentPage < 0 {
			return validationErr("current page must not be negative")
		}
	}

	// Only inserts need the resolved log id; updates and deletes are keyed by
	// their own ids and ownership-checked individually.
	needsLog := false
	for i := range req.Quotes {
		if req.Quotes[i].ID == nil {
			needsLog = true
		}
	}
	for i := range req.Reviews {
		if req.Reviews[i].ID == nil {
			needsLog = true
		}
	}
	if needsLog && req.ReadingLog == nil {
		return validationErr("new quotes and reviews require a reading log in the payload")
	}

	for i := range req.Quotes {
		if req.Quotes[i].ID == nil && strings.TrimSpace(req.Quotes[i].Text) == "" {
			return validationErr("a new quote requires text")
		}
		if req.Quotes[i].PageNumber < 0 {
			return validationErr("quote page number must not be negative")
		}
	}
	for i := range req.Reviews {
		if req.Reviews[i].ID == nil && strings.TrimSpace(req.Reviews[i].Content) == "" {
			return validationErr("a new review requires content")
		}
	}
	return nil
}

func (s *LibraryService) upsertBook(tx *gorm.DB, actor uuid.UUID, payload *dto.UpsertBookPayload) (uuid.UUID, bool, error) {
	if payload == nil {
		return uuid.Nil, false, nil
	}

	if payload.ID == nil {
		book := models.Book{
			ID:            uuid.New(),
			OwnerID:       actor,
			Title:         payload.Title,
			Author:        payload.Author,
			CoverImageURL: payload.CoverImageURL,
			TotalPages:    payload.TotalPages,
		}
		if err := tx.Create(&book).Error; err != nil {
			return uuid.Nil, false, err
		}
		return book.ID, true, nil
	}

	var book models.Book
	if err := tx.First(&book, "id = ?", *payload.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, fmt.Errorf("%w: book", ErrNotFound)
		}
		return uuid.Nil, false, err
	}
	if book.OwnerID != actor {
		return uuid.Nil, false, fmt.Errorf("%w: book belongs to another user", ErrForbidden)
	}

	updates := map[string]interface{}{}
	if strings.TrimSpace(payload.Title) != "" {
		updates["title"] = payload.Title
	}
	if strings.TrimSpace(payload.Author) != "" {
		updates["author"] = payload.Author
	}
	if payload.CoverImageURL != nil {
		updates["cover_image_url"] = *payload.CoverImageURL
	}
	if payload.TotalPages != nil {
		updates["total_pages"] = *payload.TotalPages
	}
	if len(updates) > 0 {
		if err := tx.Model(&book).Updates(updates).Error; err != nil {
			return uuid.Nil, false, err
		}
	}
	return book.ID, false, nil
}

func (s *LibraryService) upsertReadingLog(tx *gorm.DB, actor uuid.UUID, payload *dto.UpsertReadingLogPayload, bookID uuid.UUID) (uuid.UUID, bool, error) {
	if payload == nil {
		return uuid.Nil, false, nil
	}

	if payload.ID == nil {
		log := models.ReadingLog{
			ID:          uuid.New(),
			BookID:      bookID,
			OwnerID:     actor,
			Status:      models.ReadingStatus(payload.Status),
			Visibility:  models.Visibility(payload.Visibility),
			CurrentPage: payload.CurrentPage,
			Rating:      payload.Rating,
			StartDate:   payload.StartDate,
			EndDate:     payload.EndDate,
			Review:      payload.Review,
		}
		if err := tx.Create(&log).Error; err != nil {
			return uuid.Nil, false, err
		}
		return log.ID, true, nil
	}

	var log models.ReadingLog
	if err := tx.First(&log, "id = ?", *payload.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, fmt.Errorf("%w: reading log", ErrNotFound)
		}
		return uuid.Nil, false, err
	}
	if log.OwnerID != actor {
		return uuid.Nil, false, fmt.Errorf("%w: reading log belongs to another user", ErrForbidden)
	}

	updates := map[string]interface{}{}
	if payload.Status != "" {
		updates["status"] = payload.Status
	}
	if payload.Visibility != "" {
		updates["visibility"] = payload.Visibility
	}
	if payload.CurrentPage != nil {
		updates["current_page"] = *payload.CurrentPage
	}
	if payload.Rating != nil {
		updates["rating"] = *payload.Rating
	}
	if payload.StartDate != nil {
		updates["start_date"] = *payload.StartDate
	}
	if payload.EndDate != nil {
		updates["end_date"] = *payload.EndDate
	}
	if payload.Review != nil {
		updates["review"] = *payload.Review
	}
	if len(updates) > 0 {
		if err := tx.Model(&log).Updates(updates).Error; err != nil {
			return uuid.Nil, false, err
		}
	}
	return log.ID, false, nil
}

func (s *LibraryService) upsertQuotes(tx *gorm.DB, actor, logID uuid.UUID, payloads []dto.UpsertQuotePayload) error {
	for i := range payloads {
		p := &payloads[i]
		if p.ID == nil {
			quote := models.Quote{
				ID:           uuid.New(),
				ReadingLogID: logID,
				OwnerID:      actor,
				Text:         p.Text,
				PageNumber:   p.PageNumber,
				NotedAt:      p.NotedAt,
			}
			if err := tx.Create(&quote).Error; err != nil {
				return err
			}
			continue
		}

		var quote models.Quote
		if err := tx.First(&quote, "id = ?", *p.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: quote", ErrNotFound)
			}
			return err
		}
		if quote.OwnerID != actor {
			return fmt.Errorf("%w: quote belongs to another user", ErrForbidden)
		}

		updates := map[string]interface{}{}
		if strings.TrimSpace(p.Text) != "" {
			updates["text"] = p.Text
		}
		if p.PageNumber > 0 {
			updates["page_number"] = p.PageNumber
		}
		if p.NotedAt != nil {
			updates["noted_at"] = *p.NotedAt
		}
		if len(updates) > 0 {
			if err := tx.Model(&quote).Updates(updates).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *LibraryService) upsertReviews(tx *gorm.DB, actor, logID uuid.UUID, payloads []dto.UpsertReviewPayload) error {
	for i := range payloads {
		p := &payloads[i]
		if p.ID == nil {
			review := models.Review{
				ID:           uuid.New(),
				ReadingLogID: logID,
				OwnerID:      actor,
				Content:      p.Content,
				PageNumber:   p.PageNumber,
				ReviewedAt:   p.ReviewedAt,
			}
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
			continue
		}

		var review models.Review
		if err := tx.First(&review, "id = ?", *p.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: review", ErrNotFound)
			}
			return err
		}
		if review.OwnerID != actor {
			return fmt.Errorf("%w: review belongs to another user", ErrForbidden)
		}

		updates := map[string]interface{}{}
		if strings.TrimSpace(p.Content) != "" {
			updates["content"] = p.Content
		}
		if p.PageNumber != nil {
			updates["page_number"] = *p.PageNumber
		}
		if p.ReviewedAt != nil {
			updates["reviewed_at"] = *p.ReviewedAt
		}
		if len(updates) > 0 {
			if err := tx.Model(&review).Updates(updates).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// deleteOwned removes one child row. A missing row and a row owned by someone
// else both surface as not-found.
func deleteOwned(tx *gorm.DB, model interface{}, id, actor uuid.UUID, kind string) error {
	result := tx.Where("id = ? AND owner_id = ?", id, actor).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, kind)
	}
	return nil
}

// Delete removes a reading log, its quotes and reviews, and its parent book.
//
// Precondition: a book has exactly one reading log per owner. The book is
// deleted unconditionally on every log deletion; if a book ever carried
// multiple logs this would orphan the survivors.
func (s *LibraryService) Delete(actor, readingLogID uuid.UUID) (*dto.DeleteReadingResponse, error) {
	resp := &dto.DeleteReadingResponse{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var log models.ReadingLog
		if err := tx.First(&log, "id = ?", readingLogID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: reading log", ErrNotFound)
			}
			return err
		}
		if log.OwnerID != actor {
			// not-found instead of forbidden so existence never leaks
			return fmt.Errorf("%w: reading log", ErrNotFound)
		}

		// children first; no reliance on store-level cascade
		if err := tx.Where("reading_log_id = ?", log.ID).Delete(&models.Quote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("reading_log_id = ?", log.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&log).Error; err != nil {
			return err
		}

		var book models.Book
		if err := tx.First(&book, "id = ?", log.BookID).Error; err == nil {
			if book.OwnerID != actor {
				return fmt.Errorf("%w: book belongs to another user", ErrForbidden)
			}
			if err := tx.Delete(&book).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		resp.Deleted = true
		resp.ReadingLogID = log.ID
		resp.BookID = log.BookID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// --- single-entity quote/review operations ---

func (s *LibraryService) ownedLog(tx *gorm.DB, actor, readingLogID uuid.UUID) (*models.ReadingLog, error) {
	var log models.ReadingLog
	if err := tx.First(&log, "id = ?", readingLogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: reading log", ErrNotFound)
		}
		return nil, err
	}
	if log.OwnerID != actor {
		return nil, fmt.Errorf("%w: reading log belongs to another user", ErrForbidden)
	}
	return &log, nil
}

func (s *LibraryService) CreateQuote(actor, readingLogID uuid.UUID, payload *dto.UpsertQuotePayload) (*models.Quote, error) {
	if strings.TrimSpace(payload.Text) == "" {
		return nil, validationErr("quote text is required")
	}
	if payload.PageNumber < 0 {
		return nil, validationErr("quote page number must not be negative")
	}

	var quote *models.Quote
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedLog(tx, actor, readingLogID); err != nil {
			return err
		}
		quote = &models.Quote{
			ID:           uuid.New(),
			ReadingLogID: readingLogID,
			OwnerID:      actor,
			Text:         payload.Text,
			PageNumber:   payload.PageNumber,
			NotedAt:      payload.NotedAt,
		}
		return tx.Create(quote).Error
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *LibraryService) UpdateQuote(actor, quoteID uuid.UUID, payload *dto.UpsertQuotePayload) (*models.Quote, error) {
	var quote models.Quote
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&quote, "id = ?", quoteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: quote", ErrNotFound)
			}
			return err
		}
		if quote.OwnerID != actor {
			return fmt.Errorf("%w: quote belongs to another user", ErrForbidden)
		}
		p := *payload
		p.ID = &quoteID
		return s.upsertQuotes(tx, actor, quote.ReadingLogID, []dto.UpsertQuotePayload{p})
	})
	if err != nil {
		return nil, err
	}
	if err := s.db.First(&quote, "id = ?", quoteID).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

func (s *LibraryService) DeleteQuote(actor, quoteID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteOwned(tx, &models.Quote{}, quoteID, actor, "quote")
	})
}

func (s *LibraryService) CreateReview(actor, readingLogID uuid.UUID, payload *dto.UpsertReviewPayload) (*models.Review, error) {
	if strings.TrimSpace(payload.Content) == "" {
		return nil, validationErr("review content is required")
	}

	var review *models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedLog(tx, actor, readingLogID); err != nil {
			return err
		}
		review = &models.Review{
			ID:           uuid.New(),
			ReadingLogID: readingLogID,
			OwnerID:      actor,
			Content:      payload.Content,
			PageNumber:   payload.PageNumber,
			ReviewedAt:   payload.ReviewedAt,
		}
		return tx.Create(review).Error
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *LibraryService) UpdateReview(actor, reviewID uuid.UUID, payload *dto.UpsertReviewPayload) (*models.Review, error) {
	var review models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: review", ErrNotFound)
			}
			return err
		}
		if review.OwnerID != actor {
			return fmt.Errorf("%w: review belongs to another user", ErrForbidden)
		}
		p := *payload
		p.ID = &reviewID
		return s.upsertReviews(tx, actor, review.ReadingLogID, []dto.UpsertReviewPayload{p})
	})
	if err != nil {
		return nil, err
	}
	if err := s.db.First(&review, "id = ?", reviewID).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *LibraryService) DeleteReview(actor, reviewID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteOwned(tx, &models.Review{}, reviewID, actor, "review")
	})
}
