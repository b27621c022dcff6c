package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/readcircle/readcircle-server/internal/models"
)

// ListReadingsQuery is the parsed and still-unvalidated list request. The composer
// validates it fully before touching the store.
type ListReadingsQuery struct {
	Scope     string
	Statuses  []string
	Search    string
	StartFrom *time.Time
	StartTo   *time.Time
	EndFrom   *time.Time
	EndTo     *time.Time
	SortBy    string
	SortDir   string
	Limit     int
	Offset    int
}

// ReadingRecord is the composite view assembled per query; it is never persisted.
type ReadingRecord struct {
	Book       models.Book       `json:"book"`
	ReadingLog models.ReadingLog `json:"reading_log"`
	Quotes     []models.Quote    `json:"quotes"`
	Reviews    []models.Review   `json:"reviews"`
	Profile    *models.Profile   `json:"profile,omitempty"`
}

// --- Composite upsert payloads ---

type UpsertBookPayload struct {
	ID            *uuid.UUID `json:"id,omitempty"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	CoverImageURL *string    `json:"cover_image_url,omitempty"`
	TotalPages    *int       `json:"total_pages,omitempty"`
}

type UpsertReadingLogPayload struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Status      string     `json:"status"`
	Visibility  string     `json:"visibility"`
	CurrentPage *int       `json:"current_page,omitempty"`
	Rating      *int       `json:"rating,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Review      *string    `json:"review,omitempty"`
}

type UpsertQuotePayload struct {
	ID         *uuid.UUID `json:"id,omitempty"`
	Text       string     `json:"text"`
	PageNumber int        `json:"page_number"`
	NotedAt    *time.Time `json:"noted_at,omitempty"`
}

type UpsertReviewPayload struct {
	ID         *uuid.UUID `json:"id,omitempty"`
	Content    string     `json:"content"`
	PageNumber *int       `json:"page_number,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}

// UpsertLibraryRequest may carry any subset; all steps commit or none do.
type UpsertLibraryRequest struct {
	Book            *UpsertBookPayload       `json:"book,omitempty"`
	ReadingLog      *UpsertReadingLogPayload `json:"reading_log,omitempty"`
	Quotes          []UpsertQuotePayload     `json:"quotes,omitempty"`
	Reviews         []UpsertReviewPayload    `json:"reviews,omitempty"`
	DeleteQuoteIDs  []uuid.UUID              `json:"delete_quote_ids,omitempty"`
	DeleteReviewIDs []uuid.UUID              `json:"delete_review_ids,omitempty"`
}

type UpsertLibraryResponse struct {
	BookID       uuid.UUID `json:"book_id"`
	ReadingLogID uuid.UUID `json:"reading_log_id"`
}

type DeleteReadingResponse struct {
	Deleted      bool      `json:"deleted"`
	ReadingLogID uuid.UUID `json:"reading_log_id"`
	BookID       uuid.UUID `json:"book_id"`
}
