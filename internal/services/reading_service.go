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

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// sortColumns whitelists the sortable reading-log fields.
var sortColumns = map[string]string{
	"updated_at": "reading_logs.updated_at",
	"created_at": "reading_logs.created_at",
	"start_date": "reading_logs.start_date",
	"end_date":   "reading_logs.end_date",
}

// ReadingService assembles, filters and paginates composite reading records.
// Visibility is narrowed in SQL and re-checked per row before a record is
// returned, so a viewer never sees a partially visible result.
type ReadingService struct {
	db          *gorm.DB
	friendships *FriendshipService
}

func NewReadingService(db *gorm.DB, friendships *FriendshipService) *ReadingService {
	return &ReadingService{db: db, friendships: friendships}
}

// List returns the reading records visible to viewer, with pagination meta.
func (s *ReadingService) List(viewer uuid.UUID, q *dto.ListReadingsQuery) ([]dto.ReadingRecord, int64, error) {
	scope, sortExpr, err := s.validateQuery(q)
	if err != nil {
		return nil, 0, err
	}

	friendIDs, err := s.friendships.FriendIDsOf(viewer)
	if err != nil {
		return nil, 0, err
	}
	blockedIDs, err := s.friendships.BlockedIDsOf(viewer)
	if err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.ReadingLog{}).
		Joins("JOIN books ON books.id = reading_logs.book_id")

	if owners, restricted := OwnerFilter(viewer, scope, friendIDs); restricted {
		query = query.Where("reading_logs.owner_id IN ?", owners)
	}
	if len(blockedIDs) > 0 {
		query = query.Where("reading_logs.owner_id NOT IN ?", blockedIDs.Slice())
	}

	// Same predicate IsVisible applies per row; narrowing here keeps totals and
	// pages consistent.
	if friends := friendIDs.Slice(); len(friends) > 0 {
		query = query.Where(
			"reading_logs.owner_id = ? OR reading_logs.visibility = ? OR (reading_logs.visibility = ? AND reading_logs.owner_id IN ?)",
			viewer, models.VisibilityPublic, models.VisibilityFriends, friends,
		)
	} else {
		query = query.Where(
			"reading_logs.owner_id = ? OR reading_logs.visibility = ?",
			viewer, models.VisibilityPublic,
		)
	}

	if len(q.Statuses) > 0 {
		query = query.Where("reading_logs.status IN ?", q.Statuses)
	}
	if q.StartFrom != nil {
		query = query.Where("reading_logs.start_date >= ?", q.StartFrom)
	}
	if q.StartTo != nil {
		query = query.Where("reading_logs.start_date <= ?", q.StartTo)
	}
	if q.EndFrom != nil {
		query = query.Where("reading_logs.end_date >= ?", q.EndFrom)
	}
	if q.EndTo != nil {
		query = query.Where("reading_logs.end_date <= ?", q.EndTo)
	}
	if q.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(q.Search))) + "%"
		query = query.Where(
			"(LOWER(books.title) LIKE ? ESCAPE '\\' OR LOWER(books.author) LIKE ? ESCAPE '\\')",
			pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.ReadingLog
	err = query.Select("reading_logs.*").
		Order(sortExpr).
		Limit(q.Limit).
		Offset(q.Offset).
		Preload("Book").
		Preload("Quotes").
		Preload("Reviews").
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	profiles, err := s.profilesByOwner(logs)
	if err != nil {
		return nil, 0, err
	}

	records := make([]dto.ReadingRecord, 0, len(logs))
	for i := range logs {
		if !IsVisible(viewer, logs[i].OwnerID, logs[i].Visibility, friendIDs, blockedIDs) {
			continue
		}
		records = append(records, assembleRecord(&logs[i], profiles[logs[i].OwnerID]))
	}
	return records, total, nil
}

// GetOne returns a single composite record. Invisible records surface as
// not-found so their existence never leaks.
func (s *ReadingService) GetOne(viewer, readingLogID uuid.UUID) (*dto.ReadingRecord, error) {
	var log models.ReadingLog
	err := s.db.Preload("Book").Preload("Quotes").Preload("Reviews").
		First(&log, "id = ?", readingLogID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: reading log", ErrNotFound)
		}
		return nil, err
	}

	friendIDs, err := s.friendships.FriendIDsOf(viewer)
	if err != nil {
		return nil, err
	}
	blockedIDs, err := s.friendships.BlockedIDsOf(viewer)
	if err != nil {
		return nil, err
	}
	if !IsVisible(viewer, log.OwnerID, log.Visibility, friendIDs, blockedIDs) {
		return nil, fmt.Errorf("%w: reading log", ErrNotFound)
	}

	profiles, err := s.profilesByOwner([]models.ReadingLog{log})
	if err != nil {
		return nil, err
	}
	record := assembleRecord(&log, profiles[log.OwnerID])
	return &record, nil
}

func (s *ReadingService) validateQuery(q *dto.ListReadingsQuery) (Scope, string, error) {
	scope, err := ParseScope(q.Scope)
	if err != nil {
		return "", "", err
	}

	for _, st := range q.Statuses {
		if !models.ValidReadingStatus(models.ReadingStatus(st)) {
			return "", "", validationErr("invalid status filter %q", st)
		}
	}

	if q.StartFrom != nil && q.StartTo != nil && q.StartFrom.After(*q.StartTo) {
		return "", "", validationErr("start date range is inverted")
	}
	if q.EndFrom != nil && q.EndTo != nil && q.EndFrom.After(*q.EndTo) {
		return "", "", validationErr("end date range is inverted")
	}

	if q.Search != "" && strings.TrimSpace(q.Search) == "" {
		return "", "", validationErr("search term must not be blank")
	}

	if q.SortBy == "" {
		q.SortBy = "updated_at"
	}
	column, ok := sortColumns[q.SortBy]
	if !ok {
		return "", "", validationErr("invalid sort field %q", q.SortBy)
	}

	dir := strings.ToLower(q.SortDir)
	switch dir {
	case "":
		dir = "desc"
	case "asc", "desc":
	default:
		return "", "", validationErr("invalid sort direction %q", q.SortDir)
	}

	if q.Limit <= 0 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	// id tiebreak keeps page boundaries deterministic for equal sort keys
	sortExpr := fmt.Sprintf("%s %s, reading_logs.id ASC", column, strings.ToUpper(dir))
	return scope, sortExpr, nil
}

func (s *ReadingService) profilesByOwner(logs []models.ReadingLog) (map[uuid.UUID]*models.Profile, error) {
	ownerSet := make(IDSet, len(logs))
	for i := range logs {
		ownerSet[logs[i].OwnerID] = struct{}{}
	}
	result := make(map[uuid.UUID]*models.Profile, len(ownerSet))
	if len(ownerSet) == 0 {
		return result, nil
	}

	var profiles []models.Profile
	if err := s.db.Where("user_id IN ?", ownerSet.Slice()).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for i := range profiles {
		result[profiles[i].UserID] = &profiles[i]
	}
	return result, nil
}

func assembleRecord(log *models.ReadingLog, profile *models.Profile) dto.ReadingRecord {
	record := dto.ReadingRecord{
		Book:       log.Book,
		ReadingLog: *log,
		Quotes:     log.Quotes,
		Reviews:    log.Reviews,
		Profile:    profile,
	}
	if record.Quotes == nil {
		record.Quotes = []models.Quote{}
	}
	if record.Reviews == nil {
		record.Reviews = []models.Review{}
	}
	return record
}

// escapeLike neutralizes LIKE metacharacters in user search input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
