// Package crud implements the paginated list-and-edit pattern shared by
// every back-office entity: bounded search listing over non-deleted rows,
// insert/update guarded by an advisory uniqueness pre-check, and soft
// deletion. Each entity instantiates one Service with its own Config.
package crud

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DefaultPageSize is the number of rows per listing page
const DefaultPageSize = 10

var (
	// ErrNotFound indicates the row does not exist or is soft-deleted
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates a name/label collision within the entity's scope
	ErrConflict = errors.New("record already exists")
	// ErrInvalidPage indicates a page number outside [1, total_pages]
	ErrInvalidPage = errors.New("page out of range")
)

// ValidationError reports a field-level problem caught before any write
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Config parameterizes a Service for one entity type
type Config[T any] struct {
	// NameColumn is the column holding the entity's unique name or label
	NameColumn string
	// SearchColumn is the column matched by the search query; defaults to NameColumn
	SearchColumn string
	// OrderBy is the default listing order, e.g. "created_at DESC"
	OrderBy string
	// Name returns the normalized unique value of a row
	Name func(*T) string
	// Scope returns extra column/value pairs the name must be unique within,
	// e.g. {"category_id": 3}. Nil means globally unique.
	Scope func(*T) map[string]interface{}
	// Filter restricts every operation to rows matching these column/value
	// pairs, e.g. {"role": "seller"} when sellers share the users table.
	Filter map[string]interface{}
	// Normalize trims user-entered fields in place before validation
	Normalize func(*T)
	// Validate rejects rows with missing or malformed fields
	Validate func(*T) error
	// PreCheck enables the advisory uniqueness query before insert/update.
	// The database constraint still backstops the race between check and write.
	PreCheck bool
	// PageSize overrides DefaultPageSize when positive
	PageSize int
}

// Page is one bounded slice of a listing plus the counts needed for
// page navigation
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Service provides list/get/create/update/soft-delete for one entity type
type Service[T any] struct {
	db  *gorm.DB
	cfg Config[T]
}

// NewService creates a Service bound to a database connection
func NewService[T any](db *gorm.DB, cfg Config[T]) *Service[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.SearchColumn == "" {
		cfg.SearchColumn = cfg.NameColumn
	}
	return &Service[T]{db: db, cfg: cfg}
}

// List returns one page of non-deleted rows. A non-empty search query
// matches the search column case-insensitively as a substring. Page
// numbers below 1 or beyond the last page are rejected before any row
// query is issued; page 1 of an empty listing is always valid.
func (s *Service[T]) List(page int, search string) (*Page[T], error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	q := s.active()
	search = strings.TrimSpace(search)
	if search != "" {
		pattern := "%" + strings.ToLower(escapeLike(search)) + "%"
		q = q.Where("LOWER("+s.cfg.SearchColumn+") LIKE ? ESCAPE '\\'", pattern)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	size := s.cfg.PageSize
	totalPages := int((total + int64(size) - 1) / int64(size))
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		return nil, ErrInvalidPage
	}

	items := make([]T, 0, size)
	if err := q.Order(s.cfg.OrderBy).Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return nil, err
	}

	return &Page[T]{
		Items:      items,
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// Get looks up a row by id without filtering soft-deleted rows, so a
// deleted row is still visible to a direct lookup.
func (s *Service[T]) Get(id uint) (*T, error) {
	q := s.db.Model(new(T))
	if len(s.cfg.Filter) > 0 {
		q = q.Where(s.cfg.Filter)
	}
	var row T
	err := q.First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetActive looks up a non-deleted row by id
func (s *Service[T]) GetActive(id uint) (*T, error) {
	var row T
	err := s.active().First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Create validates the row, runs the advisory uniqueness pre-check and
// inserts it. A duplicate reported by the database constraint itself is
// also surfaced as ErrConflict.
func (s *Service[T]) Create(row *T) error {
	if err := s.prepare(row); err != nil {
		return err
	}
	if s.cfg.PreCheck {
		taken, err := s.nameTaken(row, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrConflict
		}
	}
	if err := s.db.Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// Update validates and saves an existing row, excluding the row's own id
// from the uniqueness pre-check. The caller fetches the row via GetActive
// and applies its changes before calling Update.
func (s *Service[T]) Update(id uint, row *T) error {
	if err := s.prepare(row); err != nil {
		return err
	}
	if s.cfg.PreCheck {
		taken, err := s.nameTaken(row, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrConflict
		}
	}
	if err := s.db.Save(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// SoftDelete marks a row deleted. The row stays in the table and keeps
// serving direct lookups; listings and uniqueness checks skip it.
func (s *Service[T]) SoftDelete(id uint) error {
	res := s.active().
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service[T]) prepare(row *T) error {
	if s.cfg.Normalize != nil {
		s.cfg.Normalize(row)
	}
	if s.cfg.Validate != nil {
		if err := s.cfg.Validate(row); err != nil {
			return &ValidationError{Reason: err.Error()}
		}
	}
	return nil
}

// nameTaken reports whether another non-deleted row in the same scope
// already uses the row's name. A zero count is the normal "free" result,
// not an error.
func (s *Service[T]) nameTaken(row *T, excludeID uint) (bool, error) {
	q := s.active().Where(s.cfg.NameColumn+" = ?", s.cfg.Name(row))
	if s.cfg.Scope != nil {
		if scope := s.cfg.Scope(row); len(scope) > 0 {
			q = q.Where(scope)
		}
	}
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// active is the base query every operation except Get builds on:
// non-deleted rows matching the configured filter
func (s *Service[T]) active() *gorm.DB {
	q := s.db.Model(new(T)).Where("is_deleted = ?", false)
	if len(s.cfg.Filter) > 0 {
		q = q.Where(s.cfg.Filter)
	}
	return q
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
