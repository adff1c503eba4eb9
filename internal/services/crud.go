package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/postboard/api/internal/models"
	"gorm.io/gorm"
)

// CRUDService implements the list/get/create/update/delete operations shared
// by every resource table.
type CRUDService[T any] struct {
	db       *gorm.DB
	notFound error
	// filters maps an accepted query key to the column it compares against.
	filters map[string]string
	// normalizers rewrite a filter value before it is compared.
	normalizers map[string]func(string) string
	order       string
	// preloads are applied to single-record reads.
	preloads []string
}

type CRUDOption func(*crudOptions)

type crudOptions struct {
	filters     map[string]string
	normalizers map[string]func(string) string
	order       string
	preloads    []string
}

// WithFilters whitelists query keys for List.
func WithFilters(filters map[string]string) CRUDOption {
	return func(o *crudOptions) { o.filters = filters }
}

// WithNormalizer applies fn to the value of filter key, e.g. to match
// columns stored in canonical form.
func WithNormalizer(key string, fn func(string) string) CRUDOption {
	return func(o *crudOptions) {
		if o.normalizers == nil {
			o.normalizers = make(map[string]func(string) string)
		}
		o.normalizers[key] = fn
	}
}

func WithOrder(order string) CRUDOption {
	return func(o *crudOptions) { o.order = order }
}

// WithPreload names associations loaded by GetByID.
func WithPreload(associations ...string) CRUDOption {
	return func(o *crudOptions) { o.preloads = associations }
}

func NewCRUDService[T any](db *gorm.DB, notFound error, opts ...CRUDOption) *CRUDService[T] {
	o := crudOptions{order: "created_at ASC"}
	for _, opt := range opts {
		opt(&o)
	}
	return &CRUDService[T]{
		db:          db,
		notFound:    notFound,
		filters:     o.filters,
		normalizers: o.normalizers,
		order:       o.order,
		preloads:    o.preloads,
	}
}

// withDB returns a copy bound to db, typically a transaction.
func (s *CRUDService[T]) withDB(db *gorm.DB) *CRUDService[T] {
	clone := *s
	clone.db = db
	return &clone
}

// List returns every record matching the whitelisted equality filters.
// Keys not in the whitelist and empty values are ignored.
func (s *CRUDService[T]) List(ctx context.Context, filter map[string]string) ([]T, error) {
	query := s.db.WithContext(ctx).Model(new(T))
	for key, value := range filter {
		column, ok := s.filters[key]
		if !ok || value == "" {
			continue
		}
		if normalize, ok := s.normalizers[key]; ok {
			value = normalize(value)
		}
		query = query.Where(column+" = ?", value)
	}

	items := make([]T, 0)
	if err := query.Order(s.order).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return items, nil
}

func (s *CRUDService[T]) GetByID(ctx context.Context, id string) (*T, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx)
	for _, association := range s.preloads {
		query = query.Preload(association)
	}

	var record T
	if err := query.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound
		}
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	return &record, nil
}

func (s *CRUDService[T]) Create(ctx context.Context, record *T) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("create: %w", err)
	}
	return nil
}

// Update applies fields (column -> value) to the record and returns it
// reloaded.
func (s *CRUDService[T]) Update(ctx context.Context, id string, fields map[string]interface{}) (*T, error) {
	record, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(record).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("update %s: %w", id, err)
		}
	}
	return s.GetByID(ctx, id)
}

// Delete removes the record and returns it as it was before deletion.
func (s *CRUDService[T]) Delete(ctx context.Context, id string) (*T, error) {
	record, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(record).Error; err != nil {
		return nil, fmt.Errorf("delete %s: %w", id, err)
	}
	return record, nil
}

// OwnerOf returns the owning user id of the record.
func (s *CRUDService[T]) OwnerOf(ctx context.Context, id string) (string, error) {
	record, err := s.find(ctx, id)
	if err != nil {
		return "", err
	}

	owned, ok := any(*record).(models.Owned)
	if !ok {
		return "", fmt.Errorf("%T has no owner", *record)
	}
	return owned.OwnerID(), nil
}

// Exists reports whether a record with id is present.
func (s *CRUDService[T]) Exists(ctx context.Context, id string) (bool, error) {
	if err := validateID(id); err != nil {
		return false, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("exists %s: %w", id, err)
	}
	return count > 0, nil
}

// find loads a record without preloads.
func (s *CRUDService[T]) find(ctx context.Context, id string) (*T, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var record T
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound
		}
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	return &record, nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%q: %w", id, ErrMalformedID)
	}
	return nil
}
