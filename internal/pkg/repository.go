package pkg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
)

// UniqueConstraint describes one unique constraint on an entity's table and
// the domain-level message reported when a save violates it.
//
// Name is the store-side constraint/index name (postgres reports it in the
// structured error). Columns are the qualified column names as the sqlite
// driver spells them in its message, e.g. "users.email"; they are the
// fallback match when no structured constraint name is available.
type UniqueConstraint struct {
	Name    string
	Columns []string
	Message string
}

// Repository is the reusable CRUD core shared by every domain repository.
// It holds only the injected connection handle and per-entity registries
// (sortable columns, unique constraints) — no cross-request state.
type Repository[T any] struct {
	db          *gorm.DB
	sortable    []string
	constraints []UniqueConstraint
}

// NewRepository creates a generic repository for entity type T backed by the
// given GORM database. sortable is the whitelist applied to GetAll sorting;
// constraints drive duplicate-key translation in Save and SaveAll.
func NewRepository[T any](db *gorm.DB, sortable []string, constraints ...UniqueConstraint) *Repository[T] {
	if len(sortable) == 0 {
		sortable = Sortable()
	}
	return &Repository[T]{
		db:          db,
		sortable:    sortable,
		constraints: constraints,
	}
}

// DB exposes the underlying handle for repositories layering extra queries
// on top of the generic core.
func (r *Repository[T]) DB() *gorm.DB {
	return r.db
}

// Sortable returns the whitelist of sortable columns for T.
func (r *Repository[T]) Sortable() []string {
	return r.sortable
}

// GetByID retrieves an entity by its primary key.
func (r *Repository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		return nil, r.MapError(err)
	}
	return &entity, nil
}

// GetByField retrieves the first entity whose column equals value, in the
// store's native order.
func (r *Repository[T]) GetByField(ctx context.Context, field string, value any) (*T, error) {
	return r.GetByFields(ctx, map[string]any{field: value})
}

// GetByFields retrieves the first entity matching every filter by equality.
// Filter keys are column names supplied by our own code, but they are still
// validated against the field-name pattern before touching SQL.
func (r *Repository[T]) GetByFields(ctx context.Context, filters map[string]any) (*T, error) {
	q := r.db.WithContext(ctx)
	for field, value := range filters {
		if !validFieldName.MatchString(field) {
			return nil, domain.NewAppError(domain.CodeInternal, fmt.Sprintf("invalid field name %q", field), nil)
		}
		q = q.Where(field+" = ?", value)
	}

	var entity T
	if err := q.First(&entity).Error; err != nil {
		return nil, r.MapError(err)
	}
	return &entity, nil
}

// GetAll returns all entities, unsorted by default (store-native order) or
// ordered per the sort spec against the entity's whitelist.
func (r *Repository[T]) GetAll(ctx context.Context, sort domain.SortSpec) ([]T, error) {
	var entities []T
	err := r.db.WithContext(ctx).
		Scopes(Sort(sort, r.sortable)).
		Find(&entities).Error
	if err != nil {
		return nil, r.MapError(err)
	}
	return entities, nil
}

// Save inserts the entity when it has no identifier yet, otherwise updates it
// in place. The entity is refreshed with store-assigned values through the
// pointer. Unique-constraint violations come back as domain duplicate errors.
func (r *Repository[T]) Save(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return r.MapError(err)
	}
	return nil
}

// SaveAll batch-inserts the entities in a single transaction: either all rows
// commit or none do. A duplicate violation anywhere in the batch rolls the
// whole batch back and surfaces the same translated error as Save.
func (r *Repository[T]) SaveAll(ctx context.Context, entities []*T) error {
	if len(entities) == 0 {
		return nil
	}
	err := WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		return tx.Create(entities).Error
	})
	if err != nil {
		return r.MapError(err)
	}
	return nil
}

// Delete removes the entity's row by primary key. Deleting an absent row
// reports NotFound rather than silently succeeding.
func (r *Repository[T]) Delete(ctx context.Context, entity *T) error {
	result := r.db.WithContext(ctx).Delete(entity)
	if result.Error != nil {
		return r.MapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the total number of rows for T.
func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	var entity T
	if err := r.db.WithContext(ctx).Model(&entity).Count(&count).Error; err != nil {
		return 0, r.MapError(err)
	}
	return count, nil
}

// MapError converts store errors to domain errors, translating unique
// violations against the repository's constraint registry.
func (r *Repository[T]) MapError(err error) error {
	return TranslateError(err, r.constraints)
}

// TranslateError converts GORM/driver errors to domain errors. Duplicate-key
// detection prefers the driver's structured error (postgres SQLSTATE 23505
// with a constraint name) and falls back to matching the message text, which
// is all the sqlite driver offers.
func TranslateError(err error, constraints []UniqueConstraint) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		for _, c := range constraints {
			if c.Name == pgErr.ConstraintName {
				return domain.NewDuplicateError(c.Message, err)
			}
		}
		return domain.NewDuplicateError("already exists", err)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		msg := strings.ToLower(err.Error())
		for _, c := range constraints {
			if strings.Contains(msg, strings.ToLower(c.Name)) || containsAllColumns(msg, c.Columns) {
				return domain.NewDuplicateError(c.Message, err)
			}
		}
		return domain.NewDuplicateError("already exists", err)
	}

	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

// isDuplicateKeyError detects unique constraint violations by examining the
// error message. This is needed because not all GORM dialectors translate
// driver-level errors to gorm.ErrDuplicatedKey (e.g. the pure-Go SQLite driver).
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

// containsAllColumns reports whether the message names every qualified column
// of the constraint.
func containsAllColumns(msg string, columns []string) bool {
	if len(columns) == 0 {
		return false
	}
	for _, col := range columns {
		if !strings.Contains(msg, strings.ToLower(col)) {
			return false
		}
	}
	return true
}
