package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel is the common base struct for all persisted entities.
// Identifiers are store-assigned UUIDs and treated as opaque by callers;
// they are generated once in BeforeCreate and never regenerated.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns a fresh UUID unless one was provided explicitly.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// SortSpec describes a requested ordering: a field name and a direction.
// An empty or unrecognized field means "no sort requested"; any order value
// other than "desc" (case-insensitive) is treated as ascending.
type SortSpec struct {
	Field string
	Order string
}

// Desc reports whether the spec requests descending order.
func (s SortSpec) Desc() bool {
	return strings.EqualFold(s.Order, "desc")
}

// PageRequest holds pagination parameters. Page is 1-based; PerPage is
// clamped to [1, 100] by the HTTP layer, not here.
type PageRequest struct {
	Page    int
	PerPage int
}

// Offset returns the row offset of the first item on the requested page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PerPage
}

// PageResult is one page of a filtered, sorted result set. Total reflects the
// filter before pagination; it is invariant under page/per_page changes.
type PageResult[T any] struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
	Items   []T   `json:"items"`
}
