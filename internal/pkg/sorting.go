package pkg

import (
	"regexp"
	"slices"
	"strings"

	"gorm.io/gorm"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
)

// validFieldName matches only alphanumeric characters and underscores.
// Field names arriving from outside the process must pass this pattern
// before they are interpolated into SQL.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Sortable builds a per-entity whitelist of sortable columns: the shared
// base set (id, created_at) plus entity-specific additions.
func Sortable(extra ...string) []string {
	return append([]string{"id", "created_at"}, extra...)
}

// Sort returns a GORM scope that applies ORDER BY based on the sort spec.
// A missing or non-whitelisted field leaves the query unmodified — no error.
// A valid field orders by (field, id) with both columns in the requested
// direction; the identifier tie-break keeps the relative order of rows with
// equal sort-field values deterministic, so pagination stays stable.
func Sort(spec domain.SortSpec, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		field := strings.TrimSpace(spec.Field)
		if field == "" || !validFieldName.MatchString(field) || !slices.Contains(allowed, field) {
			return db
		}

		dir := " asc"
		if spec.Desc() {
			dir = " desc"
		}

		if field == "id" {
			return db.Order("id" + dir)
		}
		return db.Order(field + dir).Order("id" + dir)
	}
}
