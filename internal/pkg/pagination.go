package pkg

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
	maxPerPage     = 100
)

// ParsePageRequest extracts pagination parameters from query params and
// clamps them to valid ranges. Validating raw query input is this HTTP
// layer's job; the paginator itself trusts its inputs.
func ParsePageRequest(c *gin.Context) domain.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if page < 1 {
		page = defaultPage
	}

	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", strconv.Itoa(defaultPerPage)))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	return domain.PageRequest{Page: page, PerPage: perPage}
}

// ParseSortSpec extracts sorting parameters from query params. The public API
// uses camelCase field names (sortBy=capturedAt); they are translated to the
// snake_case column names the repositories whitelist.
func ParseSortSpec(c *gin.Context) domain.SortSpec {
	return domain.SortSpec{
		Field: CamelToSnake(c.Query("sortBy")),
		Order: c.Query("order"),
	}
}

// CamelToSnake converts a camelCase identifier to snake_case.
func CamelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Paginate runs the two statements of a paginated read against the same
// filtered base query: a total count and the OFFSET/LIMIT page slice. Order
// scopes apply to the slice only, so the count stays a plain aggregate.
//
// A page past the end of the result set yields empty items with the correct
// total. A concurrent write between the two statements can shift the slice
// boundary by one row; that race is accepted, not worked around here.
func Paginate[T any](base *gorm.DB, req domain.PageRequest, order ...func(db *gorm.DB) *gorm.DB) (*domain.PageResult[T], error) {
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var items []T
	err := base.Session(&gorm.Session{}).
		Scopes(order...).
		Offset(req.Offset()).
		Limit(req.PerPage).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []T{}
	}

	return &domain.PageResult[T]{
		Total:   total,
		Page:    req.Page,
		PerPage: req.PerPage,
		Items:   items,
	}, nil
}
