package pkg

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
)

func ginContextWithQuery(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
	}{
		{name: "defaults", query: "", wantPage: 1, wantPerPage: 10},
		{name: "explicit values", query: "page=3&perPage=25", wantPage: 3, wantPerPage: 25},
		{name: "zero page clamps to 1", query: "page=0", wantPage: 1, wantPerPage: 10},
		{name: "negative page clamps to 1", query: "page=-5", wantPage: 1, wantPerPage: 10},
		{name: "zero perPage falls back to default", query: "perPage=0", wantPage: 1, wantPerPage: 10},
		{name: "perPage capped at 100", query: "perPage=5000", wantPage: 1, wantPerPage: 100},
		{name: "non-numeric input falls back", query: "page=abc&perPage=xyz", wantPage: 1, wantPerPage: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePageRequest(ginContextWithQuery(t, tt.query))
			if got.Page != tt.wantPage || got.PerPage != tt.wantPerPage {
				t.Fatalf("ParsePageRequest() = %+v, want page=%d perPage=%d", got, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}

func TestParseSortSpec(t *testing.T) {
	c := ginContextWithQuery(t, "sortBy=capturedAt&order=desc")
	got := ParseSortSpec(c)
	if got.Field != "captured_at" {
		t.Fatalf("Field = %q, want %q", got.Field, "captured_at")
	}
	if !got.Desc() {
		t.Fatal("expected descending order")
	}
}

func TestCamelToSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"capturedAt", "captured_at"},
		{"uploadedAt", "uploaded_at"},
		{"name", "name"},
		{"", ""},
		{"ID", "i_d"},
		{"distanceToPeak", "distance_to_peak"},
	}
	for _, tt := range tests {
		if got := CamelToSnake(tt.in); got != tt.want {
			t.Errorf("CamelToSnake(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPageRequest_Offset(t *testing.T) {
	tests := []struct {
		page, perPage, want int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{5, 25, 100},
	}
	for _, tt := range tests {
		req := domain.PageRequest{Page: tt.page, PerPage: tt.perPage}
		if got := req.Offset(); got != tt.want {
			t.Errorf("Offset(page=%d, perPage=%d) = %d, want %d", tt.page, tt.perPage, got, tt.want)
		}
	}
}

func TestPaginate_CoversAllRowsWithoutGapsOrDuplicates(t *testing.T) {
	db := openTestDB(t)
	repo := newArticleRepository(db)
	ctx := context.Background()

	const totalRows = 23
	for i := range totalRows {
		mustSaveArticle(t, repo, fmt.Sprintf("article-%02d", i), i)
	}

	order := Sort(domain.SortSpec{Field: "views", Order: "asc"}, repo.Sortable())
	seen := map[uuid.UUID]bool{}
	page := 1
	for {
		res, err := Paginate[article](db.WithContext(ctx).Model(&article{}), domain.PageRequest{Page: page, PerPage: 5}, order)
		if err != nil {
			t.Fatalf("Paginate(page=%d) error = %v", page, err)
		}
		if res.Total != totalRows {
			t.Fatalf("Total = %d, want %d", res.Total, totalRows)
		}
		if len(res.Items) == 0 {
			break
		}
		for _, item := range res.Items {
			if seen[item.ID] {
				t.Fatalf("row %s appeared on more than one page", item.ID)
			}
			seen[item.ID] = true
		}
		page++
	}

	if len(seen) != totalRows {
		t.Fatalf("pages covered %d rows, want %d", len(seen), totalRows)
	}
}

func TestPaginate_TotalInvariantUnderPaging(t *testing.T) {
	db := openTestDB(t)
	repo := newArticleRepository(db)
	ctx := context.Background()

	for i := range 12 {
		mustSaveArticle(t, repo, fmt.Sprintf("a-%d", i), i)
	}

	for _, req := range []domain.PageRequest{
		{Page: 1, PerPage: 3},
		{Page: 2, PerPage: 5},
		{Page: 1, PerPage: 100},
	} {
		res, err := Paginate[article](db.WithContext(ctx).Model(&article{}), req)
		if err != nil {
			t.Fatalf("Paginate(%+v) error = %v", req, err)
		}
		if res.Total != 12 {
			t.Fatalf("Total = %d for %+v, want 12", res.Total, req)
		}
		if res.Page != req.Page || res.PerPage != req.PerPage {
			t.Fatalf("echoed request = %d/%d, want %d/%d", res.Page, res.PerPage, req.Page, req.PerPage)
		}
	}
}

func TestPaginate_PagePastEndIsEmptyWithTotal(t *testing.T) {
	db := openTestDB(t)
	repo := newArticleRepository(db)
	ctx := context.Background()

	mustSaveArticle(t, repo, "solo", 1)

	res, err := Paginate[article](db.WithContext(ctx).Model(&article{}), domain.PageRequest{Page: 99, PerPage: 10})
	if err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	if res.Total != 1 {
		t.Fatalf("Total = %d, want 1", res.Total)
	}
	if res.Items == nil {
		t.Fatal("Items must be an empty slice, not nil")
	}
	if len(res.Items) != 0 {
		t.Fatalf("len(Items) = %d, want 0", len(res.Items))
	}
}

func TestPaginate_RespectsBaseFilter(t *testing.T) {
	db := openTestDB(t)
	repo := newArticleRepository(db)
	ctx := context.Background()

	for i := range 10 {
		mustSaveArticle(t, repo, fmt.Sprintf("f-%d", i), i)
	}

	base := db.WithContext(ctx).Model(&article{}).Where("views >= ?", 7)
	res, err := Paginate[article](base, domain.PageRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	if res.Total != 3 {
		t.Fatalf("Total = %d, want 3 (filter applies to count)", res.Total)
	}
	for _, item := range res.Items {
		if item.Views < 7 {
			t.Fatalf("item with views=%d leaked through filter", item.Views)
		}
	}
}
