package pkg

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
)

// article is a minimal entity for exercising the generic repository.
type article struct {
	domain.BaseModel
	Title string `gorm:"uniqueIndex:idx_articles_title"`
	Views int
}

func (article) TableName() string { return "articles" }

var articleTitleConstraint = UniqueConstraint{
	Name:    "idx_articles_title",
	Columns: []string{"articles.title"},
	Message: "title already taken",
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	if err := db.AutoMigrate(&article{}); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}
	return db
}

func newArticleRepository(db *gorm.DB) *Repository[article] {
	return NewRepository[article](db, Sortable("title", "views"), articleTitleConstraint)
}

func mustSaveArticle(t *testing.T, repo *Repository[article], title string, views int) *article {
	t.Helper()
	a := &article{Title: title, Views: views}
	if err := repo.Save(context.Background(), a); err != nil {
		t.Fatalf("Save(%q) error = %v", title, err)
	}
	return a
}

func TestRepository_SaveAssignsID(t *testing.T) {
	repo := newArticleRepository(openTestDB(t))

	a := mustSaveArticle(t, repo, "first", 1)

	if a.ID == uuid.Nil {
		t.Fatal("expected Save to assign an identifier")
	}
	if a.CreatedAt.IsZero() {
		t.Fatal("expected Save to set CreatedAt")
	}
}

func TestRepository_GetByID(t *testing.T) {
	repo := newArticleRepository(openTestDB(t))
	ctx := context.Background()

	saved := mustSaveArticle(t, repo, "first", 1)

	got, err := repo.GetByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "first" || got.Views != 1 {
		t.Fatalf("GetByID() = %+v, want title=first views=1", got)
	}

	_, err = repo.GetByID(ctx, uuid.New())
	if !domain.IsNotFound(err) {
		t.Fatalf("GetByID(unknown) error = %v, want not found", err)
	}
}

func TestRepository_GetByField(t *testing.T) {
	repo := newArticleRepository(openTestDB(t))
	ctx := context.Background()

	mustSaveArticle(t, repo, "first", 1)

	got, err := repo.GetByField(ctx, "title", "first")
	if err != nil {
		t.Fatalf("GetByField() error = %v", err)
	}
	if got.Title != "first" {
		t.Fatalf("GetByField() title = %q, want %q", got.Title, "first")
	}

	_, err = repo.GetByField(ctx, "title", "missing")
	if !domain.IsNotFound(err) {
		t.Fatalf("GetByField(missing) error = %v, want not found", err)
	}
}

func TestRepository_GetByFields_RejectsInvalidFieldName(t *testing.T) {
	repo := newArticleRepository(openTestDB(t))

	_, err := repo.GetByFields(context.Background(), map[string]any{"title; DROP TABLE articles": "x"})
	if err == nil {
		t.Fatal("expected error for invalid field name")
	}
	var appErr *domain.AppError
	if !errors.As(err, &appErr) || appErr.Code != domain.CodeInternal {
		t.Fatalf("error = %v, want internal app error", err)
	}
}

func TestRepository_SaveUpdatesExistingRow(t *testing.T) {
	repo := newArticleRepository(openTestDB(t))
	ctx := context.Background()

	a := mustSaveArticle(t, repo, "first", 1)
	originalID := a.ID

	a.Views = 42
	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("Save(update) error = %v", err)
	}
	if a.ID != originalID {
		t.Fatalf("update changed identifier: %s -> %s", originalID, a.ID)
	}

	got, err := repo.GetByID(ctx, originalID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Views != 42 {
		t.Fatalf("views = %d, want 42", got.Views)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1 after update", count)
	}
}

func TestRepository_SaveTranslatesDuplicate(t *testing.T) {
	repo := newArticleRepository(openTestDB(t))
	ctx := context.Background()

	mustSaveArticle(t, repo, "first", 1)

	err := repo.Save(ctx, &article{Title: "first"})
	if !domain.IsAlreadyExists(err) {
		t.Fatalf("Save(duplicate) error = %v, want already exists", err)
	}
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error = %v, want *domain.AppError", err)
	}
	if appErr.Message != "title already taken" {
		t.Fatalf("message = %q, want constraint message", appErr.Message)
	}
}

func TestRepository_SaveAll_Atomic(t *testing.T) {
	repo := newArticleRepository(openTestDB(t))
	ctx := context.Background()

	mustSaveArticle(t, repo, "taken", 1)

	// Batch contains a duplicate; nothing from the batch may persist.
	err := repo.SaveAll(ctx, []*article{
		{Title: "fresh-one"},
		{Title: "taken"},
		{Title: "fresh-two"},
	})
	if !domain.IsAlreadyExists(err) {
		t.Fatalf("SaveAll(duplicate batch) error = %v, want already exists", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1 (batch rolled back)", count)
	}
}

func TestRepository_SaveAll_EmptyIsNoOp(t *testing.T) {
	repo := newArticleRepository(openTestDB(t))

	if err := repo.SaveAll(context.Background(), nil); err != nil {
		t.Fatalf("SaveAll(nil) error = %v, want nil", err)
	}
}

func TestRepository_SaveAll_InsertsBatch(t *testing.T) {
	repo := newArticleRepository(openTestDB(t))
	ctx := context.Background()

	batch := []*article{{Title: "a"}, {Title: "b"}, {Title: "c"}}
	if err := repo.SaveAll(ctx, batch); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}

	for i, a := range batch {
		if a.ID == uuid.Nil {
			t.Errorf("batch[%d] has no identifier after SaveAll", i)
		}
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}

func TestRepository_Delete(t *testing.T) {
	repo := newArticleRepository(openTestDB(t))
	ctx := context.Background()

	a := mustSaveArticle(t, repo, "first", 1)

	if err := repo.Delete(ctx, a); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := repo.GetByID(ctx, a.ID)
	if !domain.IsNotFound(err) {
		t.Fatalf("GetByID(deleted) error = %v, want not found", err)
	}

	// Deleting the same row again reports not found.
	if err := repo.Delete(ctx, a); !domain.IsNotFound(err) {
		t.Fatalf("Delete(absent) error = %v, want not found", err)
	}
}

func TestRepository_GetAll_Sorted(t *testing.T) {
	repo := newArticleRepository(openTestDB(t))
	ctx := context.Background()

	mustSaveArticle(t, repo, "bravo", 2)
	mustSaveArticle(t, repo, "alpha", 3)
	mustSaveArticle(t, repo, "charlie", 1)

	got, err := repo.GetAll(ctx, domain.SortSpec{Field: "title", Order: "asc"})
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	wantOrder := []string{"alpha", "bravo", "charlie"}
	for i, w := range wantOrder {
		if got[i].Title != w {
			t.Fatalf("GetAll()[%d].Title = %q, want %q", i, got[i].Title, w)
		}
	}

	got, err = repo.GetAll(ctx, domain.SortSpec{Field: "views", Order: "desc"})
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if got[0].Views != 3 || got[2].Views != 1 {
		t.Fatalf("GetAll(views desc) = %v/%v, want 3..1", got[0].Views, got[2].Views)
	}
}

func TestTranslateError(t *testing.T) {
	constraints := []UniqueConstraint{articleTitleConstraint}

	tests := []struct {
		name      string
		err       error
		wantCheck func(error) bool
		wantMsg   string
	}{
		{
			name:      "nil stays nil",
			err:       nil,
			wantCheck: func(e error) bool { return e == nil },
		},
		{
			name:      "record not found",
			err:       gorm.ErrRecordNotFound,
			wantCheck: domain.IsNotFound,
		},
		{
			name:      "postgres structured unique violation matches constraint name",
			err:       &pgconn.PgError{Code: "23505", ConstraintName: "idx_articles_title"},
			wantCheck: domain.IsAlreadyExists,
			wantMsg:   "title already taken",
		},
		{
			name:      "postgres wrapped unique violation",
			err:       fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_articles_title"}),
			wantCheck: domain.IsAlreadyExists,
			wantMsg:   "title already taken",
		},
		{
			name:      "postgres unique violation with unknown constraint",
			err:       &pgconn.PgError{Code: "23505", ConstraintName: "idx_widgets_name"},
			wantCheck: domain.IsAlreadyExists,
			wantMsg:   "already exists",
		},
		{
			name:      "postgres non-unique error becomes internal",
			err:       &pgconn.PgError{Code: "23503", ConstraintName: "fk_articles_author"},
			wantCheck: domain.IsInternal,
		},
		{
			name:      "sqlite unique message matches constraint columns",
			err:       errors.New("UNIQUE constraint failed: articles.title"),
			wantCheck: domain.IsAlreadyExists,
			wantMsg:   "title already taken",
		},
		{
			name:      "unique message without known constraint",
			err:       errors.New("UNIQUE constraint failed: widgets.name"),
			wantCheck: domain.IsAlreadyExists,
			wantMsg:   "already exists",
		},
		{
			name:      "other errors become internal",
			err:       errors.New("disk I/O error"),
			wantCheck: func(e error) bool { return !domain.IsNotFound(e) && !domain.IsAlreadyExists(e) && e != nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError(tt.err, constraints)
			if !tt.wantCheck(got) {
				t.Fatalf("TranslateError() = %v", got)
			}
			if tt.wantMsg != "" {
				var appErr *domain.AppError
				if !errors.As(got, &appErr) || appErr.Message != tt.wantMsg {
					t.Fatalf("message = %v, want %q", got, tt.wantMsg)
				}
			}
		})
	}
}
