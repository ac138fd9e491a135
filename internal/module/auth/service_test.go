package auth

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
	"github.com/Dawstr8/peek-a-peak/internal/pkg"
)

// testUserRepository is a minimal user store for auth tests. The real one
// lives in the user module, which the auth package must not import.
type testUserRepository struct {
	*pkg.Repository[domain.User]
}

func (r *testUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.GetByField(ctx, "email", email)
}

func (r *testUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.GetByField(ctx, "username", username)
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Session{}); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}

	users := &testUserRepository{
		Repository: pkg.NewRepository[domain.User](db, pkg.Sortable(),
			pkg.UniqueConstraint{Name: "idx_users_email", Columns: []string{"users.email"}, Message: "email already registered"},
			pkg.UniqueConstraint{Name: "idx_users_username", Columns: []string{"users.username"}, Message: "username already taken"},
		),
	}
	return NewService(users, NewSessionRepository(db), time.Hour), db
}

func mustRegister(t *testing.T, svc Service, email, username, password string) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), email, username, password)
	if err != nil {
		t.Fatalf("Register(%q) error = %v", username, err)
	}
	return user
}

func TestRegister_LowercasesIdentityKeepsDisplayCasing(t *testing.T) {
	svc, _ := newTestService(t)

	user := mustRegister(t, svc, "Wanda@Example.COM", "WandaR", "correct-horse")

	if user.Email != "wanda@example.com" {
		t.Errorf("Email = %q, want lowercased", user.Email)
	}
	if user.Username != "wandar" {
		t.Errorf("Username = %q, want lowercased", user.Username)
	}
	if user.UsernameDisplay != "WandaR" {
		t.Errorf("UsernameDisplay = %q, want original casing", user.UsernameDisplay)
	}
	if user.HashedPassword == "correct-horse" || user.HashedPassword == "" {
		t.Error("password stored unhashed")
	}
}

func TestRegister_InputValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		username string
		password string
	}{
		{name: "empty email", email: "", username: "wanda", password: "longenough"},
		{name: "malformed email", email: "not-an-email", username: "wanda", password: "longenough"},
		{name: "email with display name", email: "Wanda <w@example.com>", username: "wanda", password: "longenough"},
		{name: "username too short", email: "w@example.com", username: "ab", password: "longenough"},
		{name: "username too long", email: "w@example.com", username: "abcdefghijklmnopqrstuvwxyz01234", password: "longenough"},
		{name: "username with spaces", email: "w@example.com", username: "wan da", password: "longenough"},
		{name: "password too short", email: "w@example.com", username: "wanda", password: "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.username, tt.password)
			if !domain.IsValidation(err) {
				t.Fatalf("Register() error = %v, want validation error", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustRegister(t, svc, "wanda@example.com", "wanda", "longenough")

	_, err := svc.Register(ctx, "wanda@example.com", "other", "longenough")
	if !domain.IsAlreadyExists(err) {
		t.Fatalf("Register(duplicate email) error = %v, want already exists", err)
	}

	// Duplicate detection is case-insensitive through lowercasing.
	_, err = svc.Register(ctx, "WANDA@example.com", "another", "longenough")
	if !domain.IsAlreadyExists(err) {
		t.Fatalf("Register(case-variant duplicate email) error = %v, want already exists", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)

	mustRegister(t, svc, "wanda@example.com", "wanda", "longenough")

	_, err := svc.Register(context.Background(), "other@example.com", "Wanda", "longenough")
	if !domain.IsAlreadyExists(err) {
		t.Fatalf("Register(duplicate username) error = %v, want already exists", err)
	}
}

func TestLogin_ByEmailAndByUsername(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	registered := mustRegister(t, svc, "wanda@example.com", "Wanda", "longenough")

	for _, login := range []string{"wanda@example.com", "WANDA@example.com", "wanda", "Wanda"} {
		user, session, err := svc.Login(ctx, login, "longenough")
		if err != nil {
			t.Fatalf("Login(%q) error = %v", login, err)
		}
		if user.ID != registered.ID {
			t.Fatalf("Login(%q) user = %s, want %s", login, user.ID, registered.ID)
		}
		if session.ID == uuid.Nil || !session.IsActive {
			t.Fatalf("Login(%q) session = %+v, want active with id", login, session)
		}
		if !session.ExpiresAt.After(time.Now()) {
			t.Fatalf("Login(%q) session already expired: %v", login, session.ExpiresAt)
		}
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	mustRegister(t, svc, "wanda@example.com", "wanda", "longenough")

	_, _, err := svc.Login(context.Background(), "wanda", "wrong-password")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("Login(wrong password) error = %v, want unauthorized", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	// Same error for unknown user as for wrong password.
	_, _, err := svc.Login(context.Background(), "nobody", "longenough")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("Login(unknown user) error = %v, want unauthorized", err)
	}
}

func TestUserBySession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	registered := mustRegister(t, svc, "wanda@example.com", "wanda", "longenough")
	_, session, err := svc.Login(ctx, "wanda", "longenough")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	user, err := svc.UserBySession(ctx, session.ID)
	if err != nil {
		t.Fatalf("UserBySession() error = %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("UserBySession() user = %s, want %s", user.ID, registered.ID)
	}

	_, err = svc.UserBySession(ctx, uuid.New())
	if !domain.IsUnauthorized(err) {
		t.Fatalf("UserBySession(unknown) error = %v, want unauthorized", err)
	}
}

func TestLogout_InvalidatesSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustRegister(t, svc, "wanda@example.com", "wanda", "longenough")
	_, session, err := svc.Login(ctx, "wanda", "longenough")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := svc.Logout(ctx, session.ID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	_, err = svc.UserBySession(ctx, session.ID)
	if !domain.IsUnauthorized(err) {
		t.Fatalf("UserBySession(after logout) error = %v, want unauthorized", err)
	}

	// Logout is idempotent: repeating it and logging out unknown sessions succeed.
	if err := svc.Logout(ctx, session.ID); err != nil {
		t.Fatalf("Logout(again) error = %v", err)
	}
	if err := svc.Logout(ctx, uuid.New()); err != nil {
		t.Fatalf("Logout(unknown) error = %v", err)
	}
}

func TestSession_ExpiryIsEnforced(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Session{}); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}

	sessions := NewSessionRepository(db)
	ctx := context.Background()

	// A session created with a negative TTL is born expired.
	expired, err := sessions.Create(ctx, uuid.New(), -time.Minute)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = sessions.GetActiveByID(ctx, expired.ID)
	if !domain.IsNotFound(err) {
		t.Fatalf("GetActiveByID(expired) error = %v, want not found", err)
	}
}
