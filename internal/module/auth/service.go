package auth

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
)

// Service defines the authentication operations.
type Service interface {
	Register(ctx context.Context, email, username, password string) (*domain.User, error)
	// Login authenticates by email or username and creates a login session.
	Login(ctx context.Context, login, password string) (*domain.User, *domain.Session, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	// UserBySession resolves an active session cookie value to its user.
	UserBySession(ctx context.Context, sessionID uuid.UUID) (*domain.User, error)
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// authService implements Service.
type authService struct {
	users      domain.UserRepository
	sessions   domain.SessionRepository
	sessionTTL time.Duration
}

// NewService creates a new auth Service.
func NewService(users domain.UserRepository, sessions domain.SessionRepository, sessionTTL time.Duration) Service {
	return &authService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// validateRegisterInput checks registration input before any hashing work.
func validateRegisterInput(email, username, password string) error {
	trimmedEmail := strings.TrimSpace(email)
	if trimmedEmail == "" {
		return domain.NewAppError(domain.CodeValidation, "email is required", nil)
	}
	addr, err := mail.ParseAddress(trimmedEmail)
	if err != nil || addr.Name != "" || addr.Address != trimmedEmail {
		return domain.NewAppError(domain.CodeValidation, "email must be a valid email address", nil)
	}

	usernameLen := utf8.RuneCountInString(username)
	if usernameLen < 3 || usernameLen > 30 {
		return domain.NewAppError(domain.CodeValidation, "username must be between 3 and 30 characters", nil)
	}
	if !usernamePattern.MatchString(username) {
		return domain.NewAppError(domain.CodeValidation, "username can only contain letters, numbers, underscores, hyphens, and periods", nil)
	}

	if len(password) < 8 {
		return domain.NewAppError(domain.CodeValidation, "password must be at least 8 characters", nil)
	}
	if len(password) > 72 {
		return domain.NewAppError(domain.CodeValidation, "password must not exceed 72 characters", nil)
	}
	return nil
}

// Register creates a new user. Email and username are stored lowercased;
// the username's original casing is kept for display.
func (s *authService) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if err := validateRegisterInput(email, username, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
	}

	user := domain.User{
		Email:           strings.ToLower(email),
		Username:        strings.ToLower(username),
		UsernameDisplay: username,
		HashedPassword:  string(hash),
	}

	if err := s.users.Save(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates a user by email or username (an "@" picks email) and
// creates a new session. Failures never reveal whether the user exists.
func (s *authService) Login(ctx context.Context, login, password string) (*domain.User, *domain.Session, error) {
	login = strings.ToLower(strings.TrimSpace(login))

	var user *domain.User
	var err error
	if strings.Contains(login, "@") {
		user, err = s.users.GetByEmail(ctx, login)
	} else {
		user, err = s.users.GetByUsername(ctx, login)
	}
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil, domain.ErrUnauthorized
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, nil, domain.ErrUnauthorized
	}

	session, err := s.sessions.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout invalidates the session. Unknown sessions are a no-op.
func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	return s.sessions.Invalidate(ctx, sessionID)
}

// UserBySession resolves an active, unexpired session to its user.
func (s *authService) UserBySession(ctx context.Context, sessionID uuid.UUID) (*domain.User, error) {
	session, err := s.sessions.GetActiveByID(ctx, sessionID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return s.users.GetByID(ctx, session.UserID)
}
