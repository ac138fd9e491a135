package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
	"github.com/Dawstr8/peek-a-peak/internal/pkg"
)

const (
	// SessionCookie is the name of the HttpOnly cookie carrying the session id.
	SessionCookie = "session_id"

	contextUserKey = "current_user"
)

// RequireUser returns a gin middleware that resolves the session cookie to a
// user and aborts with 401 when there is no valid session.
func RequireUser(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := userFromCookie(c, svc)
		if err != nil {
			pkg.Error(c, domain.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// OptionalUser returns a gin middleware that resolves the session cookie when
// present and valid, and continues anonymously otherwise. Handlers behind it
// decide per-resource what anonymous callers may see.
func OptionalUser(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := userFromCookie(c, svc); err == nil {
			c.Set(contextUserKey, user)
		}
		c.Next()
	}
}

// CurrentUser extracts the authenticated user from the gin context.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

func userFromCookie(c *gin.Context, svc Service) (*domain.User, error) {
	raw, err := c.Cookie(SessionCookie)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	sessionID, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return svc.UserBySession(c.Request.Context(), sessionID)
}
