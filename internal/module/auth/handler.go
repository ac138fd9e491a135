package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
	"github.com/Dawstr8/peek-a-peak/internal/pkg"
)

// AuthHandler handles REST API requests for authentication.
type AuthHandler struct {
	svc          Service
	cookieSecure bool
}

// NewHandler creates a new AuthHandler with the given service. cookieSecure
// marks the session cookie Secure (release deployments behind TLS).
func NewHandler(svc Service, cookieSecure bool) *AuthHandler {
	return &AuthHandler{svc: svc, cookieSecure: cookieSecure}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg.Response{
		Code:    http.StatusCreated,
		Message: "user registered successfully",
		Data:    user,
	})
}

// Login handles POST /api/v1/auth/login. On success it sets the HttpOnly
// session cookie and returns the authenticated user.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, session, err := h.svc.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	h.setSessionCookie(c, session)
	pkg.Success(c, user)
}

// Logout handles POST /api/v1/auth/logout. It invalidates the session server
// side and expires the cookie; both are idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	if raw, err := c.Cookie(SessionCookie); err == nil {
		if sessionID, parseErr := uuid.Parse(raw); parseErr == nil {
			if err := h.svc.Logout(c.Request.Context(), sessionID); err != nil {
				pkg.Error(c, err)
				return
			}
		}
	}

	h.clearSessionCookie(c)
	pkg.Success(c, nil)
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}
	pkg.Success(c, user)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, session *domain.Session) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, session.ID.String(), maxAge, "/", "", h.cookieSecure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", h.cookieSecure, true)
}
