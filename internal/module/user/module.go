package user

import (
	"github.com/gin-gonic/gin"

	"github.com/Dawstr8/peek-a-peak/internal/module/auth"
)

// UserModule implements the app.Module interface for the user domain.
type UserModule struct {
	handler *UserHandler
	authSvc auth.Service
}

// NewModule creates a new UserModule. Panics if h or authSvc is nil.
func NewModule(h *UserHandler, authSvc auth.Service) *UserModule {
	if h == nil {
		panic("user.NewModule: handler must not be nil")
	}
	if authSvc == nil {
		panic("user.NewModule: auth service must not be nil")
	}
	return &UserModule{handler: h, authSvc: authSvc}
}

// RegisterRoutes registers user API routes. The username-scoped reads take an
// optional session: anonymous callers can see public profiles.
func (m *UserModule) RegisterRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")

	users.GET("/me", auth.RequireUser(m.authSvc), m.handler.Me)
	users.PATCH("/me", auth.RequireUser(m.authSvc), m.handler.UpdatePrivacy)

	public := users.Group("", auth.OptionalUser(m.authSvc))
	public.GET("/:username/photos", m.handler.Photos)
	public.GET("/:username/photos/locations", m.handler.PhotoLocations)
	public.GET("/:username/photos/dates", m.handler.PhotoDates)
	public.GET("/:username/peaks/count", m.handler.SummitedPeaksCount)
}
