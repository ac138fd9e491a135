package auth

import "github.com/gin-gonic/gin"

// AuthModule implements the app.Module interface for the auth domain.
type AuthModule struct {
	handler *AuthHandler
	svc     Service
}

// NewModule creates a new AuthModule. Panics if h or svc is nil.
func NewModule(h *AuthHandler, svc Service) *AuthModule {
	if h == nil {
		panic("auth.NewModule: handler must not be nil")
	}
	if svc == nil {
		panic("auth.NewModule: service must not be nil")
	}
	return &AuthModule{handler: h, svc: svc}
}

// RegisterRoutes registers auth API routes.
func (m *AuthModule) RegisterRoutes(api *gin.RouterGroup) {
	grp := api.Group("/auth")
	grp.POST("/register", m.handler.Register)
	grp.POST("/login", m.handler.Login)
	grp.POST("/logout", m.handler.Logout)
	grp.GET("/me", RequireUser(m.svc), m.handler.Me)
}
