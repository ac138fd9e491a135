package photo

import (
	"github.com/gin-gonic/gin"

	"github.com/Dawstr8/peek-a-peak/internal/module/auth"
)

// PhotoModule implements the app.Module interface for summit photos.
type PhotoModule struct {
	handler *PhotoHandler
	authSvc auth.Service
}

// NewModule creates a new PhotoModule. Panics if h or authSvc is nil.
func NewModule(h *PhotoHandler, authSvc auth.Service) *PhotoModule {
	if h == nil {
		panic("photo.NewModule: handler must not be nil")
	}
	if authSvc == nil {
		panic("photo.NewModule: auth service must not be nil")
	}
	return &PhotoModule{handler: h, authSvc: authSvc}
}

// RegisterRoutes registers photo API routes.
func (m *PhotoModule) RegisterRoutes(api *gin.RouterGroup) {
	photos := api.Group("/photos")

	photos.POST("", auth.RequireUser(m.authSvc), m.handler.Upload)
	photos.GET("/:id", auth.OptionalUser(m.authSvc), m.handler.Get)
	photos.DELETE("/:id", auth.RequireUser(m.authSvc), m.handler.Delete)
}
