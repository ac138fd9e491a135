package peak

import (
	"github.com/gin-gonic/gin"

	"github.com/Dawstr8/peek-a-peak/internal/module/auth"
)

// PeakModule implements the app.Module interface for the peak domain.
type PeakModule struct {
	handler *PeakHandler
	authSvc auth.Service
}

// NewModule creates a new PeakModule. Panics if h or authSvc is nil.
func NewModule(h *PeakHandler, authSvc auth.Service) *PeakModule {
	if h == nil {
		panic("peak.NewModule: handler must not be nil")
	}
	if authSvc == nil {
		panic("peak.NewModule: auth service must not be nil")
	}
	return &PeakModule{handler: h, authSvc: authSvc}
}

// RegisterRoutes registers peak API routes. Static segments are registered
// before the :id wildcard so gin routes them correctly.
func (m *PeakModule) RegisterRoutes(api *gin.RouterGroup) {
	peaks := api.Group("/peaks")

	peaks.GET("", m.handler.List)
	peaks.GET("/count", m.handler.Count)
	peaks.GET("/me/count", auth.RequireUser(m.authSvc), m.handler.MySummitedCount)
	peaks.GET("/find", m.handler.FindNearby)
	peaks.GET("/:id", m.handler.Get)
}
