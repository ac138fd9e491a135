package mountainrange

import (
	"github.com/gin-gonic/gin"
)

// RangeModule implements the app.Module interface for mountain ranges.
type RangeModule struct {
	handler *RangeHandler
}

// NewModule creates a new RangeModule. Panics if h is nil.
func NewModule(h *RangeHandler) *RangeModule {
	if h == nil {
		panic("mountainrange.NewModule: handler must not be nil")
	}
	return &RangeModule{handler: h}
}

// RegisterRoutes registers mountain range API routes.
func (m *RangeModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/mountain-ranges", m.handler.List)
}
