package weather

import (
	"github.com/gin-gonic/gin"
)

// WeatherModule implements the app.Module interface for photo weather records.
type WeatherModule struct {
	handler *WeatherHandler
}

// NewModule creates a new WeatherModule. Panics if h is nil.
func NewModule(h *WeatherHandler) *WeatherModule {
	if h == nil {
		panic("weather.NewModule: handler must not be nil")
	}
	return &WeatherModule{handler: h}
}

// RegisterRoutes registers the weather API routes under the photo resource.
func (m *WeatherModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/photos/:id/weather", m.handler.ByPhoto)
}
