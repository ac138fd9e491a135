package weather

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
	"github.com/Dawstr8/peek-a-peak/internal/pkg"
)

// WeatherHandler handles REST API requests for photo weather records.
type WeatherHandler struct {
	svc domain.WeatherService
}

// NewWeatherHandler creates a new WeatherHandler with the given service.
func NewWeatherHandler(svc domain.WeatherService) *WeatherHandler {
	return &WeatherHandler{svc: svc}
}

// ByPhoto handles GET /api/v1/photos/:id/weather.
func (h *WeatherHandler) ByPhoto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "invalid photo id", err))
		return
	}

	rec, err := h.svc.GetByPhotoID(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, rec)
}
