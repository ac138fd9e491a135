package peak

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
	"github.com/Dawstr8/peek-a-peak/internal/module/auth"
	"github.com/Dawstr8/peek-a-peak/internal/pkg"
)

const defaultSearchLimit = 50

// PeakHandler handles REST API requests for the peak resource.
type PeakHandler struct {
	svc domain.PeakService
}

// NewPeakHandler creates a new PeakHandler with the given service.
func NewPeakHandler(svc domain.PeakService) *PeakHandler {
	return &PeakHandler{svc: svc}
}

// List handles GET /api/v1/peaks.
func (h *PeakHandler) List(c *gin.Context) {
	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	peaks, err := h.svc.Search(c.Request.Context(), pkg.ParseSortSpec(c), c.Query("nameFilter"), limit)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, peaks)
}

// Count handles GET /api/v1/peaks/count.
func (h *PeakHandler) Count(c *gin.Context) {
	count, err := h.svc.Count(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, count)
}

// MySummitedCount handles GET /api/v1/peaks/me/count.
func (h *PeakHandler) MySummitedCount(c *gin.Context) {
	current, ok := auth.CurrentUser(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	count, err := h.svc.CountSummitedBy(c.Request.Context(), current.ID)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, count)
}

// FindNearby handles GET /api/v1/peaks/find.
func (h *PeakHandler) FindNearby(c *gin.Context) {
	var query FindPeaksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		pkg.ValidationError(c, err)
		return
	}

	peaks, err := h.svc.FindNearby(
		c.Request.Context(),
		*query.Lat,
		*query.Lng,
		query.MaxDistance,
		query.NameFilter,
		query.Limit,
	)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, peaks)
}

// Get handles GET /api/v1/peaks/:id.
func (h *PeakHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "invalid peak id", err))
		return
	}

	peak, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, peak)
}
