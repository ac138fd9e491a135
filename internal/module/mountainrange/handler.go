package mountainrange

import (
	"github.com/gin-gonic/gin"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
	"github.com/Dawstr8/peek-a-peak/internal/pkg"
)

// RangeHandler handles REST API requests for mountain ranges.
type RangeHandler struct {
	repo domain.MountainRangeRepository
}

// NewRangeHandler creates a new RangeHandler with the given repository. The
// resource is read-only and has no business rules, so no service sits between.
func NewRangeHandler(repo domain.MountainRangeRepository) *RangeHandler {
	return &RangeHandler{repo: repo}
}

// List handles GET /api/v1/mountain-ranges.
func (h *RangeHandler) List(c *gin.Context) {
	ranges, err := h.repo.GetAll(c.Request.Context(), pkg.ParseSortSpec(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, ranges)
}
