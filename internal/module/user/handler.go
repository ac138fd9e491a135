package user

import (
	"github.com/gin-gonic/gin"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
	"github.com/Dawstr8/peek-a-peak/internal/module/auth"
	"github.com/Dawstr8/peek-a-peak/internal/pkg"
)

// UserHandler handles REST API requests for the user resource.
type UserHandler struct {
	svc domain.UserService
}

// NewUserHandler creates a new UserHandler with the given service.
func NewUserHandler(svc domain.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Me handles GET /api/v1/users/me.
func (h *UserHandler) Me(c *gin.Context) {
	current, ok := auth.CurrentUser(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}
	pkg.Success(c, current)
}

// UpdatePrivacy handles PATCH /api/v1/users/me.
func (h *UserHandler) UpdatePrivacy(c *gin.Context) {
	current, ok := auth.CurrentUser(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	var req UpdatePrivacyRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.SetPrivacy(c.Request.Context(), current.ID, *req.IsPrivate)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, user)
}

// Photos handles GET /api/v1/users/:username/photos.
func (h *UserHandler) Photos(c *gin.Context) {
	viewer, _ := auth.CurrentUser(c)

	result, err := h.svc.GetPhotosByUsername(
		c.Request.Context(),
		viewer,
		c.Param("username"),
		pkg.ParseSortSpec(c),
		pkg.ParsePageRequest(c),
	)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, result)
}

// PhotoLocations handles GET /api/v1/users/:username/photos/locations.
func (h *UserHandler) PhotoLocations(c *gin.Context) {
	viewer, _ := auth.CurrentUser(c)

	locations, err := h.svc.GetPhotoLocationsByUsername(c.Request.Context(), viewer, c.Param("username"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, locations)
}

// PhotoDates handles GET /api/v1/users/:username/photos/dates.
func (h *UserHandler) PhotoDates(c *gin.Context) {
	viewer, _ := auth.CurrentUser(c)

	dates, err := h.svc.GetPhotoDatesByUsername(c.Request.Context(), viewer, c.Param("username"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, dates)
}

// SummitedPeaksCount handles GET /api/v1/users/:username/peaks/count.
func (h *UserHandler) SummitedPeaksCount(c *gin.Context) {
	viewer, _ := auth.CurrentUser(c)

	count, err := h.svc.CountSummitedPeaksByUsername(c.Request.Context(), viewer, c.Param("username"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, count)
}
