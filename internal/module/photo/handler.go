package photo

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
	"github.com/Dawstr8/peek-a-peak/internal/module/auth"
	"github.com/Dawstr8/peek-a-peak/internal/pkg"
)

// PhotoHandler handles REST API requests for summit photos.
type PhotoHandler struct {
	svc domain.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler with the given service.
func NewPhotoHandler(svc domain.PhotoService) *PhotoHandler {
	return &PhotoHandler{svc: svc}
}

// Upload handles POST /api/v1/photos. The request is multipart: a "file" part
// with the image and an optional "metadata" part holding a JSON document.
func (h *PhotoHandler) Upload(c *gin.Context) {
	current, ok := auth.CurrentUser(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "file part is required", err))
		return
	}

	var meta UploadMetadata
	if raw := c.PostForm("metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			pkg.Error(c, domain.NewAppError(domain.CodeValidation, "invalid metadata", err))
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeInternal, "failed to read upload", err))
		return
	}
	defer file.Close()

	photo := &domain.SummitPhoto{
		OwnerID:        current.ID,
		CapturedAt:     meta.CapturedAt,
		Latitude:       meta.Latitude,
		Longitude:      meta.Longitude,
		Altitude:       meta.Altitude,
		PeakID:         meta.PeakID,
		DistanceToPeak: meta.DistanceToPeak,
	}
	upload := domain.PhotoUpload{
		OriginalName: fileHeader.Filename,
		Content:      file,
		Size:         fileHeader.Size,
		ContentType:  fileHeader.Header.Get("Content-Type"),
	}

	if err := h.svc.Upload(c.Request.Context(), photo, upload); err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg.Response{
		Code:    http.StatusCreated,
		Message: "photo uploaded successfully",
		Data:    photo,
	})
}

// Get handles GET /api/v1/photos/:id.
func (h *PhotoHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "invalid photo id", err))
		return
	}

	viewer, _ := auth.CurrentUser(c)
	photo, err := h.svc.GetByID(c.Request.Context(), viewer, id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, photo)
}

// Delete handles DELETE /api/v1/photos/:id.
func (h *PhotoHandler) Delete(c *gin.Context) {
	current, ok := auth.CurrentUser(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "invalid photo id", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), current, id); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, nil)
}
