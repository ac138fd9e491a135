package domain

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// SummitPhoto is an uploaded summit photo with its capture metadata.
type SummitPhoto struct {
	BaseModel
	FileName       string     `gorm:"size:255;not null" json:"fileName"`
	UploadedAt     time.Time  `gorm:"not null" json:"uploadedAt"`
	CapturedAt     *time.Time `json:"capturedAt"`
	Latitude       *float64   `json:"latitude"`
	Longitude      *float64   `json:"longitude"`
	Altitude       *float64   `json:"altitude"`
	DistanceToPeak *float64   `json:"distanceToPeak"`
	OwnerID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"ownerId"`
	PeakID         *uuid.UUID `gorm:"type:uuid" json:"peakId"`
	Peak           *Peak      `gorm:"foreignKey:PeakID" json:"peak,omitempty"`
}

// SummitPhotoLocation is a lightweight projection of a photo's position.
type SummitPhotoLocation struct {
	ID       uuid.UUID `json:"id"`
	Latitude *float64  `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Altitude *float64  `json:"altitude"`
}

// SummitPhotoDate is a lightweight projection of a photo's capture date.
type SummitPhotoDate struct {
	ID         uuid.UUID  `json:"id"`
	CapturedAt *time.Time `json:"capturedAt"`
}

// PhotoUpload carries the file part of a photo upload.
type PhotoUpload struct {
	OriginalName string
	Content      io.Reader
	Size         int64
	ContentType  string
}

// PhotoRepository defines the data access interface for summit photos.
type PhotoRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SummitPhoto, error)
	GetAll(ctx context.Context, sort SortSpec) ([]SummitPhoto, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID, sort SortSpec, page PageRequest) (*PageResult[SummitPhoto], error)
	GetLocationsByOwner(ctx context.Context, ownerID uuid.UUID) ([]SummitPhotoLocation, error)
	GetDatesByOwner(ctx context.Context, ownerID uuid.UUID) ([]SummitPhotoDate, error)
	Save(ctx context.Context, photo *SummitPhoto) error
	Delete(ctx context.Context, photo *SummitPhoto) error
	Count(ctx context.Context) (int64, error)
}

// PhotoService defines the business logic interface for summit photos.
type PhotoService interface {
	// Upload stores the file, persists the photo row and, when the photo has
	// a capture time and position, records the weather for it. A weather
	// failure never fails the upload.
	Upload(ctx context.Context, photo *SummitPhoto, upload PhotoUpload) error
	// GetByID returns the photo, applying the owner's profile privacy against
	// the viewer.
	GetByID(ctx context.Context, viewer *User, id uuid.UUID) (*SummitPhoto, error)
	// Delete removes the photo's file and row. Only the owner may delete.
	Delete(ctx context.Context, owner *User, id uuid.UUID) error
}
