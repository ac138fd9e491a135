package photo

import (
	"time"

	"github.com/google/uuid"
)

// UploadMetadata is the JSON metadata part of a multipart photo upload. All
// fields are optional; coordinates must come in pairs.
type UploadMetadata struct {
	CapturedAt     *time.Time `json:"capturedAt"`
	Latitude       *float64   `json:"latitude"`
	Longitude      *float64   `json:"longitude"`
	Altitude       *float64   `json:"altitude"`
	PeakID         *uuid.UUID `json:"peakId"`
	DistanceToPeak *float64   `json:"distanceToPeak"`
}
