package peak

import (
	"context"
	"testing"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
)

func TestPeakService_FindNearby_ValidatesCoordinates(t *testing.T) {
	db := openTestDB(t)
	svc := NewPeakService(NewPeakRepository(db))
	ctx := context.Background()

	tests := []struct {
		name string
		lat  float64
		lng  float64
	}{
		{name: "lat too low", lat: -90.5, lng: 0},
		{name: "lat too high", lat: 91, lng: 0},
		{name: "lng too low", lat: 0, lng: -181},
		{name: "lng too high", lat: 0, lng: 180.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.FindNearby(ctx, tt.lat, tt.lng, nil, "", 5)
			if !domain.IsValidation(err) {
				t.Fatalf("FindNearby(%v, %v) error = %v, want validation error", tt.lat, tt.lng, err)
			}
		})
	}
}

func TestPeakService_FindNearby_RejectsNegativeRadius(t *testing.T) {
	db := openTestDB(t)
	svc := NewPeakService(NewPeakRepository(db))

	radius := -1.0
	_, err := svc.FindNearby(context.Background(), 49.0, 20.0, &radius, "", 5)
	if !domain.IsValidation(err) {
		t.Fatalf("FindNearby(negative radius) error = %v, want validation error", err)
	}
}

func TestPeakService_FindNearby_DefaultsLimit(t *testing.T) {
	db := openTestDB(t)
	repo := NewPeakRepository(db)
	svc := NewPeakService(repo)
	ctx := context.Background()

	tatry := mustCreateRange(t, db, "Tatry")
	for i, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		lat := rysy.lat + float64(i)*0.01
		lng := rysy.lng
		p := &domain.Peak{
			Name:            name,
			Elevation:       1000 + i,
			Latitude:        &lat,
			Longitude:       &lng,
			MountainRangeID: tatry.ID,
		}
		if err := repo.Save(ctx, p); err != nil {
			t.Fatalf("save peak %q: %v", name, err)
		}
	}

	got, err := svc.FindNearby(ctx, rysy.lat, rysy.lng, nil, "", 0)
	if err != nil {
		t.Fatalf("FindNearby() error = %v", err)
	}
	if len(got) != defaultNearbyLimit {
		t.Fatalf("FindNearby(limit 0) returned %d peaks, want default %d", len(got), defaultNearbyLimit)
	}
}

func TestPeakService_CornerCoordinatesAreValid(t *testing.T) {
	db := openTestDB(t)
	svc := NewPeakService(NewPeakRepository(db))
	ctx := context.Background()

	for _, pt := range []geoPoint{{90, 180}, {-90, -180}, {0, 0}} {
		if _, err := svc.FindNearby(ctx, pt.lat, pt.lng, nil, "", 5); err != nil {
			t.Fatalf("FindNearby(%v, %v) error = %v, want nil at boundary", pt.lat, pt.lng, err)
		}
	}
}
