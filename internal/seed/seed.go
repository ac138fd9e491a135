package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
)

// peakEntry is one row of the bundled peak list.
type peakEntry struct {
	Name      string
	Elevation int
	Range     string
	Lat       float64
	Lng       float64
}

// peaks is the bundled list of Polish mountain range high points.
var peaks = []peakEntry{
	{"Rysy", 2499, "Tatry", 49.1795, 20.0881},
	{"Babia Góra", 1725, "Beskid Żywiecki", 49.5731, 19.5293},
	{"Śnieżka", 1603, "Karkonosze", 50.7361, 15.7399},
	{"Śnieżnik", 1425, "Masyw Śnieżnika", 50.2070, 16.8476},
	{"Tarnica", 1346, "Bieszczady", 49.0746, 22.7267},
	{"Turbacz", 1310, "Gorce", 49.5428, 20.1117},
	{"Radziejowa", 1262, "Beskid Sądecki", 49.4514, 20.6034},
	{"Skrzyczne", 1257, "Beskid Śląski", 49.6847, 19.0303},
	{"Mogielica", 1170, "Beskid Wyspowy", 49.6558, 20.2747},
	{"Wysoka Kopa", 1126, "Góry Izerskie", 50.8486, 15.4000},
	{"Wysoka", 1050, "Pieniny", 49.3911, 20.5522},
	{"Wielka Sowa", 1015, "Góry Sowie", 50.6800, 16.4850},
	{"Czupel", 933, "Beskid Mały", 49.7686, 19.0890},
	{"Szczeliniec Wielki", 919, "Góry Stołowe", 50.4850, 16.3390},
}

// Seeder loads the bundled peak list into the store.
type Seeder struct {
	ranges domain.MountainRangeRepository
	peaks  domain.PeakRepository
}

// New creates a Seeder over the given repositories.
func New(ranges domain.MountainRangeRepository, peaks domain.PeakRepository) *Seeder {
	return &Seeder{ranges: ranges, peaks: peaks}
}

// Run upserts mountain ranges by name and peaks by their natural key
// (name, elevation, range). Matching peaks get their coordinates refreshed;
// existing rows keep their identifiers. Run is idempotent.
func (s *Seeder) Run(ctx context.Context) error {
	created, updated := 0, 0

	for _, entry := range peaks {
		rng, err := s.ensureRange(ctx, entry.Range)
		if err != nil {
			return fmt.Errorf("seed range %q: %w", entry.Range, err)
		}

		lat, lng := entry.Lat, entry.Lng
		existing, err := s.peaks.GetByNaturalKey(ctx, entry.Name, entry.Elevation, rng.ID)
		switch {
		case err == nil:
			if existing.Latitude != nil && *existing.Latitude == lat &&
				existing.Longitude != nil && *existing.Longitude == lng {
				continue
			}
			existing.Latitude = &lat
			existing.Longitude = &lng
			if err := s.peaks.Save(ctx, existing); err != nil {
				return fmt.Errorf("seed peak %q: %w", entry.Name, err)
			}
			updated++
		case domain.IsNotFound(err):
			peak := &domain.Peak{
				Name:            entry.Name,
				Elevation:       entry.Elevation,
				Latitude:        &lat,
				Longitude:       &lng,
				MountainRangeID: rng.ID,
			}
			if err := s.peaks.Save(ctx, peak); err != nil {
				return fmt.Errorf("seed peak %q: %w", entry.Name, err)
			}
			created++
		default:
			return fmt.Errorf("seed peak %q: %w", entry.Name, err)
		}
	}

	slog.Info("peak seeding completed",
		slog.Int("created", created),
		slog.Int("updated", updated),
		slog.Int("total", len(peaks)))
	return nil
}

func (s *Seeder) ensureRange(ctx context.Context, name string) (*domain.MountainRange, error) {
	rng, err := s.ranges.GetByName(ctx, name)
	if err == nil {
		return rng, nil
	}
	if !domain.IsNotFound(err) {
		return nil, err
	}

	rng = &domain.MountainRange{Name: name}
	if err := s.ranges.Save(ctx, rng); err != nil {
		return nil, err
	}
	return rng, nil
}
