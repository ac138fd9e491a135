package pkg

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Geodesic distance is delegated to the store. On postgres the expressions
// build PostGIS geography points from the latitude/longitude columns, so
// distance and radius checks run on the WGS84 spheroid and can use a
// functional geography index. On sqlite (dev and tests) a spherical haversine
// formula is evaluated by the store's math functions instead.
//
// All expressions assume the table has nullable latitude/longitude columns;
// callers must exclude null-location rows (HasLocation) before applying them.

const (
	earthRadiusMeters = "6371000.0"

	// min() guards acos against arguments a hair above 1.0 from float rounding.
	haversineSQL = earthRadiusMeters + " * acos(min(1.0, " +
		"cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?)) + " +
		"sin(radians(?)) * sin(radians(latitude))))"

	geographyPointSQL = "ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography"
	queryPointSQL     = "ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography"
)

// DistanceMeters returns a SQL expression computing the geodesic distance in
// meters between the row's point and the query point (lat, lng).
func DistanceMeters(db *gorm.DB, lat, lng float64) clause.Expr {
	if db.Dialector.Name() == "postgres" {
		return gorm.Expr("ST_Distance("+geographyPointSQL+", "+queryPointSQL+")", lng, lat)
	}
	return gorm.Expr(haversineSQL, lat, lng, lat)
}

// WithinDistance returns a SQL predicate that is true when the row's point
// lies within meters of the query point. The radius filter runs in the store
// so it can use any available spatial index.
func WithinDistance(db *gorm.DB, lat, lng, meters float64) clause.Expr {
	if db.Dialector.Name() == "postgres" {
		return gorm.Expr("ST_DWithin("+geographyPointSQL+", "+queryPointSQL+", ?)", lng, lat, meters)
	}
	return gorm.Expr(haversineSQL+" <= ?", lat, lng, lat, meters)
}
