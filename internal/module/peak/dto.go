package peak

// FindPeaksQuery represents the query parameters of the nearest-peak search.
// Lat and lng are pointers so that a missing coordinate is distinguishable
// from zero, which is a valid coordinate.
type FindPeaksQuery struct {
	Lat         *float64 `form:"lat" binding:"required"`
	Lng         *float64 `form:"lng" binding:"required"`
	MaxDistance *float64 `form:"maxDistance" binding:"omitempty,gte=0"`
	NameFilter  string   `form:"nameFilter"`
	Limit       int      `form:"limit" binding:"omitempty,gte=1"`
}
