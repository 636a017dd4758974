package domain

type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat" db:"min_lat"`
	MinLon float64 `json:"min_lon" db:"min_lon"`
	MaxLat float64 `json:"max_lat" db:"max_lat"`
	MaxLon float64 `json:"max_lon" db:"max_lon"`
}

// WorldBoundingBox - прямоугольник на весь земной шар
func WorldBoundingBox() BoundingBox {
	return BoundingBox{MinLat: -90, MinLon: -180, MaxLat: 90, MaxLon: 180}
}

// Contains проверяет, лежит ли точка внутри прямоугольника (границы включительно)
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}
