package models

import "math"

type Restaurant struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Address     string   `json:"address"`
	Phone       string   `json:"phone,omitempty"`
	CuisineType string   `json:"cuisine_type,omitempty"`
	IsOpen      bool     `json:"is_open"`
	AvgPrepTime int      `json:"avg_prep_time"`
	Rating      float64  `json:"rating"`
	TrustBadge  bool     `json:"trust_badge"`
	Latitude    float64  `json:"latitude,omitempty"`
	Longitude   float64  `json:"longitude,omitempty"`
	DistanceKM  *float64 `json:"distance_km,omitempty"`
}

// RestaurantFilter описывает параметры поиска точек питания.
// Lat и Lon, если заданы, используются только для оценки расстояния по прямой.
type RestaurantFilter struct {
	Query     string
	Cuisine   string
	MinRating float64
	Lat       *float64
	Lon       *float64
}

// OpenState представляет запрос владельца на открытие или закрытие точки.
type OpenState struct {
	Open bool `json:"open"`
}

const earthRadiusKM = 6371.0

// HaversineKM возвращает расстояние по прямой между двумя точками в километрах.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
