package domain

import "github.com/bookswapapp/bookswap-server/internal/errors"

// Location is the agreed (or proposed) meeting point for a swap handover.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewLocation validates coordinates, reporting every out-of-range axis.
func NewLocation(lat, lon float64) (Location, *errors.Error) {
	var v errors.Violations
	v.Check(lat >= -90 && lat <= 90, "Latitude must be between -90 and 90")
	v.Check(lon >= -180 && lon <= 180, "Longitude must be between -180 and 180")
	if err := v.Err(); err != nil {
		return Location{}, err
	}
	return Location{Latitude: lat, Longitude: lon}, nil
}
