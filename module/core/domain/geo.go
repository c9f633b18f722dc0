package domain

import (
	"fmt"

	"github.com/rotisserie/eris"
)

type Coordinate struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// NewCoordinate returns nil unless both halves of the fix are present.
func NewCoordinate(lat, lon *float64) *Coordinate {
	if lat == nil || lon == nil {
		return nil
	}
	return &Coordinate{Lat: *lat, Lon: *lon}
}

func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return eris.Wrap(ErrInvalidCoordinates, "latitude: must be between -90 and 90")
	}
	if c.Lon < -180 || c.Lon > 180 {
		return eris.Wrap(ErrInvalidCoordinates, "longitude: must be between -180 and 180")
	}
	return nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lon)
}

// Distance is the result of a great-circle measurement. The zero value is
// unknown: at least one endpoint had no fix.
type Distance struct {
	meters float64
	known  bool
}

func UnknownDistance() Distance {
	return Distance{}
}

func Meters(m float64) Distance {
	return Distance{meters: m, known: true}
}

func (d Distance) Known() bool {
	return d.known
}

// Meters reports the measured distance; ok is false when the distance is unknown.
func (d Distance) Meters() (m float64, ok bool) {
	return d.meters, d.known
}

// Within reports whether the distance is known and no greater than limit.
// An unknown distance is never within any limit.
func (d Distance) Within(limit float64) bool {
	return d.known && d.meters <= limit
}

func (d Distance) String() string {
	if !d.known {
		return "unknown"
	}
	return fmt.Sprintf("%.1fm", d.meters)
}
