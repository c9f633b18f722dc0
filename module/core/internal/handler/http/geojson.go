package http

import (
	"strconv"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
)

// rosterFeatureCollection renders officers with a fix as points and their
// active zones as centre points carrying the radius.
func rosterFeatureCollection(entries []domain.RosterEntry) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	for _, e := range entries {
		id := strconv.FormatInt(e.Officer.ID, 10)

		if p := e.Officer.Position; p != nil {
			fc.Features = append(fc.Features, &geojson.Feature{
				ID:       "officer-" + id,
				Geometry: point(*p),
				Properties: map[string]interface{}{
					"kind":            "officer",
					"officer_id":      e.Officer.ID,
					"username":        e.Officer.Username,
					"status_color":    string(e.Color),
					"leave_requested": e.Officer.LeaveRequested,
				},
			})
		}

		if e.Zone != nil && e.Zone.Active {
			fc.Features = append(fc.Features, &geojson.Feature{
				ID:       "zone-" + id,
				Geometry: point(e.Zone.Target),
				Properties: map[string]interface{}{
					"kind":          "zone",
					"officer_id":    e.Officer.ID,
					"radius_meters": e.Zone.RadiusMeters,
				},
			})
		}
	}
	return fc
}

func point(c domain.Coordinate) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{c.Lon, c.Lat}).SetSRID(4326)
}
