// Package geo provides the geodesy primitives shared by every component:
// great-circle distance, initial bearing, coordinate formatting, and amateur
// band classification. All distance and bearing math in the program goes
// through these functions so sort order is consistent across categories.
package geo

import "math"

// EarthRadiusMiles is the single authoritative Earth radius. Every distance
// in the program derives from this constant.
const EarthRadiusMiles = 3958.8

// Unit conversion factors for display.
const (
	MetersToFeet = 3.28084
	MPSToMPH     = 2.23694
	MPSToKnots   = 1.94384
)

// DistanceMiles returns the great-circle distance between two points using
// the haversine formula.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMiles * c
}

// BearingDegrees returns the initial bearing from point 1 to point 2,
// normalized to [0, 360) with 0 = north, clockwise.
func BearingDegrees(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	x := math.Sin(dlon) * math.Cos(rlat2)
	y := math.Cos(rlat1)*math.Sin(rlat2) - math.Sin(rlat1)*math.Cos(rlat2)*math.Cos(dlon)
	deg := math.Atan2(x, y) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

var compassRose = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Cardinal maps a heading in degrees to a 16-point compass rose label.
func Cardinal(headingDegrees float64) string {
	idx := int(math.Mod(headingDegrees+11.25, 360)/22.5) % 16
	if idx < 0 {
		idx += 16
	}
	return compassRose[idx]
}
