package geo

import "time"

// Position is one GPS fix. It is ephemeral: each fix overwrites the last,
// and distance/bearing to sites are always computed against the most recent
// one rather than stored.
type Position struct {
	Lat            float64
	Lon            float64
	AltitudeMeters float64
	SpeedMPS       float64
	TrackDegrees   float64
	Time           time.Time
}

// DistanceMilesTo returns the great-circle distance from p to (lat, lon).
func (p Position) DistanceMilesTo(lat, lon float64) float64 {
	return DistanceMiles(p.Lat, p.Lon, lat, lon)
}

// BearingDegreesTo returns the initial bearing from p to (lat, lon).
func (p Position) BearingDegreesTo(lat, lon float64) float64 {
	return BearingDegrees(p.Lat, p.Lon, lat, lon)
}
