package geo

import "math"

// Grid6FromLatLon returns the 6-character Maidenhead locator for a lat/lon
// pair, for the grid readout on the location display. It returns false when
// coordinates are out of range or non-finite.
func Grid6FromLatLon(lat, lon float64) (string, bool) {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return "", false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return "", false
	}
	if lat == 90 {
		lat = 89.999999
	}
	if lon == 180 {
		lon = 179.999999
	}
	adjLon := lon + 180
	adjLat := lat + 90
	fieldLon := int(adjLon / 20)
	fieldLat := int(adjLat / 10)
	if fieldLon < 0 || fieldLon >= 18 || fieldLat < 0 || fieldLat >= 18 {
		return "", false
	}
	squareLon := int(math.Mod(adjLon, 20) / 2)
	squareLat := int(math.Mod(adjLat, 10))
	subLon := int(math.Mod(adjLon, 2) * 12)
	subLat := int(math.Mod(adjLat, 1) * 24)
	return string([]byte{
		byte('A' + fieldLon),
		byte('A' + fieldLat),
		byte('0' + squareLon),
		byte('0' + squareLat),
		byte('a' + subLon),
		byte('a' + subLat),
	}), true
}
