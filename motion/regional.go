package motion

import (
	"sync"
	"time"

	"towerwitch/geo"
)

// Regional defaults for the wide-area amateur/SKYWARN dataset. One fetch at
// the wide radius covers a smaller region around the fetch center, so normal
// driving only re-sorts the cached rows instead of hitting the API again.
const (
	RegionalFetchRadiusMiles = 200.0
	RegionalRegionMiles      = 150.0
	RegionalMaxAge           = 24 * time.Hour
	RegionalResortMiles      = 1.0
)

// Regional tracks the wide-area cache region: where the last regional fetch
// was centered, how old it is, and where the rows were last distance-sorted.
type Regional struct {
	mu       sync.Mutex
	center   geo.Position
	at       time.Time
	hasData  bool
	lastSort geo.Position
}

// NeedsRefetch reports whether the position has left the cached region or the
// regional data has aged out.
func (r *Regional) NeedsRefetch(p geo.Position, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasData {
		return true
	}
	if now.Sub(r.at) > RegionalMaxAge {
		return true
	}
	return geo.DistanceMiles(p.Lat, p.Lon, r.center.Lat, r.center.Lon) > RegionalRegionMiles
}

// Center returns the position the regional dataset was fetched at, and
// whether such a dataset is held at all.
func (r *Regional) Center() (geo.Position, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.center, r.hasData
}

// SetCenter records a successful regional fetch centered at p.
func (r *Regional) SetCenter(p geo.Position, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.center = p
	r.at = now
	r.hasData = true
	r.lastSort = p
}

// NeedsResort reports whether the position has drifted far enough from the
// last sort point that cached rows should be re-ranked by distance. It
// advances the sort point when it returns true.
func (r *Regional) NeedsResort(p geo.Position) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasData {
		return false
	}
	if geo.DistanceMiles(p.Lat, p.Lon, r.lastSort.Lat, r.lastSort.Lon) <= RegionalResortMiles {
		return false
	}
	r.lastSort = p
	return true
}

// Clear forgets the cached region, forcing the next check to refetch.
func (r *Regional) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hasData = false
}
