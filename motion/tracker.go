// Package motion decides when remote data is worth re-fetching. It watches
// GPS fixes, classifies the current motion regime from reported speed, and
// answers shouldRefetch questions per dataset with movement- and time-based
// rules. Fetch bookkeeping only advances on successful fetches, so a failed
// fetch never suppresses the retry.
package motion

import (
	"sync"
	"time"

	"towerwitch/geo"
)

// Regime is the current motion classification. It is recomputed from speed
// on every fix; there is no transition table to get stuck in.
type Regime int

const (
	Stationary Regime = iota
	Walking
	Vehicle
)

// Speed thresholds in m/s. Below the stationary threshold GPS jitter
// dominates; above the walking threshold the fix is moving at vehicle speed.
const (
	StationarySpeedMPS = 0.5
	WalkingSpeedMPS    = 1.5
)

func (r Regime) String() string {
	switch r {
	case Walking:
		return "walking"
	case Vehicle:
		return "vehicle"
	default:
		return "stationary"
	}
}

// ClassifyRegime maps a reported speed to a motion regime.
func ClassifyRegime(speedMPS float64) Regime {
	switch {
	case speedMPS >= WalkingSpeedMPS:
		return Vehicle
	case speedMPS >= StationarySpeedMPS:
		return Walking
	default:
		return Stationary
	}
}

// Thresholds tunes the refetch rules for one dataset class. The fine-grained
// site datasets use a much smaller movement threshold than the regional
// amateur data.
type Thresholds struct {
	MovementMiles      float64       // rule 2: moved this far since last fetch
	StationaryInterval time.Duration // rule 3: stationary refresh cadence
	MovingInterval     time.Duration // rule 4: moving refresh cadence
	FastInterval       time.Duration // rule 5: burst-movement override window
	FastMovementMiles  float64       // rule 5: minimum movement for the override
}

// RegionalThresholds matches the coarse amateur/SKYWARN cache cadence.
func RegionalThresholds() Thresholds {
	return Thresholds{
		MovementMiles:      0.5,
		StationaryInterval: 300 * time.Second,
		MovingInterval:     60 * time.Second,
		FastInterval:       15 * time.Second,
		FastMovementMiles:  0.1,
	}
}

// SiteThresholds matches the "are we literally at a new spot" tower check:
// about 50 feet of movement triggers a refresh.
func SiteThresholds() Thresholds {
	th := RegionalThresholds()
	th.MovementMiles = 0.01
	return th
}

// jitterWindowMiles is the short-horizon movement floor: total travel across
// the last three fixes must exceed this before the tracker calls it motion.
const jitterWindowMiles = 0.05

const historySize = 10

type fetchMark struct {
	pos geo.Position
	at  time.Time
}

// Tracker owns the movement state: the bounded fix history, the current
// regime, and per-dataset fetch bookkeeping. All methods are safe for
// concurrent use; the GPS pipeline is the only writer but the UI and
// broadcaster read regime and state concurrently.
type Tracker struct {
	mu      sync.RWMutex
	history [historySize]geo.Position
	count   int // total fixes observed; history index = count % historySize
	regime  Regime
	fetches map[string]fetchMark
}

func NewTracker() *Tracker {
	return &Tracker{fetches: make(map[string]fetchMark)}
}

// Observe records a fix into the history ring and reclassifies the regime.
func (t *Tracker) Observe(p geo.Position) Regime {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.history[t.count%historySize] = p
	t.count++
	t.regime = ClassifyRegime(p.SpeedMPS)
	return t.regime
}

// Regime returns the classification from the most recent fix.
func (t *Tracker) Regime() Regime {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.regime
}

// LastFix returns the most recently observed position.
func (t *Tracker) LastFix() (geo.Position, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.count == 0 {
		return geo.Position{}, false
	}
	return t.history[(t.count-1)%historySize], true
}

// DetectMovement sums pairwise distances across the last three fixes and
// reports motion when the total exceeds the jitter floor. This smooths over
// single-fix GPS noise that would otherwise flip the regime every update.
func (t *Tracker) DetectMovement() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.detectMovementLocked()
}

func (t *Tracker) detectMovementLocked() bool {
	if t.count < 3 {
		return false
	}
	total := 0.0
	for i := t.count - 2; i < t.count; i++ {
		prev := t.history[(i-1)%historySize]
		cur := t.history[i%historySize]
		total += geo.DistanceMiles(prev.Lat, prev.Lon, cur.Lat, cur.Lon)
	}
	return total > jitterWindowMiles
}

// ShouldRefetch decides whether a dataset is due for a live fetch, evaluated
// in strict precedence order:
//
//  1. never fetched → true
//  2. moved farther than the movement threshold → true
//  3. not moving and past the stationary interval → true
//  4. moving and past the moving interval → true
//  5. past the fast interval and moved more than the burst floor → true
//  6. otherwise → false
func (t *Tracker) ShouldRefetch(dataType string, p geo.Position, th Thresholds, now time.Time) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	mark, ok := t.fetches[dataType]
	if !ok {
		return true
	}

	moved := geo.DistanceMiles(p.Lat, p.Lon, mark.pos.Lat, mark.pos.Lon)
	elapsed := now.Sub(mark.at)

	if moved > th.MovementMiles {
		return true
	}
	moving := t.detectMovementLocked()
	if !moving && elapsed > th.StationaryInterval {
		return true
	}
	if moving && elapsed > th.MovingInterval {
		return true
	}
	if elapsed > th.FastInterval && moved > th.FastMovementMiles {
		return true
	}
	return false
}

// RecordFetch resets the refetch clock for a dataset. Call it only after a
// successful fetch: recording failures would starve the fallback retries.
func (t *Tracker) RecordFetch(dataType string, p geo.Position, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fetches[dataType] = fetchMark{pos: p, at: now}
}

// LastFetch reports the bookkeeping for a dataset, if any fetch succeeded.
func (t *Tracker) LastFetch(dataType string) (geo.Position, time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	mark, ok := t.fetches[dataType]
	return mark.pos, mark.at, ok
}

// Reset drops all fetch bookkeeping, forcing cold-start behavior for every
// dataset. Used after an explicit cache flush.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fetches = make(map[string]fetchMark)
}
