// Package merger combines live API data, the tiered cache, and the static
// seed tables into ranked per-category datasets. Every merge pass produces a
// usable table: when the API and cache both come up empty the static seeds
// carry it, tagged so the display layer can say so.
package merger

import (
	"context"
	"log"
	"sync"
	"time"

	"towerwitch/cache"
	"towerwitch/dataset"
	"towerwitch/geo"
	"towerwitch/motion"
)

// Live fetch results below this size are treated as API failures; a
// near-empty answer usually means a server-side problem, not an empty sky.
const minViableLive = 4

// Fetcher is the live data source. A nil Fetcher means permanently offline
// and every merge settles from cache or seeds.
type Fetcher interface {
	Repeaters(ctx context.Context, lat, lon float64, radiusMiles int) ([]dataset.Repeater, error)
}

// Subscriber receives each merged dataset. Called synchronously from the
// merge pass; keep it fast.
type Subscriber func(dataset.Update)

// Merger owns one merge pipeline per category.
type Merger struct {
	fetcher  Fetcher
	store    *cache.Store
	tracker  *motion.Tracker
	regional *motion.Regional
	now      func() time.Time

	mu   sync.Mutex
	subs []Subscriber
}

func New(fetcher Fetcher, store *cache.Store, tracker *motion.Tracker) *Merger {
	return &Merger{
		fetcher:  fetcher,
		store:    store,
		tracker:  tracker,
		regional: &motion.Regional{},
		now:      time.Now,
	}
}

// Subscribe registers a consumer for merged updates.
func (m *Merger) Subscribe(s Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, s)
}

func (m *Merger) publish(u dataset.Update) {
	m.mu.Lock()
	subs := make([]Subscriber, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()
	for _, s := range subs {
		s(u)
	}
}

// NeedsResort reports whether the position has drifted far enough from the
// last regional sort point that the cached rows should be re-ranked. False
// until the first regional dataset lands.
func (m *Merger) NeedsResort(p geo.Position) bool {
	return m.regional.NeedsResort(p)
}

// Reset drops all freshness bookkeeping, forcing full refetches on the next
// pass. Used after a cache flush.
func (m *Merger) Reset() {
	m.tracker.Reset()
	m.regional.Clear()
}

// fetchLive runs the live fetch and validates the result size. Any error or
// undersized payload returns nil so the caller falls through to the cache.
func (m *Merger) fetchLive(ctx context.Context, p geo.Position, radiusMiles int) []dataset.Repeater {
	if m.fetcher == nil {
		return nil
	}
	rows, err := m.fetcher.Repeaters(ctx, p.Lat, p.Lon, radiusMiles)
	if err != nil {
		log.Printf("merger: live fetch failed: %v", err)
		return nil
	}
	if len(rows) < minViableLive {
		log.Printf("merger: live fetch returned only %d rows, falling back", len(rows))
		return nil
	}
	return rows
}

// settle resolves one category at a position: live when due and viable,
// otherwise fresh cache, otherwise last known good. The returned rows may be
// empty; the per-category merge unions the static seeds on top.
func (m *Merger) settle(ctx context.Context, dt dataset.Category, p geo.Position, th motion.Thresholds, radiusMiles int, regional bool) ([]dataset.Repeater, dataset.Source) {
	now := m.now()
	saveKey := cache.Key(p.Lat, p.Lon, radiusMiles)

	// A regional dataset is cached under its fetch center's key. As long as
	// the position stays inside the covered region, reads go through that key
	// so normal driving keeps serving the wide-area payload.
	loadKey := saveKey
	if regional {
		if c, ok := m.regional.Center(); ok &&
			geo.DistanceMiles(c.Lat, c.Lon, p.Lat, p.Lon) <= motion.RegionalRegionMiles {
			loadKey = cache.Key(c.Lat, c.Lon, radiusMiles)
		}
	}

	due := m.tracker.ShouldRefetch(string(dt), p, th, now)
	if regional {
		due = due && m.regional.NeedsRefetch(p, now)
	}

	if due {
		if rows := m.fetchLive(ctx, p, radiusMiles); rows != nil {
			if err := m.store.Save(dt, saveKey, rows); err != nil {
				log.Printf("merger: cache save %s: %v", dt, err)
			}
			m.tracker.RecordFetch(string(dt), p, now)
			if regional {
				m.regional.SetCenter(p, now)
			}
			return rows, dataset.SourceLive
		}
	}

	if rows := m.store.LoadFresh(dt, loadKey, cache.DefaultMaxAge); rows != nil {
		return rows, dataset.SourceCached
	}
	rows := m.store.LoadLastKnownGood(dt, loadKey)
	if len(rows) > 0 {
		return rows, dataset.SourceCached
	}
	return nil, dataset.SourceStatic
}

// combine unions live-or-cached rows with a static table, live rows first so
// they win the dedupe, and derives the provenance tag.
func combine(rows, static []dataset.Repeater, src dataset.Source, byFrequency bool) ([]dataset.Repeater, dataset.Source) {
	merged := dataset.Dedupe(append(append([]dataset.Repeater{}, rows...), static...), byFrequency)
	switch {
	case len(rows) == 0:
		return merged, dataset.SourceStatic
	case len(merged) > len(dataset.Dedupe(rows, byFrequency)):
		return merged, dataset.SourceHybrid
	default:
		return merged, src
	}
}

// MergeAmateur resolves the wide-area repeater dataset and publishes one
// ranked update per amateur repeater band.
func (m *Merger) MergeAmateur(ctx context.Context, p geo.Position) []dataset.Update {
	rows, src := m.settle(ctx, dataset.CategoryRepeaters, p,
		motion.RegionalThresholds(), int(motion.RegionalFetchRadiusMiles), true)

	updates := make([]dataset.Update, 0, len(geo.RepeaterBands))
	for _, band := range geo.RepeaterBands {
		// seed entries always ride along; live rows win the dedupe and the
		// provenance tag reflects whether any seeds actually contributed
		seed := dataset.FilterByBand(dataset.AmateurSeed, band)
		bandRows, bandSrc := combine(dataset.FilterByBand(rows, band), seed, src, false)
		u := dataset.Update{
			Category: dataset.CategoryRepeaters,
			Band:     band.String(),
			Entries:  dataset.Rank(bandRows, p.Lat, p.Lon),
			Source:   bandSrc,
		}
		m.publish(u)
		updates = append(updates, u)
	}
	return updates
}

// MergeSkywarn resolves the SKYWARN dataset. Live rows are filtered by the
// emergency classifier before merging; the static net list always
// supplements whatever survives.
func (m *Merger) MergeSkywarn(ctx context.Context, p geo.Position) dataset.Update {
	rows, src := m.settle(ctx, dataset.CategorySkywarn, p,
		motion.RegionalThresholds(), int(motion.RegionalFetchRadiusMiles), false)

	rows = FilterSkywarn(rows)
	rows, src = combine(rows, dataset.SkywarnStations, src, true)

	u := dataset.Update{
		Category: dataset.CategorySkywarn,
		Entries:  dataset.Rank(rows, p.Lat, p.Lon),
		Source:   src,
	}
	m.publish(u)
	return u
}

// MergeNOAA builds the weather radio frequency table. The station list is a
// shipped reference, so this never goes to the network.
func (m *Merger) MergeNOAA(p geo.Position) ([]dataset.NOAARow, dataset.Update) {
	rows := dataset.NOAABestFrequencies(p.Lat, p.Lon, dataset.NOAAStations)

	entries := make([]dataset.Ranked, 0, len(rows))
	for _, row := range rows {
		if !row.Available() {
			continue
		}
		entries = append(entries, dataset.Ranked{
			Repeater:       *row.Station,
			DistanceMiles:  row.DistanceMiles,
			BearingDegrees: row.BearingDegrees,
		})
	}
	u := dataset.Update{
		Category: dataset.CategoryNOAA,
		Entries:  entries,
		Source:   dataset.SourceStatic,
	}
	m.publish(u)
	return rows, u
}
