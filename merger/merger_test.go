package merger

import (
	"context"
	"errors"
	"math"
	"testing"

	"towerwitch/cache"
	"towerwitch/dataset"
	"towerwitch/geo"
	"towerwitch/motion"
)

type stubFetcher struct {
	rows []dataset.Repeater
	err  error
	hits int
}

func (s *stubFetcher) Repeaters(_ context.Context, _, _ float64, _ int) ([]dataset.Repeater, error) {
	s.hits++
	return s.rows, s.err
}

func minneapolis() geo.Position {
	return geo.Position{Lat: 44.9778, Lon: -93.2650}
}

func liveRows() []dataset.Repeater {
	return []dataset.Repeater{
		{Call: "W0UJ", Frequency: 146.76, Location: "Minneapolis", Lat: 44.98, Lon: -93.27},
		{Call: "K0LTC", Frequency: 147.12, Location: "St. Paul", Lat: 44.95, Lon: -93.09},
		{Call: "W0YC", Frequency: 145.35, Location: "U of M", Lat: 44.97, Lon: -93.23},
		{Call: "N0ABC", Frequency: 146.94, Location: "Bloomington", Lat: 44.84, Lon: -93.29},
		{Call: "W0MR", Frequency: 444.35, Location: "Roseville", Lat: 45.01, Lon: -93.15},
	}
}

func newTestMerger(t *testing.T, f Fetcher) *Merger {
	t.Helper()
	store, err := cache.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return New(f, store, motion.NewTracker())
}

func bandUpdate(t *testing.T, updates []dataset.Update, band string) dataset.Update {
	t.Helper()
	for _, u := range updates {
		if u.Band == band {
			return u
		}
	}
	t.Fatalf("no update for band %s", band)
	return dataset.Update{}
}

func TestMergeAmateurLive(t *testing.T) {
	f := &stubFetcher{rows: liveRows()}
	m := newTestMerger(t, f)

	updates := m.MergeAmateur(context.Background(), minneapolis())

	// uncovered seed entries always ride along, so live data tags as hybrid
	two := bandUpdate(t, updates, "2m")
	if two.Source != dataset.SourceHybrid {
		t.Errorf("2m source = %v, want hybrid", two.Source)
	}
	seeds2m := len(dataset.FilterByBand(dataset.AmateurSeed, geo.Band2m))
	if len(two.Entries) != 4+seeds2m {
		t.Fatalf("2m rows = %d, want %d live plus %d seeds", len(two.Entries), 4, seeds2m)
	}
	found := false
	for _, e := range two.Entries {
		if e.Call == "K0LFD" {
			found = true
		}
	}
	if !found {
		t.Error("seed K0LFD missing next to live 2m rows")
	}
	// ranked nearest first
	for i := 1; i < len(two.Entries); i++ {
		if two.Entries[i].DistanceMiles < two.Entries[i-1].DistanceMiles {
			t.Fatal("2m rows not sorted by distance")
		}
	}

	seventy := bandUpdate(t, updates, "70cm")
	if seventy.Source != dataset.SourceHybrid {
		t.Errorf("70cm source = %v, want hybrid", seventy.Source)
	}
	if len(seventy.Entries) < 2 {
		t.Errorf("70cm rows = %d, want live row plus seeds", len(seventy.Entries))
	}
}

func TestMergeAmateurSeedsOnlyCoverAllBands(t *testing.T) {
	m := newTestMerger(t, nil)

	updates := m.MergeAmateur(context.Background(), minneapolis())
	if len(updates) != len(geo.RepeaterBands) {
		t.Fatalf("got %d band updates, want %d", len(updates), len(geo.RepeaterBands))
	}
	for _, band := range geo.RepeaterBands {
		u := bandUpdate(t, updates, band.String())
		if u.Source != dataset.SourceStatic {
			t.Errorf("%s source = %v, want static", band, u.Source)
		}
		if len(u.Entries) == 0 {
			t.Errorf("%s table empty with no live data", band)
		}
	}
}

func TestMergeAmateurDedupesLiveOverStatic(t *testing.T) {
	// live carries a call that also appears in the seed table
	rows := liveRows()
	rows = append(rows, dataset.Repeater{Call: "W0BTO", Frequency: 444.1, Location: "live copy", Lat: 46.35, Lon: -94.20})
	f := &stubFetcher{rows: rows}
	m := newTestMerger(t, f)

	updates := m.MergeAmateur(context.Background(), minneapolis())
	seventy := bandUpdate(t, updates, "70cm")
	count := 0
	for _, e := range seventy.Entries {
		if e.Call == "W0BTO" {
			count++
			if e.Location != "live copy" {
				t.Error("live row must win the dedupe")
			}
		}
	}
	if count != 1 {
		t.Errorf("W0BTO appears %d times, want 1", count)
	}
}

func TestMergeAmateurFetchFailureFallsToCache(t *testing.T) {
	p := minneapolis()
	key := cache.Key(p.Lat, p.Lon, 200)
	f := &stubFetcher{err: errors.New("api down")}
	m := newTestMerger(t, f)
	if err := m.store.Save(dataset.CategoryRepeaters, key, liveRows()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	updates := m.MergeAmateur(context.Background(), p)
	two := bandUpdate(t, updates, "2m")
	if two.Source != dataset.SourceCached {
		t.Errorf("source = %v, want cached", two.Source)
	}
	if len(two.Entries) == 0 {
		t.Fatal("cached rows missing")
	}
}

func TestMergeAmateurNothingAnywhereUsesSeeds(t *testing.T) {
	f := &stubFetcher{err: errors.New("api down")}
	m := newTestMerger(t, f)

	updates := m.MergeAmateur(context.Background(), minneapolis())
	two := bandUpdate(t, updates, "2m")
	if two.Source != dataset.SourceStatic {
		t.Errorf("source = %v, want static", two.Source)
	}
	if len(two.Entries) == 0 {
		t.Fatal("seed rows missing")
	}
}

func TestMergeAmateurUndersizedLiveRejected(t *testing.T) {
	f := &stubFetcher{rows: liveRows()[:2]}
	m := newTestMerger(t, f)

	updates := m.MergeAmateur(context.Background(), minneapolis())
	two := bandUpdate(t, updates, "2m")
	if two.Source == dataset.SourceLive {
		t.Error("a 2-row live answer must not be treated as live data")
	}
}

func TestMergeAmateurRegionalSuppressesRefetch(t *testing.T) {
	f := &stubFetcher{rows: liveRows()}
	m := newTestMerger(t, f)
	p := minneapolis()

	m.MergeAmateur(context.Background(), p)
	if f.hits != 1 {
		t.Fatalf("first pass hits = %d, want 1", f.hits)
	}

	// 55 miles to St. Cloud: inside the 150 mi region, still fresh
	stCloud := geo.Position{Lat: 45.5579, Lon: -94.1632}
	m.MergeAmateur(context.Background(), stCloud)
	if f.hits != 1 {
		t.Errorf("in-region move refetched: hits = %d", f.hits)
	}

	// Chicago leaves the region
	chicago := geo.Position{Lat: 41.8781, Lon: -87.6298}
	m.MergeAmateur(context.Background(), chicago)
	if f.hits != 2 {
		t.Errorf("out-of-region move did not refetch: hits = %d", f.hits)
	}
}

func TestMergeAmateurServesRegionalDataAcrossRegion(t *testing.T) {
	f := &stubFetcher{rows: liveRows()}
	m := newTestMerger(t, f)

	m.MergeAmateur(context.Background(), minneapolis())
	if f.hits != 1 {
		t.Fatalf("first pass hits = %d, want 1", f.hits)
	}

	// Brainerd is ~105 miles from the fetch center: no refetch is due, and
	// the wide-area payload cached under the center's key must still serve.
	brainerd := geo.Position{Lat: 46.3580, Lon: -94.2008}
	updates := m.MergeAmateur(context.Background(), brainerd)
	if f.hits != 1 {
		t.Fatalf("in-region move refetched: hits = %d", f.hits)
	}
	two := bandUpdate(t, updates, "2m")
	if two.Source == dataset.SourceStatic {
		t.Fatal("regional data lost inside the region")
	}
	found := false
	for _, e := range two.Entries {
		if e.Call == "W0UJ" {
			found = true
		}
	}
	if !found {
		t.Error("cached live row W0UJ missing at the region edge")
	}
}

func TestMergeSkywarnStaticSupplement(t *testing.T) {
	f := &stubFetcher{err: errors.New("api down")}
	m := newTestMerger(t, f)

	u := m.MergeSkywarn(context.Background(), minneapolis())
	if u.Source != dataset.SourceStatic {
		t.Errorf("source = %v, want static", u.Source)
	}
	if len(u.Entries) != len(dataset.SkywarnStations) {
		t.Errorf("rows = %d, want %d", len(u.Entries), len(dataset.SkywarnStations))
	}
	if u.Entries[0].Call != "W0EAR" {
		t.Errorf("nearest SKYWARN net = %s, want W0EAR", u.Entries[0].Call)
	}
}

func TestMergeSkywarnHybrid(t *testing.T) {
	f := &stubFetcher{rows: []dataset.Repeater{
		{Call: "W0XYZ", Frequency: 146.82, Location: "Hennepin SKYWARN primary", Lat: 44.97, Lon: -93.26},
		{Call: "K0DEF", Frequency: 147.21, Location: "Carver weather net", Lat: 44.86, Lon: -93.78},
		{Call: "N0GHI", Frequency: 444.2, Location: "metro ARES link", Lat: 44.95, Lon: -93.10},
		{Call: "W0JKL", Frequency: 146.7, Location: "storm spotter net", Lat: 45.02, Lon: -93.40},
	}}
	m := newTestMerger(t, f)

	u := m.MergeSkywarn(context.Background(), minneapolis())
	if u.Source != dataset.SourceHybrid {
		t.Errorf("source = %v, want hybrid", u.Source)
	}
	if len(u.Entries) != 4+len(dataset.SkywarnStations) {
		t.Errorf("rows = %d, want %d", len(u.Entries), 4+len(dataset.SkywarnStations))
	}
}

func TestMergeNOAA(t *testing.T) {
	m := newTestMerger(t, nil)
	rows, u := m.MergeNOAA(minneapolis())
	if len(rows) != 7 {
		t.Fatalf("rows = %d, want 7", len(rows))
	}
	if u.Category != dataset.CategoryNOAA || u.Source != dataset.SourceStatic {
		t.Errorf("update = %v/%v, want noaa/static", u.Category, u.Source)
	}
	// KEC65 is the nearest transmitter overall from downtown Minneapolis
	if u.Entries[0].Call != "KEC65" {
		t.Errorf("nearest station = %s, want KEC65", u.Entries[0].Call)
	}
	if math.Abs(u.Entries[0].DistanceMiles-8.7) > 0.5 {
		t.Errorf("KEC65 distance = %.2f, want about 8.7", u.Entries[0].DistanceMiles)
	}
}

func TestSubscribersReceiveUpdates(t *testing.T) {
	m := newTestMerger(t, nil)
	var got []dataset.Update
	m.Subscribe(func(u dataset.Update) { got = append(got, u) })

	m.MergeNOAA(minneapolis())
	m.MergeSkywarn(context.Background(), minneapolis())
	if len(got) != 2 {
		t.Fatalf("subscriber saw %d updates, want 2", len(got))
	}
}

func TestFilterSkywarn(t *testing.T) {
	rows := []dataset.Repeater{
		{Call: "W0AAA", Frequency: 146.9, Location: "Anoka SKYWARN net"},
		{Call: "W0BBB", Frequency: 927.5, Location: "x"},            // wrong band, no keyword
		{Call: "W0CCC", Frequency: 147.0, Location: "Minneapolis"},  // emergency band + real location
		{Call: "W0DDD", Frequency: 927.5, Location: "storm beacon"}, // keyword outside the band
	}
	got := FilterSkywarn(rows)
	if len(got) != 3 {
		t.Fatalf("kept %d rows, want 3", len(got))
	}
	for _, r := range got {
		if r.Call == "W0BBB" {
			t.Error("W0BBB should have been filtered")
		}
	}
}

func TestNeedsResortAfterDrift(t *testing.T) {
	f := &stubFetcher{rows: liveRows()}
	m := newTestMerger(t, f)
	p := minneapolis()
	m.MergeAmateur(context.Background(), p)

	if m.NeedsResort(p) {
		t.Error("no drift should not resort")
	}
	north := geo.Position{Lat: 45.0068, Lon: -93.2650} // ~2 miles
	if !m.NeedsResort(north) {
		t.Error("2 mi drift should resort")
	}
}
