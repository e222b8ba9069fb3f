package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"towerwitch/dataset"
)

func testPayload() []dataset.Repeater {
	return []dataset.Repeater{
		{Call: "W0BTO", Location: "Brainerd, MN", Output: 146.760, Input: 146.160, Tone: "114.8", Lat: 46.3583, Lon: -94.2003},
		{Call: "KC0TZF", Location: "Little Falls, MN", Output: 147.300, Input: 147.900, Tone: "123.0", Lat: 45.9763, Lon: -94.3625},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestKeyRounding(t *testing.T) {
	a := Key(44.97781, -93.26499, 50)
	b := Key(44.97779, -93.26501, 50)
	if a != b {
		t.Fatalf("keys for positions ~300 ft apart differ: %q vs %q", a, b)
	}
	if a != "44.978_-93.265_50" {
		t.Fatalf("unexpected key format: %q", a)
	}
}

func TestSaveThenLoadFresh(t *testing.T) {
	s := newTestStore(t)
	key := Key(44.978, -93.265, 50)
	payload := testPayload()

	if err := s.Save(dataset.CategoryRepeaters, key, payload); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := s.LoadFresh(dataset.CategoryRepeaters, key, DefaultMaxAge)
	if len(got) != len(payload) {
		t.Fatalf("expected %d entries; got %d", len(payload), len(got))
	}
	for i := range got {
		if got[i] != payload[i] {
			t.Fatalf("entry %d mismatch: %+v vs %+v", i, got[i], payload[i])
		}
	}
}

func TestSaveRejectsEmptyPayload(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(dataset.CategoryRepeaters, Key(44.978, -93.265, 50), nil); err != ErrEmptyPayload {
		t.Fatalf("expected ErrEmptyPayload; got %v", err)
	}
}

func TestLoadFreshExpired(t *testing.T) {
	s := newTestStore(t)
	key := Key(44.978, -93.265, 50)
	writeRecordAt(t, s, dataset.CategoryRepeaters, key, time.Now().Add(-48*time.Hour))

	if got := s.LoadFresh(dataset.CategoryRepeaters, key, DefaultMaxAge); got != nil {
		t.Fatalf("expected stale record to miss the fresh tier; got %d entries", len(got))
	}
	if got := s.LoadStaleAllowed(dataset.CategoryRepeaters, key); len(got) == 0 {
		t.Fatalf("expected stale tier to return the record")
	}
}

func TestLoadMalformedIsMiss(t *testing.T) {
	s := newTestStore(t)
	key := Key(44.978, -93.265, 50)
	path := filepath.Join(s.Dir(), "repeaters_"+key+".json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := s.LoadFresh(dataset.CategoryRepeaters, key, DefaultMaxAge); got != nil {
		t.Fatalf("expected malformed record to miss; got %d entries", len(got))
	}
	if got := s.LoadStaleAllowed(dataset.CategoryRepeaters, key); got != nil {
		t.Fatalf("expected malformed record to miss stale tier")
	}
}

func TestLoadUnparseableTimestampIsMiss(t *testing.T) {
	s := newTestStore(t)
	key := Key(44.978, -93.265, 50)
	path := filepath.Join(s.Dir(), "repeaters_"+key+".json")
	body := `{"timestamp":"yesterday-ish","data_type":"repeaters","location_key":"` + key + `","data":[{"call":"W0BTO","lat":46.3583,"lon":-94.2003}]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := s.LoadFresh(dataset.CategoryRepeaters, key, DefaultMaxAge); got != nil {
		t.Fatalf("expected unparseable timestamp to miss the fresh tier")
	}
}

func TestLastKnownGoodEmptyDir(t *testing.T) {
	s := newTestStore(t)
	got := s.LoadLastKnownGood(dataset.CategoryRepeaters, Key(44.978, -93.265, 50))
	if got == nil {
		t.Fatalf("expected empty list, not nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list; got %d entries", len(got))
	}
}

func TestLastKnownGoodNearby(t *testing.T) {
	s := newTestStore(t)

	// Brainerd is ~110 miles from Minneapolis, St. Paul about 9.
	farKey := Key(46.358, -94.200, 50)
	nearKey := Key(44.954, -93.090, 50)
	if err := s.Save(dataset.CategoryRepeaters, farKey, testPayload()[:1]); err != nil {
		t.Fatalf("Save far: %v", err)
	}
	if err := s.Save(dataset.CategoryRepeaters, nearKey, testPayload()); err != nil {
		t.Fatalf("Save near: %v", err)
	}

	got := s.LoadLastKnownGood(dataset.CategoryRepeaters, Key(44.978, -93.265, 50))
	if len(got) != 2 {
		t.Fatalf("expected the closer cache's 2 entries; got %d", len(got))
	}
}

func TestLastKnownGoodNearbyRespectsRadius(t *testing.T) {
	s := newTestStore(t)

	// Duluth to Minneapolis is ~135 miles, past the 50 mile cutoff.
	if err := s.Save(dataset.CategoryRepeaters, Key(46.787, -92.100, 50), testPayload()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := s.LoadLastKnownGood(dataset.CategoryRepeaters, Key(44.978, -93.265, 50))
	if len(got) != 0 {
		t.Fatalf("expected no nearby data past 50 miles; got %d entries", len(got))
	}
}

func TestLastKnownGoodIgnoresOtherDataTypes(t *testing.T) {
	s := newTestStore(t)
	key := Key(44.978, -93.265, 50)
	if err := s.Save(dataset.CategorySkywarn, key, testPayload()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := s.LoadLastKnownGood(dataset.CategoryRepeaters, key)
	if len(got) != 0 {
		t.Fatalf("expected skywarn cache to be invisible to repeaters reads")
	}
}

func TestClearAll(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(dataset.CategoryRepeaters, Key(44.978, -93.265, 50), testPayload()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(dataset.CategorySkywarn, Key(44.978, -93.265, 100), testPayload()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.ClearAll(); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".json" {
			t.Fatalf("cache file %s survived ClearAll", entry.Name())
		}
	}
}

// writeRecordAt writes a valid record with a back-dated timestamp.
func writeRecordAt(t *testing.T, s *Store, dataType dataset.Category, key string, ts time.Time) {
	t.Helper()
	body := `{"timestamp":"` + ts.Format(time.RFC3339) + `","data_type":"` + string(dataType) +
		`","location_key":"` + key + `","data":[{"call":"W0BTO","location":"Brainerd, MN","lat":46.3583,"lon":-94.2003}]}`
	path := filepath.Join(s.Dir(), string(dataType)+"_"+key+".json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write record: %v", err)
	}
}
