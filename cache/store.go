// Package cache implements the tiered on-disk cache: one JSON file per
// (dataType, locationKey) pair, with fresh, stale, and last-known-good read
// tiers. Every read failure (missing file, bad JSON, unparseable timestamp)
// is a cache miss, never an error the caller has to handle; the caller just
// falls through to the next tier.
package cache

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"towerwitch/dataset"
	"towerwitch/geo"

	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// nearbyRadiusMiles bounds the nearest-neighbor fallback: a cache written for
// a location farther away than this is worse than no data.
const nearbyRadiusMiles = 50.0

// DefaultMaxAge is the fresh-read cutoff.
const DefaultMaxAge = 24 * time.Hour

// Key builds the cache partition key from a position. Coordinates round to
// three decimals, so two fixes within roughly 360 feet share a key.
func Key(lat, lon float64, radiusMiles int) string {
	return fmt.Sprintf("%.3f_%.3f_%d", lat, lon, radiusMiles)
}

// keyLatLon recovers the rounded coordinates embedded in a key.
func keyLatLon(key string) (lat, lon float64, ok bool) {
	parts := strings.Split(key, "_")
	if len(parts) < 2 {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// record is the on-disk schema. Timestamp is ISO-8601 so the files stay
// readable (and greppable) by operators.
type record struct {
	Timestamp   string             `json:"timestamp"`
	DataType    string             `json:"data_type"`
	LocationKey string             `json:"location_key"`
	Data        []dataset.Repeater `json:"data"`
}

// Store is a file-per-key cache rooted at a single directory. Methods are
// safe for the program's single-writer GPS pipeline; concurrent writers for
// the same key are not coordinated beyond the atomic rename on save.
type Store struct {
	dir string
}

// NewStore creates the cache directory if needed. A directory that cannot be
// created degrades to an unusable store whose reads all miss; the caller is
// told once via the returned error and may keep the store.
func NewStore(dir string) (*Store, error) {
	s := &Store{dir: dir}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return s, fmt.Errorf("cache: create directory %q: %w", dir, err)
	}
	return s, nil
}

// Dir returns the cache root.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(dataType dataset.Category, key string) string {
	return filepath.Join(s.dir, string(dataType)+"_"+key+".json")
}

func (s *Store) read(path string) (*record, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Printf("cache: malformed record %s: %v", filepath.Base(path), err)
		return nil, false
	}
	return &rec, true
}

func (rec *record) age(now time.Time) (time.Duration, bool) {
	ts, err := time.Parse(time.RFC3339, rec.Timestamp)
	if err != nil {
		return 0, false
	}
	return now.Sub(ts), true
}

// LoadFresh returns the cached payload for the exact key only when it is
// younger than maxAge. Anything else, missing, stale or malformed, is a miss.
func (s *Store) LoadFresh(dataType dataset.Category, key string, maxAge time.Duration) []dataset.Repeater {
	rec, ok := s.read(s.path(dataType, key))
	if !ok {
		return nil
	}
	age, ok := rec.age(time.Now())
	if !ok || age >= maxAge {
		return nil
	}
	return rec.Data
}

// LoadStaleAllowed returns the cached payload for the exact key regardless of
// age. The file still has to exist and parse.
func (s *Store) LoadStaleAllowed(dataType dataset.Category, key string) []dataset.Repeater {
	rec, ok := s.read(s.path(dataType, key))
	if !ok {
		return nil
	}
	if age, ok := rec.age(time.Now()); ok {
		log.Printf("cache: using stale %s data for %s (age %s)", dataType, key, humanize.Time(time.Now().Add(-age)))
	}
	return rec.Data
}

// LoadLastKnownGood is the bottom read tier: the exact key at any age, then
// the nearest cache file of the same dataType within 50 miles, then an empty
// list. It never fails.
func (s *Store) LoadLastKnownGood(dataType dataset.Category, key string) []dataset.Repeater {
	if data := s.LoadStaleAllowed(dataType, key); data != nil {
		return data
	}
	return s.loadNearby(dataType, key)
}

// loadNearby scans all cache files of the same dataType, recovers the rounded
// coordinates from each filename, and returns the payload of the closest file
// within nearbyRadiusMiles.
func (s *Store) loadNearby(dataType dataset.Category, key string) []dataset.Repeater {
	wantLat, wantLon, ok := keyLatLon(key)
	if !ok {
		return []dataset.Repeater{}
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return []dataset.Repeater{}
	}

	prefix := string(dataType) + "_"
	best := nearbyRadiusMiles
	var bestPath, bestKey string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		fileKey := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".json")
		lat, lon, ok := keyLatLon(fileKey)
		if !ok {
			continue
		}
		if d := geo.DistanceMiles(wantLat, wantLon, lat, lon); d < best {
			best = d
			bestPath = filepath.Join(s.dir, name)
			bestKey = fileKey
		}
	}
	if bestPath == "" {
		return []dataset.Repeater{}
	}
	rec, ok := s.read(bestPath)
	if !ok {
		return []dataset.Repeater{}
	}
	log.Printf("cache: using nearby %s data from %s (%.1f miles away)", dataType, bestKey, best)
	return rec.Data
}

// ErrEmptyPayload rejects saves that would mask real data with a false
// negative: an empty result is a fetch outcome, not a dataset.
var ErrEmptyPayload = errors.New("cache: refusing to save empty payload")

// Save writes the payload for (dataType, key), overwriting any existing
// record. The write goes to a temp file first and renames into place so a
// crash mid-write cannot leave a torn record behind.
func (s *Store) Save(dataType dataset.Category, key string, payload []dataset.Repeater) error {
	if len(payload) == 0 {
		return ErrEmptyPayload
	}
	rec := record{
		Timestamp:   time.Now().Format(time.RFC3339),
		DataType:    string(dataType),
		LocationKey: key,
		Data:        payload,
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("cache: encode record: %w", err)
	}

	dest := s.path(dataType, key)
	tmp, err := os.CreateTemp(s.dir, "cache-*.tmp")
	if err != nil {
		return fmt.Errorf("cache: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("cache: write record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cache: finalize record: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("cache: replace record: %w", err)
	}
	return nil
}

// ClearAll removes every cache file. Used for the explicit flush action and
// the config-driven force-refresh at startup.
func (s *Store) ClearAll() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("cache: read directory: %w", err)
	}
	var firstErr error
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		removed++
	}
	log.Printf("cache: cleared %d cache files", removed)
	return firstErr
}

// Status summarizes the cache for the status line: file count, total size,
// and the age of the newest record.
func (s *Store) Status() string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "cache unavailable"
	}
	var files int
	var bytes int64
	var newest time.Time
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files++
		if info, err := entry.Info(); err == nil {
			bytes += info.Size()
			if info.ModTime().After(newest) {
				newest = info.ModTime()
			}
		}
	}
	if files == 0 {
		return "cache empty"
	}
	return fmt.Sprintf("%d cache files, %s, newest %s",
		files, humanize.Bytes(uint64(bytes)), humanize.Time(newest))
}
