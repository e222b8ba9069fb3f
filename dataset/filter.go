package dataset

import (
	"fmt"
	"sort"

	"github.com/zeebo/xxh3"

	"towerwitch/geo"
)

// FilterByBand keeps the records whose frequency falls in the given band.
// Records without a usable frequency are dropped silently.
func FilterByBand(records []Repeater, band geo.Band) []Repeater {
	out := make([]Repeater, 0, len(records))
	for _, r := range records {
		f := r.FrequencyMHz()
		if f == 0 {
			continue
		}
		if geo.ClassifyBand(f) == band {
			out = append(out, r)
		}
	}
	return out
}

// dedupeHash produces the identity hash for a record. Amateur records are
// identified by call sign alone; SKYWARN nets reuse call signs across
// frequencies, so their identity includes the frequency.
func dedupeHash(r Repeater, byFrequency bool) uint64 {
	if byFrequency {
		return xxh3.HashString(fmt.Sprintf("%s|%.4f", r.Call, r.FrequencyMHz()))
	}
	return xxh3.HashString(r.Call)
}

// Dedupe removes later duplicates, keeping the first occurrence. Order the
// input live-first so live records win over static ones.
func Dedupe(records []Repeater, byFrequency bool) []Repeater {
	seen := make(map[uint64]struct{}, len(records))
	out := make([]Repeater, 0, len(records))
	for _, r := range records {
		h := dedupeHash(r, byFrequency)
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Rank computes distance and bearing from a position for every record and
// returns the result sorted nearest first.
func Rank(records []Repeater, lat, lon float64) []Ranked {
	out := make([]Ranked, 0, len(records))
	for _, r := range records {
		out = append(out, Ranked{
			Repeater:       r,
			DistanceMiles:  geo.DistanceMiles(lat, lon, r.Lat, r.Lon),
			BearingDegrees: geo.BearingDegrees(lat, lon, r.Lat, r.Lon),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceMiles < out[j].DistanceMiles
	})
	return out
}
