package dataset

import (
	"math"
	"sort"

	"towerwitch/geo"
)

// NOAARow is one line of the weather radio frequency table: a standard
// channel plus the nearest transmitter carrying it, when one is in range
// of the reference list.
type NOAARow struct {
	FrequencyMHz   float64
	Station        *Repeater
	DistanceMiles  float64
	BearingDegrees float64
}

// Available reports whether any known transmitter carries this channel.
func (r NOAARow) Available() bool {
	return r.Station != nil
}

// NOAABestFrequencies builds the seven-channel weather radio table for a
// position. Each channel gets the closest transmitter broadcasting on it;
// channels with no station in the reference list get an unavailable row.
// Covered rows sort by distance, unavailable rows sink to the bottom.
func NOAABestFrequencies(lat, lon float64, stations []Repeater) []NOAARow {
	rows := make([]NOAARow, 0, len(NOAAFrequencies))
	for _, freq := range NOAAFrequencies {
		row := NOAARow{FrequencyMHz: freq, DistanceMiles: math.Inf(1)}
		for i := range stations {
			s := &stations[i]
			if s.FrequencyMHz() != freq {
				continue
			}
			d := geo.DistanceMiles(lat, lon, s.Lat, s.Lon)
			if d < row.DistanceMiles {
				row.Station = s
				row.DistanceMiles = d
				row.BearingDegrees = geo.BearingDegrees(lat, lon, s.Lat, s.Lon)
			}
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].DistanceMiles < rows[j].DistanceMiles
	})
	return rows
}
