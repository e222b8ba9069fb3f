// Package sites loads the ARMER trunked-radio site list from its CSV export
// and serves nearest-site queries from a compiled sqlite database. Sites
// without at least one control channel are not usable and never make it
// into the database.
package sites

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// Site is one trunked radio site. Frequencies hold every channel in MHz as
// exported; ControlChannels hold just the control channels with the trailing
// marker stripped.
type Site struct {
	RFSS            string
	SiteDec         string
	SiteHex         string
	NAC             string
	Description     string
	County          string
	Lat             float64
	Lon             float64
	RangeMiles      float64
	Frequencies     []string
	ControlChannels []string
}

// Ranked pairs a site with its distance and bearing from a query position.
type Ranked struct {
	Site
	DistanceMiles  float64
	BearingDegrees float64
}

// Fixed CSV layout: RFSS, Site Dec, Site Hex, Site NAC, Description,
// County Name, Lat, Lon, Range, then one column per frequency. A trailing
// "c" on a frequency marks a control channel.
const freqColumnStart = 9

// ParseCSV reads the ARMER site export. Rows with unparseable coordinates
// or no control channel are skipped with a log line; a malformed file as a
// whole is an error.
func ParseCSV(r io.Reader) ([]Site, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("sites: read header: %w", err)
	}

	var out []Site
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sites: read row %d: %w", line+1, err)
		}
		line++

		site, err := parseRow(row)
		if err != nil {
			log.Printf("sites: skipping row %d (%s): %v", line, field(row, 4), err)
			continue
		}
		if len(site.ControlChannels) == 0 {
			log.Printf("sites: skipping row %d (%s): no control channel", line, site.Description)
			continue
		}
		out = append(out, site)
	}
	return out, nil
}

func parseRow(row []string) (Site, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(field(row, 6)), 64)
	if err != nil {
		return Site{}, fmt.Errorf("bad latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(field(row, 7)), 64)
	if err != nil {
		return Site{}, fmt.Errorf("bad longitude: %w", err)
	}
	rng, _ := strconv.ParseFloat(strings.TrimSpace(field(row, 8)), 64)

	site := Site{
		RFSS:        strings.TrimSpace(field(row, 0)),
		SiteDec:     strings.TrimSpace(field(row, 1)),
		SiteHex:     strings.TrimSpace(field(row, 2)),
		NAC:         strings.TrimSpace(field(row, 3)),
		Description: strings.TrimSpace(field(row, 4)),
		County:      strings.TrimSpace(field(row, 5)),
		Lat:         lat,
		Lon:         lon,
		RangeMiles:  rng,
	}
	for i := freqColumnStart; i < len(row); i++ {
		freq := strings.TrimSpace(row[i])
		if freq == "" {
			continue
		}
		site.Frequencies = append(site.Frequencies, freq)
		if strings.HasSuffix(freq, "c") {
			site.ControlChannels = append(site.ControlChannels, strings.TrimSuffix(freq, "c"))
		}
	}
	return site, nil
}

func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// ParseCSVFile is ParseCSV over a file path.
func ParseCSVFile(path string) ([]Site, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sites: open csv: %w", err)
	}
	defer f.Close()
	return ParseCSV(f)
}
