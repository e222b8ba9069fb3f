package geo

import (
	"fmt"
	"regexp"
	"strconv"
)

// ToDMS formats decimal degrees as degrees/minutes/seconds with a hemisphere
// suffix, e.g. 44°58'40.08"N. isLatitude selects N/S over E/W.
func ToDMS(decimalDegrees float64, isLatitude bool) string {
	abs := decimalDegrees
	if abs < 0 {
		abs = -abs
	}
	deg := int(abs)
	minFloat := (abs - float64(deg)) * 60
	min := int(minFloat)
	sec := (minFloat - float64(min)) * 60

	var dir byte
	if isLatitude {
		dir = 'N'
		if decimalDegrees < 0 {
			dir = 'S'
		}
	} else {
		dir = 'E'
		if decimalDegrees < 0 {
			dir = 'W'
		}
	}
	return fmt.Sprintf("%d°%02d'%05.2f\"%c", deg, min, sec, dir)
}

var dmsRE = regexp.MustCompile(`^(\d+)°(\d+)'([\d.]+)"([NSEW])$`)

// ParseDMS converts a ToDMS-formatted string back to decimal degrees.
func ParseDMS(s string) (float64, error) {
	m := dmsRE.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("geo: malformed DMS value %q", s)
	}
	deg, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("geo: parse degrees: %w", err)
	}
	min, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, fmt.Errorf("geo: parse minutes: %w", err)
	}
	sec, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, fmt.Errorf("geo: parse seconds: %w", err)
	}
	val := deg + min/60 + sec/3600
	if m[4] == "S" || m[4] == "W" {
		val = -val
	}
	return val, nil
}
