package merger

import (
	"strings"

	"towerwitch/dataset"
)

// skywarnKeywords marks a repeater as weather/emergency traffic when any of
// them appears in its call, location, or description text.
var skywarnKeywords = []string{
	"skywarn", "weather", "storm", "emergency", "ares", "races", "net",
	"emcomm", "emergency management", "nws", "national weather service",
	"spotter", "severe weather", "warning", "alert", "disaster", "eoc",
	"emergency operations", "public safety", "first responder", "fire",
	"police", "ems", "rescue", "search", "emergency coordinator",
}

// emergencyFrequency reports whether a frequency sits in a range commonly
// coordinated for emergency nets: the 2m and 70cm amateur bands plus the
// VHF public safety range.
func emergencyFrequency(mhz float64) bool {
	switch {
	case mhz >= 144.0 && mhz <= 148.0:
		return true
	case mhz >= 420.0 && mhz <= 450.0:
		return true
	case mhz >= 150.0 && mhz <= 174.0:
		return true
	}
	return false
}

// FilterSkywarn keeps the repeaters likely to carry SKYWARN or emergency
// traffic: a keyword hit anywhere in the text fields, or an emergency-band
// frequency paired with a non-trivial location description.
func FilterSkywarn(rows []dataset.Repeater) []dataset.Repeater {
	out := make([]dataset.Repeater, 0, len(rows))
	for _, r := range rows {
		text := strings.ToLower(r.Call + " " + r.Location)
		keyword := false
		for _, kw := range skywarnKeywords {
			if strings.Contains(text, kw) {
				keyword = true
				break
			}
		}
		if keyword || (emergencyFrequency(r.FrequencyMHz()) && len(r.Location) > 5) {
			out = append(out, r)
		}
	}
	return out
}
