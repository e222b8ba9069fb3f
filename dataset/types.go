// Package dataset defines the repeater and tower records shared across the
// cache, merger, and display layers, plus the static seed tables that back
// every category when neither the live API nor the cache can serve it.
package dataset

// Category names one mergeable dataset. Categories double as the cache
// dataType, so they must stay stable across releases.
type Category string

const (
	CategoryRepeaters Category = "repeaters"
	CategorySkywarn   Category = "skywarn"
	CategoryNOAA      Category = "noaa"
)

// Source tags the provenance of a merged dataset for the display layer.
type Source int

const (
	SourceStatic Source = iota
	SourceLive
	SourceCached
	SourceHybrid
)

func (s Source) String() string {
	switch s {
	case SourceLive:
		return "live"
	case SourceCached:
		return "cached"
	case SourceHybrid:
		return "hybrid"
	default:
		return "static"
	}
}

// Indicator returns the short display marker used in table headers.
func (s Source) Indicator() string {
	switch s {
	case SourceLive:
		return "[Live]"
	case SourceCached:
		return "[Cached]"
	case SourceHybrid:
		return "[Hybrid]"
	default:
		return "[Static]"
	}
}

// Repeater is one repeater or weather station record. Records are immutable
// once loaded; Distance and Bearing on Ranked are computed per fix.
type Repeater struct {
	Call      string  `json:"call"`
	Location  string  `json:"location"`
	Frequency float64 `json:"frequency,omitempty"`
	Output    float64 `json:"output,omitempty"`
	Input     float64 `json:"input,omitempty"`
	Tone      string  `json:"tone,omitempty"`
	SAMECodes string  `json:"same_codes,omitempty"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

// FrequencyMHz returns the best available frequency for band matching:
// the explicit frequency field when set, otherwise the repeater output.
func (r Repeater) FrequencyMHz() float64 {
	if r.Frequency != 0 {
		return r.Frequency
	}
	return r.Output
}

// Ranked pairs a record with its distance and bearing from the position the
// merge ran against.
type Ranked struct {
	Repeater
	DistanceMiles  float64
	BearingDegrees float64
}

// Update is what subscribers (UI, broadcaster, exporters) receive after each
// merge pass.
type Update struct {
	Category Category
	Band     string // set for per-band amateur updates, empty otherwise
	Entries  []Ranked
	Source   Source
}
