package geo

// Band identifies an amateur radio band. It replaces the string-keyed band
// lookups the display layer used to do with a typed constant set.
type Band int

const (
	BandOther Band = iota
	BandHF
	Band10m
	Band6m
	Band2m
	Band125m
	Band70cm
	Band33cm
	Band23cm
	Band13cm
)

// bandRange is a closed frequency interval in MHz.
type bandRange struct {
	band     Band
	min, max float64
}

// Allocation edges follow the US amateur band plan for the bands the display
// cares about. Order matters only for readability; ranges do not overlap.
var bandRanges = []bandRange{
	{Band10m, 28.0, 29.7},
	{Band6m, 50.0, 54.0},
	{Band2m, 144.0, 148.0},
	{Band125m, 220.0, 225.0},
	{Band70cm, 420.0, 450.0},
	{Band33cm, 902.0, 928.0},
	{Band23cm, 1240.0, 1300.0},
	{Band13cm, 2300.0, 2450.0},
}

// ClassifyBand maps a frequency in MHz to its amateur band. Frequencies below
// the 10m band report HF; anything outside every range reports Other.
func ClassifyBand(frequencyMHz float64) Band {
	for _, r := range bandRanges {
		if frequencyMHz >= r.min && frequencyMHz <= r.max {
			return r.band
		}
	}
	if frequencyMHz > 0 && frequencyMHz < 28.0 {
		return BandHF
	}
	return BandOther
}

// Range returns the closed [min, max] MHz interval for a band, or ok=false
// for bands without a fixed table entry (HF, Other).
func (b Band) Range() (min, max float64, ok bool) {
	for _, r := range bandRanges {
		if r.band == b {
			return r.min, r.max, true
		}
	}
	return 0, 0, false
}

func (b Band) String() string {
	switch b {
	case BandHF:
		return "HF"
	case Band10m:
		return "10m"
	case Band6m:
		return "6m"
	case Band2m:
		return "2m"
	case Band125m:
		return "1.25m"
	case Band70cm:
		return "70cm"
	case Band33cm:
		return "33cm"
	case Band23cm:
		return "23cm"
	case Band13cm:
		return "13cm"
	default:
		return "Other"
	}
}

// RepeaterBands lists the bands that get their own repeater table, in
// display order.
var RepeaterBands = []Band{Band10m, Band6m, Band2m, Band125m, Band70cm}
