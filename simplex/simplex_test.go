package simplex

import (
	"strings"
	"testing"

	"towerwitch/geo"
)

const testCSV = `Frequency Output,Frequency Input,Description,Mode,PL Output Tone,PL Input Tone,Alpha Tag,Agency/Category
146.52,0,National Simplex Calling,FM,CSQ,,NatSimplex,Amateur
446.0,0,70cm Simplex Calling,FM,,,UHF Call,Amateur
146.94,146.34,Metro Repeater,FM,114.8,114.8,MetroRpt,Club
52.525,0,6m Simplex Calling,FM,,,,
not-a-number,0,Broken Row,FM,,,,
223.5,0,1.25m Calling,FM,100.0,123.0,,Amateur
`

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(testCSV))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// broken row dropped
	if len(entries) != 5 {
		t.Fatalf("got %d entries, want 5", len(entries))
	}

	// sorted by output frequency
	for i := 1; i < len(entries); i++ {
		if entries[i].OutputMHz < entries[i-1].OutputMHz {
			t.Fatal("entries not sorted by frequency")
		}
	}

	first := entries[0]
	if first.OutputMHz != 52.525 || first.Band != geo.Band6m {
		t.Errorf("first entry = %.3f/%v, want 52.525/6m", first.OutputMHz, first.Band)
	}
}

func TestParseSimplexVsRepeater(t *testing.T) {
	entries, _ := Parse(strings.NewReader(testCSV))

	byFreq := make(map[float64]Entry, len(entries))
	for _, e := range entries {
		byFreq[e.OutputMHz] = e
	}

	call := byFreq[146.52]
	if !call.Simplex() {
		t.Error("146.52 should be simplex")
	}
	if call.FrequencyDisplay() != "146.52" {
		t.Errorf("display = %q, want 146.52", call.FrequencyDisplay())
	}

	rpt := byFreq[146.94]
	if rpt.Simplex() {
		t.Error("146.94 pair should not be simplex")
	}
	if rpt.FrequencyDisplay() != "146.94 / 146.34" {
		t.Errorf("display = %q", rpt.FrequencyDisplay())
	}
}

func TestToneFormatting(t *testing.T) {
	entries, _ := Parse(strings.NewReader(testCSV))
	byFreq := make(map[float64]Entry, len(entries))
	for _, e := range entries {
		byFreq[e.OutputMHz] = e
	}

	if tone := byFreq[146.52].Tone; tone != "" {
		t.Errorf("CSQ tone = %q, want empty", tone)
	}
	if tone := byFreq[146.94].Tone; tone != "114.8" {
		t.Errorf("matched tone = %q, want 114.8", tone)
	}
	if tone := byFreq[223.5].Tone; tone != "100.0/123.0" {
		t.Errorf("split tone = %q, want 100.0/123.0", tone)
	}
}

func TestNotesJoin(t *testing.T) {
	entries, _ := Parse(strings.NewReader(testCSV))
	byFreq := make(map[float64]Entry, len(entries))
	for _, e := range entries {
		byFreq[e.OutputMHz] = e
	}

	if notes := byFreq[146.52].Notes; notes != "NatSimplex | Amateur" {
		t.Errorf("notes = %q", notes)
	}
	if notes := byFreq[52.525].Notes; notes != "" {
		t.Errorf("empty fields should give empty notes, got %q", notes)
	}
	if notes := byFreq[223.5].Notes; notes != "Amateur" {
		t.Errorf("single field notes = %q, want Amateur", notes)
	}
}
