// Package simplex loads the amateur simplex and special-frequency reference
// from its CSV export. The list is position-independent; it loads once at
// startup and sorts by frequency.
package simplex

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"towerwitch/geo"
)

// Entry is one reference frequency. OutputMHz is always set; InputMHz is
// zero for true simplex channels.
type Entry struct {
	OutputMHz   float64
	InputMHz    float64
	Description string
	Mode        string
	Tone        string
	Notes       string
	Band        geo.Band
}

// Simplex reports whether the entry is a simplex channel rather than a
// repeater pair.
func (e Entry) Simplex() bool {
	return e.InputMHz == 0
}

// FrequencyDisplay formats the frequency column: "146.52" for simplex,
// "146.52 / 146.92" for pairs.
func (e Entry) FrequencyDisplay() string {
	if e.Simplex() {
		return trimFloat(e.OutputMHz)
	}
	return trimFloat(e.OutputMHz) + " / " + trimFloat(e.InputMHz)
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Load reads the simplex CSV file, dropping rows that fail to parse.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("simplex: open csv: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads CSV rows with the columns Frequency Output, Frequency Input,
// Description, Mode, PL Output Tone, PL Input Tone, Alpha Tag, and
// Agency/Category. The result is sorted ascending by output frequency.
func Parse(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("simplex: read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	get := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []Entry
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("simplex: read row %d: %w", line+1, err)
		}
		line++

		output, err := strconv.ParseFloat(get(row, "Frequency Output"), 64)
		if err != nil {
			log.Printf("simplex: skipping row %d: bad output frequency", line)
			continue
		}
		input := 0.0
		if raw := get(row, "Frequency Input"); raw != "" && raw != "0" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				input = v
			}
		}

		out = append(out, Entry{
			OutputMHz:   output,
			InputMHz:    input,
			Description: get(row, "Description"),
			Mode:        get(row, "Mode"),
			Tone:        formatTone(get(row, "PL Output Tone"), get(row, "PL Input Tone")),
			Notes:       formatNotes(get(row, "Alpha Tag"), get(row, "Agency/Category")),
			Band:        geo.ClassifyBand(output),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OutputMHz < out[j].OutputMHz
	})
	return out, nil
}

// formatTone renders the tone column: empty for carrier squelch, "146.2" for
// a shared tone, "146.2/123.0" for split tones.
func formatTone(out, in string) string {
	if out == "" || out == "CSQ" {
		return ""
	}
	if in != "" && in != out {
		return out + "/" + in
	}
	return out
}

func formatNotes(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " | ")
}
