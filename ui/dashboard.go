package ui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"towerwitch/dataset"
	"towerwitch/geo"
	"towerwitch/motion"
	"towerwitch/simplex"
	"towerwitch/sites"
)

// Dashboard is the tview front end. All mutation entry points are safe to
// call from any goroutine; they queue redraws on the tview event loop.
type Dashboard struct {
	app    *tview.Application
	pages  *tview.Pages
	header *tview.TextView
	footer *tview.TextView

	mu        sync.Mutex
	night     bool
	pageNames []string
	pageIdx   int
	tables    map[string]*tview.Table
}

type pageSpec struct {
	name  string
	title string
}

var basePages = []pageSpec{
	{"armer", "ARMER"},
	{"skywarn", "SKYWARN"},
	{"noaa", "NOAA"},
	{"10m", "10m"},
	{"6m", "6m"},
	{"2m", "2m"},
	{"1.25m", "1.25m"},
	{"70cm", "70cm"},
	{"simplex", "Simplex"},
}

// New builds the dashboard. Run blocks until quit.
func New(nightMode bool) *Dashboard {
	d := &Dashboard{
		app:    tview.NewApplication(),
		pages:  tview.NewPages(),
		header: tview.NewTextView().SetDynamicColors(true).SetWrap(false),
		footer: tview.NewTextView().SetDynamicColors(true).SetWrap(false),
		night:  nightMode,
		tables: make(map[string]*tview.Table),
	}

	for _, spec := range basePages {
		table := tview.NewTable().SetFixed(1, 0).SetSelectable(false, false)
		table.SetBorder(true).SetTitle(" " + spec.title + " ")
		d.tables[spec.name] = table
		d.pages.AddPage(spec.name, table, true, len(d.pageNames) == 0)
		d.pageNames = append(d.pageNames, spec.name)
	}

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(d.header, 2, 0, false).
		AddItem(d.pages, 0, 1, true).
		AddItem(d.footer, 1, 0, false)

	d.app.SetRoot(root, true)
	d.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyTab:
			d.nextPage(1)
			return nil
		case tcell.KeyBacktab:
			d.nextPage(-1)
			return nil
		case tcell.KeyCtrlC:
			d.app.Stop()
			return nil
		}
		switch event.Rune() {
		case 'n', 'N':
			d.toggleNight()
			return nil
		case 'q', 'Q':
			d.app.Stop()
			return nil
		}
		return event
	})

	d.refreshFooter()
	return d
}

// Run starts the event loop and blocks until the user quits.
func (d *Dashboard) Run() error {
	return d.app.Run()
}

// Stop terminates the event loop.
func (d *Dashboard) Stop() {
	d.app.Stop()
}

func (d *Dashboard) theme() theme {
	if d.night {
		return nightTheme
	}
	return dayTheme
}

func (d *Dashboard) toggleNight() {
	d.mu.Lock()
	d.night = !d.night
	d.mu.Unlock()
	d.refreshFooter()
}

func (d *Dashboard) nextPage(step int) {
	d.mu.Lock()
	d.pageIdx = (d.pageIdx + step + len(d.pageNames)) % len(d.pageNames)
	name := d.pageNames[d.pageIdx]
	d.mu.Unlock()
	d.pages.SwitchToPage(name)
	d.refreshFooter()
}

func (d *Dashboard) refreshFooter() {
	d.mu.Lock()
	current := d.pageNames[d.pageIdx]
	night := d.night
	d.mu.Unlock()

	mode := "day"
	if night {
		mode = "night"
	}
	d.footer.SetText(fmt.Sprintf("[gray]Tab: next page (%s)  n: %s mode  q: quit", current, mode))
}

// SetPosition updates the header with the current fix and regime.
func (d *Dashboard) SetPosition(p geo.Position, regime motion.Regime) {
	grid, _ := geo.Grid6FromLatLon(p.Lat, p.Lon)
	lat := geo.ToDMS(p.Lat, true)
	lon := geo.ToDMS(p.Lon, false)
	mph := p.SpeedMPS * geo.MPSToMPH

	d.app.QueueUpdateDraw(func() {
		th := d.theme()
		d.header.SetTextColor(th.Header)
		d.header.SetText(fmt.Sprintf("%s  %s  grid %s\n%.1f mph  heading %s  [%s]",
			lat, lon, grid, mph, geo.Cardinal(p.TrackDegrees), regime))
	})
}

// HandleUpdate is the merger subscriber: it routes each dataset to its page.
func (d *Dashboard) HandleUpdate(u dataset.Update) {
	name := string(u.Category)
	if u.Category == dataset.CategoryRepeaters {
		name = u.Band
	}
	d.mu.Lock()
	table, ok := d.tables[name]
	d.mu.Unlock()
	if !ok {
		return
	}
	entries := u.Entries
	source := u.Source

	d.app.QueueUpdateDraw(func() {
		d.fillRepeaterTable(table, entries, source)
	})
}

func (d *Dashboard) fillRepeaterTable(table *tview.Table, entries []dataset.Ranked, source dataset.Source) {
	th := d.theme()
	table.Clear()

	headers := []string{"Call " + source.Indicator(), "Location", "Frequency", "Tone", "Distance", "Bearing"}
	for col, h := range headers {
		table.SetCell(0, col, tview.NewTableCell(h).SetTextColor(th.Header).SetSelectable(false))
	}

	rowColor := th.Static
	switch source {
	case dataset.SourceLive, dataset.SourceHybrid:
		rowColor = th.Live
	case dataset.SourceCached:
		rowColor = th.Cached
	}

	for i, e := range entries {
		cells := []string{
			e.Call,
			e.Location,
			fmt.Sprintf("%.3f", e.FrequencyMHz()),
			e.Tone,
			fmt.Sprintf("%.1f mi", e.DistanceMiles),
			fmt.Sprintf("%.0f° %s", e.BearingDegrees, geo.Cardinal(e.BearingDegrees)),
		}
		for col, text := range cells {
			table.SetCell(i+1, col, tview.NewTableCell(text).SetTextColor(rowColor))
		}
	}
}

// SetSites fills the ARMER page from the ranked site list.
func (d *Dashboard) SetSites(ranked []sites.Ranked) {
	d.mu.Lock()
	table := d.tables["armer"]
	d.mu.Unlock()

	d.app.QueueUpdateDraw(func() {
		th := d.theme()
		table.Clear()
		headers := []string{"Site Name", "County", "Distance", "Bearing", "NAC", "Control Channels"}
		for col, h := range headers {
			table.SetCell(0, col, tview.NewTableCell(h).SetTextColor(th.Header).SetSelectable(false))
		}
		for i, r := range ranked {
			cells := []string{
				r.Description,
				r.County,
				fmt.Sprintf("%.1f mi", r.DistanceMiles),
				fmt.Sprintf("%.0f° %s", r.BearingDegrees, geo.Cardinal(r.BearingDegrees)),
				r.NAC,
				joinLimited(r.ControlChannels),
			}
			for col, text := range cells {
				table.SetCell(i+1, col, tview.NewTableCell(text).SetTextColor(th.Text))
			}
		}
	})
}

// SetNOAA fills the NOAA page with the seven-channel frequency table.
// Uncovered channels render as not available.
func (d *Dashboard) SetNOAA(rows []dataset.NOAARow) {
	d.mu.Lock()
	table := d.tables["noaa"]
	d.mu.Unlock()

	d.app.QueueUpdateDraw(func() {
		th := d.theme()
		table.Clear()
		headers := []string{"Frequency", "Station", "Location", "Distance", "Bearing", "SAME Codes"}
		for col, h := range headers {
			table.SetCell(0, col, tview.NewTableCell(h).SetTextColor(th.Header).SetSelectable(false))
		}
		for i, row := range rows {
			var cells []string
			if row.Available() {
				cells = []string{
					fmt.Sprintf("%.3f", row.FrequencyMHz),
					row.Station.Call,
					row.Station.Location,
					fmt.Sprintf("%.1f mi", row.DistanceMiles),
					fmt.Sprintf("%.0f° %s", row.BearingDegrees, geo.Cardinal(row.BearingDegrees)),
					row.Station.SAMECodes,
				}
			} else {
				cells = []string{
					fmt.Sprintf("%.3f", row.FrequencyMHz),
					"Not available", "", "", "", "",
				}
			}
			color := th.Text
			if !row.Available() {
				color = th.Static
			}
			for col, text := range cells {
				table.SetCell(i+1, col, tview.NewTableCell(text).SetTextColor(color))
			}
		}
	})
}

// SetSimplex fills the simplex reference page.
func (d *Dashboard) SetSimplex(entries []simplex.Entry) {
	d.mu.Lock()
	table := d.tables["simplex"]
	d.mu.Unlock()

	d.app.QueueUpdateDraw(func() {
		th := d.theme()
		table.Clear()
		headers := []string{"Frequency", "Description", "Type", "Mode", "Tone", "Notes"}
		for col, h := range headers {
			table.SetCell(0, col, tview.NewTableCell(h).SetTextColor(th.Header).SetSelectable(false))
		}
		for i, e := range entries {
			kind := "Repeater"
			if e.Simplex() {
				kind = "Simplex"
			}
			cells := []string{
				e.FrequencyDisplay(),
				e.Description,
				fmt.Sprintf("%s (%s)", kind, e.Band),
				e.Mode,
				e.Tone,
				e.Notes,
			}
			for col, text := range cells {
				table.SetCell(i+1, col, tview.NewTableCell(text).SetTextColor(th.Text))
			}
		}
	})
}

func joinLimited(items []string) string {
	const max = 4
	out := ""
	for i, s := range items {
		if i == max {
			out += ", ..."
			break
		}
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
