// Package ui renders the terminal dashboard: a header with the current fix
// and motion regime, and one table page per dataset. A night mode palette
// keeps the screen readable in a dark vehicle.
package ui

import "github.com/gdamore/tcell/v2"

type theme struct {
	Background tcell.Color
	Text       tcell.Color
	Header     tcell.Color
	Accent     tcell.Color
	Live       tcell.Color
	Cached     tcell.Color
	Static     tcell.Color
}

var dayTheme = theme{
	Background: tcell.ColorBlack,
	Text:       tcell.ColorWhite,
	Header:     tcell.ColorYellow,
	Accent:     tcell.ColorAqua,
	Live:       tcell.ColorGreen,
	Cached:     tcell.ColorYellow,
	Static:     tcell.ColorGray,
}

var nightTheme = theme{
	Background: tcell.ColorBlack,
	Text:       tcell.ColorRed,
	Header:     tcell.ColorDarkRed,
	Accent:     tcell.ColorDarkRed,
	Live:       tcell.ColorRed,
	Cached:     tcell.ColorDarkRed,
	Static:     tcell.ColorDarkRed,
}
