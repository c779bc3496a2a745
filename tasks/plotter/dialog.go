package plotter

import (
	"strings"

	"fplot/gfx"
)

// dialog is the modal message box shown for plot errors.
type dialog struct {
	open    bool
	title   string
	message string
	lines   []string

	box gfx.Rect
	ok  gfx.Rect
}

func (d *dialog) show(title, message string) {
	d.open = true
	d.title = title
	d.message = message
}

func (d *dialog) dismiss() {
	d.open = false
	d.title = ""
	d.message = ""
	d.lines = nil
	d.box = gfx.Rect{}
	d.ok = gfx.Rect{}
}

// wrapText splits s into lines of at most maxW pixels, breaking at spaces.
func wrapText(s string, maxW int, width func(string) int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		next := line + " " + w
		if width(next) <= maxW {
			line = next
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}
