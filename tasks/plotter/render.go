package plotter

// This file contains the layout and rendering of the form, chart and dialog.

import "fplot/gfx"

const (
	pad      = 6
	fieldPad = 4
	fieldH   = gfx.LineHeight + 6
	buttonH  = gfx.LineHeight + 8
)

type layout struct {
	labels [numFields]gfx.Rect
	fields [numFields]gfx.Rect
	button gfx.Rect
	chart  gfx.Rect
}

// computeLayout stacks label, field, label, field, label, field, button and chart
// vertically, each spanning the window width.
func computeLayout(w, h int) layout {
	var l layout
	inner := w - 2*pad
	y := pad
	for i := 0; i < numFields; i++ {
		l.labels[i] = gfx.Rect{X: pad, Y: y, W: inner, H: gfx.LineHeight}
		y += gfx.LineHeight + 2
		l.fields[i] = gfx.Rect{X: pad, Y: y, W: inner, H: fieldH}
		y += fieldH + 4
	}
	l.button = gfx.Rect{X: pad, Y: y, W: inner, H: buttonH}
	y += buttonH + pad
	chartH := h - y - pad
	if chartH < 0 {
		chartH = 0
	}
	l.chart = gfx.Rect{X: pad, Y: y, W: inner, H: chartH}
	return l
}

func (t *Task) render() {
	if t.d == nil {
		return
	}
	t.d.Clear(gfx.ColorBG)

	for i := range t.fields {
		t.renderField(i)
	}
	t.renderButton()
	t.chart.Draw()

	if t.dlg.open {
		t.renderDialog()
	}
	_ = t.d.Display()
}

func (t *Task) renderField(i int) {
	f := &t.fields[i]
	lr := t.layout.labels[i]
	t.d.Text(lr.X, lr.Y, t.d.Truncate(f.label, lr.W), gfx.ColorFG)

	r := t.layout.fields[i]
	focused := t.focus == i
	border := gfx.ColorBorder
	if focused {
		border = gfx.ColorFocus
	}
	t.d.FillRect(r, gfx.ColorFieldBG)
	t.d.StrokeRect(r, border)

	maxW := r.W - 2*fieldPad - 2
	f.fitScroll(maxW, t.d.TextWidth)
	vis := f.visible(maxW, t.d.TextWidth)
	tx := r.X + fieldPad
	ty := r.Y + (r.H-gfx.LineHeight)/2
	t.d.Text(tx, ty, string(vis), gfx.ColorFG)

	if focused {
		cx := tx + t.d.TextWidth(string(f.text[f.scroll:f.cursor]))
		t.d.FillRect(gfx.Rect{X: cx, Y: ty, W: 1, H: gfx.LineHeight}, gfx.ColorFG)
	}
}

func (t *Task) renderButton() {
	r := t.layout.button
	bg := gfx.ColorButtonBG
	t.d.FillRect(r, bg)
	border := gfx.ColorBorder
	if t.focus == focusButton {
		border = gfx.ColorFocus
	}
	t.d.StrokeRect(r, border)
	tw := t.d.TextWidth(LabelPlot)
	t.d.Text(r.X+(r.W-tw)/2, r.Y+(r.H-gfx.LineHeight)/2, LabelPlot, gfx.ColorFG)
}

// placeDialog wraps the dialog message and positions the box and its OK button.
func (t *Task) placeDialog() {
	if t.d == nil {
		return
	}
	screen := t.d.Bounds()
	bw := screen.W - 4*pad
	if bw > 320 {
		bw = 320
	}
	textW := bw - 4*pad
	t.dlg.lines = wrapText(t.dlg.message, textW, t.d.TextWidth)

	bh := gfx.LineHeight + 6 + len(t.dlg.lines)*gfx.LineHeight + 2*pad + buttonH + pad
	box := gfx.Rect{X: (screen.W - bw) / 2, Y: (screen.H - bh) / 2, W: bw, H: bh}
	t.dlg.box = box

	okW := t.d.TextWidth(LabelOK) + 24
	t.dlg.ok = gfx.Rect{X: box.X + (box.W-okW)/2, Y: box.Y + box.H - buttonH - pad, W: okW, H: buttonH}
}

func (t *Task) renderDialog() {
	box := t.dlg.box
	t.d.FillRect(box.Inset(-2), gfx.ColorShade)
	t.d.FillRect(box, gfx.ColorFieldBG)
	t.d.StrokeRect(box, gfx.ColorBorder)

	title := gfx.Rect{X: box.X, Y: box.Y, W: box.W, H: gfx.LineHeight + 6}
	t.d.FillRect(title, gfx.ColorButtonBG)
	t.d.Text(title.X+pad, title.Y+3, t.d.Truncate(t.dlg.title, title.W-2*pad), gfx.ColorFG)

	textW := box.W - 4*pad
	y := title.Y + title.H + pad
	for _, line := range t.dlg.lines {
		t.d.Text(box.X+2*pad, y, t.d.Truncate(line, textW), gfx.ColorError)
		y += gfx.LineHeight
	}

	ok := t.dlg.ok
	t.d.FillRect(ok, gfx.ColorButtonBG)
	t.d.StrokeRect(ok, gfx.ColorFocus)
	t.d.Text(ok.X+12, ok.Y+(ok.H-gfx.LineHeight)/2, LabelOK, gfx.ColorFG)
}
