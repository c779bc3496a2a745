// Package plotter is the window controller: a form with three text fields and a Plot
// button, a chart below it, and a modal dialog for errors.
package plotter

import (
	"strconv"

	"fplot/chart"
	logclient "fplot/client/logger"
	"fplot/curve"
	"fplot/gfx"
	"fplot/hal"
	"fplot/kernel"
	"fplot/proto"
)

// Field indices, in focus order. focusButton follows the last field.
const (
	FieldFunction = iota
	FieldMin
	FieldMax
	numFields

	focusButton = numFields
)

// Form labels.
const (
	LabelFunction = "Enter a function of x (e.g., 5*x^3 + 2*x):"
	LabelMin      = "Min x:"
	LabelMax      = "Max x:"
	LabelPlot     = "Plot"
	LabelOK       = "OK"
)

// State is the plot request state.
type State uint8

const (
	StateIdle State = iota
	StatePlotting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlotting:
		return "plotting"
	default:
		return "unknown"
	}
}

// Config tunes the task.
type Config struct {
	// Samples is the number of points per curve; 0 means curve.DefaultSamples.
	Samples int
}

type Task struct {
	disp   hal.Display
	in     hal.Input
	logCap kernel.Capability
	cfg    Config

	fb    hal.Framebuffer
	d     *gfx.Display
	chart *chart.Chart

	initialized bool
	dirty       bool

	fields [numFields]field
	focus  int
	state  State
	dlg    dialog

	layout layout

	plots  int
	errors int
}

func New(disp hal.Display, in hal.Input, logCap kernel.Capability, cfg Config) *Task {
	if cfg.Samples <= 0 {
		cfg.Samples = curve.DefaultSamples
	}
	t := &Task{disp: disp, in: in, logCap: logCap, cfg: cfg}
	t.fields[FieldFunction].label = LabelFunction
	t.fields[FieldMin].label = LabelMin
	t.fields[FieldMax].label = LabelMax
	return t
}

func (t *Task) Step(ctx *kernel.Context) {
	if !t.initialized {
		if !t.init(ctx) {
			ctx.BlockOnTick()
			return
		}
	}

	t.drainInput(ctx)

	if t.dirty {
		t.render()
		t.dirty = false
	}
	ctx.BlockOnTick()
}

func (t *Task) init(ctx *kernel.Context) bool {
	if t.disp == nil {
		return false
	}
	t.fb = t.disp.Framebuffer()
	if t.fb == nil || t.fb.Format() != hal.PixelFormatRGB565 {
		return false
	}
	t.d = gfx.New(t.fb)
	t.layout = computeLayout(t.fb.Width(), t.fb.Height())
	t.chart = chart.New(t.d, t.layout.chart)
	t.chart.Hint = "Enter a function and press Plot"
	t.initialized = true
	t.dirty = true
	logclient.Logf(ctx, t.logCap, proto.LevelInfo, "plotter: %dx%d, %d samples", t.fb.Width(), t.fb.Height(), t.cfg.Samples)
	return true
}

func (t *Task) drainInput(ctx *kernel.Context) {
	if t.in == nil {
		return
	}
	var keys <-chan hal.KeyEvent
	if kbd := t.in.Keyboard(); kbd != nil {
		keys = kbd.Events()
	}
	var ptrs <-chan hal.PointerEvent
	if ptr := t.in.Pointer(); ptr != nil {
		ptrs = ptr.Events()
	}

	for {
		select {
		case ev := <-keys:
			t.handleKey(ctx, ev)
			continue
		default:
		}
		select {
		case ev := <-ptrs:
			t.handlePointer(ctx, ev)
			continue
		default:
		}
		return
	}
}

func (t *Task) handleKey(ctx *kernel.Context, ev hal.KeyEvent) {
	if !ev.Press {
		return
	}
	if t.dlg.open {
		switch ev.Code {
		case hal.KeyEnter, hal.KeyEscape:
			t.dlg.dismiss()
			t.dirty = true
		}
		return
	}

	if ev.Code == hal.KeyUnknown {
		if ev.Rune != 0 && t.focus < numFields && t.fields[t.focus].insert(ev.Rune) {
			t.dirty = true
		}
		return
	}

	f := t.focusedField()
	changed := false
	switch ev.Code {
	case hal.KeyTab:
		if ev.Shift {
			t.moveFocus(-1)
		} else {
			t.moveFocus(1)
		}
		changed = true
	case hal.KeyDown:
		t.moveFocus(1)
		changed = true
	case hal.KeyUp:
		t.moveFocus(-1)
		changed = true
	case hal.KeyEnter:
		t.Plot(ctx)
		changed = true
	case hal.KeyLeft:
		changed = f != nil && f.move(-1)
	case hal.KeyRight:
		changed = f != nil && f.move(1)
	case hal.KeyHome:
		changed = f != nil && f.home()
	case hal.KeyEnd:
		changed = f != nil && f.end()
	case hal.KeyBackspace:
		changed = f != nil && f.backspace()
	case hal.KeyDelete:
		changed = f != nil && f.delete()
	}
	if changed {
		t.dirty = true
	}
}

func (t *Task) handlePointer(ctx *kernel.Context, ev hal.PointerEvent) {
	if !ev.Press {
		return
	}
	if t.dlg.open {
		if t.dlg.ok.Contains(ev.X, ev.Y) {
			t.dlg.dismiss()
			t.dirty = true
		}
		return
	}

	for i := range t.fields {
		r := t.layout.fields[i]
		if !r.Contains(ev.X, ev.Y) {
			continue
		}
		t.focus = i
		f := &t.fields[i]
		f.cursor = f.cursorAt(ev.X-(r.X+fieldPad), t.d.TextWidth)
		t.dirty = true
		return
	}
	if t.layout.button.Contains(ev.X, ev.Y) {
		t.focus = focusButton
		t.Plot(ctx)
		t.dirty = true
	}
}

func (t *Task) focusedField() *field {
	if t.focus < 0 || t.focus >= numFields {
		return nil
	}
	return &t.fields[t.focus]
}

func (t *Task) moveFocus(delta int) {
	n := numFields + 1
	t.focus = ((t.focus+delta)%n + n) % n
}

// Plot runs one plot request with the current field contents.
//
// On failure the error dialog is shown and the chart keeps its previous curve.
func (t *Task) Plot(ctx *kernel.Context) {
	t.state = StatePlotting
	defer func() { t.state = StateIdle }()

	function := t.fields[FieldFunction].String()
	minText := t.fields[FieldMin].String()
	maxText := t.fields[FieldMax].String()

	s, err := curve.Plot(function, minText, maxText, t.cfg.Samples)
	if err != nil {
		t.errors++
		logclient.Logf(ctx, t.logCap, proto.LevelError, "plot %q on [%q, %q]: %v", function, minText, maxText, err)
		t.dlg.show(curve.ErrorTitle, curve.Message(err))
		t.placeDialog()
		t.dirty = true
		return
	}

	t.plots++
	if t.chart != nil {
		t.chart.SetSeries(s)
	}
	label := s.Label()
	if src := s.Expr.Source(); src != label {
		label += " (typed " + strconv.Quote(src) + ")"
	}
	logclient.Logf(ctx, t.logCap, proto.LevelInfo, "plot %s on [%g, %g], %d samples", label, s.Domain.Min, s.Domain.Max, s.Len())
	t.dirty = true
}

// SetText replaces the contents of field i.
func (t *Task) SetText(i int, s string) {
	if i < 0 || i >= numFields {
		return
	}
	t.fields[i].set(s)
	t.dirty = true
}

// Text returns the contents of field i.
func (t *Task) Text(i int) string {
	if i < 0 || i >= numFields {
		return ""
	}
	return t.fields[i].String()
}

func (t *Task) State() State            { return t.state }
func (t *Task) Focus() int              { return t.focus }
func (t *Task) DialogOpen() bool        { return t.dlg.open }
func (t *Task) DialogMessage() string   { return t.dlg.message }
func (t *Task) DialogTitle() string     { return t.dlg.title }
func (t *Task) Plots() (ok, failed int) { return t.plots, t.errors }

// Series returns the curve currently on the chart, or nil.
func (t *Task) Series() *curve.Series {
	if t.chart == nil {
		return nil
	}
	return t.chart.Series()
}
