package plotter

import (
	"bytes"
	"strings"
	"testing"

	"fplot/curve"
	"fplot/gfx"
	"fplot/hal"
	"fplot/kernel"
	logsvc "fplot/services/logger"
)

type fakeKeyboard struct{ ch chan hal.KeyEvent }

func (k *fakeKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type fakePointer struct{ ch chan hal.PointerEvent }

func (p *fakePointer) Events() <-chan hal.PointerEvent { return p.ch }

type fakeInput struct {
	kbd *fakeKeyboard
	ptr *fakePointer
}

func (in fakeInput) Keyboard() hal.Keyboard { return in.kbd }
func (in fakeInput) Pointer() hal.Pointer   { return in.ptr }

type fakeDisplay struct{ fb hal.Framebuffer }

func (d fakeDisplay) Framebuffer() hal.Framebuffer { return d.fb }

type lineLog struct{ lines []string }

func (l *lineLog) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *lineLog) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

type harness struct {
	t    *testing.T
	k    *kernel.Kernel
	task *Task
	fb   *hal.MemFramebuffer
	in   fakeInput
	log  *lineLog
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:   t,
		k:   kernel.New(),
		fb:  hal.NewMemFramebuffer(400, 400),
		in:  fakeInput{kbd: &fakeKeyboard{ch: make(chan hal.KeyEvent, 256)}, ptr: &fakePointer{ch: make(chan hal.PointerEvent, 16)}},
		log: &lineLog{},
	}
	ep := h.k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	h.k.AddTask(logsvc.New(h.log, ep.Restrict(kernel.RightRecv)))
	h.task = New(fakeDisplay{fb: h.fb}, h.in, ep.Restrict(kernel.RightSend), Config{})
	h.k.AddTask(h.task)
	h.step()
	return h
}

func (h *harness) step() {
	h.k.Tick()
	h.k.RunUntilIdle(64)
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.in.kbd.ch <- hal.KeyEvent{Press: true, Rune: r}
	}
	h.step()
}

func (h *harness) press(code hal.KeyCode) { h.pressShift(code, false) }

func (h *harness) pressShift(code hal.KeyCode, shift bool) {
	h.in.kbd.ch <- hal.KeyEvent{Code: code, Press: true, Shift: shift}
	h.in.kbd.ch <- hal.KeyEvent{Code: code, Press: false, Shift: shift}
	h.step()
}

func (h *harness) click(r gfx.Rect) {
	x, y := r.X+r.W/2, r.Y+r.H/2
	h.in.ptr.ch <- hal.PointerEvent{X: x, Y: y, Press: true}
	h.in.ptr.ch <- hal.PointerEvent{X: x, Y: y, Press: false}
	h.step()
}

// fill types the three inputs, leaving focus on the max field.
func (h *harness) fill(function, lo, hi string) {
	h.task.SetText(FieldFunction, function)
	h.task.SetText(FieldMin, lo)
	h.task.SetText(FieldMax, hi)
	h.task.focus = FieldMax
}

func (h *harness) chartPixels() []byte {
	r := h.task.layout.chart
	var out []byte
	buf := h.fb.Buffer()
	for y := r.Y; y < r.Y+r.H; y++ {
		row := y * h.fb.StrideBytes()
		out = append(out, buf[row+r.X*2:row+(r.X+r.W)*2]...)
	}
	return out
}

func (h *harness) logContains(sub string) bool {
	for _, l := range h.log.lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

func TestPlotSquareFromKeyboard(t *testing.T) {
	h := newHarness(t)
	h.typeText("x^2")
	h.press(hal.KeyTab)
	h.typeText("0")
	h.press(hal.KeyTab)
	h.typeText("2")
	h.press(hal.KeyEnter)

	if h.task.DialogOpen() {
		t.Fatalf("unexpected dialog: %q", h.task.DialogMessage())
	}
	s := h.task.Series()
	if s == nil || s.Len() != curve.DefaultSamples {
		t.Fatalf("series = %+v", s)
	}
	if s.Y[0] != 0 || s.Y[len(s.Y)-1] != 4 {
		t.Fatalf("y(0)=%v y(2)=%v", s.Y[0], s.Y[len(s.Y)-1])
	}
	if h.task.State() != StateIdle {
		t.Fatalf("state = %s after plot", h.task.State())
	}
	if !h.logContains("[info] plot x^2 on [0, 2], 500 samples") {
		t.Fatalf("log = %q", h.log.lines)
	}
	if h.fb.Presents() == 0 {
		t.Fatal("framebuffer never presented")
	}
}

func TestValidationErrorsShowDialog(t *testing.T) {
	tests := []struct {
		name             string
		function, lo, hi string
		want             string
	}{
		{name: "empty function", function: "", lo: "0", hi: "1", want: curve.MsgMissingFunction},
		{name: "empty max", function: "x", lo: "0", hi: "", want: curve.MsgMissingBounds},
		{name: "text min", function: "x", lo: "a", hi: "1", want: curve.MsgInvalidBounds},
		{name: "reversed", function: "x", lo: "2", hi: "1", want: curve.MsgBoundsOrder},
		{name: "bad function", function: "5x", lo: "0", hi: "1", want: curve.MsgInvalidFunction},
		{name: "unknown name", function: "y", lo: "0", hi: "1", want: curve.MsgInvalidFunction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.fill(tt.function, tt.lo, tt.hi)
			h.press(hal.KeyEnter)

			if !h.task.DialogOpen() {
				t.Fatal("dialog not shown")
			}
			if h.task.DialogTitle() != curve.ErrorTitle || h.task.DialogMessage() != tt.want {
				t.Fatalf("dialog = %q / %q, want %q", h.task.DialogTitle(), h.task.DialogMessage(), tt.want)
			}
			if h.task.Series() != nil {
				t.Fatal("chart changed on error")
			}
			if !h.logContains("[error] plot") {
				t.Fatalf("error not logged: %q", h.log.lines)
			}
			if _, failed := h.task.Plots(); failed != 1 {
				t.Fatalf("failed plots = %d", failed)
			}
		})
	}
}

func TestDialogIsModal(t *testing.T) {
	h := newHarness(t)
	h.press(hal.KeyEnter)
	if !h.task.DialogOpen() {
		t.Fatal("dialog not shown")
	}

	focus := h.task.Focus()
	h.typeText("sin(x)")
	h.press(hal.KeyTab)
	h.click(h.task.layout.button)
	if h.task.Text(FieldFunction) != "" || h.task.Focus() != focus {
		t.Fatalf("input leaked through the dialog: text=%q focus=%d", h.task.Text(FieldFunction), h.task.Focus())
	}
	if _, failed := h.task.Plots(); failed != 1 {
		t.Fatalf("button click under the dialog plotted again")
	}

	h.press(hal.KeyEscape)
	if h.task.DialogOpen() {
		t.Fatal("Escape did not dismiss the dialog")
	}

	h.press(hal.KeyEnter)
	if !h.task.DialogOpen() {
		t.Fatal("dialog not shown again")
	}
	h.click(h.task.dlg.ok)
	if h.task.DialogOpen() {
		t.Fatal("clicking OK did not dismiss the dialog")
	}

	h.press(hal.KeyEnter)
	h.press(hal.KeyEnter)
	if h.task.DialogOpen() {
		t.Fatal("Enter did not dismiss the dialog")
	}
}

func TestErrorKeepsPreviousChart(t *testing.T) {
	h := newHarness(t)
	h.fill("x^2", "0", "2")
	h.press(hal.KeyEnter)
	prev := h.task.Series()
	before := h.chartPixels()

	h.task.SetText(FieldFunction, "x +")
	h.press(hal.KeyEnter)
	if h.task.DialogMessage() != curve.MsgInvalidFunction {
		t.Fatalf("dialog = %q", h.task.DialogMessage())
	}
	h.press(hal.KeyEscape)

	if h.task.Series() != prev {
		t.Fatal("series replaced by a failed request")
	}
	if !bytes.Equal(before, h.chartPixels()) {
		t.Fatal("chart pixels changed by a failed request")
	}
}

func TestPlotLogsTypedText(t *testing.T) {
	h := newHarness(t)
	h.fill("x**2", "0", "2")
	h.press(hal.KeyEnter)
	if !h.logContains(`[info] plot x^2 (typed "x**2") on [0, 2], 500 samples`) {
		t.Fatalf("log = %q", h.log.lines)
	}
}

func TestReplotReplacesCurve(t *testing.T) {
	h := newHarness(t)
	h.fill("x^2", "0", "2")
	h.press(hal.KeyEnter)
	first := h.chartPixels()

	h.fill("5*x + 2", "-1", "1")
	h.press(hal.KeyEnter)
	s := h.task.Series()
	if s.Y[0] != -3 || s.Y[len(s.Y)-1] != 7 {
		t.Fatalf("y(-1)=%v y(1)=%v", s.Y[0], s.Y[len(s.Y)-1])
	}
	if bytes.Equal(first, h.chartPixels()) {
		t.Fatal("second curve not drawn")
	}

	h.fill("x^2", "0", "2")
	h.press(hal.KeyEnter)
	if !bytes.Equal(first, h.chartPixels()) {
		t.Fatal("old curve still visible after re-plot")
	}
	if ok, _ := h.task.Plots(); ok != 3 {
		t.Fatalf("plots = %d, want 3", ok)
	}
}

func TestFocusNavigation(t *testing.T) {
	h := newHarness(t)
	want := []int{FieldMin, FieldMax, focusButton, FieldFunction}
	for _, w := range want {
		h.press(hal.KeyTab)
		if h.task.Focus() != w {
			t.Fatalf("focus = %d, want %d", h.task.Focus(), w)
		}
	}
	h.pressShift(hal.KeyTab, true)
	if h.task.Focus() != focusButton {
		t.Fatalf("Shift+Tab focus = %d", h.task.Focus())
	}
	h.press(hal.KeyDown)
	if h.task.Focus() != FieldFunction {
		t.Fatalf("Down focus = %d", h.task.Focus())
	}
	h.press(hal.KeyUp)
	if h.task.Focus() != focusButton {
		t.Fatalf("Up focus = %d", h.task.Focus())
	}

	// Runes typed while the button has focus go nowhere.
	h.typeText("x")
	for i := 0; i < numFields; i++ {
		if h.task.Text(i) != "" {
			t.Fatalf("field %d = %q", i, h.task.Text(i))
		}
	}
}

func TestFieldEditing(t *testing.T) {
	h := newHarness(t)
	h.typeText("abc")
	h.press(hal.KeyLeft)
	h.press(hal.KeyBackspace)
	if got := h.task.Text(FieldFunction); got != "ac" {
		t.Fatalf("after backspace %q", got)
	}
	h.press(hal.KeyHome)
	h.press(hal.KeyDelete)
	if got := h.task.Text(FieldFunction); got != "c" {
		t.Fatalf("after delete %q", got)
	}
	h.press(hal.KeyEnd)
	h.typeText("os(x)")
	if got := h.task.Text(FieldFunction); got != "cos(x)" {
		t.Fatalf("after end %q", got)
	}
}

func TestMouseFocusAndPlot(t *testing.T) {
	h := newHarness(t)
	h.task.SetText(FieldFunction, "exp(x)")
	h.click(h.task.layout.fields[FieldMin])
	if h.task.Focus() != FieldMin {
		t.Fatalf("focus = %d after clicking min", h.task.Focus())
	}
	h.typeText("0")
	h.click(h.task.layout.fields[FieldMax])
	h.typeText("1")

	h.click(h.task.layout.button)
	if h.task.DialogOpen() {
		t.Fatalf("unexpected dialog %q", h.task.DialogMessage())
	}
	s := h.task.Series()
	if s == nil || s.Label() != "exp(x)" {
		t.Fatalf("series = %+v", s)
	}
	if h.task.Focus() != focusButton {
		t.Fatalf("focus = %d after clicking Plot", h.task.Focus())
	}
}

func TestComputeLayoutStacksRows(t *testing.T) {
	l := computeLayout(400, 400)
	prev := 0
	for i := 0; i < numFields; i++ {
		if l.labels[i].Y < prev || l.fields[i].Y <= l.labels[i].Y {
			t.Fatalf("row %d out of order: %+v %+v", i, l.labels[i], l.fields[i])
		}
		prev = l.fields[i].Y + l.fields[i].H
	}
	if l.button.Y < prev || l.chart.Y <= l.button.Y || l.chart.H < 200 {
		t.Fatalf("button %+v chart %+v", l.button, l.chart)
	}
}

func TestWrapText(t *testing.T) {
	width := func(s string) int { return len(s) }
	got := wrapText(curve.MsgBoundsOrder, 20, width)
	for _, line := range got {
		if len(line) > 20 {
			t.Fatalf("line %q too long", line)
		}
	}
	if strings.Join(got, " ") != curve.MsgBoundsOrder {
		t.Fatalf("wrap lost words: %q", got)
	}
}
