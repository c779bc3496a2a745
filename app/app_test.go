package app

import (
	"strings"
	"testing"

	"fplot/hal"
	"fplot/kernel"
)

type lineLog struct{ lines []string }

func (l *lineLog) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *lineLog) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

type testKeyboard struct{ ch chan hal.KeyEvent }

func (k testKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type testPointer struct{ ch chan hal.PointerEvent }

func (p testPointer) Events() <-chan hal.PointerEvent { return p.ch }

type testHAL struct {
	log   *lineLog
	fb    *hal.MemFramebuffer
	keys  chan hal.KeyEvent
	ptr   chan hal.PointerEvent
	ticks chan uint64
}

func newTestHAL() *testHAL {
	return &testHAL{
		log:   &lineLog{},
		fb:    hal.NewMemFramebuffer(320, 320),
		keys:  make(chan hal.KeyEvent, 64),
		ptr:   make(chan hal.PointerEvent, 8),
		ticks: make(chan uint64, 64),
	}
}

func (h *testHAL) Logger() hal.Logger   { return h.log }
func (h *testHAL) Display() hal.Display { return h }
func (h *testHAL) Input() hal.Input     { return h }
func (h *testHAL) Time() hal.Time       { return h }

func (h *testHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *testHAL) Keyboard() hal.Keyboard       { return testKeyboard{ch: h.keys} }
func (h *testHAL) Pointer() hal.Pointer         { return testPointer{ch: h.ptr} }
func (h *testHAL) Ticks() <-chan uint64         { return h.ticks }

func (h *testHAL) logged(sub string) bool {
	for _, l := range h.log.lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

func TestSystemPlotsThroughKeyboard(t *testing.T) {
	h := newTestHAL()
	s := NewSystem(h, Config{Samples: 64})

	if err := s.Step(); err != nil {
		t.Fatalf("Step error: %v", err)
	}
	if !h.logged("[info] plotter: 320x320, 64 samples") {
		t.Fatalf("log = %q", h.log.lines)
	}

	for _, r := range "x^3" {
		h.keys <- hal.KeyEvent{Press: true, Rune: r}
	}
	h.keys <- hal.KeyEvent{Code: hal.KeyDown, Press: true}
	h.keys <- hal.KeyEvent{Press: true, Rune: '-'}
	h.keys <- hal.KeyEvent{Press: true, Rune: '1'}
	h.keys <- hal.KeyEvent{Code: hal.KeyDown, Press: true}
	h.keys <- hal.KeyEvent{Press: true, Rune: '1'}
	h.keys <- hal.KeyEvent{Code: hal.KeyEnter, Press: true}

	// Without a tick the parked plotter does not run.
	_ = s.Step()
	if s.Plotter().Series() != nil {
		t.Fatal("plotter ran without a tick")
	}

	h.ticks <- 1
	h.ticks <- 2
	_ = s.Step()
	series := s.Plotter().Series()
	if series == nil || series.Len() != 64 {
		t.Fatalf("series = %+v", series)
	}
	if series.Y[0] != -1 || series.Y[63] != 1 {
		t.Fatalf("y(-1)=%v y(1)=%v", series.Y[0], series.Y[63])
	}
	if !h.logged("[info] plot x^3 on [-1, 1], 64 samples") {
		t.Fatalf("log = %q", h.log.lines)
	}
}

type panicTask struct{}

func (panicTask) Step(*kernel.Context) { panic("kaboom") }

func TestPanicIsReportedAndContained(t *testing.T) {
	h := newTestHAL()
	s := NewSystem(h, Config{})
	s.k.AddTask(panicTask{})

	_ = s.Step()

	if !h.logged("fplot panic: task=2 panic=kaboom") {
		t.Fatalf("panic not logged: %q", h.log.lines)
	}
	if h.fb.At(0, 0) != hal.RGB565(255, 255, 255) {
		t.Fatalf("panic screen not drawn: %#04x", h.fb.At(0, 0))
	}

	// The logger and plotter keep running.
	h.ticks <- 1
	h.keys <- hal.KeyEvent{Code: hal.KeyEnter, Press: true}
	_ = s.Step()
	if !s.Plotter().DialogOpen() {
		t.Fatal("plotter stopped after another task panicked")
	}
	if !h.logged("[error] plot") {
		t.Fatalf("logger stopped after another task panicked: %q", h.log.lines)
	}
}

func TestPanicLinesCapStack(t *testing.T) {
	stack := strings.Repeat("frame\n", 500)
	lines := panicLines(kernel.PanicInfo{TaskID: 1, Value: "x", Stack: []byte(stack)})
	if len(lines) != maxStackLines {
		t.Fatalf("lines=%d, want %d", len(lines), maxStackLines)
	}
	if lines[0] != "fplot panic: task=1 panic=x" || lines[1] != "stack:" {
		t.Fatalf("head = %q", lines[:2])
	}
}
