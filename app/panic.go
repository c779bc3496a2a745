package app

import (
	"fmt"
	"image/color"
	"strings"

	"fplot/gfx"
	"fplot/hal"
	"fplot/kernel"
)

const maxStackLines = 64

func installPanicHandler(k *kernel.Kernel, h hal.HAL) {
	k.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}

		disp := h.Display()
		if disp == nil {
			return
		}
		fb := disp.Framebuffer()
		if fb == nil {
			return
		}
		drawPanic(gfx.New(fb), lines)
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		fmt.Sprintf("fplot panic: task=%d panic=%v", info.TaskID, info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line == "" {
			continue
		}
		if len(lines) >= maxStackLines {
			break
		}
		lines = append(lines, line)
	}
	return lines
}

func drawPanic(d *gfx.Display, lines []string) {
	d.Clear(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	fg := color.RGBA{A: 255}

	b := d.Bounds()
	y := 2
	for _, line := range lines {
		line = strings.ReplaceAll(line, "\t", "  ")
		for len(line) > 0 {
			if y+gfx.LineHeight > b.H {
				_ = d.Display()
				return
			}
			chunk, rest := fitRunes(d, line, b.W-4)
			d.Text(2, y, chunk, fg)
			y += gfx.LineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = d.Display()
}

// fitRunes splits s at the longest prefix that fits in maxW pixels (at least one rune).
func fitRunes(d *gfx.Display, s string, maxW int) (string, string) {
	r := []rune(s)
	n := len(r)
	for n > 1 && d.TextWidth(string(r[:n])) > maxW {
		n--
	}
	return string(r[:n]), string(r[n:])
}
