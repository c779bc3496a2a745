package plotter

import "unicode"

const maxFieldRunes = 256

// field is a single-line text input.
type field struct {
	label  string
	text   []rune
	cursor int
	scroll int
}

func (f *field) String() string { return string(f.text) }

func (f *field) set(s string) {
	f.text = []rune(s)
	f.cursor = len(f.text)
	f.scroll = 0
}

func (f *field) insert(r rune) bool {
	if !unicode.IsPrint(r) || len(f.text) >= maxFieldRunes {
		return false
	}
	f.text = append(f.text, 0)
	copy(f.text[f.cursor+1:], f.text[f.cursor:])
	f.text[f.cursor] = r
	f.cursor++
	return true
}

func (f *field) backspace() bool {
	if f.cursor <= 0 || len(f.text) == 0 {
		return false
	}
	copy(f.text[f.cursor-1:], f.text[f.cursor:])
	f.text = f.text[:len(f.text)-1]
	f.cursor--
	return true
}

func (f *field) delete() bool {
	if f.cursor >= len(f.text) {
		return false
	}
	copy(f.text[f.cursor:], f.text[f.cursor+1:])
	f.text = f.text[:len(f.text)-1]
	return true
}

func (f *field) move(delta int) bool {
	c := f.cursor + delta
	if c < 0 {
		c = 0
	}
	if c > len(f.text) {
		c = len(f.text)
	}
	if c == f.cursor {
		return false
	}
	f.cursor = c
	return true
}

func (f *field) home() bool { return f.move(-len(f.text)) }
func (f *field) end() bool  { return f.move(len(f.text)) }

// fitScroll keeps the cursor inside a window of maxW pixels, measured by width.
func (f *field) fitScroll(maxW int, width func(string) int) {
	if f.scroll > f.cursor {
		f.scroll = f.cursor
	}
	for f.scroll < f.cursor && width(string(f.text[f.scroll:f.cursor])) > maxW {
		f.scroll++
	}
}

// visible returns the runes drawn starting at scroll that fit in maxW pixels.
func (f *field) visible(maxW int, width func(string) int) []rune {
	end := len(f.text)
	for end > f.scroll && width(string(f.text[f.scroll:end])) > maxW {
		end--
	}
	return f.text[f.scroll:end]
}

// cursorAt returns the rune index closest to pixel offset px from the text start.
func (f *field) cursorAt(px int, width func(string) int) int {
	best := f.scroll
	for i := f.scroll; i <= len(f.text); i++ {
		w := width(string(f.text[f.scroll:i]))
		if w > px {
			prev := width(string(f.text[f.scroll:best]))
			if px-prev > w-px {
				return i
			}
			return best
		}
		best = i
	}
	return best
}
