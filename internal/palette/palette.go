// Package palette defines the fixed color sequence the player clears in order.
package palette

import "fmt"

// Color is an RGB triple.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// Hex returns the color as #RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// IsDark reports whether light text reads better on top of the color.
func (c Color) IsDark() bool {
	return int(c.R)+int(c.G)+int(c.B) < 382
}

// Entry pairs a palette color with its display name.
type Entry struct {
	Color Color
	Name  string
}

// Highlight is the color used for completed tiles. It is never a target.
var Highlight = Color{R: 255, G: 255, B: 85}

// 16-color VGA palette without yellow, in clearing order.
var entries = [...]Entry{
	{Color: Color{0, 0, 0}, Name: "Black"},
	{Color: Color{0, 0, 170}, Name: "Blue"},
	{Color: Color{0, 170, 0}, Name: "Green"},
	{Color: Color{0, 170, 170}, Name: "Cyan"},
	{Color: Color{170, 0, 0}, Name: "Red"},
	{Color: Color{170, 0, 170}, Name: "Magenta"},
	{Color: Color{170, 85, 0}, Name: "Brown"},
	{Color: Color{170, 170, 170}, Name: "Light Gray"},
	{Color: Color{85, 85, 85}, Name: "Dark Gray"},
	{Color: Color{85, 85, 255}, Name: "Light Blue"},
	{Color: Color{85, 255, 85}, Name: "Light Green"},
	{Color: Color{85, 255, 255}, Name: "Light Cyan"},
	{Color: Color{255, 85, 85}, Name: "Light Red"},
	{Color: Color{255, 85, 255}, Name: "Light Magenta"},
	{Color: Color{255, 255, 255}, Name: "White"},
}

// Size is the number of colors in the palette.
const Size = len(entries)

// Palette returns a copy of the ordered palette.
func Palette() []Entry {
	out := make([]Entry, Size)
	copy(out, entries[:])
	return out
}

// Colors returns the palette colors in order.
func Colors() []Color {
	out := make([]Color, Size)
	for i, e := range entries {
		out[i] = e.Color
	}
	return out
}

// NameOf returns the display name of a palette color.
func NameOf(c Color) (string, bool) {
	for _, e := range entries {
		if e.Color == c {
			return e.Name, true
		}
	}
	return "", false
}

// Sequence is a cursor over the palette. Index Size means exhausted.
type Sequence struct {
	index int
}

// NewSequence returns a cursor positioned on the first color.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Current returns the active target. ok is false once the sequence is exhausted.
func (s *Sequence) Current() (Entry, bool) {
	if !s.HasNext() {
		return Entry{}, false
	}
	return entries[s.index], true
}

// HasNext reports whether a target color remains.
func (s *Sequence) HasNext() bool {
	return s.index < Size
}

// Advance moves to the next color. It does nothing once exhausted.
func (s *Sequence) Advance() {
	if s.index < Size {
		s.index++
	}
}

// Index returns the 0-based cursor.
func (s *Sequence) Index() int {
	return s.index
}

// Len returns the number of colors in the sequence.
func (s *Sequence) Len() int {
	return Size
}
