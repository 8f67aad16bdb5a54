package core

import (
	"strings"
	"unicode/utf8"
)

// Cell is one character position: a rune and its foreground color.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Screen is a width x height grid of cells that games draw into. The
// platform layer turns it into styled terminal output. Drawing outside the
// grid is clipped silently.
type Screen struct {
	w, h  int
	cells []Cell // row-major
}

func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

func (s *Screen) Width() int  { return s.w }
func (s *Screen) Height() int { return s.h }

// Resize changes the grid size, keeping the overlapping top-left content.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if s.cells != nil && width == s.w && height == s.h {
		return
	}

	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = blank
	}
	for y := range min(height, s.h) {
		copy(cells[y*width:y*width+min(width, s.w)], s.cells[y*s.w:])
	}
	s.w, s.h, s.cells = width, height, cells
}

func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
}

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.w && y >= 0 && y < s.h
}

func (s *Screen) SetColor(x, y int, r rune, c Color) {
	if s.inside(x, y) {
		s.cells[y*s.w+x] = Cell{Rune: r, Color: c}
	}
}

// GetCell returns a blank cell outside the grid.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inside(x, y) {
		return blank
	}
	return s.cells[y*s.w+x]
}

func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColor(x, y, text, ColorDefault)
}

// DrawTextColor writes text one rune per cell.
func (s *Screen) DrawTextColor(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColor(x, y, r, c)
		x++
	}
}

func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	s.DrawTextColor((s.w-utf8.RuneCountInString(text))/2, y, text, c)
}

// DrawBox outlines r with light box-drawing runes.
func (s *Screen) DrawBox(r Rect, c Color) {
	right, bottom := r.Right()-1, r.Bottom()-1
	s.DrawHLine(r.X+1, r.Y, r.W-2, '─', c)
	s.DrawHLine(r.X+1, bottom, r.W-2, '─', c)
	s.DrawVLine(r.X, r.Y+1, r.H-2, '│', c)
	s.DrawVLine(right, r.Y+1, r.H-2, '│', c)
	s.SetColor(r.X, r.Y, '┌', c)
	s.SetColor(right, r.Y, '┐', c)
	s.SetColor(r.X, bottom, '└', c)
	s.SetColor(right, bottom, '┘', c)
}

func (s *Screen) DrawHLine(x, y, length int, r rune, c Color) {
	for i := range max(length, 0) {
		s.SetColor(x+i, y, r, c)
	}
}

func (s *Screen) DrawVLine(x, y, length int, r rune, c Color) {
	for i := range max(length, 0) {
		s.SetColor(x, y+i, r, c)
	}
}

// String returns the grid as plain text rows joined by newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(len(s.cells) + s.h)
	for i, cell := range s.cells {
		if i > 0 && i%s.w == 0 {
			sb.WriteByte('\n')
		}
		sb.WriteRune(cell.Rune)
	}
	return sb.String()
}
