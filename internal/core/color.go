package core

// Color is a foreground color for a screen cell.
// The platform layer maps each value to an ANSI 256-color code.
type Color uint8

// Scorecard palette.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorWhite
	ColorBrightWhite
	ColorOrange
	ColorGray
)
