package core

// Color represents a foreground color for a grid or screen cell.
// The zero value means "no color"; the platform maps the rest to
// terminal palette entries.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)
