package gallery

import (
	"math/rand"
	"strings"

	"github.com/vovakirdan/chromashot/internal/core"
)

// Color represents a charge color in the game.
// The palette is fixed at four entries and matching is categorical:
// a bolt scores only on exact palette equality, never on proximity.
type Color uint8

const (
	ColorBlue Color = iota
	ColorGreen
	ColorRed
	ColorYellow
	ColorCount // Sentinel value for iteration
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	default:
		return "unknown"
	}
}

// Next returns the color after c in cycle order, wrapping at the end of
// the palette.
func (c Color) Next() Color {
	return (c + 1) % ColorCount
}

// Cell returns the screen color used to draw entities of this color.
func (c Color) Cell() core.Color {
	switch c {
	case ColorBlue:
		return core.ColorBrightBlue
	case ColorGreen:
		return core.ColorBrightGreen
	case ColorRed:
		return core.ColorBrightRed
	case ColorYellow:
		return core.ColorBrightYellow
	default:
		return core.ColorDefault
	}
}

// ParseColor converts a string to a Color.
// Returns ColorBlue and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "blue", "b":
		return ColorBlue, true
	case "green", "g":
		return ColorGreen, true
	case "red", "r":
		return ColorRed, true
	case "yellow", "y":
		return ColorYellow, true
	default:
		return ColorBlue, false
	}
}

// AllColors returns a slice of all valid colors.
func AllColors() []Color {
	return []Color{ColorBlue, ColorGreen, ColorRed, ColorYellow}
}

// randomColor draws a palette color uniformly.
func randomColor(rng *rand.Rand) Color {
	return Color(rng.Intn(int(ColorCount)))
}
