package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color style.
type Color uint8

// Predefined colors. The tile shades follow the usual 2048 palette,
// from pale for small tiles to saturated for large ones.
const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite
	ColorBrightWhite
	ColorRed
	ColorBrightRed
	ColorGreen
	ColorBrightGreen
	ColorYellow
	ColorBrightYellow
	ColorOrange
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorTile2
	ColorTile4
	ColorTile8
	ColorTile16
	ColorTile32
	ColorTile64
	ColorTile128
	ColorTile256
	ColorTile512
	ColorTile1024
	ColorTile2048
	ColorTileSuper
)

// TileColor returns the color used to draw a tile of the given value.
// Values above 2048 share a single color.
func TileColor(value int) Color {
	switch value {
	case 0:
		return ColorGray
	case 2:
		return ColorTile2
	case 4:
		return ColorTile4
	case 8:
		return ColorTile8
	case 16:
		return ColorTile16
	case 32:
		return ColorTile32
	case 64:
		return ColorTile64
	case 128:
		return ColorTile128
	case 256:
		return ColorTile256
	case 512:
		return ColorTile512
	case 1024:
		return ColorTile1024
	case 2048:
		return ColorTile2048
	default:
		return ColorTileSuper
	}
}
