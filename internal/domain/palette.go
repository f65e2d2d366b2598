package domain

// Palette maps an intensity level (0-4) to a display color.
type Palette [5]string

// DefaultPalette is the GitHub light theme.
var DefaultPalette = Palette{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"}

// MaxIntensity is the highest intensity level a calendar cell can carry.
const MaxIntensity = len(Palette{}) - 1

// Color returns the color for level, or an empty string when level is out of range.
func (p Palette) Color(level int) string {
	if level < 0 || level > MaxIntensity {
		return ""
	}
	return p[level]
}
