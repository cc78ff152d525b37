// Enumerations shared between configuration and the planning pipeline are
// kept in their own package so neither side has to import the other.
package common

//go:generate go tool go-enum --marshal --names --mustparse --nocase

// Reading direction of the target environment, decides which edge parallax
// margin grows from.
// ENUM(ltr, rtl)
type Direction int

func (d Direction) IsRTL() bool {
	return d == DirectionRtl
}

// Horizontal placement of the screen window inside the crop surface when
// the wallpaper is at rest.
// ENUM(centered, start)
type Alignment int

func (a Alignment) IsStart() bool {
	return a == AlignmentStart
}

// Rendering format for computed crop plans.
// ENUM(text, yaml)
type PlanFormat int

func (f PlanFormat) Ext() string {
	switch f {
	case PlanFormatText:
		return ".txt"
	case PlanFormatYaml:
		return ".yaml"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
