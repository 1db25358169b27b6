package twisty

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Color is a sticker color.
type Color byte

const (
	ColorNone   Color = 0 // Inner face, no sticker
	White       Color = 1 // +Y at home
	Yellow      Color = 2 // -Y at home
	Blue        Color = 3 // +Z at home
	Green       Color = 4 // -Z at home
	Red         Color = 5 // +X at home
	Orange      Color = 6 // -X at home
	colorsCount       = 7
)

func (c Color) String() string {
	switch c {
	case ColorNone:
		return "-"
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Blue:
		return "B"
	case Green:
		return "G"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// Name returns the lowercase color name ("white", "red", ...).
func (c Color) Name() string {
	switch c {
	case White:
		return "white"
	case Yellow:
		return "yellow"
	case Blue:
		return "blue"
	case Green:
		return "green"
	case Red:
		return "red"
	case Orange:
		return "orange"
	default:
		return "none"
	}
}

// ParseColor parses a color name as returned by Name.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c := White; c < colorsCount; c++ {
		if c.Name() == s {
			return c, nil
		}
	}
	return ColorNone, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// RGBA returns the display color. ColorNone is the near-black plastic body.
func (c Color) RGBA() color.RGBA {
	switch c {
	case White:
		return color.RGBA{0xff, 0xff, 0xff, 0xff}
	case Yellow:
		return color.RGBA{0xff, 0xff, 0x00, 0xff}
	case Blue:
		return color.RGBA{0x00, 0x00, 0xff, 0xff}
	case Green:
		return color.RGBA{0x00, 0xff, 0x00, 0xff}
	case Red:
		return color.RGBA{0xff, 0x00, 0x00, 0xff}
	case Orange:
		return color.RGBA{0xff, 0x88, 0x00, 0xff}
	default:
		return color.RGBA{0x14, 0x14, 0x14, 0xff}
	}
}

// Face identifies one of a cubie's six local faces by its outward direction.
type Face int

const (
	FacePosX Face = 0
	FaceNegX Face = 1
	FacePosY Face = 2
	FaceNegY Face = 3
	FacePosZ Face = 4
	FaceNegZ Face = 5
)

func (f Face) String() string {
	switch f {
	case FacePosX:
		return "+x"
	case FaceNegX:
		return "-x"
	case FacePosY:
		return "+y"
	case FaceNegY:
		return "-y"
	case FacePosZ:
		return "+z"
	case FaceNegZ:
		return "-z"
	default:
		return "?"
	}
}

// Axis returns the axis the face is perpendicular to.
func (f Face) Axis() Axis {
	return Axis(f / 2)
}

// Sign returns +1 for the positive faces and -1 for the negative ones.
func (f Face) Sign() float64 {
	if f%2 == 0 {
		return 1
	}
	return -1
}

// Normal returns the face's outward unit normal in cubie-local space.
func (f Face) Normal() mgl64.Vec3 {
	return f.Axis().Unit().Mul(f.Sign())
}

// FaceFor returns the face on the given side of an axis.
func FaceFor(a Axis, positive bool) Face {
	f := Face(a * 2)
	if !positive {
		f++
	}
	return f
}

// homeColor is the sticker each outward face carries when the puzzle is new.
var homeColor = [6]Color{
	FacePosX: Red,
	FaceNegX: Orange,
	FacePosY: White,
	FaceNegY: Yellow,
	FacePosZ: Blue,
	FaceNegZ: Green,
}
