package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/twisty"
)

const (
	ambient = 0.35
	diffuse = 0.65

	// StickerInset is the fraction of a face covered by its sticker.
	StickerInset = 0.84
)

// lightDir is the fixed world-space direction towards the light.
var lightDir = mgl64.Vec3{0.45, 0.8, 0.6}.Normalize()

// Viewport is a grid of terminal cells with an assumed pixel size per cell.
type Viewport struct {
	Cols, Rows            int
	CellWidth, CellHeight int
}

// Aspect returns the pixel aspect ratio of the whole viewport.
func (v Viewport) Aspect() float64 {
	if v.Rows == 0 || v.CellHeight == 0 {
		return 1
	}
	return float64(v.Cols*v.CellWidth) / float64(v.Rows*v.CellHeight)
}

// NDC returns the normalized device coordinates of a cell's center.
func (v Viewport) NDC(col, row int) (float64, float64) {
	x := 2*(float64(col)+0.5)/float64(v.Cols) - 1
	y := 1 - 2*(float64(row)+0.5)/float64(v.Rows)
	return x, y
}

// Drag converts a cell delta to a pixel delta, +y down.
func (v Viewport) Drag(dcol, drow int) mgl64.Vec2 {
	return mgl64.Vec2{float64(dcol * v.CellWidth), float64(drow * v.CellHeight)}
}

// Cell is one rendered terminal cell.
type Cell struct {
	Filled bool
	Color  color.RGBA
}

// Frame is a rendered viewport, row-major.
type Frame struct {
	Cols, Rows int
	Cells      []Cell
}

// At returns the cell at (col, row).
func (f *Frame) At(col, row int) Cell {
	return f.Cells[row*f.Cols+col]
}

// Raster casts one ray per cell and shades the nearest cubie face.
func Raster(g *twisty.Grid, cam Camera, vp Viewport) *Frame {
	f := &Frame{Cols: vp.Cols, Rows: vp.Rows, Cells: make([]Cell, vp.Cols*vp.Rows)}
	aspect := vp.Aspect()
	for row := 0; row < vp.Rows; row++ {
		for col := 0; col < vp.Cols; col++ {
			x, y := vp.NDC(col, row)
			hit, ok := Pick(g, cam.Ray(x, y, aspect))
			if !ok {
				continue
			}
			f.Cells[row*vp.Cols+col] = Cell{
				Filled: true,
				Color:  shade(surfaceColor(hit), hit.Normal),
			}
		}
	}
	return f
}

// surfaceColor is the sticker color when the hit lies inside the sticker
// inset, otherwise the body color.
func surfaceColor(h Hit) color.RGBA {
	sticker := h.Cubie.Stickers[h.Face]
	if sticker == twisty.ColorNone {
		return sticker.RGBA()
	}
	limit := twisty.CubieSize / 2 * StickerInset
	for _, a := range twisty.Axes {
		if a == h.Face.Axis() {
			continue
		}
		if math.Abs(h.Local[a]) > limit {
			return twisty.ColorNone.RGBA()
		}
	}
	return sticker.RGBA()
}

// shade applies ambient plus Lambert diffuse lighting.
func shade(c color.RGBA, normal mgl64.Vec3) color.RGBA {
	k := ambient + diffuse*math.Max(0, normal.Dot(lightDir))
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, math.Round(float64(v)*k)))
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Render emits the frame as lines of background-colored spaces. Runs of
// equal cells share one style.
func (f *Frame) Render() string {
	var b strings.Builder
	for row := 0; row < f.Rows; row++ {
		col := 0
		for col < f.Cols {
			start := f.At(col, row)
			end := col + 1
			for end < f.Cols && f.At(end, row) == start {
				end++
			}
			run := strings.Repeat(" ", end-col)
			if start.Filled {
				run = lipgloss.NewStyle().Background(lipgloss.Color(hex(start.Color))).Render(run)
			}
			b.WriteString(run)
			col = end
		}
		if row < f.Rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
