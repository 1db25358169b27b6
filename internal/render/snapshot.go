package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/vector"
	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/twisty"
)

// Background is the snapshot clear color.
var Background = color.RGBA{0x1e, 0x1e, 0x2e, 0xff}

// polygon is one projected quad ready to fill.
type polygon struct {
	depth  float64
	body   [4]mgl64.Vec2
	inset  [4]mgl64.Vec2
	normal mgl64.Vec3
	color  twisty.Color
}

// Snapshot renders the grid from cam into a w x h image. Faces are culled
// against the eye and painted far to near.
func Snapshot(g *twisty.Grid, cam Camera, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	polys := collectFaces(g, cam, w, h)
	sort.Slice(polys, func(i, j int) bool { return polys[i].depth > polys[j].depth })

	r := vector.NewRasterizer(w, h)
	for _, p := range polys {
		fill(r, img, p.body, shade(twisty.ColorNone.RGBA(), p.normal))
		if p.color != twisty.ColorNone {
			fill(r, img, p.inset, shade(p.color.RGBA(), p.normal))
		}
	}
	return img
}

func collectFaces(g *twisty.Grid, cam Camera, w, h int) []polygon {
	const half = twisty.CubieSize / 2
	eye := cam.Eye()
	aspect := float64(w) / float64(h)

	var polys []polygon
	for _, c := range g.Cubies() {
		for f := twisty.FacePosX; f <= twisty.FaceNegZ; f++ {
			normal := c.WorldNormal(f)
			center := c.Position.Add(normal.Mul(half))
			if normal.Dot(eye.Sub(center)) <= 0 {
				continue
			}

			p := polygon{
				depth:  eye.Sub(center).Len(),
				normal: normal,
				color:  c.Stickers[f],
			}
			visible := true
			for i, corner := range faceCorners(f) {
				world := c.Position.Add(c.Orientation.Rotate(corner))
				inset := center.Add(world.Sub(center).Mul(StickerInset))

				bp, ok1 := toPixels(cam, world, aspect, w, h)
				ip, ok2 := toPixels(cam, inset, aspect, w, h)
				if !ok1 || !ok2 {
					visible = false
					break
				}
				p.body[i], p.inset[i] = bp, ip
			}
			if visible {
				polys = append(polys, p)
			}
		}
	}
	return polys
}

// faceCorners returns the four local-space corners of a face in winding
// order.
func faceCorners(f twisty.Face) [4]mgl64.Vec3 {
	const half = twisty.CubieSize / 2
	a := f.Axis()
	u, v := (a+1)%3, (a+2)%3
	signs := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	var out [4]mgl64.Vec3
	for i, s := range signs {
		out[i][a] = f.Sign() * half
		out[i][u] = s[0] * half
		out[i][v] = s[1] * half
	}
	return out
}

func toPixels(cam Camera, p mgl64.Vec3, aspect float64, w, h int) (mgl64.Vec2, bool) {
	ndc, ok := cam.Project(p, aspect)
	if !ok {
		return mgl64.Vec2{}, false
	}
	return mgl64.Vec2{
		(ndc[0]*0.5 + 0.5) * float64(w),
		(1 - (ndc[1]*0.5 + 0.5)) * float64(h),
	}, true
}

func fill(r *vector.Rasterizer, dst draw.Image, quad [4]mgl64.Vec2, c color.RGBA) {
	b := dst.Bounds()
	r.Reset(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	r.MoveTo(float32(quad[0][0]), float32(quad[0][1]))
	for _, p := range quad[1:] {
		r.LineTo(float32(p[0]), float32(p[1]))
	}
	r.ClosePath()
	r.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// RenderViews renders one snapshot per camera concurrently. The grid must
// not be mutated while this runs.
func RenderViews(ctx context.Context, g *twisty.Grid, cams []Camera, w, h int) ([]*image.RGBA, error) {
	out := make([]*image.RGBA, len(cams))
	eg, ctx := errgroup.WithContext(ctx)
	for i, cam := range cams {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = Snapshot(g, cam, w, h)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}
