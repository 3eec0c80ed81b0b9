package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/philipparndt/gosketch/internal/state"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Renderer draws paths onto an image. Eraser paths remove the pixels drawn
// by earlier paths inside their footprint and leave later paths untouched,
// so every render replays the whole sequence onto a cleared image.
type Renderer struct {
	mask    *image.Alpha
	keep    *image.Alpha
	scratch *image.RGBA
}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render clears dst and draws paths in order. Paths are in coordinates
// relative to the top-left corner of dst.
func (r *Renderer) Render(dst draw.Image, paths []state.Path) {
	b := dst.Bounds()
	draw.Draw(dst, b, image.Transparent, image.Point{}, draw.Src)
	if b.Empty() {
		return
	}

	w, h := b.Dx(), b.Dy()
	ink := rasterx.NewDasher(w, h, rasterx.NewScannerGV(w, h, dst, b))
	var erase *rasterx.Dasher

	for _, p := range paths {
		if len(p.Points) < 2 || p.Width <= 0 {
			continue
		}
		if !p.IsEraser {
			stroke(ink, p, p.Color)
			continue
		}

		if erase == nil {
			if r.mask == nil || r.mask.Bounds() != b {
				r.mask = image.NewAlpha(b)
				r.keep = image.NewAlpha(b)
				r.scratch = image.NewRGBA(b)
			}
			erase = rasterx.NewDasher(w, h, rasterx.NewScannerGV(w, h, r.mask, b))
		}
		clear(r.mask.Pix)
		stroke(erase, p, color.Opaque)

		r.eraseMasked(dst, b)
	}
}

// eraseMasked scales every dst pixel by 1 - coverage of the eraser mask
func (r *Renderer) eraseMasked(dst draw.Image, b image.Rectangle) {
	for i, m := range r.mask.Pix {
		r.keep.Pix[i] = 255 - m
	}
	draw.Draw(r.scratch, b, dst, b.Min, draw.Src)
	draw.DrawMask(dst, b, r.scratch, b.Min, r.keep, b.Min, draw.Src)
}

func stroke(d *rasterx.Dasher, p state.Path, c color.Color) {
	d.Clear()
	d.SetStroke(fixed.Int26_6(p.Width*64), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	d.SetColor(c)
	d.Start(rasterx.ToFixedP(p.Points[0].X, p.Points[0].Y))
	for _, pt := range p.Points[1:] {
		d.Line(rasterx.ToFixedP(pt.X, pt.Y))
	}
	d.Stop(false)
	d.Draw()
}
