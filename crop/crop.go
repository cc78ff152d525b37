// Package crop computes wallpaper crop geometry: how much extra width a
// wallpaper should reserve for parallax travel, the minimum zoom at which
// an image covers a surface, and the exact pixel rectangle to cut so the
// result fills a screen while leaving room to scroll.
//
// Every function is pure and operates on plain pixel dimensions. Callers
// are expected to reject zero or negative dimensions before calling in;
// apart from CenterPosition nothing here validates its arguments.
package crop

import (
	"fmt"
	"math"
)

const (
	// Travel calibration: a 16:10 landscape screen gets 1.2 screen widths
	// of wallpaper, a 10:16 portrait one gets 1.5.
	aspectLandscape = 16.0 / 10.0
	aspectPortrait  = 10.0 / 16.0
	travelLandscape = 1.2
	travelPortrait  = 1.5

	// Parallax span for handheld class screens, in screen widths.
	screensSpan = 2.0
)

// TravelRatio computes the parallax travel (extra width factor) for a
// screen with the given resolution. The two calibration points define a
// line in aspect ratio which is evaluated without clamping, so extreme
// aspect ratios extrapolate beyond [1.2, 1.5].
func TravelRatio(width, height int) float64 {
	aspect := float64(width) / float64(height)

	slope := (travelLandscape - travelPortrait) / (aspectLandscape - aspectPortrait)
	intercept := travelPortrait - slope*aspectPortrait
	return slope*aspect + intercept
}

// IdealSurfaceSize computes the crop surface size for a screen with short
// dimension minDim and long dimension maxDim, leaving room for parallax in
// both orientations. Large screens scale the long dimension by the travel
// ratio; everything else spans a fixed number of screen widths but never
// less than the long dimension. Height is always the long dimension.
func IdealSurfaceSize(minDim, maxDim int, large bool) Size {
	if large {
		return Size{
			Width:  int(math.Round(float64(maxDim) * TravelRatio(maxDim, minDim))),
			Height: maxDim,
		}
	}
	return Size{
		Width:  max(int(math.Round(float64(minDim)*screensSpan)), maxDim),
		Height: maxDim,
	}
}

// CenterPosition computes where the top left corner of inner lands when it
// is placed inside outer. Vertically inner is always centered. Horizontally
// it is centered too, unless alignStart pins it to the reading start edge:
// left for LTR, right for RTL. The inner rectangle must fit completely
// inside the outer one or an error is returned.
func CenterPosition(outer, inner Size, alignStart, rtl bool) (Point, error) {
	if inner.Width > outer.Width || inner.Height > outer.Height {
		return Point{}, fmt.Errorf("inner rectangle %s should be contained completely within the outer rectangle %s", inner, outer)
	}

	var pos Point
	if alignStart {
		if rtl {
			pos.X = outer.Width - inner.Width
		}
	} else {
		pos.X = int(math.Round(float64(outer.Width-inner.Width) / 2))
	}
	pos.Y = int(math.Round(float64(outer.Height-inner.Height) / 2))
	return pos, nil
}

// MinZoom computes the minimum zoom at which outer fully covers inner.
// When the inner aspect ratio is strictly wider than the outer one the
// width binds, otherwise the height does. An exact aspect match takes the
// height branch; keep the comparison strict, the choice is visible in the
// resulting pixel crops.
func MinZoom(outer, inner Size) float64 {
	if aspect(inner) > aspect(outer) {
		return float64(inner.Width) / float64(outer.Width)
	}
	return float64(inner.Height) / float64(outer.Height)
}

// VisibleRect computes the centered sub-rectangle of outer that shows
// through inner at MinZoom(outer, inner). The binding axis spans outer
// completely; on the other axis the edges are truncated to whole pixels,
// which for odd extents places the lost pixel on the far edge.
func VisibleRect(outer, inner Size) Rect {
	centerX := float64(outer.Width) / 2
	centerY := float64(outer.Height) / 2
	if aspect(inner) > aspect(outer) {
		zoom := float64(inner.Width) / float64(outer.Width)
		visibleHeight := float64(inner.Height) / zoom
		return Rect{
			Left:   0,
			Top:    int(centerY - visibleHeight/2),
			Right:  outer.Width,
			Bottom: int(centerY + visibleHeight/2),
		}
	}
	zoom := float64(inner.Height) / float64(outer.Height)
	visibleWidth := float64(inner.Width) / zoom
	return Rect{
		Left:   int(centerX - visibleWidth/2),
		Top:    0,
		Right:  int(centerX + visibleWidth/2),
		Bottom: outer.Height,
	}
}

// Resolve computes the final crop rectangle in scaled (physical) pixels.
// raw is the wallpaper size before zoom, visible the raw area expected to
// show, screen the viewport and surface the ideal crop surface from
// IdealSurfaceSize. The crop starts as the screen sized window at the
// scroll offset implied by visible, then grows into the extra width toward
// the reading end (right for LTR, left for RTL) and into the extra height
// symmetrically, never leaving the scaled wallpaper bounds. Vertical
// growth applies the smaller of the two per-side availabilities to both
// edges so the window stays centered on the original seed.
func Resolve(raw Size, visible Rect, zoom float64, screen, surface Size, rtl bool) Rect {
	scaledWidth := int(float64(raw.Width) * zoom)
	scaledHeight := int(float64(raw.Height) * zoom)
	scrollX := int(float64(visible.Left) * zoom)
	scrollY := int(float64(visible.Top) * zoom)

	bound := Rect{Left: 0, Top: 0, Right: scaledWidth, Bottom: scaledHeight}
	crop := Rect{
		Left:   scrollX,
		Top:    scrollY,
		Right:  scrollX + screen.Width,
		Bottom: scrollY + screen.Height,
	}

	extraWidth := surface.Width - screen.Width
	extraHeightPerSide := int(float64(surface.Height-screen.Height) / 2)

	if rtl {
		crop.Left = max(crop.Left-extraWidth, bound.Left)
	} else {
		crop.Right = min(crop.Right+extraWidth, bound.Right)
	}

	availableTop := crop.Top - max(bound.Top, crop.Top-extraHeightPerSide)
	availableBottom := min(bound.Bottom, crop.Bottom+extraHeightPerSide) - crop.Bottom
	extraHeight := min(availableTop, availableBottom)
	crop.Top -= extraHeight
	crop.Bottom += extraHeight

	return crop
}

// FitToSize uniformly rescales r so that its larger dimension matches the
// larger of outWidth and outHeight. Empty rectangles pass through
// unchanged. All four coordinates scale independently and round half up,
// so an offset rectangle keeps its relative position.
func FitToSize(r Rect, outWidth, outHeight int) Rect {
	if r.IsEmpty() {
		return r
	}

	maxSizeOut := float64(max(outWidth, outHeight))
	maxSizeIn := float64(max(r.Width(), r.Height()))
	scale := maxSizeOut / maxSizeIn
	if scale == 1 {
		return r
	}
	return Rect{
		Left:   int(float64(r.Left)*scale + 0.5),
		Top:    int(float64(r.Top)*scale + 0.5),
		Right:  int(float64(r.Right)*scale + 0.5),
		Bottom: int(float64(r.Bottom)*scale + 0.5),
	}
}

func aspect(s Size) float64 {
	return float64(s.Width) / float64(s.Height)
}
