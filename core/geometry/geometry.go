// Package geometry maps rectangles between the pixel space of the drawable
// area and the image-relative unit space used for persistence.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSize is returned when a native or area dimension is not positive.
var ErrInvalidSize = errors.New("invalid size")

// Point is a pixel position in drawable-area coordinates.
type Point struct {
	X int
	Y int
}

// Size is a pixel extent.
type Size struct {
	Width  int
	Height int
}

// Rect is an axis-aligned pixel rectangle with its origin at the top-left corner.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	dx := p.X - r.X
	dy := p.Y - r.Y
	return dx >= 0 && dx <= r.Width && dy >= 0 && dy <= r.Height
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// UnitRect is a rectangle in image-relative units: 1.0 equals the image width
// (for X and Width) or height (for Y and Height).
type UnitRect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// DisplayBox is the placement of a possibly downscaled image inside the drawable area.
type DisplayBox struct {
	// MarginX and MarginY center the scaled image in the drawable area.
	MarginX int
	MarginY int
	// Width and Height are the displayed (scaled) image dimensions.
	Width  int
	Height int
	// Scale is displayed/native, never above 1.
	Scale float64
}

// Bounds returns the rectangle occupied by the displayed image.
func (b DisplayBox) Bounds() Rect {
	return Rect{X: b.MarginX, Y: b.MarginY, Width: b.Width, Height: b.Height}
}

// FitImageToArea computes the display box of an image of the given native size
// inside an area. Images are only ever shrunk, preserving the aspect ratio; the
// dimension with the larger overflow ratio binds, ties bind to the width.
func FitImageToArea(nativeWidth, nativeHeight, areaWidth, areaHeight int) (DisplayBox, error) {
	if nativeWidth <= 0 || nativeHeight <= 0 || areaWidth <= 0 || areaHeight <= 0 {
		return DisplayBox{}, fmt.Errorf("fit %dx%d into %dx%d: %w",
			nativeWidth, nativeHeight, areaWidth, areaHeight, ErrInvalidSize)
	}

	w, h := nativeWidth, nativeHeight
	scale := 1.0

	overflowW := float64(nativeWidth) / float64(areaWidth)
	overflowH := float64(nativeHeight) / float64(areaHeight)
	if overflowW > 1 || overflowH > 1 {
		if overflowH > overflowW {
			w = nativeWidth * areaHeight / nativeHeight
			h = areaHeight
			scale = float64(areaHeight) / float64(nativeHeight)
		} else {
			w = areaWidth
			h = nativeHeight * areaWidth / nativeWidth
			scale = float64(areaWidth) / float64(nativeWidth)
		}
		// Keep very thin images visible.
		w = max(w, 1)
		h = max(h, 1)
	}

	return DisplayBox{
		MarginX: (areaWidth - w) / 2,
		MarginY: (areaHeight - h) / 2,
		Width:   w,
		Height:  h,
		Scale:   scale,
	}, nil
}

// ToNormalized converts a drawable-area rectangle into image-relative units.
// No clamping is applied.
func ToNormalized(r Rect, box DisplayBox) UnitRect {
	dw := float64(box.Width)
	dh := float64(box.Height)
	return UnitRect{
		X:      float64(r.X-box.MarginX) / dw,
		Y:      float64(r.Y-box.MarginY) / dh,
		Width:  float64(r.Width) / dw,
		Height: float64(r.Height) / dh,
	}
}

// ScaleBack is the inverse of ToNormalized for the same display box, rounded
// to the nearest pixel.
func ScaleBack(u UnitRect, box DisplayBox) Rect {
	dw := float64(box.Width)
	dh := float64(box.Height)
	return Rect{
		X:      box.MarginX + int(math.Round(u.X*dw)),
		Y:      box.MarginY + int(math.Round(u.Y*dh)),
		Width:  int(math.Round(u.Width * dw)),
		Height: int(math.Round(u.Height * dh)),
	}
}

// ToPixels scales a unit rectangle by native image dimensions, truncating
// toward zero. The viewer uses it because it draws images unfitted.
func ToPixels(u UnitRect, width, height int) Rect {
	w := float64(width)
	h := float64(height)
	return Rect{
		X:      int(u.X * w),
		Y:      int(u.Y * h),
		Width:  int(u.Width * w),
		Height: int(u.Height * h),
	}
}

// BoundingBox returns the smallest rectangle spanning a and b.
func BoundingBox(a, b Point) Rect {
	return Rect{
		X:      min(a.X, b.X),
		Y:      min(a.Y, b.Y),
		Width:  abs(a.X - b.X),
		Height: abs(a.Y - b.Y),
	}
}

// ClampPoint clamps p into [0, area.Width] x [0, area.Height].
func ClampPoint(p Point, area Size) Point {
	return Point{
		X: clamp(p.X, 0, area.Width),
		Y: clamp(p.Y, 0, area.Height),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
