// Package region defines labeled rectangles and the mutable collection of
// regions drawn over the active image.
package region

import (
	"fmt"

	"framer-go/core/geometry"
)

// Region is a labeled pixel rectangle in drawable-area coordinates.
type Region struct {
	geometry.Rect

	// Label is a member of the configured label set
	Label string
}

// New creates a region from a rectangle and a label.
func New(rect geometry.Rect, label string) Region {
	return Region{Rect: rect, Label: label}
}

// Normalize converts the region into image-relative units for the given display box.
func (r Region) Normalize(box geometry.DisplayBox) Normalized {
	return Normalized{
		UnitRect: geometry.ToNormalized(r.Rect, box),
		Label:    r.Label,
	}
}

func (r Region) String() string {
	return fmt.Sprintf("%s %s", r.Label, r.Rect)
}

// Normalized is a region in image-relative units. It is the only form that is persisted.
type Normalized struct {
	geometry.UnitRect

	Label string
}

// Pixels scales the normalized region by native image dimensions.
func (n Normalized) Pixels(width, height int) Region {
	return Region{
		Rect:  geometry.ToPixels(n.UnitRect, width, height),
		Label: n.Label,
	}
}
