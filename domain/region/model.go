package region

import "framer-go/core/geometry"

// noSelection marks an empty selection.
const noSelection = -1

// Model holds the regions of the active image in creation order and at most
// one selected region. All lookups resolve overlaps by creation order: the
// earliest region containing the point wins, regardless of size or drawing order.
//
// Model is not safe for concurrent use.
type Model struct {
	regions  []Region
	selected int
	area     geometry.Size
}

// NewModel creates an empty model whose regions are kept inside area.
func NewModel(area geometry.Size) *Model {
	return &Model{
		selected: noSelection,
		area:     area,
	}
}

// Area returns the drawable area bounding all mutations.
func (m *Model) Area() geometry.Size {
	return m.area
}

// Len returns the number of regions.
func (m *Model) Len() int {
	return len(m.regions)
}

// Regions returns a copy of the regions in creation order.
func (m *Model) Regions() []Region {
	out := make([]Region, len(m.regions))
	copy(out, m.regions)
	return out
}

// FindAt returns the index of the first region containing p, edges included.
func (m *Model) FindAt(p geometry.Point) (int, bool) {
	for i, r := range m.regions {
		if r.Contains(p) {
			return i, true
		}
	}
	return noSelection, false
}

// At returns the region at index i.
func (m *Model) At(i int) (Region, bool) {
	if i < 0 || i >= len(m.regions) {
		return Region{}, false
	}
	return m.regions[i], true
}

// Add appends a region and clears the selection.
func (m *Model) Add(r Region) {
	m.regions = append(m.regions, r)
	m.selected = noSelection
}

// DeleteAt removes the first region containing p. The selection is cleared
// when a region was removed; otherwise nothing changes.
func (m *Model) DeleteAt(p geometry.Point) (Region, bool) {
	i, ok := m.FindAt(p)
	if !ok {
		return Region{}, false
	}
	removed := m.regions[i]
	m.regions = append(m.regions[:i], m.regions[i+1:]...)
	m.selected = noSelection
	return removed, true
}

// Select selects the first region containing p, or clears the selection when
// no region matches. It reports whether a region is now selected.
func (m *Model) Select(p geometry.Point) bool {
	i, ok := m.FindAt(p)
	m.selected = i
	return ok
}

// Selected returns the selected region.
func (m *Model) Selected() (Region, bool) {
	return m.At(m.selected)
}

// SelectedIndex returns the selected index or -1.
func (m *Model) SelectedIndex() int {
	return m.selected
}

// ResizeSelected changes the width and height of the selected region by the
// given signed steps. The top-left corner stays fixed; width and height stay
// at least 1 and the right and bottom edges stay inside the area.
func (m *Model) ResizeSelected(dx, dy int) bool {
	if m.selected == noSelection {
		return false
	}
	r := &m.regions[m.selected]
	r.Width = clamp(r.Width+dx, 1, max(1, m.area.Width-r.X))
	r.Height = clamp(r.Height+dy, 1, max(1, m.area.Height-r.Y))
	r.Rect = fit(r.Rect, m.area)
	return true
}

// MoveSelected moves the selected region by the given signed steps, keeping
// it inside the area.
func (m *Model) MoveSelected(dx, dy int) bool {
	if m.selected == noSelection {
		return false
	}
	r := &m.regions[m.selected]
	r.X += dx
	r.Y += dy
	r.Rect = fit(r.Rect, m.area)
	return true
}

// Clear removes all regions and the selection.
func (m *Model) Clear() {
	m.regions = nil
	m.selected = noSelection
}

// Normalize converts all regions, in creation order, for the given display box.
func (m *Model) Normalize(box geometry.DisplayBox) []Normalized {
	out := make([]Normalized, 0, len(m.regions))
	for _, r := range m.regions {
		out = append(out, r.Normalize(box))
	}
	return out
}

// fit forces r inside area with a size of at least 1x1.
func fit(r geometry.Rect, area geometry.Size) geometry.Rect {
	r.Width = clamp(r.Width, 1, max(1, area.Width))
	r.Height = clamp(r.Height, 1, max(1, area.Height))
	r.X = clamp(r.X, 0, max(0, area.Width-r.Width))
	r.Y = clamp(r.Y, 0, max(0, area.Height-r.Height))
	return r
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
