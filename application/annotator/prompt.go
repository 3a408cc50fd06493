package annotator

import (
	"framer-go/core/geometry"
	"framer-go/domain/label"
)

// PromptRow is one selectable label row.
type PromptRow struct {
	Rect  geometry.Rect
	Label string
}

// Prompt is the label selection box shown after a drag.
type Prompt struct {
	// Target is the frozen rectangle awaiting a label.
	Target geometry.Rect
	// Box is the outline of the whole prompt.
	Box  geometry.Rect
	Rows []PromptRow
}

// LayoutPrompt places the prompt at the target's bottom-right corner, moved
// inward when it would reach past the area. Rows split the prompt height
// evenly but are never shorter than minRow.
func LayoutPrompt(target geometry.Rect, labels *label.Set, size, area geometry.Size, minRow int) Prompt {
	n := max(labels.Len(), 1)
	rowHeight := max(size.Height/n, minRow, 1)
	w := size.Width
	h := rowHeight * n

	x := target.Right()
	y := target.Bottom()
	if x+w >= area.Width {
		x = area.Width - w
	}
	if y+h >= area.Height {
		y = area.Height - h
	}
	x = max(x, 0)
	y = max(y, 0)

	p := Prompt{
		Target: target,
		Box:    geometry.Rect{X: x, Y: y, Width: w, Height: h},
		Rows:   make([]PromptRow, 0, n),
	}
	for i, l := range labels.Labels() {
		p.Rows = append(p.Rows, PromptRow{
			Rect:  geometry.Rect{X: x, Y: y + i*rowHeight, Width: w, Height: rowHeight},
			Label: l,
		})
	}
	return p
}

// HitTest returns the label of the row strictly containing pt. Points on the
// prompt border select nothing.
func (p Prompt) HitTest(pt geometry.Point) (string, bool) {
	b := p.Box
	if pt.X <= b.X || pt.X >= b.Right() || pt.Y <= b.Y || pt.Y >= b.Bottom() {
		return "", false
	}
	for _, row := range p.Rows {
		if pt.Y >= row.Rect.Y && pt.Y < row.Rect.Bottom() {
			return row.Label, true
		}
	}
	return "", false
}
