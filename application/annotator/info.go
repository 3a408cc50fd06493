package annotator

import (
	"fmt"

	"framer-go/core/geometry"
	"framer-go/domain/region"
)

// InfoLines describes the selected region for the side panel. Corner
// coordinates are relative to the displayed image's top-left corner.
func InfoLines(r region.Region, box geometry.DisplayBox) []string {
	x := r.X - box.MarginX
	y := r.Y - box.MarginY
	return []string{
		fmt.Sprintf("Top-left: (%d, %d)", x, y),
		fmt.Sprintf("Top-right: (%d, %d)", x+r.Width, y),
		fmt.Sprintf("Bottom-left: (%d, %d)", x, y+r.Height),
		fmt.Sprintf("Bottom-right: (%d, %d)", x+r.Width, y+r.Height),
		fmt.Sprintf("Width: %d", r.Width),
		fmt.Sprintf("Height: %d", r.Height),
		"Label: " + r.Label,
	}
}
