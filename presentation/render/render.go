// Package render draws session and viewer snapshots into RGBA frames.
// Frames are plain images so they can be shown by any canvas and
// inspected pixel by pixel in tests.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"framer-go/application/annotator"
	"framer-go/application/session"
	"framer-go/application/viewer"
	"framer-go/core/geometry"
)

// Palette used for every frame.
var (
	Background = color.RGBA{255, 255, 255, 255}
	Outline    = color.RGBA{255, 0, 0, 255}
	Selected   = color.RGBA{0, 255, 0, 255}
	Ink        = color.RGBA{0, 0, 0, 255}
	LabelInk   = color.RGBA{255, 255, 255, 255}
)

// LineWidth is the stroke width of outlines and separators.
const LineWidth = 2

var face = basicfont.Face7x13

// Annotation draws the annotation window: the scaled image inside the
// drawable area, regions with their labels, the live drag, the label
// prompt and, to the right, an info panel infoWidth pixels wide.
func Annotation(v session.View, infoWidth int) *image.RGBA {
	area := v.Area
	dst := image.NewRGBA(image.Rect(0, 0, area.Width+max(infoWidth, 0), area.Height))
	fill(dst, dst.Bounds(), Background)

	if v.Picture != nil {
		origin := image.Pt(v.Box.MarginX, v.Box.MarginY)
		draw.Draw(dst, v.Picture.Bounds().Sub(v.Picture.Bounds().Min).Add(origin), v.Picture, v.Picture.Bounds().Min, draw.Src)
	}

	a := v.Annotation
	for _, r := range a.Regions {
		stroke(dst, toImage(r.Rect), Outline, LineWidth)
		textCentered(dst, toImage(r.Rect), r.Label, LabelInk)
	}
	if a.Selected >= 0 && a.Selected < len(a.Regions) {
		stroke(dst, toImage(a.Regions[a.Selected].Rect), Selected, LineWidth)
	}
	if a.Dragging {
		stroke(dst, toImage(a.Live), Outline, LineWidth)
	}
	if a.Prompt != nil {
		stroke(dst, toImage(a.Prompt.Target), Outline, LineWidth)
		drawPrompt(dst, a.Prompt.Box, a.Prompt.Rows)
	}

	if infoWidth > 0 {
		// Separator between the image area and the info panel
		fill(dst, image.Rect(area.Width, 0, area.Width+LineWidth, area.Height), Ink)
		drawInfo(dst, image.Rect(area.Width+LineWidth, 0, area.Width+infoWidth, area.Height), v.Info)
	}
	return dst
}

// Review draws a viewer snapshot: the image at native size with its
// persisted boxes outlined.
func Review(v viewer.View) *image.RGBA {
	if v.Picture == nil {
		dst := image.NewRGBA(image.Rect(0, 0, 1, 1))
		fill(dst, dst.Bounds(), Background)
		return dst
	}
	b := v.Picture.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	fill(dst, dst.Bounds(), Background)
	draw.Draw(dst, dst.Bounds(), v.Picture, b.Min, draw.Src)
	for _, r := range v.Regions {
		stroke(dst, toImage(r.Rect), Outline, LineWidth)
	}
	return dst
}

func drawPrompt(dst *image.RGBA, box geometry.Rect, rows []annotator.PromptRow) {
	b := toImage(box)
	fill(dst, b, Background)
	for _, row := range rows {
		r := toImage(row.Rect)
		// Line above every row, which also draws the top border
		fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+LineWidth), Ink)
		textCentered(dst, r, row.Label, Ink)
	}
	fill(dst, image.Rect(b.Min.X, b.Max.Y-LineWidth, b.Max.X, b.Max.Y), Ink)
	fill(dst, image.Rect(b.Min.X, b.Min.Y, b.Min.X+LineWidth, b.Max.Y), Ink)
	fill(dst, image.Rect(b.Max.X-LineWidth, b.Min.Y, b.Max.X, b.Max.Y), Ink)
}

// drawInfo writes lines horizontally centered in panel, one blank line apart.
func drawInfo(dst *image.RGBA, panel image.Rectangle, lines []string) {
	lineHeight := face.Metrics().Height.Ceil()
	for i, line := range lines {
		width := font.MeasureString(face, line).Ceil()
		x := panel.Min.X + max((panel.Dx()-width)/2, 0)
		y := panel.Min.Y + lineHeight*2*(i+1)
		drawText(dst, image.Pt(x, y), line, Ink)
	}
}

func textCentered(dst *image.RGBA, r image.Rectangle, text string, c color.Color) {
	if text == "" {
		return
	}
	width := font.MeasureString(face, text).Ceil()
	m := face.Metrics()
	x := r.Min.X + (r.Dx()-width)/2
	// Baseline that centers the ascent plus descent box vertically
	y := r.Min.Y + (r.Dy()+m.Ascent.Ceil()-m.Descent.Ceil())/2
	drawText(dst, image.Pt(x, y), text, c)
}

func drawText(dst *image.RGBA, baseline image.Point, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(baseline.X, baseline.Y),
	}
	d.DrawString(text)
}

// stroke draws the border of r inward with the given thickness.
func stroke(dst *image.RGBA, r image.Rectangle, c color.Color, thick int) {
	if r.Empty() {
		return
	}
	t := min(thick, (r.Dx()+1)/2, (r.Dy()+1)/2)
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t), c)
	fill(dst, image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y), c)
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y), c)
	fill(dst, image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func fill(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

func toImage(r geometry.Rect) image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}
