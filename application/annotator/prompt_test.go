package annotator

import (
	"testing"

	"framer-go/core/geometry"
	"framer-go/domain/label"
	"framer-go/domain/region"
)

func mustLabels(t *testing.T, labels ...string) *label.Set {
	t.Helper()
	s, err := label.NewSet(labels)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestLayoutPrompt(t *testing.T) {
	area := geometry.Size{Width: 800, Height: 600}
	size := geometry.Size{Width: 100, Height: 100}

	tests := []struct {
		name    string
		target  geometry.Rect
		labels  []string
		wantBox geometry.Rect
		wantRow int
	}{
		{
			name:    "bottom-right corner",
			target:  geometry.Rect{X: 10, Y: 10, Width: 100, Height: 50},
			labels:  []string{"cat", "dog"},
			wantBox: geometry.Rect{X: 110, Y: 60, Width: 100, Height: 100},
			wantRow: 50,
		},
		{
			name:    "pushed left",
			target:  geometry.Rect{X: 600, Y: 10, Width: 150, Height: 50},
			labels:  []string{"cat", "dog"},
			wantBox: geometry.Rect{X: 700, Y: 60, Width: 100, Height: 100},
			wantRow: 50,
		},
		{
			name:    "pushed up",
			target:  geometry.Rect{X: 10, Y: 450, Width: 50, Height: 100},
			labels:  []string{"cat", "dog"},
			wantBox: geometry.Rect{X: 60, Y: 500, Width: 100, Height: 100},
			wantRow: 50,
		},
		{
			name:    "uneven split",
			target:  geometry.Rect{X: 10, Y: 10, Width: 10, Height: 10},
			labels:  []string{"a", "b", "c"},
			wantBox: geometry.Rect{X: 20, Y: 20, Width: 100, Height: 99},
			wantRow: 33,
		},
		{
			name:    "minimum row height",
			target:  geometry.Rect{X: 10, Y: 10, Width: 10, Height: 10},
			labels:  []string{"a", "b", "c", "d", "e", "f", "g", "h"},
			wantBox: geometry.Rect{X: 20, Y: 20, Width: 100, Height: 128},
			wantRow: 16,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := LayoutPrompt(tt.target, mustLabels(t, tt.labels...), size, area, DefaultMinRowHeight)
			if p.Box != tt.wantBox {
				t.Errorf("Box = %v, want %v", p.Box, tt.wantBox)
			}
			if len(p.Rows) != len(tt.labels) {
				t.Fatalf("rows = %d, want %d", len(p.Rows), len(tt.labels))
			}
			for i, row := range p.Rows {
				if row.Label != tt.labels[i] {
					t.Errorf("row %d label = %v, want %v", i, row.Label, tt.labels[i])
				}
				if row.Rect.Height != tt.wantRow {
					t.Errorf("row %d height = %d, want %d", i, row.Rect.Height, tt.wantRow)
				}
				if row.Rect.Y != p.Box.Y+i*tt.wantRow {
					t.Errorf("row %d y = %d, want %d", i, row.Rect.Y, p.Box.Y+i*tt.wantRow)
				}
			}
		})
	}
}

func TestPrompt_HitTest(t *testing.T) {
	p := LayoutPrompt(
		geometry.Rect{X: 10, Y: 10, Width: 100, Height: 50},
		mustLabels(t, "cat", "dog"),
		geometry.Size{Width: 100, Height: 100},
		geometry.Size{Width: 800, Height: 600},
		DefaultMinRowHeight,
	)
	// Box is (110,60) 100x100: cat rows 60..110, dog 110..160.

	tests := []struct {
		name   string
		point  geometry.Point
		want   string
		wantOK bool
	}{
		{"first row", geometry.Point{X: 150, Y: 80}, "cat", true},
		{"second row", geometry.Point{X: 150, Y: 130}, "dog", true},
		{"row boundary belongs to lower row", geometry.Point{X: 150, Y: 110}, "dog", true},
		{"left border", geometry.Point{X: 110, Y: 80}, "", false},
		{"right border", geometry.Point{X: 210, Y: 80}, "", false},
		{"top border", geometry.Point{X: 150, Y: 60}, "", false},
		{"bottom border", geometry.Point{X: 150, Y: 160}, "", false},
		{"outside", geometry.Point{X: 5, Y: 5}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.HitTest(tt.point)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("HitTest(%v) = (%q, %v), want (%q, %v)", tt.point, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestInfoLines(t *testing.T) {
	r := region.New(geometry.Rect{X: 30, Y: 20, Width: 100, Height: 50}, "cat")
	box := geometry.DisplayBox{MarginX: 20, MarginY: 10, Width: 400, Height: 300, Scale: 1}

	want := []string{
		"Top-left: (10, 10)",
		"Top-right: (110, 10)",
		"Bottom-left: (10, 60)",
		"Bottom-right: (110, 60)",
		"Width: 100",
		"Height: 50",
		"Label: cat",
	}
	got := InfoLines(r, box)
	if len(got) != len(want) {
		t.Fatalf("InfoLines() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}
