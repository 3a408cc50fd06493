package region

import (
	"math/rand"
	"testing"

	"framer-go/core/geometry"
)

func rect(x, y, w, h int) geometry.Rect {
	return geometry.Rect{X: x, Y: y, Width: w, Height: h}
}

func pt(x, y int) geometry.Point {
	return geometry.Point{X: x, Y: y}
}

func newTestModel() *Model {
	return NewModel(geometry.Size{Width: 200, Height: 150})
}

func TestModel_FindAt(t *testing.T) {
	m := newTestModel()
	m.Add(New(rect(10, 10, 100, 50), "cat"))
	m.Add(New(rect(120, 20, 30, 30), "dog"))

	tests := []struct {
		name      string
		point     geometry.Point
		wantIndex int
		wantOK    bool
	}{
		{"inside first", pt(50, 30), 0, true},
		{"top-left edge", pt(10, 10), 0, true},
		{"bottom-right edge", pt(110, 60), 0, true},
		{"inside second", pt(130, 40), 1, true},
		{"just outside", pt(111, 30), -1, false},
		{"background", pt(5, 140), -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.FindAt(tt.point)
			if got != tt.wantIndex || ok != tt.wantOK {
				t.Errorf("FindAt(%v) = (%d, %v), want (%d, %v)", tt.point, got, ok, tt.wantIndex, tt.wantOK)
			}
		})
	}
}

func TestModel_OverlapResolvesByCreationOrder(t *testing.T) {
	m := newTestModel()
	// The large region is created first, the small one sits on top of it.
	m.Add(New(rect(0, 0, 150, 120), "big"))
	m.Add(New(rect(40, 40, 10, 10), "small"))

	i, ok := m.FindAt(pt(45, 45))
	if !ok || i != 0 {
		t.Fatalf("FindAt() = (%d, %v), want (0, true)", i, ok)
	}

	removed, ok := m.DeleteAt(pt(45, 45))
	if !ok || removed.Label != "big" {
		t.Fatalf("DeleteAt() removed %v, want big", removed)
	}

	removed, ok = m.DeleteAt(pt(45, 45))
	if !ok || removed.Label != "small" {
		t.Fatalf("second DeleteAt() removed %v, want small", removed)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestModel_DeleteAtNoMatch(t *testing.T) {
	m := newTestModel()
	m.Add(New(rect(10, 10, 20, 20), "cat"))
	m.Select(pt(15, 15))

	if _, ok := m.DeleteAt(pt(100, 100)); ok {
		t.Fatal("DeleteAt() on background reported a deletion")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
	if m.SelectedIndex() != 0 {
		t.Errorf("SelectedIndex() = %d, want 0 (unchanged)", m.SelectedIndex())
	}
}

func TestModel_SelectionClearedOnMembershipChange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Model)
	}{
		{"add", func(m *Model) { m.Add(New(rect(100, 100, 5, 5), "dog")) }},
		{"delete", func(m *Model) { m.DeleteAt(pt(150, 20)) }},
		{"clear", func(m *Model) { m.Clear() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel()
			m.Add(New(rect(10, 10, 20, 20), "cat"))
			m.Add(New(rect(140, 10, 20, 20), "cat"))
			if !m.Select(pt(15, 15)) {
				t.Fatal("Select() = false, want true")
			}

			tt.mutate(m)

			if _, ok := m.Selected(); ok {
				t.Error("selection survived a membership change")
			}
		})
	}
}

func TestModel_SelectNoMatchClears(t *testing.T) {
	m := newTestModel()
	m.Add(New(rect(10, 10, 20, 20), "cat"))
	m.Select(pt(15, 15))

	if m.Select(pt(190, 140)) {
		t.Fatal("Select() on background = true, want false")
	}
	if m.SelectedIndex() != -1 {
		t.Errorf("SelectedIndex() = %d, want -1", m.SelectedIndex())
	}
}

func TestModel_ResizeSelected(t *testing.T) {
	tests := []struct {
		name   string
		start  geometry.Rect
		dx, dy int
		steps  int
		want   geometry.Rect
	}{
		{"grow", rect(10, 10, 20, 20), 1, 1, 5, rect(10, 10, 25, 25)},
		{"shrink", rect(10, 10, 20, 20), -1, -1, 5, rect(10, 10, 15, 15)},
		{"minimum size", rect(10, 10, 3, 3), -1, -1, 10, rect(10, 10, 1, 1)},
		{"stops at right and bottom edge", rect(190, 140, 5, 5), 1, 1, 20, rect(190, 140, 10, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel()
			m.Add(New(tt.start, "cat"))
			m.Select(pt(tt.start.X, tt.start.Y))
			for i := 0; i < tt.steps; i++ {
				m.ResizeSelected(tt.dx, tt.dy)
			}
			got, _ := m.Selected()
			if got.Rect != tt.want {
				t.Errorf("ResizeSelected() = %v, want %v", got.Rect, tt.want)
			}
		})
	}
}

func TestModel_MoveSelected(t *testing.T) {
	tests := []struct {
		name   string
		start  geometry.Rect
		dx, dy int
		steps  int
		want   geometry.Rect
	}{
		{"right and down", rect(10, 10, 20, 20), 1, 1, 5, rect(15, 15, 20, 20)},
		{"stops at origin", rect(2, 2, 20, 20), -1, -1, 5, rect(0, 0, 20, 20)},
		{"stops at far edge", rect(170, 120, 20, 20), 1, 1, 50, rect(180, 130, 20, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel()
			m.Add(New(tt.start, "cat"))
			m.Select(pt(tt.start.X, tt.start.Y))
			for i := 0; i < tt.steps; i++ {
				m.MoveSelected(tt.dx, tt.dy)
			}
			got, _ := m.Selected()
			if got.Rect != tt.want {
				t.Errorf("MoveSelected() = %v, want %v", got.Rect, tt.want)
			}
		})
	}
}

func TestModel_StepWithoutSelection(t *testing.T) {
	m := newTestModel()
	m.Add(New(rect(10, 10, 20, 20), "cat"))

	if m.ResizeSelected(1, 1) {
		t.Error("ResizeSelected() without selection = true, want false")
	}
	if m.MoveSelected(1, 1) {
		t.Error("MoveSelected() without selection = true, want false")
	}
	if got := m.Regions()[0].Rect; got != rect(10, 10, 20, 20) {
		t.Errorf("region changed to %v", got)
	}
}

func TestModel_StepsStayInsideArea(t *testing.T) {
	area := geometry.Size{Width: 64, Height: 48}
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		m := NewModel(area)
		x, y := rng.Intn(area.Width), rng.Intn(area.Height)
		m.Add(New(rect(x, y, 1+rng.Intn(area.Width-x), 1+rng.Intn(area.Height-y)), "cat"))
		m.Select(pt(x, y))

		for step := 0; step < 500; step++ {
			dx, dy := rng.Intn(3)-1, rng.Intn(3)-1
			if rng.Intn(2) == 0 {
				m.ResizeSelected(dx, dy)
			} else {
				m.MoveSelected(dx, dy)
			}

			r, ok := m.Selected()
			if !ok {
				t.Fatal("selection lost during stepping")
			}
			if r.Width < 1 || r.Height < 1 {
				t.Fatalf("trial %d step %d: size %v below 1", trial, step, r.Rect)
			}
			if r.Right() > area.Width || r.Bottom() > area.Height {
				t.Fatalf("trial %d step %d: %v exceeds area %v", trial, step, r.Rect, area)
			}
			if r.X < 0 || r.Y < 0 {
				t.Fatalf("trial %d step %d: %v has negative origin", trial, step, r.Rect)
			}
		}
	}
}

func TestModel_RegionsReturnsCopy(t *testing.T) {
	m := newTestModel()
	m.Add(New(rect(10, 10, 20, 20), "cat"))

	regions := m.Regions()
	regions[0].Label = "dog"

	if got := m.Regions()[0].Label; got != "cat" {
		t.Errorf("model label = %v, want cat", got)
	}
}

func TestModel_Normalize(t *testing.T) {
	m := newTestModel()
	m.Add(New(rect(10, 10, 100, 50), "cat"))
	m.Add(New(rect(0, 0, 200, 150), "dog"))

	box := geometry.DisplayBox{Width: 200, Height: 150, Scale: 1}
	got := m.Normalize(box)

	if len(got) != 2 {
		t.Fatalf("Normalize() len = %d, want 2", len(got))
	}
	if got[0].Label != "cat" || got[1].Label != "dog" {
		t.Errorf("Normalize() order = [%s %s], want [cat dog]", got[0].Label, got[1].Label)
	}
	if got[1].UnitRect != (geometry.UnitRect{X: 0, Y: 0, Width: 1, Height: 1}) {
		t.Errorf("Normalize() full image = %+v, want unit square", got[1].UnitRect)
	}
}

func TestNormalized_Pixels(t *testing.T) {
	n := Normalized{
		UnitRect: geometry.UnitRect{X: 0.25, Y: 0.5, Width: 0.5, Height: 0.25},
		Label:    "dog",
	}
	got := n.Pixels(400, 200)
	want := New(rect(100, 100, 200, 50), "dog")
	if got != want {
		t.Errorf("Pixels() = %v, want %v", got, want)
	}
}
