package presentation

import (
	"context"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"framer-go/core/geometry"
	"framer-go/core/input"
	"framer-go/domain/dataset"
	"framer-go/infrastructure/imagestore"
)

// fakeDriver records inputs and finishes on Quit or an advance key release.
type fakeDriver struct {
	inputs   []input.Input
	finished bool
	err      error
}

func (d *fakeDriver) Handle(ctx context.Context, in input.Input) error {
	d.inputs = append(d.inputs, in)
	if d.err != nil {
		return d.err
	}
	switch in := in.(type) {
	case *input.Quit:
		d.finished = true
	case *input.KeyUp:
		if in.Key == input.KeyReturn {
			d.finished = true
		}
	}
	return nil
}

func (d *fakeDriver) Finished() bool { return d.finished }

func (d *fakeDriver) names() []string {
	out := make([]string, len(d.inputs))
	for i, in := range d.inputs {
		out[i] = in.InputName()
	}
	return out
}

// memorySource serves blank images of one size.
type memorySource struct {
	names []string
	size  geometry.Size
}

func (s *memorySource) List(ctx context.Context) ([]string, error) {
	if len(s.names) == 0 {
		return nil, imagestore.ErrNoImages
	}
	return s.names, nil
}

func (s *memorySource) Open(ctx context.Context, name string) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, s.size.Width, s.size.Height)), nil
}

// memoryRepository keeps the last saved record.
type memoryRepository struct {
	saved *dataset.Record
}

func (r *memoryRepository) Load(ctx context.Context) (*dataset.Record, error) {
	if r.saved == nil {
		return nil, dataset.ErrNotFound
	}
	return r.saved.Clone(), nil
}

func (r *memoryRepository) Save(ctx context.Context, rec *dataset.Record) error {
	r.saved = rec.Clone()
	return nil
}

func (r *memoryRepository) Location() string { return "memory" }

func mouse(x, y float32, button desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     button,
	}
}
