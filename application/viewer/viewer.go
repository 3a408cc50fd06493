// Package viewer shows persisted regions over their images for verification.
// It never mutates or persists the record.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"framer-go/core/input"
	"framer-go/domain/dataset"
	"framer-go/domain/region"
	"framer-go/infrastructure/imagestore"
	"framer-go/infrastructure/logging"
)

// ErrFinished is returned once every image has been shown or the viewer was closed.
var ErrFinished = errors.New("viewer finished")

// Config holds configuration for creating a new Viewer.
type Config struct {
	Source     imagestore.Source
	Repository dataset.Repository
	// Next lists the keys that advance to the next image; defaults to Return and KP_Enter.
	Next   []input.Key
	Logger *slog.Logger
}

// View is a snapshot of the image being verified.
type View struct {
	Image string
	Index int
	Total int
	// Picture is the image at native size.
	Picture image.Image
	// Regions are the persisted boxes scaled to native pixels.
	Regions []region.Region
	// Annotated is false when the record has no entry for the image.
	Annotated bool
	Finished  bool
}

// Viewer walks the image sequence, one image at a time.
type Viewer struct {
	source imagestore.Source
	record *dataset.Record
	next   []input.Key
	logger *slog.Logger

	images    []string
	index     int
	picture   image.Image
	regions   []region.Region
	annotated bool
	finished  bool
}

// New loads the persisted record and lists the images to show.
func New(ctx context.Context, cfg *Config) (*Viewer, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if len(cfg.Next) == 0 {
		cfg.Next = []input.Key{input.KeyReturn, input.KeyEnter}
	}

	record, err := cfg.Repository.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset from %s: %w", cfg.Repository.Location(), err)
	}
	images, err := cfg.Source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	return &Viewer{
		source: cfg.Source,
		record: record,
		next:   cfg.Next,
		logger: cfg.Logger.With("component", "viewer"),
		images: images,
	}, nil
}

// Start shows the first image.
func (v *Viewer) Start(ctx context.Context) error {
	return v.show(ctx, 0)
}

// Handle advances on a next key release and finishes on quit.
func (v *Viewer) Handle(ctx context.Context, in input.Input) error {
	if v.finished {
		return ErrFinished
	}
	switch in := in.(type) {
	case *input.Quit:
		v.finish()
	case *input.KeyUp:
		for _, k := range v.next {
			if in.Key == k {
				return v.Next(ctx)
			}
		}
	}
	return nil
}

// Next shows the following image, or finishes after the last one.
func (v *Viewer) Next(ctx context.Context) error {
	if v.finished {
		return ErrFinished
	}
	if v.index+1 >= len(v.images) {
		v.finish()
		return nil
	}
	return v.show(ctx, v.index+1)
}

// Finished reports whether the viewer has ended.
func (v *Viewer) Finished() bool {
	return v.finished
}

// View returns the current snapshot.
func (v *Viewer) View() View {
	out := View{
		Index:     v.index,
		Total:     len(v.images),
		Picture:   v.picture,
		Annotated: v.annotated,
		Finished:  v.finished,
	}
	if v.index < len(v.images) {
		out.Image = v.images[v.index]
	}
	out.Regions = make([]region.Region, len(v.regions))
	copy(out.Regions, v.regions)
	return out
}

func (v *Viewer) show(ctx context.Context, index int) error {
	name := v.images[index]
	ctx = logging.WithAttrs(logging.With(ctx, v.logger), "image", name, "index", index)
	img, err := v.source.Open(ctx, name)
	if err != nil {
		return fmt.Errorf("load image %s: %w", name, err)
	}

	b := img.Bounds()
	normalized, ok := v.record.Get(name)
	regions := make([]region.Region, 0, len(normalized))
	for _, n := range normalized {
		regions = append(regions, n.Pixels(b.Dx(), b.Dy()))
	}
	if !ok {
		logging.From(ctx).Warn("Image has no dataset entry")
	}

	v.index = index
	v.picture = img
	v.regions = regions
	v.annotated = ok
	logging.From(ctx).Info("Showing image", "regions", len(regions))
	return nil
}

func (v *Viewer) finish() {
	v.finished = true
	v.logger.Info("Viewer finished", "shown", v.index+1, "total", len(v.images))
}
