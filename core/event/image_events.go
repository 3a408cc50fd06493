package event

import "framer-go/core/geometry"

// ImageLoaded is published when an image becomes the active image.
type ImageLoaded struct {
	baseImageEvent
	Index int
	Total int
	Box   geometry.DisplayBox
}

func NewImageLoaded(image string, index, total int, box geometry.DisplayBox) *ImageLoaded {
	return &ImageLoaded{
		baseImageEvent: baseImageEvent{image: image},
		Index:          index,
		Total:          total,
		Box:            box,
	}
}

func (e *ImageLoaded) EventName() string {
	return "ImageLoaded"
}

// RegionAdded is published when a labeled region is appended to the active image.
type RegionAdded struct {
	baseImageEvent
	Rect  geometry.Rect
	Label string
	Count int
}

func NewRegionAdded(image string, rect geometry.Rect, label string, count int) *RegionAdded {
	return &RegionAdded{
		baseImageEvent: baseImageEvent{image: image},
		Rect:           rect,
		Label:          label,
		Count:          count,
	}
}

func (e *RegionAdded) EventName() string {
	return "RegionAdded"
}

// RegionDeleted is published when a region is removed from the active image.
type RegionDeleted struct {
	baseImageEvent
	Rect  geometry.Rect
	Label string
	Count int
}

func NewRegionDeleted(image string, rect geometry.Rect, label string, count int) *RegionDeleted {
	return &RegionDeleted{
		baseImageEvent: baseImageEvent{image: image},
		Rect:           rect,
		Label:          label,
		Count:          count,
	}
}

func (e *RegionDeleted) EventName() string {
	return "RegionDeleted"
}

// SelectionChanged is published when the selected region changes.
// Index is -1 when the selection was cleared.
type SelectionChanged struct {
	baseImageEvent
	Index int
}

func NewSelectionChanged(image string, index int) *SelectionChanged {
	return &SelectionChanged{
		baseImageEvent: baseImageEvent{image: image},
		Index:          index,
	}
}

func (e *SelectionChanged) EventName() string {
	return "SelectionChanged"
}

// LabelPromptCancelled is published when the label prompt is dismissed
// without choosing a label.
type LabelPromptCancelled struct {
	baseImageEvent
	Rect geometry.Rect
}

func NewLabelPromptCancelled(image string, rect geometry.Rect) *LabelPromptCancelled {
	return &LabelPromptCancelled{
		baseImageEvent: baseImageEvent{image: image},
		Rect:           rect,
	}
}

func (e *LabelPromptCancelled) EventName() string {
	return "LabelPromptCancelled"
}

// RegionDiscarded is published when a released drag is smaller than the
// minimum region size; no label prompt is shown for it.
type RegionDiscarded struct {
	baseImageEvent
	Rect    geometry.Rect
	MinSize int
}

func NewRegionDiscarded(image string, rect geometry.Rect, minSize int) *RegionDiscarded {
	return &RegionDiscarded{
		baseImageEvent: baseImageEvent{image: image},
		Rect:           rect,
		MinSize:        minSize,
	}
}

func (e *RegionDiscarded) EventName() string {
	return "RegionDiscarded"
}

// ImageCommitted is published when an image's regions are written into the dataset record.
type ImageCommitted struct {
	baseImageEvent
	Regions int
}

func NewImageCommitted(image string, regions int) *ImageCommitted {
	return &ImageCommitted{
		baseImageEvent: baseImageEvent{image: image},
		Regions:        regions,
	}
}

func (e *ImageCommitted) EventName() string {
	return "ImageCommitted"
}
