// Package dataset defines the per-image record of normalized regions and its
// JSON file format.
package dataset

import (
	"framer-go/domain/region"
)

// Record maps image filenames to the normalized regions committed for them.
// Images keep the order in which they were first put. Values are complete
// commit-time lists; callers never observe partial edits because Put and Get copy.
type Record struct {
	order   []string
	entries map[string][]region.Normalized
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{entries: make(map[string][]region.Normalized)}
}

// Put stores the regions of an image, replacing any previous entry while
// keeping its original position.
func (r *Record) Put(image string, regions []region.Normalized) {
	if _, ok := r.entries[image]; !ok {
		r.order = append(r.order, image)
	}
	r.entries[image] = cloneRegions(regions)
}

// Get returns a copy of the regions stored for image.
func (r *Record) Get(image string) ([]region.Normalized, bool) {
	regions, ok := r.entries[image]
	if !ok {
		return nil, false
	}
	return cloneRegions(regions), true
}

// Has reports whether image has an entry.
func (r *Record) Has(image string) bool {
	_, ok := r.entries[image]
	return ok
}

// Images returns the image filenames in insertion order.
func (r *Record) Images() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of images with an entry.
func (r *Record) Len() int {
	return len(r.order)
}

// Regions returns the total number of regions across all images.
func (r *Record) Regions() int {
	n := 0
	for _, regions := range r.entries {
		n += len(regions)
	}
	return n
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	c := NewRecord()
	for _, image := range r.order {
		c.Put(image, r.entries[image])
	}
	return c
}

func cloneRegions(regions []region.Normalized) []region.Normalized {
	out := make([]region.Normalized, len(regions))
	copy(out, regions)
	return out
}
