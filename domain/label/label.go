// Package label defines the ordered set of category labels offered in the label prompt.
package label

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmpty is returned when no labels are configured.
	ErrEmpty = errors.New("label set is empty")
	// ErrInvalid is returned for blank or duplicate labels.
	ErrInvalid = errors.New("invalid label")
)

// Set is a non-empty, ordered list of distinct labels.
type Set struct {
	labels []string
	index  map[string]int
}

// NewSet validates labels and returns them as a set, preserving order.
// Surrounding whitespace is trimmed.
func NewSet(labels []string) (*Set, error) {
	if len(labels) == 0 {
		return nil, ErrEmpty
	}

	s := &Set{
		labels: make([]string, 0, len(labels)),
		index:  make(map[string]int, len(labels)),
	}
	for i, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			return nil, fmt.Errorf("label %d is blank: %w", i, ErrInvalid)
		}
		if _, dup := s.index[l]; dup {
			return nil, fmt.Errorf("duplicate label %q: %w", l, ErrInvalid)
		}
		s.index[l] = len(s.labels)
		s.labels = append(s.labels, l)
	}
	return s, nil
}

// Len returns the number of labels.
func (s *Set) Len() int {
	return len(s.labels)
}

// At returns the label at position i.
func (s *Set) At(i int) (string, bool) {
	if i < 0 || i >= len(s.labels) {
		return "", false
	}
	return s.labels[i], true
}

// Contains reports whether l is a member of the set.
func (s *Set) Contains(l string) bool {
	_, ok := s.index[l]
	return ok
}

// Labels returns a copy of the labels in order.
func (s *Set) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

func (s *Set) String() string {
	return strings.Join(s.labels, ", ")
}
