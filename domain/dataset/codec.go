package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"framer-go/core/geometry"
	"framer-go/domain/region"
)

// ErrFormat is returned when data does not match the dataset file format.
var ErrFormat = errors.New("invalid dataset format")

// MarshalJSON encodes the record as an object of image filenames to arrays of
// [x, y, width, height, label] tuples, in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, image := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(image)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		rows := make([]tuple, 0, len(r.entries[image]))
		for _, n := range r.entries[image] {
			rows = append(rows, tuple(n))
		}
		value, err := json.Marshal(rows)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", image, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the dataset file format. The file order of images is kept.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: expected object, got %v", ErrFormat, tok)
	}

	decoded := NewRecord()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFormat, err)
		}
		image, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: expected image name, got %v", ErrFormat, tok)
		}

		var rows []tuple
		if err := dec.Decode(&rows); err != nil {
			return fmt.Errorf("%w: image %s: %v", ErrFormat, image, err)
		}
		regions := make([]region.Normalized, 0, len(rows))
		for _, t := range rows {
			regions = append(regions, region.Normalized(t))
		}
		decoded.Put(image, regions)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}

	*r = *decoded
	return nil
}

// tuple is the wire form of one normalized region.
type tuple region.Normalized

func (t tuple) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{t.X, t.Y, t.Width, t.Height, t.Label})
}

func (t *tuple) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if len(fields) != 5 {
		return fmt.Errorf("region has %d fields, want 5", len(fields))
	}

	var coords [4]float64
	for i := range coords {
		if err := json.Unmarshal(fields[i], &coords[i]); err != nil {
			return fmt.Errorf("region field %d: %w", i, err)
		}
	}
	var label string
	if err := json.Unmarshal(fields[4], &label); err != nil {
		return fmt.Errorf("region label: %w", err)
	}

	*t = tuple{
		UnitRect: geometry.UnitRect{X: coords[0], Y: coords[1], Width: coords[2], Height: coords[3]},
		Label:    label,
	}
	return nil
}
