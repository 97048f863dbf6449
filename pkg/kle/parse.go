package kle

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/titanous/json5"

	"github.com/matzehuels/keyplate/pkg/errors"
)

// modifierFields lists the recognized modifier keys in application order.
var modifierFields = []struct {
	key  string
	make func(v float64) Entry
}{
	{"r", func(v float64) Entry { return Rotation(v) }},
	{"w", func(v float64) Entry { return WidthFactor(v) }},
	{"h", func(v float64) Entry { return HeightFactor(v) }},
	{"rx", func(v float64) Entry { return AnchorX(v) }},
	{"ry", func(v float64) Entry { return AnchorY(v) }},
	{"x", func(v float64) Entry { return CursorDX(v) }},
	{"y", func(v float64) Entry { return CursorDY(v) }},
}

// Parse decodes a KLE document. It returns an error with code
// [errors.ErrCodeLoad] when the document is not valid JSON5 or holds no
// rows.
func Parse(data []byte) (Layout, error) {
	items, err := decode(data)
	if err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeLoad, err, "parse layout")
	}

	var l Layout
	for _, item := range items {
		raw, ok := item.([]any)
		if !ok {
			continue // metadata object
		}
		l.Rows = append(l.Rows, parseRow(raw))
	}
	if len(l.Rows) == 0 {
		return Layout{}, errors.New(errors.ErrCodeLoad, "layout has no rows")
	}
	return l, nil
}

// Read decodes a KLE document from r.
func Read(r io.Reader) (Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeLoad, err, "read layout")
	}
	return Parse(data)
}

// Load reads and decodes the KLE document at path.
func Load(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeLoad, err, "read %s", path)
	}
	l, err := Parse(data)
	if err != nil {
		return Layout{}, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// decode accepts a full document or raw-data text without outer brackets.
func decode(data []byte) ([]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	var items []any
	err := json5.Unmarshal(trimmed, &items)
	if err == nil && hasRows(items) {
		return items, nil
	}

	wrapped := make([]byte, 0, len(trimmed)+2)
	wrapped = append(wrapped, '[')
	wrapped = append(wrapped, trimmed...)
	wrapped = append(wrapped, ']')

	var rawItems []any
	if werr := json5.Unmarshal(wrapped, &rawItems); werr == nil && hasRows(rawItems) {
		return rawItems, nil
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

func hasRows(items []any) bool {
	for _, item := range items {
		if _, ok := item.([]any); ok {
			return true
		}
	}
	return false
}

func parseRow(raw []any) Row {
	row := make(Row, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			label, _ := item.(string)
			row = append(row, KeyPlaceholder{Label: label})
			continue
		}
		row = append(row, parseModifier(obj)...)
	}
	return row
}

func parseModifier(obj map[string]any) []Entry {
	var entries []Entry
	for _, f := range modifierFields {
		if v, ok := obj[f.key].(float64); ok {
			entries = append(entries, f.make(v))
		}
	}
	if _, ok := obj["d"]; ok {
		entries = append(entries, DecalMark{})
	}
	return entries
}
