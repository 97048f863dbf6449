package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/keyplate/pkg/errors"
	"github.com/matzehuels/keyplate/pkg/kle"
)

// ImportLayout reads the KLE document at path. It returns the raw bytes
// alongside the decoded layout.
func ImportLayout(path string) ([]byte, kle.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kle.Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout %s", path)
		}
		return nil, kle.Layout{}, errors.Wrap(errors.ErrCodeLoad, err, "open %s", path)
	}
	defer f.Close()

	data, l, err := ReadLayout(f)
	if err != nil {
		return nil, kle.Layout{}, fmt.Errorf("%s: %w", path, err)
	}
	return data, l, nil
}

// ReadLayout reads and decodes a KLE document from r. It does not close r.
func ReadLayout(r io.Reader) ([]byte, kle.Layout, error) {
	data, err := io.ReadAll(io.LimitReader(r, errors.MaxLayoutBytes+1))
	if err != nil {
		return nil, kle.Layout{}, errors.Wrap(errors.ErrCodeLoad, err, "read layout")
	}
	if err := errors.ValidateLayoutSize(len(data)); err != nil {
		return nil, kle.Layout{}, err
	}
	l, err := kle.Parse(data)
	if err != nil {
		return nil, kle.Layout{}, err
	}
	return data, l, nil
}
