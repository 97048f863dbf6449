package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/keyplate/pkg/errors"
)

// File is one artifact to export.
type File struct {
	Name string
	Data []byte
}

// ExportFiles writes files into dir, creating it when needed, and returns
// the written paths in input order.
func ExportFiles(dir string, files []File) ([]string, error) {
	if err := errors.ValidatePath(dir); err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := errors.ValidateArtifactName(f.Name); err != nil {
			return nil, fmt.Errorf("%q: %w", f.Name, err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := writeAtomic(path, f.Data); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// Manifest summarizes one build.
type Manifest struct {
	BuildID    string   `json:"build_id"`
	LayoutHash string   `json:"layout_hash"`
	Units      string   `json:"units"`
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
	Files      []string `json:"files"`
	Warnings   []string `json:"warnings,omitempty"`
}

// WriteManifest encodes m as indented JSON.
func WriteManifest(w io.Writer, m Manifest) error {
	if m.Units == "" {
		m.Units = "mm"
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadManifest decodes a manifest written by [WriteManifest].
func ReadManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Manifest{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode manifest")
	}
	return m, nil
}
