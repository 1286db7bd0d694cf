// Package io reads and writes the files produced by a conversion.
package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/idlab-discover/any2coco-cli/internal/coco"
)

// AnnotationsFile is the name of the dataset document in the destination.
const AnnotationsFile = "annotations.json"

// WriteOptions controls how the dataset document is encoded.
type WriteOptions struct {
	// Indent pretty-prints with two spaces; compact output otherwise.
	Indent bool
}

// WriteDataset writes ds to dst/annotations.json and returns the path.
// The document is written to a temporary file in dst and renamed into
// place, so an existing file is either kept or fully replaced.
func WriteDataset(dst string, ds *coco.Dataset, opts WriteOptions) (string, error) {
	data, err := EncodeDataset(ds, opts)
	if err != nil {
		return "", err
	}

	out := filepath.Join(dst, AnnotationsFile)
	tmp := filepath.Join(dst, "."+AnnotationsFile+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", out, err)
	}
	if err := os.Rename(tmp, out); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write %s: %w", out, err)
	}
	logf(AnnotationsFile, "wrote %d bytes (images=%d annotations=%d)", len(data), len(ds.Images), len(ds.Annotations))
	return out, nil
}

// EncodeDataset renders ds as JSON. Nil lists are written as [] rather than
// null.
func EncodeDataset(ds *coco.Dataset, opts WriteOptions) ([]byte, error) {
	if ds == nil {
		return nil, errors.New("nil dataset")
	}
	doc := *ds
	if doc.Licenses == nil {
		doc.Licenses = []any{}
	}
	if doc.Categories == nil {
		doc.Categories = []coco.Category{}
	}
	if doc.Images == nil {
		doc.Images = []coco.Image{}
	}
	if doc.Annotations == nil {
		doc.Annotations = []coco.Annotation{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadDataset decodes a dataset document from path.
func ReadDataset(path string) (*coco.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ds coco.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &ds, nil
}
