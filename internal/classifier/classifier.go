package classifier

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ImageExtensions lists the recognized image extensions in the order used
// for stem matching. Comparison is case-sensitive.
var ImageExtensions = []string{"jpg", "jpeg", "JPEG", "JPG", "PNG", "png"}

// AnnotationExtension is the sidecar extension.
const AnnotationExtension = "json"

// Kind is the classification of a directory entry.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindImage
	KindAnnotation
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindAnnotation:
		return "annotation"
	default:
		return "unrecognized"
	}
}

// Listing is the partition of a source directory. All slices are sorted
// ascending; image order determines image ids downstream.
type Listing struct {
	Root         string
	Images       []string
	Annotations  []string
	Unrecognized []string
}

// HasImage reports whether name is one of the listed image files. Images
// must be sorted, as Classify leaves it.
func (l *Listing) HasImage(name string) bool {
	_, ok := slices.BinarySearch(l.Images, name)
	return ok
}

// Ext returns the text after the final dot, or "" when there is none.
func Ext(name string) string {
	return strings.TrimPrefix(filepath.Ext(name), ".")
}

// Stem returns name without its final extension.
func Stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// KindOf classifies a file name by extension.
func KindOf(name string) Kind {
	ext := Ext(name)
	if ext == "" {
		return KindUnrecognized
	}
	if ext == AnnotationExtension {
		return KindAnnotation
	}
	for _, e := range ImageExtensions {
		if ext == e {
			return KindImage
		}
	}
	return KindUnrecognized
}

// Classify lists root (non-recursively) and partitions its files into
// images, sidecars and unrecognized names. Subdirectories are skipped.
func Classify(root string) (*Listing, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}

	l := &Listing{Root: root}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			logf(name, "skip directory")
			continue
		}
		switch KindOf(name) {
		case KindImage:
			l.Images = append(l.Images, name)
		case KindAnnotation:
			l.Annotations = append(l.Annotations, name)
		default:
			logf(name, "not a recognized image or annotation file")
			l.Unrecognized = append(l.Unrecognized, name)
		}
	}

	slices.Sort(l.Images)
	slices.Sort(l.Annotations)
	slices.Sort(l.Unrecognized)

	logf("", "images=%d annotations=%d unrecognized=%d", len(l.Images), len(l.Annotations), len(l.Unrecognized))
	return l, nil
}
