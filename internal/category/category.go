// Package category assigns integer ids to annotation labels.
package category

import (
	"slices"

	"github.com/idlab-discover/any2coco-cli/internal/coco"
	"github.com/idlab-discover/any2coco-cli/internal/sidecar"
)

// Index is an immutable bijection between labels and ids 0..Len()-1.
// Labels are sorted byte-wise before numbering, so ids depend only on the
// label set.
type Index struct {
	labels []string
	ids    map[string]int
}

// Build collects every distinct label across all images.
func Build(annotations sidecar.Annotations) *Index {
	seen := make(map[string]struct{})
	for _, entry := range annotations {
		for _, p := range entry.Annotations {
			seen[p.Label] = struct{}{}
		}
	}
	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	return FromLabels(labels)
}

// FromLabels builds an index over labels, ignoring duplicates.
func FromLabels(labels []string) *Index {
	sorted := slices.Clone(labels)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	idx := &Index{labels: sorted, ids: make(map[string]int, len(sorted))}
	for i, l := range sorted {
		idx.ids[l] = i
	}
	logf("", "categories=%d", len(sorted))
	return idx
}

// ID returns the id of label.
func (x *Index) ID(label string) (int, bool) {
	id, ok := x.ids[label]
	return id, ok
}

// Label returns the label numbered id.
func (x *Index) Label(id int) (string, bool) {
	if id < 0 || id >= len(x.labels) {
		return "", false
	}
	return x.labels[id], true
}

func (x *Index) Len() int { return len(x.labels) }

// Labels returns a copy of the labels in id order.
func (x *Index) Labels() []string { return slices.Clone(x.labels) }

// Categories returns the COCO categories list in id order.
func (x *Index) Categories() []coco.Category {
	out := make([]coco.Category, len(x.labels))
	for i, l := range x.labels {
		out[i] = coco.Category{ID: i, Name: l, Supercategory: coco.DefaultSupercategory}
	}
	return out
}
