// Package assembler turns extracted polygons into COCO images and
// annotations with contiguous ids.
package assembler

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/idlab-discover/any2coco-cli/internal/category"
	"github.com/idlab-discover/any2coco-cli/internal/classifier"
	"github.com/idlab-discover/any2coco-cli/internal/coco"
	"github.com/idlab-discover/any2coco-cli/internal/geometry"
	"github.com/idlab-discover/any2coco-cli/internal/imagemeta"
	"github.com/idlab-discover/any2coco-cli/internal/sidecar"
)

// ErrUnknownLabel means a polygon label is missing from the category index.
// It can only happen when the index was built from different annotations.
var ErrUnknownLabel = errors.New("label not in category index")

// Options controls Assemble.
type Options struct {
	// Workers bounds concurrent image decodes; <= 0 means 1.
	Workers int
	// CheckDimensions compares decoded sizes with the sidecar's declared
	// imageHeight/imageWidth and reports mismatches.
	CheckDimensions bool
	// OnImage, when set, is called once per image after it is measured.
	OnImage func(name string, done, total int)
}

// Diagnostics lists everything skipped or suspicious during assembly.
type Diagnostics struct {
	// InvalidPolygons are "<image>#<index>" references to polygons with
	// fewer than three vertices.
	InvalidPolygons     []string
	DimensionMismatches []string
}

// Result is the assembled dataset body; Info and Licenses are left unset.
type Result struct {
	Images      []coco.Image
	Annotations []coco.Annotation
	Categories  []coco.Category
	Diagnostics Diagnostics
}

// idSequence hands out consecutive ids starting at zero.
type idSequence struct{ next int }

func (s *idSequence) Next() int {
	id := s.next
	s.next++
	return id
}

type measuredPolygon struct {
	label string
	shape geometry.Shape
	err   error
}

type measuredImage struct {
	size     imagemeta.Size
	polygons []measuredPolygon
}

// Assemble decodes every listed image and measures its polygons in
// parallel, then numbers images and annotations serially in sorted image
// order. Images without annotations are still listed.
func Assemble(ctx context.Context, listing *classifier.Listing, annotations sidecar.Annotations, index *category.Index, opts Options) (*Result, error) {
	names := listing.Images
	measured := make([]measuredImage, len(names))

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	var done int
	progress := make(chan string)
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		for name := range progress {
			done++
			if opts.OnImage != nil {
				opts.OnImage(name, done, len(names))
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := measure(listing.Root, name, annotations[name])
			if err != nil {
				return err
			}
			measured[i] = m
			progress <- name
			return nil
		})
	}
	err := g.Wait()
	close(progress)
	<-progressDone
	if err != nil {
		return nil, err
	}

	res := &Result{
		Images:      make([]coco.Image, 0, len(names)),
		Annotations: []coco.Annotation{},
		Categories:  index.Categories(),
	}
	var ids idSequence
	for imageID, name := range names {
		m := measured[imageID]
		res.Images = append(res.Images, coco.Image{
			ID:       imageID,
			FileName: name,
			Height:   m.size.Height,
			Width:    m.size.Width,
		})

		entry, ok := annotations[name]
		if !ok {
			continue
		}
		if opts.CheckDimensions && (entry.ImageHeight != m.size.Height || entry.ImageWidth != m.size.Width) {
			msg := fmt.Sprintf("%s: sidecar %s declares %dx%d, file is %dx%d",
				name, entry.Sidecar, entry.ImageWidth, entry.ImageHeight, m.size.Width, m.size.Height)
			logf(name, "dimension mismatch: %s", msg)
			res.Diagnostics.DimensionMismatches = append(res.Diagnostics.DimensionMismatches, msg)
		}

		for i, p := range m.polygons {
			if p.err != nil {
				ref := fmt.Sprintf("%s#%d", name, i)
				logf(name, "skip polygon %d: %v", i, p.err)
				res.Diagnostics.InvalidPolygons = append(res.Diagnostics.InvalidPolygons, ref)
				continue
			}
			categoryID, ok := index.ID(p.label)
			if !ok {
				return nil, fmt.Errorf("%w: %q in %s", ErrUnknownLabel, p.label, name)
			}
			res.Annotations = append(res.Annotations, coco.Annotation{
				ImageID:      imageID,
				ID:           ids.Next(),
				CategoryID:   categoryID,
				BBox:         p.shape.BBox.Array(),
				Segmentation: [][]float64{p.shape.Segmentation},
				Area:         p.shape.Area,
			})
		}
	}

	logf("", "images=%d annotations=%d categories=%d invalid=%d",
		len(res.Images), len(res.Annotations), len(res.Categories), len(res.Diagnostics.InvalidPolygons))
	return res, nil
}

func measure(root, name string, entry sidecar.ImageAnnotations) (measuredImage, error) {
	size, err := imagemeta.Decode(filepath.Join(root, name))
	if err != nil {
		return measuredImage{}, err
	}
	m := measuredImage{size: size, polygons: make([]measuredPolygon, len(entry.Annotations))}
	for i, p := range entry.Annotations {
		shape, err := geometry.Measure(p.Points)
		m.polygons[i] = measuredPolygon{label: p.Label, shape: shape, err: err}
	}
	return m, nil
}
