// Package sidecar reads polygon annotation sidecars (one JSON document per
// image) and pairs them with their image files.
package sidecar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/idlab-discover/any2coco-cli/internal/classifier"
	"github.com/idlab-discover/any2coco-cli/internal/geometry"
)

// ErrMalformedAnnotationFile is returned when a sidecar is not valid JSON or
// lacks shapes/imageHeight/imageWidth with the expected types.
var ErrMalformedAnnotationFile = errors.New("malformed annotation file")

// PolygonShapeType is the only shape type converted.
const PolygonShapeType = "polygon"

// Polygon is one labelled region in file order.
type Polygon struct {
	Label  string
	Points []geometry.Point
}

// ImageAnnotations is what a sidecar contributes to its image. The declared
// dimensions are copied verbatim and never replace the decoded ones.
type ImageAnnotations struct {
	Sidecar     string
	Annotations []Polygon
	ImageHeight int
	ImageWidth  int
}

// Annotations maps an image filename to its extracted polygons.
type Annotations map[string]ImageAnnotations

// Outcome classifies how a sidecar was consumed.
type Outcome int

const (
	// Matched means the sidecar produced an entry for Result.Image.
	Matched Outcome = iota
	// Empty means no polygon shapes survived filtering.
	Empty
	// Unmatched means no image shares the sidecar's stem.
	Unmatched
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case Empty:
		return "empty"
	default:
		return "unmatched"
	}
}

// Result is the outcome of extracting a single sidecar.
type Result struct {
	Sidecar   string
	Image     string
	Outcome   Outcome
	Entry     ImageAnnotations
	Discarded int // non-polygon shapes dropped
}

// ImageLookup answers whether an image file is present in the source
// directory. *classifier.Listing satisfies it.
type ImageLookup interface {
	HasImage(name string) bool
}

type rawShape struct {
	ShapeType string      `json:"shape_type"`
	Label     string      `json:"label"`
	Points    [][]float64 `json:"points"`
}

// imageHeight/imageWidth are schema-checked integers but may be written as
// 480.0, so they are decoded as floats.
type rawFile struct {
	Shapes      []rawShape `json:"shapes"`
	ImageHeight float64    `json:"imageHeight"`
	ImageWidth  float64    `json:"imageWidth"`
}

func parse(data []byte) (*rawFile, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}
	var raw rawFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

// MatchImage returns the image paired with a sidecar: the sidecar stem plus
// the first image extension, in classifier.ImageExtensions order, that names
// an existing image.
func MatchImage(sidecar string, images ImageLookup) (string, bool) {
	stem := classifier.Stem(sidecar)
	for _, ext := range classifier.ImageExtensions {
		candidate := stem + "." + ext
		if images.HasImage(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Extract reads root/name and keeps its polygon shapes.
func Extract(root, name string, images ImageLookup) (Result, error) {
	res := Result{Sidecar: name}

	data, err := os.ReadFile(filepath.Join(root, name))
	if err != nil {
		return res, fmt.Errorf("read %s: %w", name, err)
	}
	raw, err := parse(data)
	if err != nil {
		return res, fmt.Errorf("%w: %s: %v", ErrMalformedAnnotationFile, name, err)
	}

	polygons := make([]Polygon, 0, len(raw.Shapes))
	for _, s := range raw.Shapes {
		if s.ShapeType != PolygonShapeType {
			res.Discarded++
			continue
		}
		points := make([]geometry.Point, len(s.Points))
		for i, p := range s.Points {
			points[i] = geometry.Point{X: p[0], Y: p[1]}
		}
		polygons = append(polygons, Polygon{Label: s.Label, Points: points})
	}

	if len(polygons) == 0 {
		res.Outcome = Empty
		logf(name, "no polygon shapes (discarded=%d)", res.Discarded)
		return res, nil
	}

	image, ok := MatchImage(name, images)
	if !ok {
		res.Outcome = Unmatched
		logf(name, "no image file matches stem %q; %d polygon(s) dropped", classifier.Stem(name), len(polygons))
		return res, nil
	}

	res.Outcome = Matched
	res.Image = image
	res.Entry = ImageAnnotations{
		Sidecar:     name,
		Annotations: polygons,
		ImageHeight: int(raw.ImageHeight),
		ImageWidth:  int(raw.ImageWidth),
	}
	logf(name, "image=%s polygons=%d discarded=%d", image, len(polygons), res.Discarded)
	return res, nil
}

// Options controls ExtractAll.
type Options struct {
	// Workers bounds concurrent sidecar reads; <= 0 means 1.
	Workers int
	// Lenient skips malformed sidecars instead of aborting the run.
	Lenient bool
}

// Diagnostics lists every sidecar that did not contribute annotations.
type Diagnostics struct {
	UnmatchedSidecars []string
	EmptySidecars     []string
	MalformedSidecars []string
	DiscardedShapes   int
}

// ExtractAll extracts every sidecar in the listing. Files are read
// concurrently but merged in sorted sidecar order, so the outcome does not
// depend on scheduling. In strict mode the first malformed sidecar (in that
// order) is returned as the error.
func ExtractAll(ctx context.Context, listing *classifier.Listing, opts Options) (Annotations, Diagnostics, error) {
	var diag Diagnostics
	names := listing.Annotations
	results := make([]Result, len(names))
	errs := make([]error, len(names))

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], errs[i] = Extract(listing.Root, name, listing)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, diag, err
	}

	out := make(Annotations, len(names))
	for i, res := range results {
		if err := errs[i]; err != nil {
			if opts.Lenient && errors.Is(err, ErrMalformedAnnotationFile) {
				logf(names[i], "skipped: %v", err)
				diag.MalformedSidecars = append(diag.MalformedSidecars, names[i])
				continue
			}
			return nil, diag, err
		}
		diag.DiscardedShapes += res.Discarded
		switch res.Outcome {
		case Matched:
			out[res.Image] = res.Entry
		case Empty:
			diag.EmptySidecars = append(diag.EmptySidecars, res.Sidecar)
		case Unmatched:
			diag.UnmatchedSidecars = append(diag.UnmatchedSidecars, res.Sidecar)
		}
	}
	return out, diag, nil
}
