// Package converter runs the full conversion: classify the source directory,
// extract polygons, index categories, assemble the COCO document, copy the
// images and write annotations.json.
package converter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/idlab-discover/any2coco-cli/internal/assembler"
	"github.com/idlab-discover/any2coco-cli/internal/builder"
	"github.com/idlab-discover/any2coco-cli/internal/category"
	"github.com/idlab-discover/any2coco-cli/internal/classifier"
	"github.com/idlab-discover/any2coco-cli/internal/coco"
	bomio "github.com/idlab-discover/any2coco-cli/internal/io"
	"github.com/idlab-discover/any2coco-cli/internal/sidecar"
)

// ErrSameDirectory is returned when source and destination resolve to the
// same directory; copying would truncate the source images.
var ErrSameDirectory = errors.New("source and destination are the same directory")

// Options configures a conversion run.
type Options struct {
	Source      string
	Destination string

	// Info and Licenses are written verbatim; nil licenses become [].
	Info     any
	Licenses []any

	Lenient         bool
	CheckDimensions bool
	// Workers bounds parallel sidecar reads and image decodes; <= 0 uses
	// GOMAXPROCS.
	Workers int
	Indent  bool

	// BOM writes a CycloneDX description of the dataset next to
	// annotations.json.
	BOM            bool
	BOMFormat      string
	SpecVersion    string
	DatasetName    string
	DatasetVersion string
	Description    string

	OnProgress ProgressCallback
}

// Diagnostics collects every input that was skipped or looked suspicious.
type Diagnostics struct {
	UnrecognizedFiles   []string
	UnmatchedSidecars   []string
	EmptySidecars       []string
	MalformedSidecars   []string
	DiscardedShapes     int
	InvalidPolygons     []string
	DimensionMismatches []string
}

// Result is the outcome of Convert or Plan. OutputPath and BOMPath are empty
// for a plan.
type Result struct {
	Dataset     *coco.Dataset
	Diagnostics Diagnostics
	OutputPath  string
	BOMPath     string
}

// Inspection is the dataset structure known before any image is decoded.
type Inspection struct {
	Listing     *classifier.Listing
	Annotations sidecar.Annotations
	Index       *category.Index
	Diagnostics Diagnostics
}

// LabelCounts returns the number of polygons per category id.
func (in *Inspection) LabelCounts() []int {
	counts := make([]int, in.Index.Len())
	for _, entry := range in.Annotations {
		for _, p := range entry.Annotations {
			if id, ok := in.Index.ID(p.Label); ok {
				counts[id]++
			}
		}
	}
	return counts
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) progress() ProgressCallback {
	if o.OnProgress == nil {
		return func(ProgressEvent) {}
	}
	return o.OnProgress
}

// Inspect classifies the source directory, extracts every sidecar and builds
// the category index.
func Inspect(ctx context.Context, opts Options) (*Inspection, error) {
	progress := opts.progress()

	progress(ProgressEvent{Type: EventClassifyStart, File: opts.Source})
	listing, err := classifier.Classify(opts.Source)
	if err != nil {
		progress(ProgressEvent{Type: EventError, Error: err, Message: "classify failed"})
		return nil, err
	}
	progress(ProgressEvent{Type: EventClassifyComplete, Total: len(listing.Images) + len(listing.Annotations)})

	progress(ProgressEvent{Type: EventExtractStart, Total: len(listing.Annotations)})
	annotations, sdiag, err := sidecar.ExtractAll(ctx, listing, sidecar.Options{
		Workers: opts.workers(),
		Lenient: opts.Lenient,
	})
	if err != nil {
		progress(ProgressEvent{Type: EventError, Error: err, Message: "extract failed"})
		return nil, err
	}
	progress(ProgressEvent{Type: EventExtractComplete, Total: len(annotations)})

	index := category.Build(annotations)
	progress(ProgressEvent{Type: EventIndexComplete, Total: index.Len()})

	logf(opts.Source, "images=%d sidecars=%d matched=%d categories=%d",
		len(listing.Images), len(listing.Annotations), len(annotations), index.Len())

	return &Inspection{
		Listing:     listing,
		Annotations: annotations,
		Index:       index,
		Diagnostics: Diagnostics{
			UnrecognizedFiles: listing.Unrecognized,
			UnmatchedSidecars: sdiag.UnmatchedSidecars,
			EmptySidecars:     sdiag.EmptySidecars,
			MalformedSidecars: sdiag.MalformedSidecars,
			DiscardedShapes:   sdiag.DiscardedShapes,
		},
	}, nil
}

// Plan builds the dataset document in memory without writing anything.
func Plan(ctx context.Context, opts Options) (*Result, error) {
	in, err := Inspect(ctx, opts)
	if err != nil {
		return nil, err
	}
	progress := opts.progress()

	total := len(in.Listing.Images)
	progress(ProgressEvent{Type: EventAssembleStart, Total: total})
	assembled, err := assembler.Assemble(ctx, in.Listing, in.Annotations, in.Index, assembler.Options{
		Workers:         opts.workers(),
		CheckDimensions: opts.CheckDimensions,
		OnImage: func(name string, done, total int) {
			progress(ProgressEvent{Type: EventImageMeasured, File: name, Index: done, Total: total})
		},
	})
	if err != nil {
		progress(ProgressEvent{Type: EventError, Error: err, Message: "assemble failed"})
		return nil, err
	}
	progress(ProgressEvent{Type: EventAssembleComplete, Total: len(assembled.Annotations)})

	licenses := opts.Licenses
	if licenses == nil {
		licenses = []any{}
	}
	diag := in.Diagnostics
	diag.InvalidPolygons = assembled.Diagnostics.InvalidPolygons
	diag.DimensionMismatches = assembled.Diagnostics.DimensionMismatches

	ds := &coco.Dataset{
		Info:        opts.Info,
		Licenses:    licenses,
		Categories:  assembled.Categories,
		Images:      assembled.Images,
		Annotations: assembled.Annotations,
	}
	counts := ds.AnnotationsPerImage()
	for _, img := range ds.Images {
		if counts[img.ID] == 0 {
			logf(img.FileName, "no annotations")
		}
	}
	return &Result{Dataset: ds, Diagnostics: diag}, nil
}

// Convert plans the dataset, copies every image into the destination and
// writes annotations.json (and the BOM when requested). The destination is
// created if needed.
func Convert(ctx context.Context, opts Options) (*Result, error) {
	if err := checkDirectories(opts.Source, opts.Destination); err != nil {
		return nil, err
	}

	res, err := Plan(ctx, opts)
	if err != nil {
		return nil, err
	}
	progress := opts.progress()

	if err := os.MkdirAll(opts.Destination, 0o755); err != nil {
		return nil, fmt.Errorf("create destination: %w", err)
	}

	images := make([]string, len(res.Dataset.Images))
	for i, img := range res.Dataset.Images {
		images[i] = img.FileName
	}
	progress(ProgressEvent{Type: EventCopyStart, Total: len(images)})
	copied := 0
	err = bomio.CopyImages(opts.Source, opts.Destination, images, func(name string) {
		copied++
		progress(ProgressEvent{Type: EventImageCopied, File: name, Index: copied, Total: len(images)})
	})
	if err != nil {
		progress(ProgressEvent{Type: EventError, Error: err, Message: "copy failed"})
		return nil, err
	}
	progress(ProgressEvent{Type: EventCopyComplete, Total: copied})

	progress(ProgressEvent{Type: EventWriteStart, File: bomio.AnnotationsFile})
	out, err := bomio.WriteDataset(opts.Destination, res.Dataset, bomio.WriteOptions{Indent: opts.Indent})
	if err != nil {
		progress(ProgressEvent{Type: EventError, Error: err, Message: "write failed"})
		return nil, err
	}
	res.OutputPath = out
	progress(ProgressEvent{Type: EventWriteComplete, File: out})

	if opts.BOM {
		progress(ProgressEvent{Type: EventBOMStart})
		path, err := writeBOM(ctx, opts, res.Dataset)
		if err != nil {
			progress(ProgressEvent{Type: EventError, Error: err, Message: "BOM failed"})
			return nil, err
		}
		res.BOMPath = path
		progress(ProgressEvent{Type: EventBOMComplete, File: path})
	}

	logf(opts.Destination, "done (images=%d annotations=%d categories=%d)",
		len(res.Dataset.Images), len(res.Dataset.Annotations), len(res.Dataset.Categories))
	return res, nil
}

func writeBOM(ctx context.Context, opts Options, ds *coco.Dataset) (string, error) {
	format, err := bomio.BOMFormat(opts.BOMFormat, "")
	if err != nil {
		return "", err
	}
	bopts := builder.DefaultOptions()
	if opts.SpecVersion != "" {
		bopts.SpecVersion = opts.SpecVersion
	}
	bom, err := builder.NewBOMBuilder(bopts).Build(ctx, builder.BuildContext{
		Name:            opts.DatasetName,
		Version:         opts.DatasetVersion,
		Description:     opts.Description,
		Root:            opts.Destination,
		AnnotationsFile: bomio.AnnotationsFile,
		Dataset:         ds,
	})
	if err != nil {
		return "", err
	}
	path := bomio.BOMPath(opts.Destination, format)
	if err := bomio.WriteBOM(bom, path, format, bopts.SpecVersion); err != nil {
		return "", err
	}
	return path, nil
}

func checkDirectories(src, dst string) error {
	if src == "" || dst == "" {
		return errors.New("source and destination are required")
	}
	a, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	b, err := filepath.Abs(dst)
	if err != nil {
		return err
	}
	if a == b {
		return fmt.Errorf("%w: %s", ErrSameDirectory, a)
	}
	if sa, err := os.Stat(a); err == nil {
		if sb, err := os.Stat(b); err == nil && os.SameFile(sa, sb) {
			return fmt.Errorf("%w: %s", ErrSameDirectory, a)
		}
	}
	return nil
}
