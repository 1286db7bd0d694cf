// Package any2coco converts a directory of images and polygon annotation
// sidecars (AnyLabeling / LabelMe JSON) into a COCO dataset.
//
//	res, err := any2coco.Convert(ctx, "labelled/", "coco/", info, licenses)
//
// Convert copies every image into dst and writes dst/annotations.json.
package any2coco

import (
	"context"

	"github.com/idlab-discover/any2coco-cli/internal/coco"
	"github.com/idlab-discover/any2coco-cli/internal/converter"
	"github.com/idlab-discover/any2coco-cli/internal/datasetinfo"
	bomio "github.com/idlab-discover/any2coco-cli/internal/io"
	"github.com/idlab-discover/any2coco-cli/internal/validator"
)

type (
	Options     = converter.Options
	Result      = converter.Result
	Diagnostics = converter.Diagnostics

	ProgressEvent     = converter.ProgressEvent
	ProgressEventType = converter.ProgressEventType

	Dataset    = coco.Dataset
	Image      = coco.Image
	Annotation = coco.Annotation
	Category   = coco.Category

	Metadata = datasetinfo.Metadata

	ValidationOptions = validator.ValidationOptions
	ValidationResult  = validator.ValidationResult
)

// Convert converts src into a COCO dataset in dst using the default options:
// strict sidecar parsing, compact JSON and one worker per CPU.
func Convert(ctx context.Context, src, dst string, info any, licenses []any) (*Result, error) {
	return converter.Convert(ctx, Options{
		Source:      src,
		Destination: dst,
		Info:        info,
		Licenses:    licenses,
	})
}

// ConvertWithOptions runs a conversion with the full option set.
func ConvertWithOptions(ctx context.Context, opts Options) (*Result, error) {
	return converter.Convert(ctx, opts)
}

// Plan builds the dataset in memory without touching the destination.
func Plan(ctx context.Context, opts Options) (*Result, error) {
	return converter.Plan(ctx, opts)
}

// LoadMetadata reads info and licenses from a YAML or JSON file.
func LoadMetadata(path string) (Metadata, error) {
	return datasetinfo.Load(path)
}

// ValidateFile reads an annotations.json and checks its invariants.
func ValidateFile(path string, opts ValidationOptions) (ValidationResult, error) {
	ds, err := bomio.ReadDataset(path)
	if err != nil {
		return ValidationResult{}, err
	}
	return validator.Validate(ds, opts), nil
}
