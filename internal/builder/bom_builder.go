// Package builder describes a converted dataset as a CycloneDX BOM: one
// data component for the dataset and one hashed file component per file.
package builder

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/idlab-discover/any2coco-cli/internal/coco"
)

type BOMBuilder struct {
	Opts Options
}

func NewBOMBuilder(opts Options) *BOMBuilder {
	return &BOMBuilder{Opts: opts}
}

// Build assembles the BOM. Every image in the dataset and the annotations
// file are hashed from Root.
func (b BOMBuilder) Build(ctx context.Context, bctx BuildContext) (*cdx.BOM, error) {
	if bctx.Dataset == nil {
		return nil, errors.New("dataset is nil")
	}

	comp := buildDatasetComponent(bctx)
	logf(comp.Name, "dataset component (images=%d annotations=%d categories=%d)",
		len(bctx.Dataset.Images), len(bctx.Dataset.Annotations), len(bctx.Dataset.Categories))

	names := make([]string, 0, len(bctx.Dataset.Images)+1)
	if bctx.AnnotationsFile != "" {
		names = append(names, bctx.AnnotationsFile)
	}
	for _, img := range bctx.Dataset.Images {
		names = append(names, img.FileName)
	}

	images := make(map[string]coco.Image, len(bctx.Dataset.Images))
	for _, img := range bctx.Dataset.Images {
		images[img.FileName] = img
	}

	files := make([]cdx.Component, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fc, err := buildFileComponent(bctx.Root, name)
		if err != nil {
			return nil, err
		}
		if img, ok := images[name]; ok {
			addImageProperties(&fc, img)
		}
		files = append(files, fc)
	}

	bom := cdx.NewBOM()
	bom.Metadata = &cdx.Metadata{Component: comp}
	bom.Components = &files

	if err := AddMetaSerialNumber(bom); err != nil {
		return nil, err
	}
	if err := AddMetaTimestamp(bom); err != nil {
		return nil, err
	}
	if err := AddMetaTools(bom, b.Opts.ToolName, b.Opts.ToolVersion); err != nil {
		return nil, err
	}
	AddDependencies(bom)

	logf(comp.Name, "bom ok (components=%d)", len(files))
	return bom, nil
}

func buildDatasetComponent(bctx BuildContext) *cdx.Component {
	name := strings.TrimSpace(bctx.Name)
	if name == "" && bctx.Root != "" {
		name = filepath.Base(bctx.Root)
	}
	if name == "" {
		name = "dataset"
	}

	ds := bctx.Dataset
	labels := make([]string, len(ds.Categories))
	for i, c := range ds.Categories {
		labels[i] = c.Name
	}
	props := []cdx.Property{
		{Name: "coco:images", Value: strconv.Itoa(len(ds.Images))},
		{Name: "coco:annotations", Value: strconv.Itoa(len(ds.Annotations))},
		{Name: "coco:categories", Value: strconv.Itoa(len(ds.Categories))},
	}

	return &cdx.Component{
		BOMRef:      datasetBOMRef(name),
		Type:        cdx.ComponentTypeData,
		Name:        name,
		Version:     strings.TrimSpace(bctx.Version),
		Description: strings.TrimSpace(bctx.Description),
		Data: &[]cdx.ComponentData{{
			Type:           cdx.ComponentDataTypeDataset,
			Name:           name,
			Description:    "COCO object detection dataset with polygon segmentation",
			Classification: strings.Join(labels, ", "),
			Contents:       &cdx.ComponentDataContents{Properties: &props},
		}},
	}
}

func buildFileComponent(root, name string) (cdx.Component, error) {
	sum, err := hashFile(filepath.Join(root, name))
	if err != nil {
		return cdx.Component{}, fmt.Errorf("hash %s: %w", name, err)
	}
	logf(name, "sha256=%s", sum)
	return cdx.Component{
		BOMRef: fileBOMRef(name),
		Type:   cdx.ComponentTypeFile,
		Name:   name,
		Hashes: &[]cdx.Hash{{Algorithm: cdx.HashAlgoSHA256, Value: sum}},
	}, nil
}

// addImageProperties records the image id and decoded size.
func addImageProperties(c *cdx.Component, img coco.Image) {
	c.Properties = &[]cdx.Property{
		{Name: "coco:image_id", Value: strconv.Itoa(img.ID)},
		{Name: "coco:width", Value: strconv.Itoa(img.Width)},
		{Name: "coco:height", Value: strconv.Itoa(img.Height)},
	}
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
