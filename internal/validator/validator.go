// Package validator checks an annotations.json document against the
// guarantees the converter makes.
package validator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/idlab-discover/any2coco-cli/internal/coco"
)

// ValidationOptions configures which checks run.
type ValidationOptions struct {
	// ImageRoot, when set, is the directory every file_name must exist in.
	ImageRoot string
	// StrictMode turns warnings into errors.
	StrictMode bool
}

// ValidationResult holds the outcome of a validation run.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string

	Images      int
	Annotations int
	Categories  int
}

type collector struct {
	errs  []string
	warns []string
}

func (c *collector) errorf(format string, args ...any) {
	c.errs = append(c.errs, fmt.Sprintf(format, args...))
}

func (c *collector) warnf(format string, args ...any) {
	c.warns = append(c.warns, fmt.Sprintf(format, args...))
}

// Validate runs every check over ds.
func Validate(ds *coco.Dataset, opts ValidationOptions) ValidationResult {
	if ds == nil {
		return ValidationResult{Errors: []string{"dataset is nil"}}
	}

	var c collector
	if ds.Info == nil {
		c.warnf("info is missing or null")
	}
	if ds.Licenses == nil {
		c.warnf("license is missing or null")
	}

	imageIDs := checkImages(&c, ds.Images, opts.ImageRoot)
	categoryIDs := checkCategories(&c, ds.Categories)
	checkAnnotations(&c, ds.Annotations, imageIDs, categoryIDs)

	if opts.StrictMode {
		for _, w := range c.warns {
			c.errorf("%s (strict)", w)
		}
		c.warns = nil
	}

	res := ValidationResult{
		Valid:       len(c.errs) == 0,
		Errors:      c.errs,
		Warnings:    c.warns,
		Images:      len(ds.Images),
		Annotations: len(ds.Annotations),
		Categories:  len(ds.Categories),
	}
	logf("", "images=%d annotations=%d categories=%d errors=%d warnings=%d",
		res.Images, res.Annotations, res.Categories, len(res.Errors), len(res.Warnings))
	return res
}

// checkContiguous reports ids that are duplicated or fall outside 0..n-1.
// Together these mean the ids are exactly 0..n-1.
func checkContiguous(c *collector, kind string, ids []int) map[int]struct{} {
	seen := make(map[int]struct{}, len(ids))
	for i, id := range ids {
		if _, dup := seen[id]; dup {
			c.errorf("%s[%d]: duplicate id %d", kind, i, id)
			continue
		}
		seen[id] = struct{}{}
		if id < 0 || id >= len(ids) {
			c.errorf("%s[%d]: id %d outside 0..%d", kind, i, id, len(ids)-1)
		}
	}
	return seen
}

func checkImages(c *collector, images []coco.Image, root string) map[int]struct{} {
	ids := make([]int, len(images))
	names := make(map[string]int, len(images))
	for i, img := range images {
		ids[i] = img.ID
		if img.FileName == "" {
			c.errorf("images[%d]: empty file_name", i)
		} else if prev, dup := names[img.FileName]; dup {
			c.errorf("images[%d]: file_name %q already used by images[%d]", i, img.FileName, prev)
		} else {
			names[img.FileName] = i
		}
		if img.Width <= 0 || img.Height <= 0 {
			c.warnf("images[%d] %q: non-positive size %dx%d", i, img.FileName, img.Width, img.Height)
		}
		if root != "" && img.FileName != "" {
			if _, err := os.Stat(filepath.Join(root, img.FileName)); err != nil {
				c.warnf("images[%d]: %s not found in %s", i, img.FileName, root)
			}
		}
	}
	return checkContiguous(c, "images", ids)
}

func checkCategories(c *collector, cats []coco.Category) map[int]struct{} {
	ids := make([]int, len(cats))
	names := make(map[string]struct{}, len(cats))
	for i, cat := range cats {
		ids[i] = cat.ID
		if _, dup := names[cat.Name]; dup {
			c.errorf("categories[%d]: duplicate name %q", i, cat.Name)
		}
		names[cat.Name] = struct{}{}
	}
	return checkContiguous(c, "categories", ids)
}

func checkAnnotations(c *collector, anns []coco.Annotation, imageIDs, categoryIDs map[int]struct{}) {
	ids := make([]int, len(anns))
	for i, a := range anns {
		ids[i] = a.ID
		if _, ok := imageIDs[a.ImageID]; !ok {
			c.errorf("annotations[%d]: image_id %d does not resolve", i, a.ImageID)
		}
		if _, ok := categoryIDs[a.CategoryID]; !ok {
			c.errorf("annotations[%d]: category_id %d does not resolve", i, a.CategoryID)
		}
		if a.IsCrowd != 0 {
			c.errorf("annotations[%d]: iscrowd is %d, want 0", i, a.IsCrowd)
		}
		if a.BBox[2] < 0 || a.BBox[3] < 0 {
			c.errorf("annotations[%d]: negative bbox size %v", i, a.BBox)
		}
		if a.Area < 0 {
			c.errorf("annotations[%d]: negative area %g", i, a.Area)
		} else if a.Area == 0 {
			c.warnf("annotations[%d]: zero area", i)
		}
		if len(a.Segmentation) == 0 {
			c.errorf("annotations[%d]: empty segmentation", i)
		}
		for j, ring := range a.Segmentation {
			if len(ring) < 6 || len(ring)%2 != 0 {
				c.errorf("annotations[%d].segmentation[%d]: %d coordinates, want an even count of at least 6", i, j, len(ring))
			}
		}
	}
	checkContiguous(c, "annotations", ids)
}
