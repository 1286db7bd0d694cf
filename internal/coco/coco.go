// Package coco holds the COCO object-detection dataset model written to
// annotations.json.
package coco

// DefaultSupercategory is assigned to every category; sidecars carry no
// hierarchy.
const DefaultSupercategory = "undefined"

// Image is one entry of the images list. DateCaptured is always null and
// License always 0.
type Image struct {
	ID           int     `json:"id"`
	FileName     string  `json:"file_name"`
	Height       int     `json:"height"`
	Width        int     `json:"width"`
	DateCaptured *string `json:"date_captured"`
	License      int     `json:"license"`
}

// Annotation is one polygon instance. BBox is [xmin, ymin, width, height];
// Segmentation holds a single flattened ring.
type Annotation struct {
	ImageID      int         `json:"image_id"`
	ID           int         `json:"id"`
	CategoryID   int         `json:"category_id"`
	IsCrowd      int         `json:"iscrowd"`
	BBox         [4]int      `json:"bbox"`
	Segmentation [][]float64 `json:"segmentation"`
	Area         float64     `json:"area"`
}

type Category struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Supercategory string `json:"supercategory"`
}

// Dataset is the top-level document. Info and Licenses are caller supplied
// and passed through untouched; note the singular "license" key.
type Dataset struct {
	Info        any          `json:"info"`
	Licenses    []any        `json:"license"`
	Categories  []Category   `json:"categories"`
	Images      []Image      `json:"images"`
	Annotations []Annotation `json:"annotations"`
}

// AnnotationsPerImage counts annotations by image id.
func (d *Dataset) AnnotationsPerImage() map[int]int {
	counts := make(map[int]int, len(d.Images))
	for _, a := range d.Annotations {
		counts[a.ImageID]++
	}
	return counts
}
