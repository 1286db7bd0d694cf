package coco

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDataset_JSONKeys(t *testing.T) {
	ds := Dataset{
		Info:       map[string]any{"description": "x"},
		Licenses:   []any{},
		Categories: []Category{{ID: 0, Name: "cat", Supercategory: DefaultSupercategory}},
		Images:     []Image{{ID: 0, FileName: "a.jpg", Height: 2, Width: 3}},
		Annotations: []Annotation{{
			ImageID: 0, ID: 0, CategoryID: 0,
			BBox:         [4]int{0, 0, 1, 1},
			Segmentation: [][]float64{{0, 0, 1, 0, 1, 1}},
			Area:         0.5,
		}},
	}

	data, err := json.Marshal(ds)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		`"license":[]`,
		`"date_captured":null`,
		`"supercategory":"undefined"`,
		`"iscrowd":0`,
		`"bbox":[0,0,1,1]`,
		`"segmentation":[[0,0,1,0,1,1]]`,
		`"file_name":"a.jpg"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON missing %s\n%s", want, out)
		}
	}
}

func TestDataset_Counts(t *testing.T) {
	ds := Dataset{
		Categories:  []Category{{ID: 0}, {ID: 1}},
		Annotations: []Annotation{{ImageID: 0}, {ImageID: 0}, {ImageID: 2}},
	}
	if got := ds.AnnotationsPerImage(); got[0] != 2 || got[2] != 1 || got[1] != 0 {
		t.Fatalf("AnnotationsPerImage() = %v", got)
	}
}
