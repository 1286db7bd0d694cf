package any2coco

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestConvertAndValidate(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()

	f, err := os.Create(filepath.Join(src, "a.png"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, 10, 10))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	f.Close()
	sidecar := `{"shapes": [{"label": "spot", "shape_type": "polygon", "points": [[1,1],[5,1],[5,5]]}], "imageHeight": 10, "imageWidth": 10}`
	if err := os.WriteFile(filepath.Join(src, "a.json"), []byte(sidecar), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	meta := filepath.Join(t.TempDir(), "meta.yaml")
	if err := os.WriteFile(meta, []byte("info:\n  description: spots\nlicenses: []\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	md, err := LoadMetadata(meta)
	if err != nil {
		t.Fatalf("LoadMetadata: %v", err)
	}

	res, err := Convert(context.Background(), src, dst, md.Info, md.Licenses)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(res.Dataset.Annotations) != 1 || res.Dataset.Annotations[0].Area != 8 {
		t.Fatalf("annotations = %+v", res.Dataset.Annotations)
	}

	vr, err := ValidateFile(res.OutputPath, ValidationOptions{ImageRoot: dst})
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if !vr.Valid || vr.Annotations != 1 {
		t.Fatalf("validation = %+v", vr)
	}
}

func TestPlan_NoOutput(t *testing.T) {
	res, err := Plan(context.Background(), Options{Source: t.TempDir()})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(res.Dataset.Images) != 0 || res.OutputPath != "" {
		t.Fatalf("unexpected plan result %+v", res)
	}
}

func TestValidateFile_Missing(t *testing.T) {
	if _, err := ValidateFile(filepath.Join(t.TempDir(), "nope.json"), ValidationOptions{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
