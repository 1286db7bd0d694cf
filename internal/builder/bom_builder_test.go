package builder

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/idlab-discover/any2coco-cli/internal/coco"
)

func fixture(t *testing.T) BuildContext {
	t.Helper()
	root := t.TempDir()
	for name, content := range map[string]string{
		"annotations.json": `{}`,
		"a.jpg":            "aaaa",
		"b.png":            "bbbb",
	} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	return BuildContext{
		Name:            "pets",
		Version:         "1.0",
		Description:     " pet photos ",
		Root:            root,
		AnnotationsFile: "annotations.json",
		Dataset: &coco.Dataset{
			Categories: []coco.Category{{ID: 0, Name: "cat"}, {ID: 1, Name: "dog"}},
			Images: []coco.Image{
				{ID: 0, FileName: "a.jpg", Width: 4, Height: 3},
				{ID: 1, FileName: "b.png", Width: 8, Height: 6},
			},
			Annotations: []coco.Annotation{{ID: 0}},
		},
	}
}

func property(props *[]cdx.Property, name string) string {
	if props == nil {
		return ""
	}
	for _, p := range *props {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

func TestBOMBuilder_Build(t *testing.T) {
	bctx := fixture(t)
	bom, err := NewBOMBuilder(Options{ToolName: "tool", ToolVersion: "v1"}).Build(context.Background(), bctx)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !strings.HasPrefix(bom.SerialNumber, "urn:uuid:") {
		t.Errorf("SerialNumber = %q", bom.SerialNumber)
	}
	if bom.Metadata == nil || bom.Metadata.Timestamp == "" {
		t.Fatal("expected metadata timestamp")
	}
	tools := bom.Metadata.Tools.Components
	if tools == nil || len(*tools) != 1 || (*tools)[0].Name != "tool" || (*tools)[0].Version != "v1" {
		t.Errorf("tools = %+v", tools)
	}

	comp := bom.Metadata.Component
	if comp.Type != cdx.ComponentTypeData || comp.Name != "pets" || comp.BOMRef != "dataset:pets" || comp.Description != "pet photos" {
		t.Fatalf("metadata component = %+v", comp)
	}
	if comp.Data == nil || len(*comp.Data) != 1 {
		t.Fatalf("expected one data entry, got %+v", comp.Data)
	}
	data := (*comp.Data)[0]
	if data.Type != cdx.ComponentDataTypeDataset || data.Classification != "cat, dog" {
		t.Errorf("data = %+v", data)
	}
	if got := property(data.Contents.Properties, "coco:images"); got != "2" {
		t.Errorf("coco:images = %q", got)
	}

	if bom.Components == nil || len(*bom.Components) != 3 {
		t.Fatalf("components = %+v", bom.Components)
	}
	files := *bom.Components
	if files[0].Name != "annotations.json" || files[1].Name != "a.jpg" {
		t.Errorf("component order = %s, %s", files[0].Name, files[1].Name)
	}
	sum := sha256.Sum256([]byte("aaaa"))
	if h := (*files[1].Hashes)[0]; h.Algorithm != cdx.HashAlgoSHA256 || h.Value != hex.EncodeToString(sum[:]) {
		t.Errorf("a.jpg hash = %+v", h)
	}
	if got := property(files[2].Properties, "coco:width"); got != "8" {
		t.Errorf("b.png width = %q", got)
	}
	if files[0].Properties != nil {
		t.Errorf("annotations file should carry no image properties")
	}

	deps := *bom.Dependencies
	if len(deps) != 4 || deps[0].Ref != "dataset:pets" || len(*deps[0].Dependencies) != 3 {
		t.Fatalf("dependencies = %+v", deps)
	}
}

func TestBOMBuilder_DefaultName(t *testing.T) {
	bctx := fixture(t)
	bctx.Name = ""
	bom, err := NewBOMBuilder(DefaultOptions()).Build(context.Background(), bctx)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := bom.Metadata.Component.Name; got != filepath.Base(bctx.Root) {
		t.Errorf("Name = %q, want root base name", got)
	}
}

func TestBOMBuilder_Errors(t *testing.T) {
	b := NewBOMBuilder(DefaultOptions())
	if _, err := b.Build(context.Background(), BuildContext{}); err == nil {
		t.Error("expected error for nil dataset")
	}

	bctx := fixture(t)
	if err := os.Remove(filepath.Join(bctx.Root, "b.png")); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := b.Build(context.Background(), bctx); err == nil || !strings.Contains(err.Error(), "b.png") {
		t.Errorf("error = %v, want hash failure naming b.png", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Build(ctx, fixture(t)); err == nil {
		t.Error("expected error for cancelled context")
	}
}
