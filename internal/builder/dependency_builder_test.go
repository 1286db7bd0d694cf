package builder

import (
	"testing"

	cdx "github.com/CycloneDX/cyclonedx-go"
)

func TestAddDependencies(t *testing.T) {
	b := cdx.NewBOM()
	b.Metadata = &cdx.Metadata{Component: &cdx.Component{BOMRef: "dataset:x", Type: cdx.ComponentTypeData, Name: "x"}}
	b.Components = &[]cdx.Component{
		{BOMRef: "file:a.jpg", Type: cdx.ComponentTypeFile, Name: "a.jpg"},
		{BOMRef: "lib", Type: cdx.ComponentTypeLibrary, Name: "ignored"},
		{BOMRef: "file:b.png", Type: cdx.ComponentTypeFile, Name: "b.png"},
	}

	AddDependencies(b)

	deps := *b.Dependencies
	if len(deps) != 3 {
		t.Fatalf("len(deps) = %d, want 3", len(deps))
	}
	if deps[0].Ref != "dataset:x" || deps[0].Dependencies == nil || len(*deps[0].Dependencies) != 2 {
		t.Fatalf("root dependency = %+v", deps[0])
	}
	if deps[1].Ref != "file:a.jpg" || deps[1].Dependencies != nil {
		t.Errorf("leaf = %+v", deps[1])
	}
}

func TestAddDependencies_NoOp(t *testing.T) {
	AddDependencies(nil)

	b := cdx.NewBOM()
	AddDependencies(b)
	if b.Dependencies != nil {
		t.Error("expected no dependencies without a metadata component")
	}

	b.Metadata = &cdx.Metadata{Component: &cdx.Component{Name: "no-ref"}}
	AddDependencies(b)
	if b.Dependencies != nil {
		t.Error("expected no dependencies without a bom-ref")
	}

	b.Metadata.Component.BOMRef = "dataset:x"
	AddDependencies(b)
	if deps := *b.Dependencies; len(deps) != 1 || deps[0].Dependencies != nil {
		t.Errorf("expected a single root without dependsOn, got %+v", deps)
	}
}
