package builder

import (
	"strings"
	"testing"
	"time"

	"github.com/CycloneDX/cyclonedx-go"
)

func TestAddMetaSerialNumber(t *testing.T) {
	tests := []struct {
		name string
		bom  *cyclonedx.BOM
		want string
	}{
		{name: "sets serial when empty", bom: &cyclonedx.BOM{}},
		{name: "preserves existing serial", bom: &cyclonedx.BOM{SerialNumber: "urn:uuid:existing"}, want: "urn:uuid:existing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := AddMetaSerialNumber(tt.bom); err != nil {
				t.Fatalf("AddMetaSerialNumber() error = %v", err)
			}
			if !strings.HasPrefix(tt.bom.SerialNumber, "urn:uuid:") {
				t.Errorf("SerialNumber = %q", tt.bom.SerialNumber)
			}
			if tt.want != "" && tt.bom.SerialNumber != tt.want {
				t.Errorf("SerialNumber = %q, want %q", tt.bom.SerialNumber, tt.want)
			}
		})
	}
}

func Test_generateUUID(t *testing.T) {
	u1, u2 := generateUUID(), generateUUID()
	if u1 == "" || u1 == u2 {
		t.Errorf("generateUUID returned %q and %q", u1, u2)
	}
}

func TestAddMetaTimestamp(t *testing.T) {
	bom := &cyclonedx.BOM{}
	if err := AddMetaTimestamp(bom); err != nil {
		t.Fatalf("AddMetaTimestamp() error = %v", err)
	}
	if _, err := time.Parse(time.RFC3339, bom.Metadata.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", bom.Metadata.Timestamp, err)
	}

	fixed := &cyclonedx.BOM{Metadata: &cyclonedx.Metadata{Timestamp: "2020-01-01T00:00:00Z"}}
	_ = AddMetaTimestamp(fixed)
	if fixed.Metadata.Timestamp != "2020-01-01T00:00:00Z" {
		t.Errorf("existing timestamp overwritten: %q", fixed.Metadata.Timestamp)
	}
}

func TestAddMetaTools(t *testing.T) {
	bom := &cyclonedx.BOM{}
	if err := AddMetaTools(bom, "", ""); err != nil {
		t.Fatalf("AddMetaTools() error = %v", err)
	}
	if err := AddMetaTools(bom, "other", "v2"); err != nil {
		t.Fatalf("AddMetaTools() error = %v", err)
	}
	comps := *bom.Metadata.Tools.Components
	if len(comps) != 2 {
		t.Fatalf("len(tools) = %d, want 2", len(comps))
	}
	if comps[0].Name != DefaultToolName || comps[0].Version != DefaultToolVersion {
		t.Errorf("defaults not applied: %+v", comps[0])
	}
	if comps[1].Name != "other" || comps[1].Manufacturer.Name != DefaultToolVendor {
		t.Errorf("second tool = %+v", comps[1])
	}
}
