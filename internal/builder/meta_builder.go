package builder

import (
	"time"

	"github.com/CycloneDX/cyclonedx-go"
	"github.com/google/uuid"
)

// AddMetaSerialNumber sets a serial number if not already set
func AddMetaSerialNumber(bom *cyclonedx.BOM) error {
	if bom.SerialNumber == "" {
		bom.SerialNumber = "urn:uuid:" + generateUUID()
	}
	return nil
}

func generateUUID() string {
	return uuid.New().String()
}

// AddMetaTimestamp sets the timestamp if not already set
func AddMetaTimestamp(bom *cyclonedx.BOM) error {
	if bom.Metadata == nil {
		bom.Metadata = &cyclonedx.Metadata{}
	}
	if bom.Metadata.Timestamp == "" {
		bom.Metadata.Timestamp = CurrentTimestampRFC3339()
	}
	return nil
}

// CurrentTimestampRFC3339 returns now formatted as RFC3339 (e.g. 2026-01-22T10:41:24+01:00)
func CurrentTimestampRFC3339() string {
	return time.Now().Format(time.RFC3339)
}

const (
	DefaultToolVendor  = "idlab-discover"
	DefaultToolName    = "any2coco-cli"
	DefaultToolVersion = "v0.0.0"
)

// AddMetaTools appends the converter to bom.metadata.tools.components.
// Empty name or version fall back to the defaults above.
func AddMetaTools(bom *cyclonedx.BOM, toolName string, toolVersion string) error {
	if bom.Metadata == nil {
		bom.Metadata = &cyclonedx.Metadata{}
	}
	if bom.Metadata.Tools == nil {
		bom.Metadata.Tools = &cyclonedx.ToolsChoice{}
	}

	name := toolName
	if name == "" {
		name = DefaultToolName
	}
	version := toolVersion
	if version == "" {
		version = DefaultToolVersion
	}

	comp := cyclonedx.Component{
		Type: cyclonedx.ComponentTypeApplication,
		Manufacturer: &cyclonedx.OrganizationalEntity{
			Name: DefaultToolVendor,
		},
		Name:    name,
		Version: version,
	}

	if bom.Metadata.Tools.Components == nil {
		bom.Metadata.Tools.Components = &[]cyclonedx.Component{comp}
	} else {
		components := append(*bom.Metadata.Tools.Components, comp)
		bom.Metadata.Tools.Components = &components
	}
	return nil
}

// fileBOMRef names the component of a file inside the dataset.
func fileBOMRef(name string) string { return "file:" + name }

// datasetBOMRef names the dataset component.
func datasetBOMRef(name string) string { return "dataset:" + name }
