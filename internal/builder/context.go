package builder

import "github.com/idlab-discover/any2coco-cli/internal/coco"

// BuildContext describes a written dataset.
type BuildContext struct {
	Name        string
	Version     string
	Description string

	// Root is the dataset directory holding the copied images and
	// AnnotationsFile.
	Root            string
	AnnotationsFile string
	Dataset         *coco.Dataset
}

type Options struct {
	ToolName    string
	ToolVersion string
	// SpecVersion selects the CycloneDX version stamped on the BOM.
	SpecVersion string
}

func DefaultOptions() Options {
	return Options{
		ToolName:    DefaultToolName,
		ToolVersion: GetVersion(),
		SpecVersion: "1.6",
	}
}
