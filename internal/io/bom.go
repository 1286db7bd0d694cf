package io

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"
)

// BOMBaseName is the file name, without extension, of the dataset BOM.
const BOMBaseName = "dataset.cdx"

// BOMFormat resolves "json", "xml" or "auto"/"" to a concrete format.
// With auto, the extension of path decides and anything but .xml is JSON.
func BOMFormat(format, path string) (string, error) {
	switch actual := strings.ToLower(strings.TrimSpace(format)); actual {
	case "", "auto":
		if strings.EqualFold(filepath.Ext(path), ".xml") {
			return "xml", nil
		}
		return "json", nil
	case "json", "xml":
		return actual, nil
	default:
		return "", fmt.Errorf("unsupported BOM format: %q", format)
	}
}

// BOMPath returns dst/dataset.cdx.<format>.
func BOMPath(dst, format string) string {
	return filepath.Join(dst, BOMBaseName+"."+format)
}

func fileFormat(format string) cdx.BOMFileFormat {
	if format == "xml" {
		return cdx.BOMFileFormatXML
	}
	return cdx.BOMFileFormatJSON
}

// ReadBOM reads a dataset BOM written by WriteBOM.
func ReadBOM(path, format string) (*cdx.BOM, error) {
	actual, err := BOMFormat(format, path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bom := new(cdx.BOM)
	if err := cdx.NewBOMDecoder(f, fileFormat(actual)).Decode(bom); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return bom, nil
}

// WriteBOM encodes bom to outputPath. An empty spec uses the library's
// latest CycloneDX version.
func WriteBOM(bom *cdx.BOM, outputPath, format, spec string) error {
	actual, err := BOMFormat(format, outputPath)
	if err != nil {
		return err
	}
	if ext := strings.TrimPrefix(filepath.Ext(outputPath), "."); ext != actual {
		return fmt.Errorf("output path extension %q does not match format %q", ext, actual)
	}

	var sv cdx.SpecVersion
	if spec != "" {
		var ok bool
		if sv, ok = ParseSpecVersion(spec); !ok {
			return fmt.Errorf("unsupported CycloneDX spec version: %q", spec)
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := cdx.NewBOMEncoder(f, fileFormat(actual))
	encoder.SetPretty(true)
	if spec == "" {
		err = encoder.Encode(bom)
	} else {
		err = encoder.EncodeVersion(bom, sv)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", outputPath, err)
	}
	logf(filepath.Base(outputPath), "wrote BOM (format=%s)", actual)
	return nil
}

// ParseSpecVersion maps "1.5" or "1.6" to a CycloneDX spec version. Earlier
// versions lack the data component type.
func ParseSpecVersion(s string) (cdx.SpecVersion, bool) {
	switch strings.TrimSpace(s) {
	case "1.5":
		return cdx.SpecVersion1_5, true
	case "1.6":
		return cdx.SpecVersion1_6, true
	default:
		return cdx.SpecVersion1_6, false
	}
}
