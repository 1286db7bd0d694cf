package builder

import cdx "github.com/CycloneDX/cyclonedx-go"

// AddDependencies makes the metadata (dataset) component depend on every
// file component, and adds a leaf entry per file.
func AddDependencies(bom *cdx.BOM) {
	if bom == nil || bom.Metadata == nil || bom.Metadata.Component == nil {
		return
	}
	rootRef := bom.Metadata.Component.BOMRef
	if rootRef == "" {
		return
	}

	var fileRefs []string
	if bom.Components != nil {
		for _, comp := range *bom.Components {
			if comp.Type == cdx.ComponentTypeFile && comp.BOMRef != "" {
				fileRefs = append(fileRefs, comp.BOMRef)
			}
		}
	}

	deps := make([]cdx.Dependency, 0, 1+len(fileRefs))
	root := cdx.Dependency{Ref: rootRef}
	if len(fileRefs) > 0 {
		refs := make([]string, len(fileRefs))
		copy(refs, fileRefs)
		root.Dependencies = &refs
	}
	deps = append(deps, root)
	for _, ref := range fileRefs {
		deps = append(deps, cdx.Dependency{Ref: ref})
	}
	bom.Dependencies = &deps
}
