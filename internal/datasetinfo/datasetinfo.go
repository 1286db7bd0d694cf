// Package datasetinfo loads the caller supplied info and license blocks of
// a COCO dataset.
package datasetinfo

import (
	"fmt"
	"os"
	"time"

	yaml "go.yaml.in/yaml/v3"
)

// Metadata is passed through to the dataset document untouched.
type Metadata struct {
	Info     any
	Licenses []any
}

// Info is the info block written when no metadata file is given.
type Info struct {
	Year        int    `json:"year"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Contributor string `json:"contributor"`
	URL         string `json:"url"`
	DateCreated string `json:"date_created"`
}

// Default builds metadata from flag values; licenses are empty.
func Default(description, version, contributor, url string, now time.Time) Metadata {
	return Metadata{
		Info: Info{
			Year:        now.Year(),
			Version:     version,
			Description: description,
			Contributor: contributor,
			URL:         url,
			DateCreated: now.Format("2006/01/02"),
		},
		Licenses: []any{},
	}
}

// Load reads a YAML or JSON file with top-level "info" and "licenses" keys.
// The singular "license" key used in the output document is accepted too.
// Missing info becomes an empty object and missing licenses an empty list.
func Load(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Metadata{}, fmt.Errorf("parse %s: %w", path, err)
	}
	doc, err := toValue(&root)
	if err != nil {
		return Metadata{}, fmt.Errorf("parse %s: %w", path, err)
	}

	m := Metadata{Info: map[string]any{}, Licenses: []any{}}
	if doc == nil {
		return m, nil
	}
	top, ok := doc.(map[string]any)
	if !ok {
		return Metadata{}, fmt.Errorf("parse %s: top level must be a mapping", path)
	}
	if info, ok := top["info"]; ok && info != nil {
		m.Info = info
	}

	lic, ok := top["licenses"]
	if !ok {
		lic = top["license"]
	}
	switch l := lic.(type) {
	case nil:
	case []any:
		m.Licenses = l
	default:
		return Metadata{}, fmt.Errorf("parse %s: licenses must be a list", path)
	}
	logf(path, "info=%T licenses=%d", m.Info, len(m.Licenses))
	return m, nil
}

// toValue converts a YAML node to JSON-compatible Go values. Timestamps keep
// their source text instead of becoming time.Time.
func toValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return toValue(n.Content[0])
	case yaml.AliasNode:
		return toValue(n.Alias)
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := toValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[n.Content[i].Value] = v
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := toValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		if n.ShortTag() == "!!timestamp" {
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
}
