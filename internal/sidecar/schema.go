package sidecar

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed sidecar.schema.json
var schemaJSON []byte

const schemaURL = "sidecar.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to load sidecar schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile sidecar schema: %w", err)
	}
	return schema, nil
})

// validateDocument checks a decoded JSON document against the sidecar schema.
func validateDocument(doc any) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}
	return schema.Validate(doc)
}
