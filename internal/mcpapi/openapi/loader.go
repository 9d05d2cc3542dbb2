// Package openapi validates and converts the embedded OpenAPI 3 document
// that describes this process's six MCP operations, adapted from the
// teacher's user-supplied-file loader to load a fixed embed.FS asset
// instead. schema.BuildToolDefinitions converts it once per process to
// build the advertised catalog tool's params schema.
package openapi

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed spec.yaml
var embeddedSpec []byte

// LoadEmbeddedSpec parses and validates the fixed operation spec shipped
// with this binary.
func LoadEmbeddedSpec() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(embeddedSpec)
	if err != nil {
		return nil, fmt.Errorf("load embedded openapi spec: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("embedded openapi spec resolved to nil document")
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate embedded openapi spec: %w", err)
	}
	return doc, nil
}
