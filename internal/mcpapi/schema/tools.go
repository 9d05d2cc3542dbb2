// Package schema builds the JSON Schema advertised to MCP clients for the
// single "catalog" tool, derived from the embedded OpenAPI document rather
// than hand-duplicated here.
package schema

import (
	"sync"

	"catalogd/internal/mcpapi/contracts"
	"catalogd/internal/mcpapi/openapi"
)

type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"input_schema"`
	Version     string         `json:"version"`
}

var (
	descriptorsOnce sync.Once
	allDescriptors  []contracts.OperationDescriptor
)

// loadDescriptors parses and validates the embedded OpenAPI document
// exactly once per process. A failure here is a build-time asset defect,
// not a runtime error mode, so it panics instead of returning an error.
func loadDescriptors() []contracts.OperationDescriptor {
	descriptorsOnce.Do(func() {
		doc, err := openapi.LoadEmbeddedSpec()
		if err != nil {
			panic("schema: embedded OpenAPI document is invalid: " + err.Error())
		}
		descriptors, err := openapi.Convert(doc)
		if err != nil {
			panic("schema: embedded OpenAPI document did not convert: " + err.Error())
		}
		allDescriptors = descriptors
	})
	return allDescriptors
}

// BuildToolDefinitions returns the single catalog ToolDefinition, with its
// operation enum and per-operation params schema narrowed to allowlist
// (empty allowlist advertises all six operations, matching
// config.MCP.OperationAllowlist's "empty = all six operations" rule).
func BuildToolDefinitions(allowlist []string) []ToolDefinition {
	descriptors := openapi.ApplyAllowlist(loadDescriptors(), allowlist)

	operations := make([]string, 0, len(descriptors))
	paramsSchemas := make([]map[string]any, 0, len(descriptors))
	for _, d := range descriptors {
		operations = append(operations, string(d.ID))
		paramsSchemas = append(paramsSchemas, d.InputSchema)
	}

	return []ToolDefinition{
		{
			Name:        contracts.ToolNameCatalog,
			Description: "Single entry tool for 1C:Enterprise platform API catalog operations.",
			Version:     contracts.ContractVersion,
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"operation": map[string]any{
						"type":        "string",
						"description": "Operation identifier (e.g., search).",
						"enum":        operations,
					},
					"params": map[string]any{
						"oneOf": paramsSchemas,
					},
				},
				"required": []string{"operation"},
			},
		},
	}
}
