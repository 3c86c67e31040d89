// Package render — JSON renderer.
// Emits the artifact as indented JSON. The report field names are the
// stable output contract, so no reshaping happens here.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/auditpipe/core"
)

// JSONRenderer produces machine-readable artifact output.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the artifact with indentation.
func (r *JSONRenderer) Render(artifact core.Artifact) ([]byte, error) {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling artifact: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
