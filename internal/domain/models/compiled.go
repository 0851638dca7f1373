package models

import "encoding/json"

// CompiledContract is what a Foundry artifact tells us about one contract
type CompiledContract struct {
	Name         string          `json:"name"`
	SourcePath   string          `json:"sourcePath"`
	ArtifactPath string          `json:"artifactPath,omitempty"`
	ABI          json.RawMessage `json:"abi,omitempty"`
}

// Identifier returns the "path:Name" form forge expects
func (c *CompiledContract) Identifier() string {
	return c.SourcePath + ":" + c.Name
}
