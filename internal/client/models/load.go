package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadCreateVMRequestFile reads a create request from a YAML file. The
// request is normalized but not validated; user_id is ignored by callers
// that stamp the current user.
func LoadCreateVMRequestFile(path string) (*CreateVMRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return LoadCreateVMRequestYAML(data)
}

// LoadCreateVMRequestYAML parses a create request from YAML bytes.
func LoadCreateVMRequestYAML(data []byte) (*CreateVMRequest, error) {
	var req CreateVMRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	req.Normalize()
	return &req, nil
}
