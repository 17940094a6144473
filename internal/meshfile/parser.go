package meshfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseMeshFile parses a mesh description file from disk.
//
// Parameters:
//   - path: Path to the YAML file, e.g., "data/models/bronchi.yaml"
//
// Returns:
//   - *MeshFile: The parsed model description
//   - error: Read, parse or validation error
func ParseMeshFile(path string) (*MeshFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mesh file '%s': %w", path, err)
	}

	file, err := ParseMeshData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mesh file '%s': %w", path, err)
	}
	return file, nil
}

// ParseMeshData parses mesh description YAML that is already in memory
// (embedded data or test fixtures).
func ParseMeshData(data []byte) (*MeshFile, error) {
	var file MeshFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// Validate checks that every entry has an id, a 3-component position and,
// when present, a 3-component color. Duplicate ids are rejected.
func (f *MeshFile) Validate() error {
	seen := make(map[string]bool, len(f.Meshes))
	for i, m := range f.Meshes {
		if m.ID == "" {
			return fmt.Errorf("mesh #%d has empty id", i)
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate mesh id '%s'", m.ID)
		}
		seen[m.ID] = true

		if len(m.Position) != 3 {
			return fmt.Errorf("mesh '%s': position must have 3 components, got %d", m.ID, len(m.Position))
		}
		if m.Color != nil && len(*m.Color) != 3 {
			return fmt.Errorf("mesh '%s': color must have 3 components, got %d", m.ID, len(*m.Color))
		}
	}
	return nil
}
