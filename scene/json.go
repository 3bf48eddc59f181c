package scene

import (
	"encoding/json"
	"fmt"
	"os"
)

// Parse decodes a scene document from JSON and builds the element index.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	s.Reindex()
	return &s, nil
}

// Encode serializes the scene as indented JSON.
func (s *Scene) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode scene: %w", err)
	}
	return data, nil
}

// LoadFile reads a scene document from disk.
func LoadFile(filename string) (*Scene, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// SaveFile writes the scene document to disk.
func SaveFile(filename string, s *Scene) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
