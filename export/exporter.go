// Package export renders scene documents to external formats.
package export

import "slidewire/scene"

// Exporter converts a scene to an output format.
type Exporter interface {
	// Export renders the scene.
	Export(s *scene.Scene) ([]byte, error)
	// FileExtension returns the conventional file extension.
	FileExtension() string
}

// JSONExporter round-trips the scene document itself.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export serializes the scene as indented JSON.
func (e *JSONExporter) Export(s *scene.Scene) ([]byte, error) {
	return s.Encode()
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
