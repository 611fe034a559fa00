package changelog

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Export is the machine-readable document shape shared by the YAML and
// JSON encoders. Releases are newest first, matching the rendered output.
type Export struct {
	Project  string         `json:"project,omitempty" yaml:"project,omitempty"`
	Releases []TagChangelog `json:"releases" yaml:"releases"`
}

// newExport reverses the assembler's oldest-first sequence.
func newExport(releases []TagChangelog, project string) Export {
	reversed := make([]TagChangelog, len(releases))
	for i, r := range releases {
		reversed[len(releases)-1-i] = r
	}
	return Export{Project: project, Releases: reversed}
}

// ExportYAML writes the release sequence as a YAML document.
func ExportYAML(releases []TagChangelog, w io.Writer, project string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()

	if err := enc.Encode(newExport(releases, project)); err != nil {
		return fmt.Errorf("encoding changelog YAML: %w", err)
	}
	return nil
}

// ExportJSON writes the release sequence as an indented JSON document.
func ExportJSON(releases []TagChangelog, w io.Writer, project string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(newExport(releases, project)); err != nil {
		return fmt.Errorf("encoding changelog JSON: %w", err)
	}
	return nil
}
