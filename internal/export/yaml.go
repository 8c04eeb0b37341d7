package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

func WriteYAML(w io.Writer, snap Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode yaml export: %w", err)
	}
	return enc.Close()
}

// ReadYAML decodes a document written by WriteYAML.
func ReadYAML(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode yaml export: %w", err)
	}
	return snap, nil
}
