package journal

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeSnapshot reads a YAML snapshot, the offline input of the CLI's
// resolve command. Unknown keys are rejected so typos surface early.
// Dates are kept as written; malformed ones fall back to undated when built.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Snapshot
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return emptySnapshot(), nil
		}
		return Snapshot{}, fmt.Errorf("journal.DecodeSnapshot: %w", err)
	}
	return nonNil(s), nil
}
