package report

import (
	"encoding/json"
	"fmt"
	"io"

	"dupscan/internal/scan"
)

// JSON writes the machine-readable report document.
type JSON struct {
	Out io.Writer
}

func (j JSON) Write(res *scan.Result) error {
	data, err := json.MarshalIndent(BuildDocument(res), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	data = append(data, '\n')
	if _, err := j.Out.Write(data); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
