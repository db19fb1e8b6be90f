package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"dupscan/internal/scan"
)

// YAML writes the report document as YAML.
type YAML struct {
	Out io.Writer
}

func (y YAML) Write(res *scan.Result) error {
	data, err := yaml.Marshal(BuildDocument(res))
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if _, err := y.Out.Write(data); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
