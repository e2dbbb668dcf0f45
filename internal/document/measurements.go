package document

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type measurementFile struct {
	Name       string  `yaml:"name"`
	DurationMS float64 `yaml:"duration_ms"`
}

// LoadMeasurements reads a YAML (or JSON) list of {name, duration_ms}.
func LoadMeasurements(path string) ([]Measurement, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read measurements %s: %w", path, err)
	}
	return ParseMeasurements(raw)
}

func ParseMeasurements(raw []byte) ([]Measurement, error) {
	var entries []measurementFile
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse measurements: %w", err)
	}
	out := make([]Measurement, 0, len(entries))
	for _, e := range entries {
		out = append(out, Measurement{
			Name:     e.Name,
			Duration: time.Duration(e.DurationMS * float64(time.Millisecond)),
		})
	}
	return out, nil
}
