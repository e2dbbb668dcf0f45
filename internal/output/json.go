package output

import (
	"encoding/json"
	"os"

	"wcag-audit/internal/model"
)

// WriteJSON writes r as indented JSON. compare.LoadReport reads it back.
func WriteJSON(path string, r model.AuditReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
