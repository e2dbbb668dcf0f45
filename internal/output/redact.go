package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"wcag-audit/internal/model"
)

// WriteRedactedJSON writes a copy of the report with element ids masked.
func WriteRedactedJSON(path string, r model.AuditReport) error {
	data, err := json.MarshalIndent(Redact(r), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Redact returns a copy of r in which every element id ("TAG#id") is
// replaced by an opaque token. The same id maps to the same token across
// issues. Tags are kept because they carry no page-specific data.
func Redact(r model.AuditReport) model.AuditReport {
	out := r
	out.Issues = make([]model.Issue, len(r.Issues))

	tokens := map[string]string{}
	mask := func(ref string) string {
		tag, id, ok := strings.Cut(ref, "#")
		if !ok || id == "" {
			return ref
		}
		tok, seen := tokens[id]
		if !seen {
			tok = fmt.Sprintf("element-%d", len(tokens)+1)
			tokens[id] = tok
		}
		return tag + "#" + tok
	}

	for i, is := range r.Issues {
		c := is
		c.AffectedElements = make([]string, len(is.AffectedElements))
		for j, ref := range is.AffectedElements {
			masked := mask(ref)
			c.AffectedElements[j] = masked
			c.Message = strings.ReplaceAll(c.Message, ref, masked)
			c.Remediation = strings.ReplaceAll(c.Remediation, ref, masked)
		}
		if len(is.AffectedElements) == 0 {
			c.AffectedElements = nil
		}
		out.Issues[i] = c
	}
	return out
}
