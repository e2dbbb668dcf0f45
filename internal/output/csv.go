package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"wcag-audit/internal/model"
)

// WriteCSV writes issues, checks, categories and remediation steps as
// separate CSV files to outDir/csv/.
// Files are UTF-8 with BOM for clean Excel opening on Windows.
func WriteCSV(outDir string, r model.AuditReport, x Extras) error {
	dir := filepath.Join(outDir, "csv")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("csv: mkdir: %w", err)
	}
	writers := []func(string, model.AuditReport, Extras) error{
		writeIssuesCSV,
		writeChecksCSV,
		writeCategoriesCSV,
		writeRemediationCSV,
	}
	for _, fn := range writers {
		if err := fn(dir, r, x); err != nil {
			return err
		}
	}
	return nil
}

func csvFile(dir, name string) (*os.File, *csv.Writer, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, nil, err
	}
	// UTF-8 BOM for Excel
	_, _ = f.Write([]byte{0xEF, 0xBB, 0xBF})
	return f, csv.NewWriter(f), nil
}

func writeIssuesCSV(dir string, r model.AuditReport, _ Extras) error {
	f, w, err := csvFile(dir, "issues.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = w.Write([]string{"ID", "Type", "Category", "Severity", "Message", "Remediation", "Affected Elements", "Timestamp"})
	for _, is := range r.Issues {
		_ = w.Write([]string{
			is.ID, is.Type, is.Category, string(is.Severity), is.Message, is.Remediation,
			strings.Join(is.AffectedElements, ";"), is.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	w.Flush()
	return w.Error()
}

func writeChecksCSV(dir string, r model.AuditReport, _ Extras) error {
	f, w, err := csvFile(dir, "checks.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = w.Write([]string{"ID", "Title", "Category", "Status", "Issues"})
	for _, c := range r.Checks {
		_ = w.Write([]string{c.ID, c.Title, c.Category, c.Status, strconv.Itoa(c.Issues)})
	}
	w.Flush()
	return w.Error()
}

func writeCategoriesCSV(dir string, _ model.AuditReport, x Extras) error {
	f, w, err := csvFile(dir, "categories.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = w.Write([]string{"Category", "Issues", "Weight", "Penalty", "Critical", "High", "Medium", "Low"})
	for _, c := range x.Categories {
		_ = w.Write([]string{
			c.Name, strconv.Itoa(c.Issues),
			strconv.FormatFloat(c.Weight, 'f', 2, 64), strconv.FormatFloat(c.Penalty, 'f', 2, 64),
			strconv.Itoa(c.Critical), strconv.Itoa(c.High), strconv.Itoa(c.Medium), strconv.Itoa(c.Low),
		})
	}
	w.Flush()
	return w.Error()
}

func writeRemediationCSV(dir string, _ model.AuditReport, x Extras) error {
	f, w, err := csvFile(dir, "remediation.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = w.Write([]string{"Priority", "Category", "Issue Type", "Count", "Title", "Detail", "Elements"})
	for _, s := range x.Steps {
		_ = w.Write([]string{
			strconv.Itoa(s.Priority), s.Category, s.IssueType, strconv.Itoa(s.Count),
			s.Title, s.Detail, strings.Join(s.Elements, ";"),
		})
	}
	w.Flush()
	return w.Error()
}
