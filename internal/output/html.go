package output

import (
	"html/template"
	"os"

	"wcag-audit/internal/model"
)

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"posture": Posture,
	"ordered": sortedIssues,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Accessibility Audit Report</title>
<style>
body { font-family: Arial, sans-serif; margin: 40px; color: #111; background: #fff; }
.score { font-size: 24px; font-weight: bold; }
table { border-collapse: collapse; width: 100%; margin-top: 20px; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; vertical-align: top; }
th { background-color: #f2f2f2; }
.critical { color: #a4161a; font-weight: 600; }
.high { color: #8a3b00; font-weight: 600; }
</style>
</head>
<body>
<h1>Accessibility Audit Report</h1>
<div class="score">Overall Score: {{printf "%.2f" .Report.OverallScore}} / 100</div>
<h2>WCAG {{.Report.WCAGLevel}} &middot; Posture {{posture .Report.OverallScore}}</h2>

{{if .Report.Checks}}
<h3>Checks</h3>
<table>
<tr><th>Check</th><th>Category</th><th>Status</th><th>Issues</th></tr>
{{range .Report.Checks}}<tr><td>{{.Title}}</td><td>{{.Category}}</td><td>{{.Status}}</td><td>{{.Issues}}</td></tr>
{{end}}</table>
{{end}}

<h3>Issues</h3>
{{if .Report.Issues}}
<table>
<tr><th>Severity</th><th>Type</th><th>Elements</th><th>Issue</th><th>Remediation</th></tr>
{{range ordered .Report.Issues}}<tr>
<td class="{{.Severity}}">{{.Severity}}</td>
<td>{{.Type}}</td>
<td>{{range $i, $e := .AffectedElements}}{{if $i}}, {{end}}{{$e}}{{end}}</td>
<td>{{.Message}}</td>
<td>{{.Remediation}}</td>
</tr>
{{end}}</table>
{{else}}
<p>No accessibility issues detected.</p>
{{end}}

{{if .Extras.Steps}}
<h3>Remediation Plan</h3>
<ol>
{{range .Extras.Steps}}<li><strong>P{{.Priority}} {{.Title}}</strong> ({{.Count}}) {{.Detail}}</li>
{{end}}</ol>
{{end}}
</body>
</html>
`))

// WriteHTML writes a standalone HTML rendering of r.
func WriteHTML(path string, r model.AuditReport, x Extras) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return reportTemplate.Execute(f, struct {
		Report model.AuditReport
		Extras Extras
	}{r, x})
}
