package model

import "time"

// AuditReport is the immutable result of one audit run. Issues keep check
// execution order.
type AuditReport struct {
	ID           string    `json:"id"`
	WCAGLevel    WCAGLevel `json:"wcagLevel"`
	Passed       bool      `json:"passed"`
	Issues       []Issue   `json:"issues"`
	Checks       []Check   `json:"checks,omitempty"`
	OverallScore float64   `json:"overallScore"`
	TestedAt     time.Time `json:"testedAt"`
}

// RemediationStep is one prioritized fix derived from issues.
type RemediationStep struct {
	Priority  int      `json:"priority"` // 1 = fix first
	Category  string   `json:"category"`
	Title     string   `json:"title"`
	Detail    string   `json:"detail,omitempty"`
	Elements  []string `json:"elements,omitempty"`
	Hints     []string `json:"hints,omitempty"`
	IssueType string   `json:"issueType"`
	Count     int      `json:"count"`
}

// Comparison is the diff of a report against a previous one.
type Comparison struct {
	PreviousID       string    `json:"previousId"`
	PreviousTestedAt time.Time `json:"previousTestedAt"`
	PreviousScore    float64   `json:"previousScore"`
	ScoreDelta       float64   `json:"scoreDelta"`
	IssuesNew        []Issue   `json:"issuesNew,omitempty"`
	IssuesResolved   []Issue   `json:"issuesResolved,omitempty"`
}
