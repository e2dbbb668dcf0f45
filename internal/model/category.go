package model

// CategoryScore summarizes the issues of one category within a report.
type CategoryScore struct {
	Name     string  `json:"name"`
	Issues   int     `json:"issues"`
	Weight   float64 `json:"weight"`
	Penalty  float64 `json:"penalty"`
	Critical int     `json:"critical,omitempty"`
	High     int     `json:"high,omitempty"`
	Medium   int     `json:"medium,omitempty"`
	Low      int     `json:"low,omitempty"`
}
