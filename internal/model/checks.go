package model

// Check records how one audit check fared within a run.
type Check struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Status   string `json:"status"` // PASS/FAIL/ERROR
	Issues   int    `json:"issues"`
}

const (
	CheckPass  = "PASS"
	CheckFail  = "FAIL"
	CheckError = "ERROR"
)
