// Package predict estimates how likely a client environment is to produce
// errors. It is a fixed weighted sum over three risk factors, not a model.
package predict

import (
	"math"
	"strings"
	"time"
)

const (
	legacyBrowserRisk = 0.7
	slowRenderRisk    = 0.5
	legacyOSRisk      = 0.6

	slowRender = 200 * time.Millisecond
)

// Signals describe the client environment.
type Signals struct {
	Browser    string        `json:"browser"`
	RenderTime time.Duration `json:"renderTime"`
	OS         string        `json:"os"`
}

// Prediction is the estimated error probability in [0,1] and what to do about it.
type Prediction struct {
	Probability float64  `json:"probabilityOfError"`
	Actions     []string `json:"recommendedActions"`
}

func Predict(s Signals) Prediction {
	slow := s.RenderTime > slowRender

	sum := 0.0
	if s.Browser == "Internet Explorer" {
		sum += legacyBrowserRisk
	}
	if slow {
		sum += slowRenderRisk
	}
	if strings.Contains(s.OS, "Windows XP") {
		sum += legacyOSRisk
	}

	p := Prediction{Probability: math.Min(sum, 1), Actions: []string{}}
	if p.Probability > 0.5 {
		p.Actions = append(p.Actions, "Upgrade browser", "Optimize rendering")
	}
	if slow {
		p.Actions = append(p.Actions, "Reduce complex rendering")
	}
	return p
}
