package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns prefix plus a short random suffix, e.g. "contrast-1f09a3c2".
func NewID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	if prefix == "" {
		return suffix
	}
	return prefix + "-" + suffix
}

// TimeID builds a time-derived id. seq disambiguates ids minted in the
// same millisecond.
func TimeID(prefix string, t time.Time, seq uint64) string {
	return fmt.Sprintf("%s-%d-%d", prefix, t.UnixMilli(), seq)
}

// NewRunID identifies one audit run.
func NewRunID() string {
	return uuid.NewString()
}
