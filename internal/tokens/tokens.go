// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tokens estimates token counts for chunk-size reporting.
package tokens

import (
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// charsPerToken is the heuristic ratio used when no encoder is available.
const charsPerToken = 4

// Estimator counts tokens with the cl100k_base encoding when available and
// falls back to a characters-per-token heuristic otherwise. The encoding
// tables load lazily and may be unavailable offline; estimates are
// reporting-only, so the fallback is silent.
type Estimator struct {
	enc *tiktoken.Tiktoken
}

// NewEstimator builds an Estimator. It never fails; without an encoder the
// estimator uses the heuristic.
func NewEstimator() *Estimator {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return &Estimator{}
	}
	return &Estimator{enc: enc}
}

// Count returns the estimated token count for text. A nil estimator is
// valid and uses the heuristic.
func (e *Estimator) Count(text string) int {
	if e == nil || e.enc == nil {
		n := utf8.RuneCountInString(text)
		return (n + charsPerToken - 1) / charsPerToken
	}
	return len(e.enc.Encode(text, nil, nil))
}
