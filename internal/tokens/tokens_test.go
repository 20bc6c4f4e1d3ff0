// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount_Heuristic(t *testing.T) {
	e := &Estimator{} // no encoder: heuristic path

	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"exact multiple", "abcdefgh", 2},
		{"rounds up", "abcde", 2},
		{"counts runes not bytes", "ññññ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Count(tt.text))
		})
	}
}

func TestCount_NilEstimator(t *testing.T) {
	var e *Estimator
	assert.Equal(t, 3, e.Count("twelve chars"))
}
