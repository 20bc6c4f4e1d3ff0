// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// TranslationStatus tracks a chunk through the per-chunk state machine.
type TranslationStatus string

const (
	StatusPending    TranslationStatus = "pending"
	StatusSkipped    TranslationStatus = "skipped"
	StatusTranslated TranslationStatus = "translated"
	StatusFailed     TranslationStatus = "failed"
)

// ChunkResult records the final state of one chunk within a run.
type ChunkResult struct {
	// Name is the chunk's file name, which doubles as its sequence key.
	Name string `json:"name" yaml:"name"`

	// Status is the terminal state the chunk reached.
	Status TranslationStatus `json:"status" yaml:"status"`

	// Elapsed is the wall time spent translating the chunk. Zero for
	// skipped chunks.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`

	// Error holds the failure message for failed chunks.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunReport is the explicit result object for one orchestrator run. It is
// threaded through and returned by the batch drivers; there is no shared
// mutable run state anywhere else.
type RunReport struct {
	// Command names the operation that produced the report
	// ("translate", "clean", or "pipeline").
	Command string `json:"command" yaml:"command"`

	// Provider is the translation backend used ("claude", "chatgpt", "rules").
	Provider string `json:"provider" yaml:"provider"`

	// SourceLang and TargetLang identify the language pair.
	SourceLang string `json:"source_lang,omitempty" yaml:"source_lang,omitempty"`
	TargetLang string `json:"target_lang,omitempty" yaml:"target_lang,omitempty"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Elapsed is the total wall time of the run.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`

	// Translated, Skipped, and Failed count chunk outcomes.
	Translated int `json:"translated" yaml:"translated"`
	Skipped    int `json:"skipped" yaml:"skipped"`
	Failed     int `json:"failed" yaml:"failed"`

	// Chunks lists per-chunk outcomes in processing order.
	Chunks []ChunkResult `json:"chunks" yaml:"chunks"`
}

// Record appends a chunk outcome and updates the tallies.
func (r *RunReport) Record(cr ChunkResult) {
	r.Chunks = append(r.Chunks, cr)
	switch cr.Status {
	case StatusTranslated:
		r.Translated++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// Total returns the number of chunks processed.
func (r *RunReport) Total() int {
	return r.Translated + r.Skipped + r.Failed
}

// HasFailures reports whether any chunk failed.
func (r *RunReport) HasFailures() bool {
	return r.Failed > 0
}
