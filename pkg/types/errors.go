// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ConfigError reports invalid parameters: a zero pages-per-chunk, an overlap
// at or above the chunk budget, a heading level outside 1-6, a prompt
// template without both language placeholders, or a malformed dictionary
// entry. It is fatal and raised before any per-item work starts.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// NewConfigError builds a ConfigError from a format string.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// InputError reports a missing or unreadable source. It is fatal for the
// affected source only; a multi-source batch continues with the rest.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	switch {
	case e.Path == "" && e.Err == nil:
		return "unusable input"
	case e.Path == "":
		return fmt.Sprintf("unusable input: %v", e.Err)
	case e.Err == nil:
		return fmt.Sprintf("unusable input %s", e.Path)
	default:
		return fmt.Sprintf("unusable input %s: %v", e.Path, e.Err)
	}
}

func (e *InputError) Unwrap() error { return e.Err }

// ConversionError reports a failed PDF-to-Markdown conversion for a single
// file. The batch records it and moves on.
type ConversionError struct {
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("converting %s: %v", e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// TranslationError reports a failed translation for a single chunk. The
// batch records it and moves on; completed chunks are never rolled back.
type TranslationError struct {
	Chunk string
	Err   error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translating %s: %v", e.Chunk, e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }

// AuthError reports a missing credential. It is fatal to the whole run and
// detected eagerly, at provider construction, so a batch never starts with
// an unusable provider.
type AuthError struct {
	Provider string
	Hint     string
}

func (e *AuthError) Error() string {
	if e.Hint == "" {
		return e.Provider + ": missing API credential"
	}
	return fmt.Sprintf("%s: missing API credential (set %s)", e.Provider, e.Hint)
}
