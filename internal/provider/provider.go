// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider implements translation backends behind a common
// interface. A backend receives a fully composed request and returns the
// translated text; it performs exactly one upstream call per request and
// never retries, so callers keep full control over failure handling.
package provider

import (
	"context"
	"strings"

	"github.com/smyrgeorge/lexis/pkg/types"
)

// Provider identifiers accepted in configuration.
const (
	ProviderClaude  = "claude"
	ProviderChatGPT = "chatgpt"
	ProviderRules   = "rules"
)

// DefaultPromptTemplate is the instruction sent when no custom template is
// configured. The {source} and {target} placeholders are replaced with the
// configured language names.
const DefaultPromptTemplate = "Translate the following markdown text from {source} to {target}. " +
	"Preserve all markdown formatting, structure, and syntax. " +
	"Only translate the text content, not the markdown syntax itself."

// Request carries one chunk's translation input: the text itself plus the
// instruction, terminology, and boundary context that frame it.
type Request struct {
	// Text is the chunk content to translate.
	Text string

	// SourceLang and TargetLang name the languages, e.g. "Spanish" and
	// "English". When both are empty the request is raw: Compose joins
	// Prompt and Text directly, with no translation framing.
	SourceLang string
	TargetLang string

	// Prompt is the instruction template. Empty means DefaultPromptTemplate.
	Prompt string

	// Dictionary is the pre-rendered terminology section, empty when no
	// dictionary is configured.
	Dictionary string

	// ContextBefore holds the trailing lines of the previous chunk and
	// ContextAfter the leading lines of the next, both always from the
	// untranslated originals. Boundary chunks leave the missing side empty.
	ContextBefore string
	ContextAfter  string
}

// Compose renders the full prompt for one upstream call: instruction,
// optional terminology, optional boundary context marked as reference-only,
// then the text under its own heading.
func (r Request) Compose() string {
	if r.SourceLang == "" && r.TargetLang == "" {
		return r.Prompt + "\n" + r.Text
	}

	prompt := r.Prompt
	if prompt == "" {
		prompt = DefaultPromptTemplate
	}
	prompt = strings.ReplaceAll(prompt, "{source}", r.SourceLang)
	prompt = strings.ReplaceAll(prompt, "{target}", r.TargetLang)

	var b strings.Builder
	b.WriteString(prompt)
	if r.Dictionary != "" {
		b.WriteString("\n")
		b.WriteString(r.Dictionary)
	}
	if r.ContextBefore != "" || r.ContextAfter != "" {
		b.WriteString("\n## Context (reference only, do not translate)\n")
		if r.ContextBefore != "" {
			b.WriteString("\n### End of previous chunk\n\n```\n")
			b.WriteString(r.ContextBefore)
			b.WriteString("\n```\n")
		}
		if r.ContextAfter != "" {
			b.WriteString("\n### Start of next chunk\n\n```\n")
			b.WriteString(r.ContextAfter)
			b.WriteString("\n```\n")
		}
	}
	b.WriteString("\n## Text to Translate\n\n")
	b.WriteString(r.Text)
	return b.String()
}

// Translator is a translation backend. Translate is invoked at most once
// per chunk; backends must not retry internally.
type Translator interface {
	// Name returns the provider identifier used in reports and errors.
	Name() string

	// Translate sends one request upstream and returns the translated
	// text. An empty result is an error, never a silent blank output.
	Translate(ctx context.Context, req Request) (string, error)
}

// New builds the backend named by cfg.Provider. Remote backends require a
// credential and fail eagerly with an AuthError when it is missing, so a
// batch never starts against an unusable provider.
func New(cfg types.TranslateConfig) (Translator, error) {
	switch cfg.Provider {
	case ProviderClaude, "":
		return NewClaude(cfg.Model, cfg.APIKey)
	case ProviderChatGPT:
		return NewChatGPT(cfg.Model, cfg.APIKey)
	case ProviderRules:
		return NewRules(cfg.RulesPath)
	default:
		return nil, types.NewConfigError("unknown provider %q", cfg.Provider)
	}
}
