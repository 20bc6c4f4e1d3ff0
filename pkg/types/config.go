// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PDFChunkConfig holds settings for page-range PDF splitting.
type PDFChunkConfig struct {
	// PagesPerChunk is the number of pages per segment (default 10).
	// The final segment holds the remainder.
	PagesPerChunk int `json:"pages_per_chunk" yaml:"pages_per_chunk"`

	// OutputDir is where chunk PDFs are written. Empty means a "chunks"
	// directory beside the input file.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
}

// MarkdownChunkConfig holds settings for structural Markdown chunking.
type MarkdownChunkConfig struct {
	// Mode selects the chunking strategy: heading, chars, or tokens.
	Mode ChunkMode `json:"mode" yaml:"mode"`

	// MaxHeadingLevel is the deepest heading level that opens a new chunk
	// in heading mode (1-6, default 2).
	MaxHeadingLevel int `json:"max_heading_level" yaml:"max_heading_level"`

	// MaxChars is the character budget per chunk in chars mode (default 5000).
	MaxChars int `json:"max_chars" yaml:"max_chars"`

	// MaxTokens is the approximate token budget per chunk in tokens mode
	// (default 1000), converted at 4 characters per token.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Overlap is the span shared between adjacent chunks in the size-based
	// modes (default 200), in the mode's own unit.
	Overlap int `json:"overlap" yaml:"overlap"`

	// OutputDir is where chunk files are written. Empty means a
	// "<stem>_chunks" directory beside the input file.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
}

// ConversionEngine identifies the PDF-to-Markdown backend.
type ConversionEngine string

const (
	// EngineDocling pipes PDFs through a local docling container image.
	EngineDocling ConversionEngine = "docling"

	// EngineNative extracts text in-process, with no external tooling.
	EngineNative ConversionEngine = "native"
)

// ConvertConfig holds settings for the conversion stage.
type ConvertConfig struct {
	// Engine selects the conversion backend: docling or native.
	Engine ConversionEngine `json:"engine" yaml:"engine"`

	// LineWidth is the wrap width for converted Markdown (default 120).
	LineWidth int `json:"line_width" yaml:"line_width"`

	// Wrap controls whether converted Markdown is line-wrapped.
	Wrap bool `json:"wrap" yaml:"wrap"`
}

// TranslateConfig holds settings for the translation stage.
type TranslateConfig struct {
	// Provider is the translation backend: claude, chatgpt, or rules.
	Provider string `json:"provider" yaml:"provider"`

	// Model overrides the provider's default model identifier.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// APIKey is the credential for the provider's API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// SourceLang and TargetLang identify the language pair
	// (e.g. "Spanish", "es").
	SourceLang string `json:"source_lang" yaml:"source_lang"`
	TargetLang string `json:"target_lang" yaml:"target_lang"`

	// PromptTemplate is the instruction header. It must contain the
	// {source} and {target} placeholders.
	PromptTemplate string `json:"prompt_template,omitempty" yaml:"prompt_template,omitempty"`

	// DictionaryPath points at an optional terminology dictionary file.
	DictionaryPath string `json:"dictionary_path,omitempty" yaml:"dictionary_path,omitempty"`

	// RulesPath points at the replacement rules file for the rules provider.
	RulesPath string `json:"rules_path,omitempty" yaml:"rules_path,omitempty"`

	// ContextLines is the number of boundary lines drawn from each adjacent
	// chunk (default 5; 0 disables context).
	ContextLines int `json:"context_lines" yaml:"context_lines"`

	// OutputDir overrides the default output placement beside the source.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
}

// LedgerConfig holds settings for the optional run-history ledger.
type LedgerConfig struct {
	// Path is the sqlite database file. Empty disables the ledger.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}
