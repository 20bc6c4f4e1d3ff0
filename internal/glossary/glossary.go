// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package glossary parses terminology dictionaries and renders them into
// prompt-injectable text. A dictionary maps a case-sensitive source term to
// an ordered list of acceptable target renderings; it is built once per run
// and immutable afterwards.
package glossary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/smyrgeorge/lexis/pkg/types"
)

// Entry is one dictionary term with its target renderings, in file order.
type Entry struct {
	Term       string
	Renderings []string
}

// Dictionary holds the parsed term mapping. Entries keep file order so the
// rendered prompt section is deterministic.
type Dictionary struct {
	entries []Entry
	index   map[string]int
}

// Parse reads the line-oriented dictionary format:
//
//	term: rendering1, rendering2
//
// Lines starting with # and blank lines are ignored. A duplicate term
// overwrites the earlier renderings, keeps its original position, and is
// reported in the returned warnings. A term with zero renderings, an empty
// term, or a line without the ':' separator is a ConfigError.
func Parse(r io.Reader) (*Dictionary, []string, error) {
	d := &Dictionary{index: make(map[string]int)}
	var warnings []string

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		term, rest, ok := strings.Cut(line, ":")
		if !ok {
			return nil, warnings, types.NewConfigError("dictionary line %d: missing ':' separator in %q", lineNo, line)
		}
		term = strings.TrimSpace(term)
		if term == "" {
			return nil, warnings, types.NewConfigError("dictionary line %d: empty term", lineNo)
		}

		var renderings []string
		for _, part := range strings.Split(rest, ",") {
			if part = strings.TrimSpace(part); part != "" {
				renderings = append(renderings, part)
			}
		}
		if len(renderings) == 0 {
			return nil, warnings, types.NewConfigError("dictionary line %d: term %q has no renderings", lineNo, term)
		}

		if i, dup := d.index[term]; dup {
			warnings = append(warnings, fmt.Sprintf("dictionary line %d: duplicate term %q overwrites earlier entry", lineNo, term))
			d.entries[i].Renderings = renderings
			continue
		}
		d.index[term] = len(d.entries)
		d.entries = append(d.entries, Entry{Term: term, Renderings: renderings})
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, fmt.Errorf("reading dictionary: %w", err)
	}

	return d, warnings, nil
}

// ParseFile opens and parses the dictionary at path. A path that cannot be
// opened is a ConfigError: the dictionary applies to every chunk, so the
// run must not start without it.
func ParseFile(path string) (*Dictionary, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, types.NewConfigError("opening dictionary %s: %v", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Len returns the number of distinct terms.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Entries returns the entries in file order.
func (d *Dictionary) Entries() []Entry {
	if d == nil {
		return nil
	}
	return d.entries
}

// Renderings returns the renderings for term, or nil if absent.
func (d *Dictionary) Renderings(term string) []string {
	if d == nil {
		return nil
	}
	i, ok := d.index[term]
	if !ok {
		return nil
	}
	return d.entries[i].Renderings
}

// PromptSection renders the dictionary for inclusion in a translation
// request, listing each term and its alternatives in file order. An empty
// or nil dictionary renders nothing.
func (d *Dictionary) PromptSection() string {
	if d.Len() == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n## Translation Dictionary\n")
	b.WriteString("Use the following term translations:\n")
	b.WriteString("```\n")
	for _, e := range d.entries {
		b.WriteString(e.Term)
		b.WriteString(" -> ")
		b.WriteString(strings.Join(e.Renderings, ", "))
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return b.String()
}
