// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/smyrgeorge/lexis/internal/glossary"
)

// Rules is an offline backend that applies literal term replacements. It is
// meant for smoke-testing pipelines and for mechanical terminology passes;
// it deliberately ignores the request's prompt, dictionary, and boundary
// context, since no model interprets them.
type Rules struct {
	rules []rule
}

type rule struct {
	from string
	to   string
}

// NewRules loads replacement rules from the file at path, in the same
// `term: rendering` format as the terminology dictionary; the first
// rendering of each term is the replacement. An empty path yields an
// identity backend that returns text unchanged.
func NewRules(path string) (*Rules, error) {
	if path == "" {
		return &Rules{}, nil
	}

	dict, warnings, err := glossary.ParseFile(path)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Warn("rules file", "issue", w)
	}

	rules := make([]rule, 0, dict.Len())
	for _, e := range dict.Entries() {
		rules = append(rules, rule{from: e.Term, to: e.Renderings[0]})
	}
	// Longer terms first, so "natural law" wins over "law".
	sort.SliceStable(rules, func(i, j int) bool {
		return len(rules[i].from) > len(rules[j].from)
	})

	return &Rules{rules: rules}, nil
}

func (r *Rules) Name() string { return ProviderRules }

// Translate applies every rule to the text. Without rules it is the
// identity transform.
func (r *Rules) Translate(_ context.Context, req Request) (string, error) {
	out := req.Text
	for _, ru := range r.rules {
		out = strings.ReplaceAll(out, ru.from, ru.to)
	}
	return out, nil
}
