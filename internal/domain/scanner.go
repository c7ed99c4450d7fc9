// Package domain contains the core obfuscation workflow and logic.
package domain

import (
	"fmt"
	"regexp"

	m "github.com/smudge-dev/smudge/internal/model"
)

// DefaultRules returns the built-in extraction rounds: variable
// declarations introduced by "let" renamed to var_<i>, and function
// declarations introduced by "fn" renamed to func_<i>.
func DefaultRules() []m.Rule {
	return []m.Rule{
		{Kind: m.CaptureVariable, Keyword: "let", Prefix: "var"},
		{Kind: m.CaptureFunction, Keyword: "fn", Prefix: "func"},
	}
}

// declarationPattern matches "<keyword> <word>" and captures the word
// token. A word token is a maximal run of [0-9A-Za-z_].
func declarationPattern(keyword string) (*regexp.Regexp, error) {
	if keyword == "" {
		return nil, fmt.Errorf("empty declaration keyword")
	}

	return regexp.Compile(`\b` + regexp.QuoteMeta(keyword) + `\s+(\w+)`)
}

// ExtractCaptures scans text for declarations matching rule.Keyword and
// returns the captured names in textual order. Duplicates are kept: a name
// declared twice yields two captures with distinct indices.
func ExtractCaptures(text string, rule m.Rule) ([]m.Capture, error) {
	pattern, err := declarationPattern(rule.Keyword)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", rule.Kind, err)
	}

	matches := pattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil, nil
	}

	captures := make([]m.Capture, 0, len(matches))
	for i, match := range matches {
		captures = append(captures, m.Capture{
			Kind:  rule.Kind,
			Name:  match[1],
			Index: i,
		})
	}

	return captures, nil
}
