package domain

import (
	"regexp"

	m "github.com/smudge-dev/smudge/internal/model"
)

// ReplaceWholeWord returns a copy of text where every whole-word occurrence
// of name is replaced. Word boundaries are respected on both sides, so a
// name never matches inside a longer identifier.
func ReplaceWholeWord(text, name, replacement string) string {
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)

	return pattern.ReplaceAllLiteralString(text, replacement)
}

// ApplyRound runs one extraction round over text and substitutes every
// capture in sequence. Captures are taken once from the input text; each
// substitution is a pure transform applied to the text produced by the
// previous step and is global over the whole file. The replacement index
// is assigned per capture occurrence, not per unique name, so a later
// capture can re-match a synthetic name produced earlier in the round.
func ApplyRound(text string, rule m.Rule) (string, []m.Capture, error) {
	captures, err := ExtractCaptures(text, rule)
	if err != nil {
		return "", nil, err
	}

	for _, capture := range captures {
		text = ReplaceWholeWord(text, capture.Name, rule.SyntheticName(capture.Index))
	}

	return text, captures, nil
}

// RewriteText applies all rounds strictly in order: a round extracts from
// and substitutes into the text left behind by the previous round, never
// the original. Returns the final text and all captures across rounds.
func RewriteText(text string, rules []m.Rule) (string, []m.Capture, error) {
	var all []m.Capture

	for _, rule := range rules {
		out, captures, err := ApplyRound(text, rule)
		if err != nil {
			return "", nil, err
		}

		text = out
		all = append(all, captures...)
	}

	return text, all, nil
}
