package redact

import (
	"regexp"

	"github.com/yugant99/C-UnitSegmentation/internal/rules"
)

var bracketRe = regexp.MustCompile(`\[([^\[\]]+)\]`)

// Normalizer rewrites "[redacted]"-style placeholders to the "{redacted}" form.
type Normalizer struct {
	vocab rules.WordSet
}

func New(r *rules.Rules) *Normalizer {
	return &Normalizer{vocab: r.Redactions}
}

// Normalize replaces every bracketed placeholder whose content is in the
// redaction vocabulary. Other bracketed content, such as timestamps, is left
// alone.
func (n *Normalizer) Normalize(text string) string {
	return bracketRe.ReplaceAllStringFunc(text, func(m string) string {
		inner := m[1 : len(m)-1]
		if !n.vocab.Has(inner) {
			return m
		}
		return "{" + inner + "}"
	})
}
