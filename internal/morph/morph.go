package morph

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/yugant99/C-UnitSegmentation/internal/rules"
	"github.com/yugant99/C-UnitSegmentation/internal/transcript"
)

// Tagger assigns Penn Treebank part-of-speech tags, one per word.
type Tagger interface {
	Tag(ctx context.Context, words []string) ([]string, error)
}

// Marker adds bound-morpheme marks (/ed, /ing, /s) to unit tokens.
type Marker struct {
	rules  *rules.Rules
	tagger Tagger
	logger *slog.Logger
}

// New creates a Marker. tagger may be nil, in which case only the fallback
// table is used.
func New(r *rules.Rules, tagger Tagger, logger *slog.Logger) *Marker {
	return &Marker{rules: r, tagger: tagger, logger: logger}
}

// Mark annotates u in place. Only surfaces change, and only by inserting a
// mark; a token that already carries one is reported as a conflict and left
// alone.
func (m *Marker) Mark(ctx context.Context, u *transcript.CUnit) []transcript.Note {
	var idx []int
	var words []string
	for i, t := range u.Tokens {
		if t.Kind != transcript.Word {
			continue
		}
		idx = append(idx, i)
		_, core, _ := transcript.SplitCore(t.Surface)
		words = append(words, core)
	}
	if len(idx) == 0 {
		return nil
	}
	tags := m.tag(ctx, words)

	var notes []transcript.Note
	for j, i := range idx {
		tok := &u.Tokens[i]
		if strings.Contains(tok.Surface, "/") {
			notes = append(notes, transcript.Note{
				Kind:   transcript.Conflict,
				Line:   u.Line,
				Token:  tok.Surface,
				Detail: "token already carries a morpheme mark",
			})
			continue
		}
		pre, core, post := transcript.SplitCore(tok.Surface)
		if core == "" || strings.HasPrefix(post, "'") || strings.HasPrefix(post, "’") {
			continue
		}
		lower := strings.ToLower(core)
		if m.rules.FunctionWords.Has(lower) {
			continue
		}
		tag := ""
		if tags != nil {
			tag = tags[j]
		}
		if m.isProper(core, tag, j == 0) {
			continue
		}
		marked, ok := m.rules.Morphology[lower]
		if !ok {
			marked, ok = regular(lower, tag)
		}
		if !ok {
			continue
		}
		tok.Surface = pre + matchCase(core, marked) + post
	}
	return notes
}

func (m *Marker) tag(ctx context.Context, words []string) []string {
	if m.tagger == nil {
		return nil
	}
	tags, err := m.tagger.Tag(ctx, words)
	if err != nil {
		m.logger.Debug("tagger unavailable, using fallback table", "error", err)
		return nil
	}
	if len(tags) != len(words) {
		m.logger.Debug("tagger returned wrong tag count", "words", len(words), "tags", len(tags))
		return nil
	}
	return tags
}

func (m *Marker) isProper(core, tag string, first bool) bool {
	if tag != "" {
		return tag == "NNP" || tag == "NNPS"
	}
	if first || core == "I" {
		return false
	}
	return unicode.IsUpper([]rune(core)[0])
}

// regular derives a mark from a POS tag for spelling-regular forms. Stems
// whose base spelling cannot be recovered (dropped e, doubled consonant,
// y to i) are left to the fallback table.
func regular(w, tag string) (string, bool) {
	switch tag {
	case "VBD", "VBN":
		if stem, ok := strings.CutSuffix(w, "ed"); ok && recoverable(stem) {
			return stem + "/ed", true
		}
	case "VBG":
		if stem, ok := strings.CutSuffix(w, "ing"); ok && recoverable(stem) {
			return stem + "/ing", true
		}
	case "VBZ", "NNS":
		if strings.HasSuffix(w, "ss") || strings.HasSuffix(w, "us") || strings.HasSuffix(w, "is") {
			return "", false
		}
		if stem, ok := strings.CutSuffix(w, "es"); ok {
			if sibilant(stem) || strings.HasSuffix(stem, "i") || strings.HasSuffix(stem, "o") {
				return "", false
			}
		}
		if stem, ok := strings.CutSuffix(w, "s"); ok && len(stem) >= 2 {
			return stem + "/s", true
		}
	}
	return "", false
}

func recoverable(stem string) bool {
	n := len(stem)
	if n < 2 {
		return false
	}
	last := stem[n-1]
	if last == 'i' {
		return false
	}
	if stem[n-2] == last && !strings.ContainsRune("lsfz", rune(last)) && !vowel(last) {
		return false
	}
	// consonant-vowel-consonant endings may have lost an e ("bak" from "baked")
	if n >= 3 && !vowel(last) && vowel(stem[n-2]) && !vowel(stem[n-3]) && !strings.ContainsRune("wxy", rune(last)) {
		return false
	}
	return true
}

func vowel(c byte) bool {
	return strings.IndexByte("aeiou", c) >= 0
}

func sibilant(stem string) bool {
	for _, s := range []string{"s", "x", "z", "ch", "sh"} {
		if strings.HasSuffix(stem, s) {
			return true
		}
	}
	return false
}

func matchCase(core, marked string) string {
	if unicode.IsUpper([]rune(core)[0]) {
		return transcript.Capitalize(marked)
	}
	return marked
}
