package fillers

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yugant99/C-UnitSegmentation/internal/rules"
	"github.com/yugant99/C-UnitSegmentation/internal/transcript"
)

// Detector wraps standalone hesitation words as "(word [FP])".
type Detector struct {
	rules *rules.Rules
}

func New(r *rules.Rules) *Detector {
	return &Detector{rules: r}
}

// Annotate marks every standalone filled pause in text. Existing filler
// groups and other parenthesized annotations are left as they are, so the
// result is stable under repeated application.
func (d *Detector) Annotate(text string) string {
	toks := transcript.Tokenize(text)
	out := make([]string, len(toks))
	wrapped := make([]bool, len(toks))

	for i, tok := range toks {
		out[i] = tok.Surface
		if tok.Kind != transcript.Word || d.rules.Lexicalized.Has(tok.Bare()) {
			continue
		}
		pre, core, post := transcript.SplitCore(tok.Surface)
		if core == "" || !bounded(post) {
			continue
		}
		class, ok := d.rules.Hesitation(core)
		if !ok {
			continue
		}
		if class == rules.Discourse && !commaBounded(toks, i, post) {
			continue
		}
		out[i] = pre + "(" + core + " [FP])" + post
		wrapped[i] = true
	}

	d.joinStacked(toks, out, wrapped)
	return strings.Join(out, " ")
}

// bounded reports whether the text after a hesitation core leaves it
// standalone: nothing, or punctuation other than an apostrophe.
func bounded(post string) bool {
	if post == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(post)
	if r == '\'' || r == '’' {
		return false
	}
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func commaBounded(toks []transcript.Token, i int, post string) bool {
	if !strings.HasPrefix(post, ",") {
		return false
	}
	return i == 0 || toks[i-1].EndsWith(',')
}

// joinStacked drops the commas inside a run of two or more filled pauses
// that opens a clause and runs straight into a reply word.
func (d *Detector) joinStacked(toks []transcript.Token, out []string, wrapped []bool) {
	for i := 0; i < len(toks); {
		if !wrapped[i] || (i > 0 && !toks[i-1].EndsSentence()) {
			i++
			continue
		}
		j := i
		for j < len(toks) && wrapped[j] {
			j++
		}
		if j-i >= 2 && j < len(toks) && d.isReply(toks, j) {
			for k := i; k < j; k++ {
				out[k] = strings.TrimSuffix(out[k], ",")
			}
		}
		i = j
	}
}

func (d *Detector) isReply(toks []transcript.Token, j int) bool {
	tok := toks[j]
	if tok.Kind != transcript.Word || !d.rules.Replies.Has(tok.Bare()) {
		return false
	}
	return j == len(toks)-1 || tok.EndsWith(',') || tok.EndsSentence()
}
