// Package segment divides an annotated line into C-units: one independent
// clause plus its modifiers.
//
// Sentence punctuation gives the first cut. Each provisional unit is then
// scanned for coordinating conjunctions by a small state machine that
// decides, per conjunction, whether a new independent clause starts there.
// When the evidence is weak the machine merges and records an ambiguity
// note; it never guesses a split.
package segment

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/yugant99/C-UnitSegmentation/internal/rules"
	"github.com/yugant99/C-UnitSegmentation/internal/transcript"
)

// Tagger assigns Penn Treebank part-of-speech tags to words.
type Tagger interface {
	Tag(ctx context.Context, words []string) ([]string, error)
}

// Result holds the units cut from one line and any notes raised while
// cutting. Every input token appears in exactly one unit, in order.
type Result struct {
	Units [][]transcript.Token
	Notes []transcript.Note
}

// Segmenter cuts lines into C-units.
type Segmenter struct {
	rules  *rules.Rules
	tagger Tagger
}

// New creates a Segmenter. tagger may be nil.
func New(r *rules.Rules, tagger Tagger) *Segmenter {
	return &Segmenter{rules: r, tagger: tagger}
}

type state int

const (
	scanningClause state = iota
	atConjunction
	splitting
	merging
)

// Segment cuts text, taken from source line line, into units. It never fails;
// a tagger error only loses the tagger's verb evidence.
func (s *Segmenter) Segment(ctx context.Context, line int, text string) Result {
	toks := transcript.Tokenize(text)
	verbs := s.tagVerbs(ctx, toks)

	var res Result
	for _, sent := range s.sentences(toks) {
		s.splitSentence(line, sent, verbs, &res)
	}
	for _, u := range res.Units {
		capitalize(u)
	}
	return res
}

// sentences makes the first cut at sentence-final punctuation.
func (s *Segmenter) sentences(toks []transcript.Token) [][]transcript.Token {
	var out [][]transcript.Token
	start := 0
	for i, t := range toks {
		if !t.EndsSentence() || s.isAbbreviation(t) {
			continue
		}
		out = append(out, toks[start:i+1])
		start = i + 1
	}
	if start < len(toks) {
		out = append(out, toks[start:])
	}
	return out
}

func (s *Segmenter) isAbbreviation(t transcript.Token) bool {
	if t.Kind != transcript.Word {
		return false
	}
	w := strings.ToLower(strings.TrimLeftFunc(t.Surface, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	return s.rules.Abbreviations.Has(w)
}

func (s *Segmenter) splitSentence(line int, sent []transcript.Token, verbs map[int]bool, res *Result) {
	start := s.splitReplies(sent, res)
	if start >= len(sent) {
		return
	}

	clause := start
	st := scanningClause
	i := start
	var d decision
	for i < len(sent) {
		switch st {
		case scanningClause:
			if i > clause && sent[i].Kind == transcript.Word && s.rules.Coordinators.Has(sent[i].Bare()) {
				st = atConjunction
				continue
			}
			i++
		case atConjunction:
			d = s.decide(sent[clause:i], sent[i], sent[i+1:], verbs)
			if d.split {
				st = splitting
			} else {
				st = merging
			}
		case splitting:
			res.Units = append(res.Units, sent[clause:i])
			clause = i
			i++
			st = scanningClause
		case merging:
			if !d.confident {
				res.Notes = append(res.Notes, transcript.Note{
					Kind:   transcript.Ambiguity,
					Line:   line,
					Token:  sent[i].Surface,
					Detail: fmt.Sprintf("kept %q in one unit: %s", sent[i].Bare(), d.reason),
				})
			}
			i++
			st = scanningClause
		}
	}
	res.Units = append(res.Units, sent[clause:])
}

// splitReplies emits a reply word that opens the sentence, optionally after
// filled pauses, as a unit of its own when a comma separates it from more
// speech. It returns where the rest of the sentence starts.
func (s *Segmenter) splitReplies(sent []transcript.Token, res *Result) int {
	start := 0
	for {
		j := start
		for j < len(sent) && sent[j].Kind == transcript.Filler {
			j++
		}
		if j >= len(sent)-1 {
			return start
		}
		tok := sent[j]
		if tok.Kind != transcript.Word || !s.rules.Replies.Has(tok.Bare()) || !tok.EndsWith(',') {
			return start
		}
		if !hasWord(sent[j+1:]) {
			return start
		}
		res.Units = append(res.Units, sent[start:j+1])
		start = j + 1
	}
}

func hasWord(toks []transcript.Token) bool {
	for _, t := range toks {
		if t.IsWord() {
			return true
		}
	}
	return false
}

// capitalize upper-cases the first letter of a unit's opening token.
func capitalize(unit []transcript.Token) {
	if len(unit) == 0 {
		return
	}
	switch unit[0].Kind {
	case transcript.Word, transcript.Filler, transcript.Group:
		unit[0].Surface = transcript.Capitalize(unit[0].Surface)
	}
}

// tagVerbs asks the tagger which word tokens are verbs, keyed by token Pos.
func (s *Segmenter) tagVerbs(ctx context.Context, toks []transcript.Token) map[int]bool {
	if s.tagger == nil {
		return nil
	}
	var words []string
	var pos []int
	for _, t := range toks {
		if t.Kind != transcript.Word {
			continue
		}
		_, core, _ := transcript.SplitCore(t.Surface)
		if core == "" {
			continue
		}
		words = append(words, core)
		pos = append(pos, t.Pos)
	}
	if len(words) == 0 {
		return nil
	}
	tags, err := s.tagger.Tag(ctx, words)
	if err != nil || len(tags) != len(words) {
		return nil
	}
	verbs := make(map[int]bool)
	for i, tag := range tags {
		if strings.HasPrefix(tag, "VB") || tag == "MD" {
			verbs[pos[i]] = true
		}
	}
	return verbs
}
