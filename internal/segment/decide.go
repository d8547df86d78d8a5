package segment

import (
	"strings"
	"unicode"

	"github.com/yugant99/C-UnitSegmentation/internal/transcript"
)

type decision struct {
	split     bool
	confident bool
	reason    string
}

func split(reason string) decision { return decision{split: true, confident: true, reason: reason} }
func merge(reason string) decision { return decision{confident: true, reason: reason} }
func unsure(reason string) decision { return decision{reason: reason} }

// decide rules on one coordinating conjunction: does the text after it
// start a new independent clause?
func (s *Segmenter) decide(left []transcript.Token, conj transcript.Token, right []transcript.Token, verbs map[int]bool) decision {
	c := conj.Bare()
	lw := words(left)
	rw := words(right)

	if c == "so" && len(rw) > 0 && rw[0].Bare() == "that" {
		return merge("so that")
	}
	if len(lw) < 2 {
		return merge("no clause before conjunction")
	}
	if linking(lw[len(lw)-1].Bare()) {
		return merge("stacked conjunction")
	}
	if len(rw) == 0 {
		return merge("nothing follows conjunction")
	}
	// "so, but I ..." uses so/then as an adverb; the next conjunction decides.
	if linking(rw[0].Bare()) {
		return merge("conjunction follows")
	}

	k := 0
	for k < len(rw) && !linking(rw[k].Bare()) &&
		(s.rules.Coordinators.Has(rw[k].Bare()) || rw[k].Bare() == "also") {
		k++
	}
	if k == len(rw) {
		return merge("nothing follows conjunction")
	}
	head := rw[k]
	b := head.Bare()

	if s.rules.StrongSubjects.Has(b) {
		return split("subject pronoun")
	}
	if (c == "and" || c == "or") && s.isEnumeration(left) {
		return merge("enumeration")
	}
	if s.rules.WeakSubjects.Has(b) {
		if s.verbAt(rw, k+1, verbs) {
			return split("subject with verb")
		}
		if !s.rules.Determiners.Has(b) {
			return unsure("subject not confirmed by a verb")
		}
	}
	if s.rules.Determiners.Has(b) {
		for n := k + 2; n <= k+3 && n < len(rw); n++ {
			if s.verbAt(rw, n, verbs) {
				return split("noun phrase with verb")
			}
		}
		return unsure("noun phrase not confirmed by a verb")
	}
	if s.isName(head) && s.verbAt(rw, k+1, verbs) {
		return split("name with verb")
	}
	if s.rules.Subordinators.Has(b) {
		return merge("subordinate clause")
	}
	if s.isVerb(head, verbs) {
		return merge("compound predicate")
	}
	return unsure("no subject after conjunction")
}

// linking reports whether w joins clauses only as a conjunction. The other
// coordinators (so, then) double as adverbs.
func linking(w string) bool {
	switch w {
	case "and", "but", "or":
		return true
	}
	return false
}

// words drops filled pauses, annotations and markers.
func words(toks []transcript.Token) []transcript.Token {
	var out []transcript.Token
	for _, t := range toks {
		if t.IsWord() {
			out = append(out, t)
		}
	}
	return out
}

// isEnumeration reports whether the clause ends in a comma-separated series
// of short items, as in "apples, pears, and plums".
func (s *Segmenter) isEnumeration(left []transcript.Token) bool {
	lw := words(left)
	commas := 0
	last := 0
	for i, t := range lw {
		if t.EndsWith(',') {
			commas++
			last = i
		}
	}
	if commas == 0 {
		return false
	}
	tail := len(lw) - 1 - last
	if tail < 1 || tail > 3 {
		return false
	}
	for _, t := range lw[last+1:] {
		if s.rules.StrongSubjects.Has(t.Bare()) || s.rules.Auxiliaries.Has(t.Bare()) {
			return false
		}
	}
	return true
}

func (s *Segmenter) verbAt(rw []transcript.Token, i int, verbs map[int]bool) bool {
	if i >= len(rw) {
		return false
	}
	t := rw[i]
	if verbs != nil && verbs[t.Pos] {
		return true
	}
	b := t.Bare()
	return s.rules.Auxiliaries.Has(b) ||
		s.rules.IrregularPast.Has(b) ||
		s.rules.BaseVerbs.Has(b) ||
		s.isEdForm(b)
}

// isVerb is the compound-predicate test on the word right after a conjunction.
func (s *Segmenter) isVerb(t transcript.Token, verbs map[int]bool) bool {
	if verbs != nil && verbs[t.Pos] {
		return true
	}
	b := t.Bare()
	return s.rules.BaseVerbs.Has(b) ||
		s.rules.IrregularPast.Has(b) ||
		s.rules.Auxiliaries.Has(b) ||
		s.isEdForm(b) ||
		b == "to"
}

func (s *Segmenter) isEdForm(b string) bool {
	if len(b) <= 4 || !strings.HasSuffix(b, "ed") || s.rules.FunctionWords.Has(b) {
		return false
	}
	if _, ok := s.rules.Morphology[b]; ok {
		return true
	}
	return !strings.ContainsRune(b, '\'')
}

// isName reports a capitalized word that is not a known function word.
func (s *Segmenter) isName(t transcript.Token) bool {
	if t.Kind != transcript.Word {
		return t.Kind == transcript.Redaction
	}
	_, core, _ := transcript.SplitCore(t.Surface)
	if core == "" || core == "I" {
		return false
	}
	r := []rune(core)[0]
	if !unicode.IsUpper(r) {
		return false
	}
	b := strings.ToLower(core)
	return !s.rules.FunctionWords.Has(b) && !s.rules.Coordinators.Has(b) && !s.rules.Subordinators.Has(b)
}
