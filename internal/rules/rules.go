package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// HesitationClass decides when a hesitation word counts as a filled pause.
type HesitationClass string

const (
	// Always wraps the word wherever it stands alone.
	Always HesitationClass = "always"
	// Discourse wraps the word only when commas set it off.
	Discourse HesitationClass = "discourse"
)

// SpeakerDef is one member of the closed speaker set.
type SpeakerDef struct {
	Code    string   `yaml:"code"`
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// WordSet is a case-insensitive set of words. In YAML it is a plain list.
type WordSet map[string]struct{}

// NewWordSet builds a set from words, lower-casing each entry.
func NewWordSet(words ...string) WordSet {
	s := make(WordSet, len(words))
	for _, w := range words {
		s[normalize(w)] = struct{}{}
	}
	return s
}

// Has reports whether w is in the set.
func (s WordSet) Has(w string) bool {
	_, ok := s[normalize(w)]
	return ok
}

// UnmarshalYAML decodes a YAML sequence into the set.
func (s *WordSet) UnmarshalYAML(value *yaml.Node) error {
	var words []string
	if err := value.Decode(&words); err != nil {
		return err
	}
	*s = NewWordSet(words...)
	return nil
}

func normalize(w string) string {
	return strings.Join(strings.Fields(strings.ToLower(w)), " ")
}

// Rules holds every vocabulary the annotation stages consult.
type Rules struct {
	Language       string                     `yaml:"language"`
	RedactionKey   string                     `yaml:"redaction_key"`
	Speakers       []SpeakerDef               `yaml:"speakers"`
	Redactions     WordSet                    `yaml:"redactions"`
	Hesitations    map[string]HesitationClass `yaml:"hesitations"`
	Lexicalized    WordSet                    `yaml:"lexicalized"`
	Coordinators   WordSet                    `yaml:"coordinators"`
	Subordinators  WordSet                    `yaml:"subordinators"`
	Replies        WordSet                    `yaml:"replies"`
	StrongSubjects WordSet                    `yaml:"strong_subjects"`
	WeakSubjects   WordSet                    `yaml:"weak_subjects"`
	Determiners    WordSet                    `yaml:"determiners"`
	Auxiliaries    WordSet                    `yaml:"auxiliaries"`
	IrregularPast  WordSet                    `yaml:"irregular_past"`
	BaseVerbs      WordSet                    `yaml:"base_verbs"`
	FunctionWords  WordSet                    `yaml:"function_words"`
	Abbreviations  WordSet                    `yaml:"abbreviations"`
	// Morphology maps an inflected surface form to its marked form, e.g.
	// "looked" to "look/ed".
	Morphology map[string]string `yaml:"morphology"`
}

// Speaker resolves a speaker tag (code, name or alias) to its definition.
func (r *Rules) Speaker(tag string) (SpeakerDef, bool) {
	t := normalize(tag)
	for _, s := range r.Speakers {
		if normalize(s.Code) == t || normalize(s.Name) == t {
			return s, true
		}
		for _, a := range s.Aliases {
			if normalize(a) == t {
				return s, true
			}
		}
	}
	return SpeakerDef{}, false
}

// Hesitation returns the class of w, if w is a hesitation word.
func (r *Rules) Hesitation(w string) (HesitationClass, bool) {
	c, ok := r.Hesitations[normalize(w)]
	return c, ok
}

// LoadFile reads a YAML rules file and overlays it on the defaults. Lists
// present in the file replace the built-in list; map entries are merged.
func LoadFile(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	r := Default()
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("rules %s: %w", path, err)
	}
	return r, nil
}

func (r *Rules) validate() error {
	if len(r.Speakers) == 0 {
		return fmt.Errorf("no speakers defined")
	}
	seen := map[string]bool{}
	for _, s := range r.Speakers {
		if s.Code == "" {
			return fmt.Errorf("speaker %q has no code", s.Name)
		}
		if seen[s.Code] {
			return fmt.Errorf("duplicate speaker code %q", s.Code)
		}
		seen[s.Code] = true
	}
	for w, c := range r.Hesitations {
		if c != Always && c != Discourse {
			return fmt.Errorf("hesitation %q: unknown class %q", w, c)
		}
	}
	return nil
}
