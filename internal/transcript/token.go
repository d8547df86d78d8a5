package transcript

import (
	"regexp"
	"strings"
	"unicode"
)

// TokenKind classifies a whitespace token.
type TokenKind int

const (
	Word TokenKind = iota
	// Filler is an annotated "(word [FP])" group.
	Filler
	// Group is any other parenthesized annotation.
	Group
	// Redaction is a "{...}" placeholder.
	Redaction
	// Marker is an embedded "[hh:mm:ss]" timestamp.
	Marker
	// PauseMark is an inline ":NN" intra-unit pause.
	PauseMark
)

func (k TokenKind) String() string {
	switch k {
	case Word:
		return "word"
	case Filler:
		return "filler"
	case Group:
		return "group"
	case Redaction:
		return "redaction"
	case Marker:
		return "marker"
	case PauseMark:
		return "pause"
	}
	return "unknown"
}

// Token is a whitespace-delimited piece of a line. Pos is its index within
// the line's token sequence.
type Token struct {
	Surface string    `json:"surface"`
	Pos     int       `json:"pos"`
	Kind    TokenKind `json:"kind"`
}

var markerRe = regexp.MustCompile(`^\[(\d{1,2}):(\d{2}):(\d{2})\]`)

// Tokenize splits text on whitespace. A parenthesized group spanning several
// fields, such as "(um [FP])", is kept as one token. A group never reaches
// past the end of a sentence; an unclosed "(" stays on its own field.
func Tokenize(text string) []Token {
	fields := strings.Fields(text)
	out := make([]Token, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if open := strings.IndexByte(f, '('); open >= 0 && !strings.Contains(f[open:], ")") {
			for j := i + 1; j < len(fields); j++ {
				if (Token{Surface: fields[j-1]}).EndsSentence() {
					break
				}
				if strings.Contains(fields[j], ")") {
					f = strings.Join(fields[i:j+1], " ")
					i = j
					break
				}
			}
		}
		out = append(out, Token{Surface: f, Pos: len(out), Kind: classify(f)})
	}
	return out
}

// Join renders tokens back into text.
func Join(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Surface
	}
	return strings.Join(parts, " ")
}

func classify(s string) TokenKind {
	switch {
	case strings.Contains(s, "[FP]"):
		return Filler
	case markerRe.MatchString(strings.TrimLeftFunc(s, isOpenPunct)):
		return Marker
	case strings.HasPrefix(strings.TrimLeftFunc(s, isOpenPunct), "(") && strings.Contains(s, ")"):
		return Group
	case strings.Contains(s, "{") && strings.Contains(s, "}"):
		return Redaction
	}
	return Word
}

func isOpenPunct(r rune) bool {
	return r == '"' || r == '\'' || r == '“' || r == '‘'
}

// Bare returns the lower-cased word with surrounding punctuation removed and
// curly apostrophes folded to straight ones.
func (t Token) Bare() string {
	s := strings.ReplaceAll(t.Surface, "’", "'")
	s = strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.ToLower(s)
}

// IsWord reports whether the token carries spoken lexical content.
func (t Token) IsWord() bool {
	return t.Kind == Word || t.Kind == Redaction
}

// EndsSentence reports whether the token closes with '.', '!' or '?' after
// closing quotes and brackets are stripped. Ellipses do not count.
func (t Token) EndsSentence() bool {
	s := strings.TrimRightFunc(t.Surface, func(r rune) bool {
		return strings.ContainsRune(`"')]}”’`, r)
	})
	if s == "" || strings.HasSuffix(s, "...") || strings.HasSuffix(s, "…") {
		return false
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}

// EndsWith reports whether the token's surface ends with c once closing
// quotes are stripped.
func (t Token) EndsWith(c byte) bool {
	s := strings.TrimRightFunc(t.Surface, func(r rune) bool {
		return r == '"' || r == '”' || r == '’'
	})
	return s != "" && s[len(s)-1] == c
}

// MarkerTime parses the timestamp of a Marker token, in seconds.
func (t Token) MarkerTime() (int, bool) {
	m := markerRe.FindStringSubmatch(strings.TrimLeftFunc(t.Surface, isOpenPunct))
	if m == nil {
		return 0, false
	}
	h, mm, ss := atoi(m[1]), atoi(m[2]), atoi(m[3])
	if mm > 59 || ss > 59 {
		return 0, false
	}
	return h*3600 + mm*60 + ss, true
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

// SplitCore splits s into leading punctuation, an alphabetic core and the
// remainder: `"Um,` gives `"`, `Um`, `,`.
func SplitCore(s string) (pre, core, post string) {
	i := strings.IndexFunc(s, unicode.IsLetter)
	if i < 0 {
		return s, "", ""
	}
	rest := s[i:]
	j := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsLetter(r) })
	if j < 0 {
		return s[:i], rest, ""
	}
	return s[:i], rest[:j], rest[j:]
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	for i, r := range s {
		if unicode.IsLetter(r) {
			return s[:i] + string(unicode.ToUpper(r)) + s[i+len(string(r)):]
		}
		if unicode.IsDigit(r) {
			return s
		}
	}
	return s
}
