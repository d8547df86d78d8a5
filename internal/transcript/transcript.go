package transcript

import (
	"fmt"
	"strings"
	"time"
)

// Speaker is a member of the closed speaker set.
type Speaker struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// RawLine is one timestamped, speaker-attributed line of the source. It is
// never modified after parsing.
type RawLine struct {
	Line      int           `json:"line"`
	Timestamp time.Duration `json:"timestamp"`
	Speaker   Speaker       `json:"speaker"`
	Text      string        `json:"text"`
}

// CUnit is one communication unit cut from exactly one RawLine.
type CUnit struct {
	Seq       int           `json:"seq"`
	Speaker   Speaker       `json:"speaker"`
	Line      int           `json:"line"`
	Timestamp time.Duration `json:"timestamp"`
	Tokens    []Token       `json:"tokens"`
}

// Text joins the unit's token surfaces with single spaces.
func (u *CUnit) Text() string {
	parts := make([]string, len(u.Tokens))
	for i, t := range u.Tokens {
		parts[i] = t.Surface
	}
	return strings.Join(parts, " ")
}

// PauseKind distinguishes pauses between units from pauses inside one.
type PauseKind string

const (
	Inter PauseKind = ";"
	Intra PauseKind = ":"
)

// Pause is a coded silence.
type Pause struct {
	Kind    PauseKind `json:"kind"`
	Seconds int       `json:"seconds"`
}

func (p Pause) String() string {
	if p.Kind == Intra {
		return fmt.Sprintf(":%02d", p.Seconds)
	}
	return fmt.Sprintf("; :%02d", p.Seconds)
}

// TimeMarker records elapsed time at a scene transition.
type TimeMarker struct {
	At time.Duration `json:"at"`
}

func (m TimeMarker) String() string {
	secs := int(m.At / time.Second)
	return fmt.Sprintf("-%d:%02d", secs/60, secs%60)
}

// Item is one entry of an assembled transcript: *CUnit, Pause or TimeMarker.
type Item interface {
	item()
}

func (*CUnit) item()     {}
func (Pause) item()      {}
func (TimeMarker) item() {}

// Header describes the transcript as a whole.
type Header struct {
	Title        string    `json:"title,omitempty"`
	Speakers     []Speaker `json:"speakers"`
	Language     string    `json:"language"`
	RedactionKey string    `json:"redaction_key"`
}

// Transcript is the assembled, ordered output for one file.
type Transcript struct {
	Name   string `json:"name"`
	Header Header `json:"header"`
	Items  []Item `json:"-"`
}

// Units returns the transcript's C-units in order.
func (t *Transcript) Units() []*CUnit {
	var out []*CUnit
	for _, it := range t.Items {
		if u, ok := it.(*CUnit); ok {
			out = append(out, u)
		}
	}
	return out
}

// Pauses returns the number of inter-unit pauses.
func (t *Transcript) Pauses() int {
	n := 0
	for _, it := range t.Items {
		if _, ok := it.(Pause); ok {
			n++
		}
	}
	return n
}

// NoteKind classifies a Note.
type NoteKind string

const (
	// Ambiguity marks a low-confidence segmentation decision.
	Ambiguity NoteKind = "ambiguity"
	// Conflict marks an annotation that would have overlapped an existing one.
	Conflict NoteKind = "conflict"
)

// Note is an audit record. Notes never stop processing.
type Note struct {
	Kind   NoteKind `json:"kind"`
	Line   int      `json:"line"`
	Token  string   `json:"token"`
	Detail string   `json:"detail"`
}

func (n Note) String() string {
	return fmt.Sprintf("line %d: %s at %q: %s", n.Line, n.Kind, n.Token, n.Detail)
}
