package parser

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yugant99/C-UnitSegmentation/internal/rules"
	"github.com/yugant99/C-UnitSegmentation/internal/transcript"
)

func newParser() *Parser {
	return New(rules.Default())
}

func TestParseLine_Valid(t *testing.T) {
	p := newParser()
	rl, action, err := p.ParseLine(3, "[01:02:03] Participant:   Hello there.  ", Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != NewLine {
		t.Fatalf("action = %v, want NewLine", action)
	}
	if rl.Line != 3 {
		t.Errorf("Line = %d", rl.Line)
	}
	if rl.Timestamp != 3723*time.Second {
		t.Errorf("Timestamp = %s", rl.Timestamp)
	}
	if rl.Speaker.Code != "P" {
		t.Errorf("Speaker = %+v", rl.Speaker)
	}
	if rl.Text != "Hello there." {
		t.Errorf("Text = %q", rl.Text)
	}
}

func TestParseLine_TextKeepsLaterColons(t *testing.T) {
	rl, _, err := newParser().ParseLine(1, "[00:00:05] Av: at 3:30 we eat", Context{})
	if err != nil {
		t.Fatal(err)
	}
	if rl.Text != "at 3:30 we eat" {
		t.Errorf("Text = %q", rl.Text)
	}
}

func TestParseLine_Errors(t *testing.T) {
	prev := &transcript.RawLine{Line: 1, Timestamp: 30 * time.Second}
	tests := []struct {
		name    string
		line    string
		ctx     Context
		speaker bool
	}{
		{"two fields", "[00:05] P: hi", Context{}, false},
		{"minutes out of range", "[00:75:00] P: hi", Context{}, false},
		{"no speaker", "[00:00:05] hello there", Context{}, false},
		{"unknown speaker", "[00:00:05] Nurse: hello", Context{}, true},
		{"decreasing", "[00:00:10] P: hi", Context{Prev: prev}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := newParser().ParseLine(2, tt.line, tt.ctx)
			if err == nil {
				t.Fatal("expected error")
			}
			var se *transcript.UnknownSpeakerError
			var pe *transcript.ParseError
			if tt.speaker {
				if !errors.As(err, &se) {
					t.Fatalf("expected UnknownSpeakerError, got %T", err)
				}
				if se.Speaker != "Nurse" || se.Line != 2 {
					t.Errorf("got %+v", se)
				}
				return
			}
			if !errors.As(err, &pe) {
				t.Fatalf("expected ParseError, got %T", err)
			}
			if pe.Line != 2 {
				t.Errorf("Line = %d", pe.Line)
			}
		})
	}
}

func TestParseLine_ContinuationDoesNotMutatePrev(t *testing.T) {
	prev := transcript.RawLine{Line: 1, Text: "I went"}
	rl, action, err := newParser().ParseLine(2, "  home.", Context{Prev: &prev})
	if err != nil {
		t.Fatal(err)
	}
	if action != Continue {
		t.Fatalf("action = %v", action)
	}
	if rl.Text != "I went home." {
		t.Errorf("Text = %q", rl.Text)
	}
	if prev.Text != "I went" {
		t.Errorf("prev mutated: %q", prev.Text)
	}
}

func TestParseReader(t *testing.T) {
	src := "\ufeffVisit 3 (Descript generated)\n" +
		"exported by tool\n" +
		"\n" +
		"[00:00:00] P: Hi Nala,\n" +
		"I'm [redacted].\n" +
		"\n" +
		"[00:00:12] Av: Uh, oh, hi.\n" +
		"[00:00:12] Avatar: Same second.\n"

	doc, err := newParser().ParseReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	if doc.Title != "Visit 3 (Descript generated)" {
		t.Errorf("Title = %q", doc.Title)
	}
	if len(doc.Lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(doc.Lines))
	}
	if doc.Lines[0].Text != "Hi Nala, I'm [redacted]." {
		t.Errorf("continuation not joined: %q", doc.Lines[0].Text)
	}
	if doc.Lines[1].Line != 7 || doc.Lines[1].Speaker.Code != "Av" {
		t.Errorf("line 2 = %+v", doc.Lines[1])
	}
	if doc.Lines[2].Speaker.Code != "Av" {
		t.Errorf("alias not resolved: %+v", doc.Lines[2].Speaker)
	}
}

func TestParseReader_StopsAtFirstError(t *testing.T) {
	src := "[00:00:01] P: fine\n[00:00:02] Doctor: hi\n[00:00:03] P: never reached\n"
	_, err := newParser().ParseReader(strings.NewReader(src))
	line, ok := transcript.ErrorLine(err)
	if !ok || line != 2 {
		t.Fatalf("ErrorLine = %d, %v (err %v)", line, ok, err)
	}
}
