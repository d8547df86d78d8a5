package assemble

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/yugant99/C-UnitSegmentation/internal/morph"
	"github.com/yugant99/C-UnitSegmentation/internal/pause"
	"github.com/yugant99/C-UnitSegmentation/internal/rules"
	"github.com/yugant99/C-UnitSegmentation/internal/segment"
	"github.com/yugant99/C-UnitSegmentation/internal/transcript"
)

func newAssembler() *Assembler {
	r := rules.Default()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(r, segment.New(r, nil), pause.New(pause.DefaultPolicy()), morph.New(r, nil, logger))
}

func line(n int, secs int, code, text string) transcript.RawLine {
	names := map[string]string{"P": "Participant", "Av": "Avatar"}
	return transcript.RawLine{
		Line:      n,
		Timestamp: time.Duration(secs) * time.Second,
		Speaker:   transcript.Speaker{Code: code, Name: names[code]},
		Text:      text,
	}
}

func TestAssemble_EndToEnd(t *testing.T) {
	lines := []transcript.RawLine{
		line(1, 0, "P", "Hi Nala, I'm [redacted], I'm your nurse today."),
		line(2, 12, "Av", "Uh, oh, hi, I don't know you, I don't need help."),
	}
	tr, notes, err := newAssembler().Assemble(context.Background(), "visit", "", lines)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	want := `$Av=Avatar, $P=Participant
+ Language: English
+ Redaction: {redacted}
-0:00
P: Hi Nala, I'm {redacted}, I'm your nurse today.
; :12
Av: (Uh [FP]), (oh [FP]), hi, I don't know you, I don't need help.
-0:12
`
	if got := Render(tr); got != want {
		t.Errorf("Render mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
	if len(notes) != 0 {
		t.Errorf("unexpected notes: %+v", notes)
	}
}

func TestAssemble_SplitsAndPauses(t *testing.T) {
	lines := []transcript.RawLine{
		line(1, 0, "P", "I went home and I ate dinner"),
		line(2, 14, "P", "get up and get dressed"),
		line(3, 34, "P", "um, okay"),
	}
	tr, _, err := newAssembler().Assemble(context.Background(), "x", "", lines)
	if err != nil {
		t.Fatal(err)
	}
	want := `-0:00
P: I went home.
; :02
P: And I ate dinner.
; :02
P: Get up and get dress/ed.
; :20
-0:34
P: (Um [FP]), okay.
-0:34
`
	got := Render(tr)
	body := got[strings.Index(got, "-0:00"):]
	if body != want {
		t.Errorf("got:\n%s\nwant:\n%s", body, want)
	}
}

func TestAssemble_LineGapPauses(t *testing.T) {
	tests := []struct {
		name   string
		second string
		gap    int
		want   string
	}{
		{"same speaker below threshold", "P", 14, "; :02"},
		{"same speaker at threshold", "P", 15, "; :15"},
		{"same speaker above threshold", "P", 20, "; :20"},
		{"speaker change keeps the gap", "Av", 12, "; :12"},
		{"speaker change floors at default", "Av", 1, "; :02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := []transcript.RawLine{
				line(1, 0, "P", "I went home."),
				line(2, tt.gap, tt.second, "I ate dinner."),
			}
			tr, _, err := newAssembler().Assemble(context.Background(), "x", "", lines)
			if err != nil {
				t.Fatal(err)
			}
			doc := Render(tr)
			wantBody := "P: I went home.\n" + tt.want + "\n"
			if !strings.Contains(doc, wantBody) {
				t.Errorf("expected %q after the first unit, got:\n%s", tt.want, doc)
			}
			if tr.Pauses() != 1 {
				t.Errorf("pauses = %d, want 1", tr.Pauses())
			}
		})
	}
}

func TestAssemble_MonotonicSequence(t *testing.T) {
	lines := []transcript.RawLine{
		line(1, 0, "P", "yes, I can. We ate and then we slept."),
		line(2, 3, "Av", "okay"),
		line(3, 3, "P", "I looked but she left so I stayed."),
	}
	tr, _, err := newAssembler().Assemble(context.Background(), "x", "", lines)
	if err != nil {
		t.Fatal(err)
	}
	units := tr.Units()
	if len(units) < 6 {
		t.Fatalf("expected at least 6 units, got %d", len(units))
	}
	for i, u := range units {
		if u.Seq != i+1 {
			t.Errorf("unit %d has Seq %d", i, u.Seq)
		}
		if i > 0 && u.Timestamp < units[i-1].Timestamp {
			t.Errorf("unit %d goes back in time", i)
		}
	}
	if tr.Pauses() != len(units)-1 {
		t.Errorf("pauses = %d, want %d", tr.Pauses(), len(units)-1)
	}
}

func TestAssemble_EmbeddedTimestamps(t *testing.T) {
	lines := []transcript.RawLine{
		line(1, 10, "P", "I was [00:00:14] looking [00:00:30] for it. [00:00:50] Then I found it."),
	}
	tr, _, err := newAssembler().Assemble(context.Background(), "x", "", lines)
	if err != nil {
		t.Fatal(err)
	}
	want := `-0:10
P: I was :02 look/ing :16 for it.
; :20
-0:50
P: Then I found it.
-0:50
`
	got := Render(tr)
	if body := got[strings.Index(got, "-0:10"):]; body != want {
		t.Errorf("got:\n%s\nwant:\n%s", body, want)
	}
}

func TestAssemble_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr, notes, err := newAssembler().Assemble(ctx, "x", "", []transcript.RawLine{line(1, 0, "P", "hi")})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if tr != nil || notes != nil {
		t.Error("partial output returned after cancellation")
	}
}

func TestRender_Title(t *testing.T) {
	tr, _, _ := newAssembler().Assemble(context.Background(), "x", "Visit 3", nil)
	got := Render(tr)
	if !strings.Contains(got, "+ Transcript: Visit 3\n") {
		t.Errorf("missing title line:\n%s", got)
	}
	if strings.Contains(got, "-0:00") {
		t.Error("empty transcript should have no time markers")
	}
}

func TestTerminate(t *testing.T) {
	tests := map[string]string{
		"hi":            "hi.",
		"hi,":           "hi.",
		"really?":       "really?",
		"stop!":         "stop!",
		"(um [FP])":     "(um [FP]).",
		`he said "no."`: `he said "no."`,
		"well...":       "well...",
	}
	for in, want := range tests {
		if got := Terminate(in); got != want {
			t.Errorf("Terminate(%q) = %q, want %q", in, got, want)
		}
	}
}
