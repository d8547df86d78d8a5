package evaluate

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const reference = `$Av=Avatar, $P=Participant
-0:00
P: Hi Nala.
; :12
Av: (Uh [FP]), hi.
P: I walk/ed here.
-0:12
`

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCompare_Identical(t *testing.T) {
	m := Compare(reference, reference)
	for name, got := range map[string]float64{
		"unit":       m.UnitAccuracy,
		"pause":      m.PauseAccuracy,
		"filler":     m.FillerAccuracy,
		"morph":      m.MorphAccuracy,
		"speaker":    m.SpeakerAccuracy,
		"similarity": m.Similarity,
		"count":      m.UnitCountRatio,
	} {
		if !almost(got, 1.0) {
			t.Errorf("%s = %v, want 1", name, got)
		}
	}
	if m.Grade != "A+" {
		t.Errorf("grade = %q", m.Grade)
	}
	if m.SystemUnits != 3 || m.ReferenceUnits != 3 {
		t.Errorf("units = %d/%d", m.SystemUnits, m.ReferenceUnits)
	}
}

func TestCompare_Differences(t *testing.T) {
	system := strings.Replace(reference, "P: I walk/ed here.", "P: I walked here.", 1)
	system = strings.Replace(system, "(Uh [FP]), hi.", "Uh, hi.", 1)
	m := Compare(system, reference)

	if !almost(m.UnitAccuracy, 1.0/3) {
		t.Errorf("unit accuracy = %v, want 1/3", m.UnitAccuracy)
	}
	if m.FillerAccuracy != 0 {
		t.Errorf("filler accuracy = %v, want 0", m.FillerAccuracy)
	}
	if m.MorphAccuracy != 0 {
		t.Errorf("morph accuracy = %v, want 0", m.MorphAccuracy)
	}
	if !almost(m.SpeakerAccuracy, 1.0) || !almost(m.PauseAccuracy, 1.0) {
		t.Errorf("speaker %v pause %v, want 1", m.SpeakerAccuracy, m.PauseAccuracy)
	}
	if m.Similarity >= 1.0 || m.Similarity < 0.8 {
		t.Errorf("similarity = %v", m.Similarity)
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name      string
		system    []string
		reference []string
		want      float64
	}{
		{"both empty", nil, nil, 1.0},
		{"empty reference", []string{"a"}, nil, 0.0},
		{"empty system", nil, []string{"a"}, 0.0},
		{"positional", []string{"a", "x", "c"}, []string{"a", "b", "c"}, 2.0 / 3},
		{"longer system", []string{"a", "b", "c", "d"}, []string{"a", "b"}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := accuracy(tt.system, tt.reference); !almost(got, tt.want) {
				t.Errorf("accuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1.0},
		{"abc", "", 0.0},
		{"abcd", "abcd", 1.0},
		{"abcd", "abxd", 0.75},
	}
	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); !almost(got, tt.want) {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.95, "A+"},
		{0.90, "A+"},
		{0.85, "A"},
		{0.70, "B"},
		{0.65, "C"},
		{0.10, "D"},
	}
	for _, tt := range tests {
		if got := Grade(tt.score); got != tt.want {
			t.Errorf("Grade(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	r := Summarize([]Metrics{
		{File: "a", UnitAccuracy: 1, Similarity: 0.95},
		{File: "b", UnitAccuracy: 0.5, Similarity: 0.75},
	})
	if !almost(r.UnitAccuracy, 0.75) || !almost(r.Similarity, 0.85) {
		t.Errorf("averages = %v / %v", r.UnitAccuracy, r.Similarity)
	}
	if r.Grade != "A" {
		t.Errorf("grade = %q", r.Grade)
	}

	out := FormatReport(r)
	for _, want := range []string{"files: 2", "1. a", "2. b", "grade: A"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestSummarize_Empty(t *testing.T) {
	r := Summarize(nil)
	if r.Grade != "D" || len(r.Files) != 0 {
		t.Errorf("unexpected %+v", r)
	}
}

func TestMatchDirs(t *testing.T) {
	sysDir, refDir := t.TempDir(), t.TempDir()
	write := func(dir, name string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(sysDir, "Visit 3.slt")
	write(sysDir, "Visit 4.slt")
	write(refDir, "Visit 3 (Orthographic Segmented Transcript).txt")

	pairs, err := MatchDirs(sysDir, refDir)
	if err != nil {
		t.Fatalf("MatchDirs: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	if filepath.Base(pairs[0].System) != "Visit 3.slt" {
		t.Errorf("unexpected pair %+v", pairs[0])
	}
}
