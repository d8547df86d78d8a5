package evaluate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var parenRe = regexp.MustCompile(`\([^)]*\)`)

// Report aggregates metrics over several files.
type Report struct {
	Files []Metrics `json:"files"`

	UnitAccuracy    float64 `json:"avg_unit_accuracy"`
	PauseAccuracy   float64 `json:"avg_pause_accuracy"`
	FillerAccuracy  float64 `json:"avg_filler_accuracy"`
	MorphAccuracy   float64 `json:"avg_morph_accuracy"`
	SpeakerAccuracy float64 `json:"avg_speaker_accuracy"`
	Similarity      float64 `json:"avg_similarity"`
	Grade           string  `json:"grade"`
}

// Summarize averages the per-file metrics.
func Summarize(files []Metrics) Report {
	r := Report{Files: files}
	if len(files) == 0 {
		r.Grade = Grade(0)
		return r
	}
	for _, m := range files {
		r.UnitAccuracy += m.UnitAccuracy
		r.PauseAccuracy += m.PauseAccuracy
		r.FillerAccuracy += m.FillerAccuracy
		r.MorphAccuracy += m.MorphAccuracy
		r.SpeakerAccuracy += m.SpeakerAccuracy
		r.Similarity += m.Similarity
	}
	n := float64(len(files))
	r.UnitAccuracy /= n
	r.PauseAccuracy /= n
	r.FillerAccuracy /= n
	r.MorphAccuracy /= n
	r.SpeakerAccuracy /= n
	r.Similarity /= n
	r.Grade = Grade(r.Similarity)
	return r
}

// FormatReport renders a report as plain text.
func FormatReport(r Report) string {
	var sb strings.Builder
	sb.WriteString("C-unit evaluation\n")
	fmt.Fprintf(&sb, "files: %d\n", len(r.Files))
	fmt.Fprintf(&sb, "  unit accuracy:    %5.1f%%\n", r.UnitAccuracy*100)
	fmt.Fprintf(&sb, "  pause accuracy:   %5.1f%%\n", r.PauseAccuracy*100)
	fmt.Fprintf(&sb, "  filler accuracy:  %5.1f%%\n", r.FillerAccuracy*100)
	fmt.Fprintf(&sb, "  morph accuracy:   %5.1f%%\n", r.MorphAccuracy*100)
	fmt.Fprintf(&sb, "  speaker accuracy: %5.1f%%\n", r.SpeakerAccuracy*100)
	fmt.Fprintf(&sb, "  similarity:       %5.1f%%\n", r.Similarity*100)
	fmt.Fprintf(&sb, "grade: %s\n", r.Grade)

	for i, m := range r.Files {
		name := m.File
		if name == "" {
			name = fmt.Sprintf("file %d", i+1)
		}
		fmt.Fprintf(&sb, "\n%d. %s\n", i+1, name)
		fmt.Fprintf(&sb, "   units %d (system) vs %d (reference)\n", m.SystemUnits, m.ReferenceUnits)
		fmt.Fprintf(&sb, "   unit %.1f%%, pause %.1f%%, filler %.1f%%, morph %.1f%%, similarity %.1f%% [%s]\n",
			m.UnitAccuracy*100, m.PauseAccuracy*100, m.FillerAccuracy*100, m.MorphAccuracy*100, m.Similarity*100, m.Grade)
	}
	return sb.String()
}

// Pair is a system document and its reference.
type Pair struct {
	System    string
	Reference string
}

// MatchDirs pairs the files of two directories by base name, ignoring the
// extension and any parenthesized suffix such as "(Descript generated)".
func MatchDirs(systemDir, referenceDir string) ([]Pair, error) {
	refs, err := indexDir(referenceDir)
	if err != nil {
		return nil, err
	}
	sys, err := indexDir(systemDir)
	if err != nil {
		return nil, err
	}

	var pairs []Pair
	for key, path := range sys {
		if ref, ok := refs[key]; ok {
			pairs = append(pairs, Pair{System: path, Reference: ref})
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].System < pairs[j].System })
	return pairs, nil
}

func indexDir(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	out := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		out[matchKey(e.Name())] = filepath.Join(dir, e.Name())
	}
	return out, nil
}

func matchKey(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = parenRe.ReplaceAllString(base, "")
	return strings.ToLower(strings.Join(strings.Fields(base), " "))
}
