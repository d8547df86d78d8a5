// Package evaluate scores annotated SALT documents against hand-coded
// reference transcripts.
package evaluate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	unitRe   = regexp.MustCompile(`^([A-Za-z]+): `)
	fillerRe = regexp.MustCompile(`\([^)]*\[FP\][^)]*\)`)
	morphRe  = regexp.MustCompile(`\b\w+/\w+\b`)
)

// Metrics is the comparison of one system document with its reference.
type Metrics struct {
	File string `json:"file,omitempty"`

	SystemLines    int `json:"system_lines"`
	ReferenceLines int `json:"reference_lines"`
	SystemUnits    int `json:"system_units"`
	ReferenceUnits int `json:"reference_units"`

	UnitAccuracy    float64 `json:"unit_accuracy"`
	UnitCountRatio  float64 `json:"unit_count_ratio"`
	PauseAccuracy   float64 `json:"pause_accuracy"`
	FillerAccuracy  float64 `json:"filler_accuracy"`
	MorphAccuracy   float64 `json:"morph_accuracy"`
	SpeakerAccuracy float64 `json:"speaker_accuracy"`
	Similarity      float64 `json:"similarity"`
	Grade           string  `json:"grade"`
}

// Compare scores system against reference.
func Compare(system, reference string) Metrics {
	sysUnits, refUnits := units(system), units(reference)
	m := Metrics{
		SystemLines:     len(strings.Split(system, "\n")),
		ReferenceLines:  len(strings.Split(reference, "\n")),
		SystemUnits:     len(sysUnits),
		ReferenceUnits:  len(refUnits),
		UnitAccuracy:    accuracy(sysUnits, refUnits),
		UnitCountRatio:  countRatio(len(sysUnits), len(refUnits)),
		PauseAccuracy:   accuracy(pauses(system), pauses(reference)),
		FillerAccuracy:  accuracy(fillerRe.FindAllString(system, -1), fillerRe.FindAllString(reference, -1)),
		MorphAccuracy:   accuracy(morphRe.FindAllString(system, -1), morphRe.FindAllString(reference, -1)),
		SpeakerAccuracy: accuracy(speakers(sysUnits), speakers(refUnits)),
		Similarity:      Similarity(system, reference),
	}
	m.Grade = Grade(m.Similarity)
	return m
}

// Similarity is 2*M/T over a character diff, where M is the number of
// matching characters and T the total length of both texts.
func Similarity(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1.0
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	matched := 0
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			matched += utf8.RuneCountInString(d.Text)
		}
	}
	return 2 * float64(matched) / float64(total)
}

// Grade buckets a similarity score.
func Grade(similarity float64) string {
	switch {
	case similarity >= 0.90:
		return "A+"
	case similarity >= 0.80:
		return "A"
	case similarity >= 0.70:
		return "B"
	case similarity >= 0.60:
		return "C"
	default:
		return "D"
	}
}

// accuracy is positional exact matches over the longer list.
func accuracy(system, reference []string) float64 {
	if len(reference) == 0 {
		if len(system) == 0 {
			return 1.0
		}
		return 0.0
	}
	n := max(len(system), len(reference))
	matches := 0
	for i := 0; i < min(len(system), len(reference)); i++ {
		if system[i] == reference[i] {
			matches++
		}
	}
	return float64(matches) / float64(n)
}

func countRatio(a, b int) float64 {
	if a == 0 && b == 0 {
		return 1.0
	}
	return float64(min(a, b)) / float64(max(a, b))
}

func units(doc string) []string {
	var out []string
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if unitRe.MatchString(line) {
			out = append(out, line)
		}
	}
	return out
}

func pauses(doc string) []string {
	var out []string
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, ";") || strings.HasPrefix(line, ":") {
			out = append(out, line)
		}
	}
	return out
}

func speakers(unitLines []string) []string {
	out := make([]string, len(unitLines))
	for i, l := range unitLines {
		out[i] = unitRe.FindStringSubmatch(l)[1]
	}
	return out
}
