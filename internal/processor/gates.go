package processor

import (
	"fmt"
	"strings"
)

// checkRefined gates a refined document: it must keep every line of the
// original in place, and structural lines (header, pauses, time markers)
// and speaker prefixes must be unchanged.
func checkRefined(original, refined string) error {
	if strings.TrimSpace(refined) == "" {
		return fmt.Errorf("empty document")
	}
	a := strings.Split(strings.TrimRight(original, "\n"), "\n")
	b := strings.Split(strings.TrimRight(refined, "\n"), "\n")
	if len(a) != len(b) {
		return fmt.Errorf("line count changed from %d to %d", len(a), len(b))
	}
	for i := range a {
		pa, unitA := speakerOf(a[i])
		pb, unitB := speakerOf(b[i])
		if !unitA {
			if a[i] != b[i] {
				return fmt.Errorf("line %d: structural line changed", i+1)
			}
			continue
		}
		if !unitB || pa != pb {
			return fmt.Errorf("line %d: speaker changed from %q to %q", i+1, pa, pb)
		}
	}
	return nil
}

// speakerOf returns the speaker code of a unit line.
func speakerOf(line string) (string, bool) {
	if line == "" {
		return "", false
	}
	switch line[0] {
	case '$', '+', '-', ';', ':':
		return "", false
	}
	code, _, ok := strings.Cut(line, ": ")
	if !ok || code == "" || strings.ContainsAny(code, " \t") {
		return "", false
	}
	return code, true
}
