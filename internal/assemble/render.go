package assemble

import (
	"fmt"
	"strings"

	"github.com/yugant99/C-UnitSegmentation/internal/transcript"
)

// Render writes t as a SALT document.
func Render(t *transcript.Transcript) string {
	var sb strings.Builder

	legend := make([]string, len(t.Header.Speakers))
	for i, s := range t.Header.Speakers {
		legend[i] = fmt.Sprintf("$%s=%s", s.Code, s.Name)
	}
	sb.WriteString(strings.Join(legend, ", "))
	sb.WriteString("\n")
	if t.Header.Title != "" {
		fmt.Fprintf(&sb, "+ Transcript: %s\n", t.Header.Title)
	}
	if t.Header.Language != "" {
		fmt.Fprintf(&sb, "+ Language: %s\n", t.Header.Language)
	}
	if t.Header.RedactionKey != "" {
		fmt.Fprintf(&sb, "+ Redaction: %s\n", t.Header.RedactionKey)
	}

	for _, it := range t.Items {
		switch v := it.(type) {
		case *transcript.CUnit:
			fmt.Fprintf(&sb, "%s: %s\n", v.Speaker.Code, Terminate(v.Text()))
		case transcript.Pause:
			sb.WriteString(v.String())
			sb.WriteString("\n")
		case transcript.TimeMarker:
			sb.WriteString(v.String())
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Terminate gives unit text terminal punctuation: trailing commas and
// semicolons are dropped and a period is added unless the text already ends
// in '.', '!' or '?'.
func Terminate(text string) string {
	text = strings.TrimRight(strings.TrimSpace(text), ",;")
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	end := strings.TrimRight(text, `"')]}”’`)
	if end != "" {
		switch end[len(end)-1] {
		case '.', '!', '?':
			return text
		}
	}
	return text + "."
}
