package transcript

import (
	"errors"
	"fmt"
)

// ParseError is a malformed source line. It is fatal for the file.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// UnknownSpeakerError is a speaker tag outside the closed speaker set.
type UnknownSpeakerError struct {
	Line    int
	Speaker string
}

func (e *UnknownSpeakerError) Error() string {
	return fmt.Sprintf("line %d: unknown speaker %q", e.Line, e.Speaker)
}

// ErrorLine returns the source line number carried by a parse-level error.
func ErrorLine(err error) (int, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Line, true
	}
	var se *UnknownSpeakerError
	if errors.As(err, &se) {
		return se.Line, true
	}
	return 0, false
}
