package parser

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yugant99/C-UnitSegmentation/internal/rules"
	"github.com/yugant99/C-UnitSegmentation/internal/transcript"
)

var (
	lineRe    = regexp.MustCompile(`^\[(\d{1,2}):(\d{2}):(\d{2})\]\s*(.*)$`)
	stampedRe = regexp.MustCompile(`^\[\s*\d`)
	speakerRe = regexp.MustCompile(`^([A-Za-z][A-Za-z .'_-]{0,39}?)\s*:\s*(.*)$`)
)

// Action says what a source line contributed.
type Action int

const (
	// Skip means the line was blank.
	Skip Action = iota
	// NewLine means the line opened a new RawLine.
	NewLine
	// Continue means the line extended the previous RawLine.
	Continue
	// Preamble means the line came before the first timestamped line.
	Preamble
)

// Context is the carry-over state between lines.
type Context struct {
	Prev *transcript.RawLine
}

// Document is a parsed source file.
type Document struct {
	Title string
	Lines []transcript.RawLine
}

// Parser turns "[hh:mm:ss] Speaker: text" lines into RawLines.
type Parser struct {
	rules *rules.Rules
}

func New(r *rules.Rules) *Parser {
	return &Parser{rules: r}
}

// ParseLine parses one source line. For Continue the returned RawLine is the
// previous line extended with this line's text; for Preamble only Text is set.
func (p *Parser) ParseLine(lineNo int, text string, ctx Context) (transcript.RawLine, Action, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(text, "\ufeff"))
	if trimmed == "" {
		return transcript.RawLine{}, Skip, nil
	}

	m := lineRe.FindStringSubmatch(trimmed)
	if m == nil {
		if stampedRe.MatchString(trimmed) {
			return transcript.RawLine{}, Skip, &transcript.ParseError{Line: lineNo, Text: trimmed, Reason: "malformed timestamp"}
		}
		if ctx.Prev == nil {
			return transcript.RawLine{Line: lineNo, Text: trimmed}, Preamble, nil
		}
		ext := *ctx.Prev
		if ext.Text == "" {
			ext.Text = trimmed
		} else {
			ext.Text += " " + trimmed
		}
		return ext, Continue, nil
	}

	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	ss, _ := strconv.Atoi(m[3])
	if mm > 59 || ss > 59 {
		return transcript.RawLine{}, Skip, &transcript.ParseError{Line: lineNo, Text: trimmed, Reason: "timestamp out of range"}
	}
	ts := time.Duration(h*3600+mm*60+ss) * time.Second

	sm := speakerRe.FindStringSubmatch(m[4])
	if sm == nil {
		return transcript.RawLine{}, Skip, &transcript.ParseError{Line: lineNo, Text: trimmed, Reason: "missing speaker tag"}
	}
	def, ok := p.rules.Speaker(sm[1])
	if !ok {
		return transcript.RawLine{}, Skip, &transcript.UnknownSpeakerError{Line: lineNo, Speaker: strings.TrimSpace(sm[1])}
	}
	if ctx.Prev != nil && ts < ctx.Prev.Timestamp {
		return transcript.RawLine{}, Skip, &transcript.ParseError{Line: lineNo, Text: trimmed, Reason: "timestamp earlier than previous line"}
	}

	return transcript.RawLine{
		Line:      lineNo,
		Timestamp: ts,
		Speaker:   transcript.Speaker{Code: def.Code, Name: def.Name},
		Text:      strings.TrimSpace(sm[2]),
	}, NewLine, nil
}

// ParseReader parses a whole source file.
func (p *Parser) ParseReader(r io.Reader) (*Document, error) {
	doc := &Document{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		var ctx Context
		if n := len(doc.Lines); n > 0 {
			ctx.Prev = &doc.Lines[n-1]
		}
		rl, action, err := p.ParseLine(lineNo, scanner.Text(), ctx)
		if err != nil {
			return nil, err
		}
		switch action {
		case NewLine:
			doc.Lines = append(doc.Lines, rl)
		case Continue:
			doc.Lines[len(doc.Lines)-1] = rl
		case Preamble:
			if doc.Title == "" {
				doc.Title = rl.Text
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return doc, nil
}
