// Package docx pulls plain text out of Word documents so exported
// transcripts and hand-coded references can be read like .txt files.
//
// Body paragraphs come first, one per line. Table rows follow, their cell
// texts joined by tabs. Text inside drawings, text boxes and tracked
// deletions is not part of the output.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// ErrNoDocument means the archive has no word/document.xml part.
var ErrNoDocument = errors.New("docx: word/document.xml not found")

// IsDocx reports whether path has a .docx extension.
func IsDocx(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".docx")
}

// Extract reads the text of the Word document at path.
func Extract(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat: %w", err)
	}
	return Read(f, info.Size())
}

// Read extracts the text of a Word document held in r.
func Read(r io.ReaderAt, size int64) (string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("docx: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("docx: open document: %w", err)
		}
		defer rc.Close()
		return readDocument(rc)
	}
	return "", ErrNoDocument
}

func readDocument(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var paragraphs, rows []string

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("docx: parse: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || !isWord(se.Name, "body") {
			continue
		}
		if paragraphs, rows, err = readBody(dec); err != nil {
			return "", fmt.Errorf("docx: parse: %w", err)
		}
		break
	}

	lines := append(paragraphs, rows...)
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n", nil
}

// readBody collects the top-level paragraphs and table rows of w:body.
func readBody(dec *xml.Decoder) (paragraphs, rows []string, err error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case isWord(t.Name, "p"):
				text, err := readParagraph(dec)
				if err != nil {
					return nil, nil, err
				}
				paragraphs = append(paragraphs, text)
			case isWord(t.Name, "tbl"):
				tableRows, err := readTable(dec)
				if err != nil {
					return nil, nil, err
				}
				rows = append(rows, tableRows...)
			default:
				if err := dec.Skip(); err != nil {
					return nil, nil, err
				}
			}
		case xml.EndElement:
			return paragraphs, rows, nil
		}
	}
}

// readParagraph returns the run text of a w:p. Tabs and breaks become
// "\t" and "\n".
func readParagraph(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				if t.Name.Space != wordNS {
					continue
				}
				var s string
				if err := dec.DecodeElement(&s, &t); err != nil {
					return "", err
				}
				sb.WriteString(s)
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			case "pPr", "rPr", "drawing", "pict", "AlternateContent", "del", "instrText":
				if err := dec.Skip(); err != nil {
					return "", err
				}
			}
		case xml.EndElement:
			if isWord(t.Name, "p") {
				return sb.String(), nil
			}
		}
	}
}

func readTable(dec *xml.Decoder) ([]string, error) {
	var rows []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !isWord(t.Name, "tr") {
				if err := dec.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			cells, err := readRow(dec)
			if err != nil {
				return nil, err
			}
			rows = append(rows, strings.Join(cells, "\t"))
		case xml.EndElement:
			return rows, nil
		}
	}
}

func readRow(dec *xml.Decoder) ([]string, error) {
	var cells []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !isWord(t.Name, "tc") {
				if err := dec.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			cell, err := readCell(dec)
			if err != nil {
				return nil, err
			}
			cells = append(cells, cell)
		case xml.EndElement:
			return cells, nil
		}
	}
}

// readCell joins the paragraphs of a w:tc with newlines. Nested tables are
// dropped.
func readCell(dec *xml.Decoder) (string, error) {
	var paragraphs []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !isWord(t.Name, "p") {
				if err := dec.Skip(); err != nil {
					return "", err
				}
				continue
			}
			text, err := readParagraph(dec)
			if err != nil {
				return "", err
			}
			paragraphs = append(paragraphs, text)
		case xml.EndElement:
			return strings.Join(paragraphs, "\n"), nil
		}
	}
}

func isWord(name xml.Name, local string) bool {
	return name.Space == wordNS && name.Local == local
}
