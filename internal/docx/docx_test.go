package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
  xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006">`

func build(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func document(body string) map[string]string {
	return map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   header + `<w:body>` + body + `</w:body></w:document>`,
	}
}

func TestRead(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "paragraphs",
			body: `<w:p><w:r><w:t>Visit 3</w:t></w:r></w:p>` +
				`<w:p><w:r><w:t xml:space="preserve">[00:00:00] P: Hi </w:t></w:r><w:r><w:t>Nala.</w:t></w:r></w:p>`,
			want: "Visit 3\n[00:00:00] P: Hi Nala.\n",
		},
		{
			name: "tab stops and run properties are not text",
			body: `<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>` +
				`<w:r><w:rPr><w:b/></w:rPr><w:t>P:</w:t></w:r><w:r><w:tab/><w:t>hello</w:t></w:r></w:p>`,
			want: "P:\thello\n",
		},
		{
			name: "breaks",
			body: `<w:p><w:r><w:t>one</w:t><w:br/><w:t>two</w:t></w:r></w:p>`,
			want: "one\ntwo\n",
		},
		{
			name: "tables after paragraphs",
			body: `<w:tbl><w:tblPr/><w:tr><w:tc><w:p><w:r><w:t>P</w:t></w:r></w:p></w:tc>` +
				`<w:tc><w:p><w:r><w:t>Hi.</w:t></w:r></w:p><w:p><w:r><w:t>Bye.</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
				`<w:p><w:r><w:t>closing</w:t></w:r></w:p>`,
			want: "closing\nP\tHi.\nBye.\n",
		},
		{
			name: "drawings and deletions are skipped",
			body: `<w:p><w:r><w:t>kept</w:t></w:r>` +
				`<w:r><mc:AlternateContent><w:p><w:r><w:t>textbox</w:t></w:r></w:p></mc:AlternateContent></w:r>` +
				`<w:del><w:r><w:delText>gone</w:delText></w:r></w:del></w:p>`,
			want: "kept\n",
		},
		{
			name: "empty body",
			body: `<w:sectPr/>`,
			want: "\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := build(t, document(tt.body))
			got, err := Read(bytes.NewReader(data), int64(len(data)))
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if got != tt.want {
				t.Errorf("Read() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRead_NoDocument(t *testing.T) {
	data := build(t, map[string]string{"other.xml": "<x/>"})
	if _, err := Read(bytes.NewReader(data), int64(len(data))); !errors.Is(err, ErrNoDocument) {
		t.Errorf("expected ErrNoDocument, got %v", err)
	}
}

func TestRead_NotZip(t *testing.T) {
	data := []byte("[00:00:00] P: plain text")
	if _, err := Read(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Error("expected error for a non-zip input")
	}
}

func TestExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Visit.docx")
	if err := os.WriteFile(path, build(t, document(`<w:p><w:r><w:t>hello</w:t></w:r></w:p>`)), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "hello\n" {
		t.Errorf("Extract() = %q", got)
	}
	if !IsDocx(path) || IsDocx("Visit.txt") {
		t.Error("IsDocx mismatch")
	}
}
