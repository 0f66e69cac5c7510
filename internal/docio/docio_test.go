package docio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeInput(t *testing.T, name string, body []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func readOutput(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	return b
}

func TestReadHTML_UTF8(t *testing.T) {
	path := writeInput(t, "note.html", []byte("<p>café</p>"))
	doc, err := ReadHTML(path)
	if err != nil {
		t.Fatalf("ReadHTML: %v", err)
	}
	if doc.Text != "<p>café</p>" {
		t.Fatalf("Text = %q", doc.Text)
	}
	if doc.Charset != "utf-8" {
		t.Fatalf("Charset = %q, want utf-8", doc.Charset)
	}
	if doc.Path != path {
		t.Fatalf("Path = %q, want %q", doc.Path, path)
	}
}

func TestReadHTML_DeclaredLegacyCharsetRoundTrip(t *testing.T) {
	raw := []byte("<html><head><meta charset=\"windows-1252\"></head><body><p>caf\xe9</p></body></html>")
	path := writeInput(t, "legacy.html", raw)

	doc, err := ReadHTML(path)
	if err != nil {
		t.Fatalf("ReadHTML: %v", err)
	}
	if doc.Charset != "windows-1252" {
		t.Fatalf("Charset = %q, want windows-1252", doc.Charset)
	}
	if !strings.Contains(doc.Text, "café") {
		t.Fatalf("expected decoded text to contain café, got %q", doc.Text)
	}

	out, err := doc.WriteSibling(".anki", "café → tea")
	if err != nil {
		t.Fatalf("WriteSibling: %v", err)
	}
	if out != path+".anki" {
		t.Fatalf("output path = %q", out)
	}
	got := readOutput(t, out)
	if !bytes.HasPrefix(got, []byte("caf\xe9 ")) {
		t.Fatalf("expected windows-1252 bytes, got %q", got)
	}
	if !bytes.Contains(got, []byte("&#8594;")) {
		t.Fatalf("expected unsupported rune as character reference, got %q", got)
	}
}

func TestReadHTML_DeclaredCharsetWinsOverValidUTF8(t *testing.T) {
	cases := map[string]string{
		"meta charset": `<meta charset="iso-8859-1"><p>plain</p>`,
		"http-equiv":   `<meta http-equiv="Content-Type" content="text/html; charset=windows-1252"><p>plain</p>`,
	}
	for name, body := range cases {
		path := writeInput(t, "declared.html", []byte(body))
		doc, err := ReadHTML(path)
		if err != nil {
			t.Fatalf("%s: ReadHTML: %v", name, err)
		}
		if doc.Charset != "windows-1252" {
			t.Fatalf("%s: Charset = %q, want windows-1252", name, doc.Charset)
		}
	}
}

func TestReadHTML_UndeclaredUTF8PastPrescanWindow(t *testing.T) {
	body := "<p>" + strings.Repeat("a", prescanLimit) + "</p><p>café</p>"
	path := writeInput(t, "long.html", []byte(body))
	doc, err := ReadHTML(path)
	if err != nil {
		t.Fatalf("ReadHTML: %v", err)
	}
	if doc.Charset != "utf-8" {
		t.Fatalf("Charset = %q, want utf-8", doc.Charset)
	}
	if !strings.Contains(doc.Text, "café") {
		t.Fatalf("expected café in decoded text, got %q", doc.Text)
	}
}

func TestReadText_UTF8BOMIsKept(t *testing.T) {
	path := writeInput(t, "notes.txt", append([]byte{0xEF, 0xBB, 0xBF}, "hello"...))
	doc, err := ReadText(path)
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if doc.Text != "hello" {
		t.Fatalf("Text = %q, want hello", doc.Text)
	}
	out, err := doc.WriteSibling(".out", "bye")
	if err != nil {
		t.Fatalf("WriteSibling: %v", err)
	}
	want := append([]byte{0xEF, 0xBB, 0xBF}, "bye"...)
	if got := readOutput(t, out); !bytes.Equal(got, want) {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestReadText_UTF16LittleEndian(t *testing.T) {
	path := writeInput(t, "wide.txt", []byte{0xFF, 0xFE, 'h', 0, 'i', 0})
	doc, err := ReadText(path)
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if doc.Text != "hi" {
		t.Fatalf("Text = %q, want hi", doc.Text)
	}
	if doc.Charset != "utf-16le" {
		t.Fatalf("Charset = %q, want utf-16le", doc.Charset)
	}
	out, err := doc.WriteSibling(".out", "ok")
	if err != nil {
		t.Fatalf("WriteSibling: %v", err)
	}
	want := []byte{0xFF, 0xFE, 'o', 0, 'k', 0}
	if got := readOutput(t, out); !bytes.Equal(got, want) {
		t.Fatalf("output = %v, want %v", got, want)
	}
}

func TestReadText_InvalidUTF8(t *testing.T) {
	path := writeInput(t, "bad.txt", []byte{'a', 0xC3, 0x28})
	if _, err := ReadText(path); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRead_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.html")
	if _, err := ReadHTML(path); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ReadHTML: expected ErrNotFound, got %v", err)
	}
	if _, err := ReadText(path); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ReadText: expected ErrNotFound, got %v", err)
	}
}

func TestRead_DirectoryAndEmptyPath(t *testing.T) {
	if _, err := ReadHTML(t.TempDir()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("directory: expected ErrInvalidInput, got %v", err)
	}
	if _, err := ReadText("  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty path: expected ErrInvalidInput, got %v", err)
	}
}

func TestWriteSibling_RequiresSuffix(t *testing.T) {
	path := writeInput(t, "note.html", []byte("<p>x</p>"))
	doc, err := ReadHTML(path)
	if err != nil {
		t.Fatalf("ReadHTML: %v", err)
	}
	if _, err := doc.WriteSibling(" ", "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	if got := OutputPath("/tmp/a.html", ".anki"); got != "/tmp/a.html.anki" {
		t.Fatalf("OutputPath = %q", got)
	}
}
