// Package docio reads input documents into UTF-8 and writes results back in
// the encoding the input arrived in.
package docio

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Document is a decoded input file.
type Document struct {
	Path    string
	Text    string
	Charset string
	Size    int

	enc    encoding.Encoding
	markup bool
}

const prescanLimit = 1024

type byteOrderMark struct {
	prefix []byte
	name   string
	enc    encoding.Encoding
}

// The decoders of these encodings consume the mark and their encoders write
// it back, so a file keeps its BOM across a round trip.
var byteOrderMarks = []byteOrderMark{
	{[]byte{0xEF, 0xBB, 0xBF}, "utf-8", unicode.UTF8BOM},
	{[]byte{0xFF, 0xFE}, "utf-16le", unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)},
	{[]byte{0xFE, 0xFF}, "utf-16be", unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)},
}

// ReadHTML reads an HTML document. The encoding comes from a byte order mark,
// a <meta> charset declaration, or content sniffing, in that order.
func ReadHTML(path string) (Document, error) {
	raw, err := readFile(path)
	if err != nil {
		return Document{}, err
	}
	enc, name := detectBOM(raw)
	if enc == nil {
		enc, name, _ = charset.DetermineEncoding(raw, "text/html")
		// Sniffing only looks at the first 1024 bytes. A declared charset wins.
		if name == "windows-1252" && !declaresCharset(raw) && utf8.Valid(raw) {
			enc, name = unicode.UTF8, "utf-8"
		}
	}
	doc, err := decode(path, raw, enc, name)
	if err != nil {
		return Document{}, err
	}
	doc.markup = true
	return doc, nil
}

// ReadText reads a plain text document. Without a byte order mark the file
// must be valid UTF-8.
func ReadText(path string) (Document, error) {
	raw, err := readFile(path)
	if err != nil {
		return Document{}, err
	}
	enc, name := detectBOM(raw)
	if enc == nil {
		enc, name = unicode.UTF8, "utf-8"
	}
	return decode(path, raw, enc, name)
}

// Encode converts text to the document's encoding. Characters the encoding
// cannot represent become numeric character references for HTML input and
// replacement characters otherwise.
func (d Document) Encode(text string) ([]byte, error) {
	if d.enc == nil {
		return []byte(text), nil
	}
	var enc *encoding.Encoder
	if d.markup {
		enc = encoding.HTMLEscapeUnsupported(d.enc.NewEncoder())
	} else {
		enc = encoding.ReplaceUnsupported(d.enc.NewEncoder())
	}
	out, err := enc.Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", d.Charset, err)
	}
	return out, nil
}

// WriteSibling writes text next to the input as <path><suffix> and returns
// the path written.
func (d Document) WriteSibling(suffix, text string) (string, error) {
	if strings.TrimSpace(suffix) == "" {
		return "", fmt.Errorf("%w: output suffix must be non-empty", ErrInvalidInput)
	}
	out := OutputPath(d.Path, suffix)
	b, err := d.Encode(text)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		return "", fmt.Errorf("write %q: %w", out, err)
	}
	return out, nil
}

// OutputPath is the path a result for input is written to.
func OutputPath(input, suffix string) string {
	return input + suffix
}

func readFile(path string) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: input path must be non-empty", ErrInvalidInput)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("input %q: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: input %q is a directory", ErrInvalidInput, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return raw, nil
}

// declaresCharset reports whether a <meta> tag within the prescan window
// names a charset.
func declaresCharset(raw []byte) bool {
	if len(raw) > prescanLimit {
		raw = raw[:prescanLimit]
	}
	z := html.NewTokenizer(bytes.NewReader(raw))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "meta" {
				continue
			}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				switch string(key) {
				case "charset":
					return true
				case "content":
					if strings.Contains(strings.ToLower(string(val)), "charset=") {
						return true
					}
				}
			}
		}
	}
}

func detectBOM(raw []byte) (encoding.Encoding, string) {
	for _, m := range byteOrderMarks {
		if bytes.HasPrefix(raw, m.prefix) {
			return m.enc, m.name
		}
	}
	return nil, ""
}

func decode(path string, raw []byte, enc encoding.Encoding, name string) (Document, error) {
	if isUTF8(name) && !utf8.Valid(raw) {
		return Document{}, fmt.Errorf("%w: %q is not valid utf-8", ErrInvalidInput, path)
	}
	text, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return Document{}, fmt.Errorf("%w: decode %q as %s: %v", ErrInvalidInput, path, name, err)
	}
	return Document{
		Path:    path,
		Text:    string(text),
		Charset: name,
		Size:    len(raw),
		enc:     enc,
	}, nil
}

func isUTF8(name string) bool {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return true
	}
	return false
}
