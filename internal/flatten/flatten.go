// Package flatten turns an HTML document into the linear text of an Anki
// note: paragraphs separated by blank lines, numbered and bulleted list
// lines, and image references reduced to their file name.
package flatten

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

var lineBreakTag = regexp.MustCompile(`(?i)<br(\s[^<>]*)?>`)

// NormalizeLineBreaks rewrites line-break tags that are not self-closed
// into the `<br />` form. Attributes are kept.
func NormalizeLineBreaks(contents string) string {
	return lineBreakTag.ReplaceAllStringFunc(contents, func(tag string) string {
		inner := strings.TrimSpace(tag[len("<br") : len(tag)-1])
		if strings.HasSuffix(inner, "/") {
			return tag
		}
		if inner == "" {
			return "<br />"
		}
		return "<br " + inner + " />"
	})
}

// Flatten parses contents and returns the flattened text of its body.
func Flatten(contents string) (string, error) {
	doc, err := html.Parse(strings.NewReader(NormalizeLineBreaks(contents)))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	body := FindBody(doc)
	if body == nil {
		return "", nil
	}
	return Node(body), nil
}

// Node flattens a single parsed node and its subtree.
func Node(n *html.Node) string {
	return process(n, false)
}

// Encode replaces every line break in text with lineBreak so the note fits
// on one physical line.
func Encode(text, lineBreak string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\n", lineBreak)
}

// FindBody returns the first body element under n, or nil.
func FindBody(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, "body") {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := FindBody(c); b != nil {
			return b
		}
	}
	return nil
}

// ImageName strips everything up to and including the last slash of src.
func ImageName(src string) string {
	if i := strings.LastIndex(src, "/"); i >= 0 {
		return src[i+1:]
	}
	return src
}

func process(n *html.Node, inPre bool) string {
	switch n.Type {
	case html.TextNode:
		if inPre {
			return n.Data
		}
		return trimEdges(n.Data)
	case html.ElementNode:
	default:
		return ""
	}

	switch Classify(n.Data) {
	case KindParagraph:
		return children(n, inPre) + "\n\n"
	case KindSuppressed:
		return ""
	case KindImage:
		return image(n)
	case KindDivision:
		return strings.TrimSpace(children(n, inPre)) + "\n\n"
	case KindListItem:
		return strings.TrimSpace(children(n, inPre)) + "\n"
	case KindOrderedList:
		return enumerate(children(n, inPre), func(i int) string {
			return strconv.Itoa(i) + ")"
		})
	case KindUnorderedList:
		return enumerate(children(n, inPre), func(int) string {
			return "--"
		})
	case KindLineBreak:
		// x/net/html treats br as void, so the children are only there
		// when another parser produced the tree.
		return "\n" + children(n, inPre)
	case KindPreformatted:
		return children(n, true)
	default:
		return children(n, inPre)
	}
}

func children(n *html.Node, inPre bool) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(process(c, inPre))
	}
	return b.String()
}

// enumerate prefixes every non-blank line of content with marker(i), where
// i counts the lines emitted so far starting at 1.
func enumerate(content string, marker func(int) string) string {
	var b strings.Builder
	b.WriteString("\n")
	i := 0
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		i++
		b.WriteString(marker(i))
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func image(n *html.Node) string {
	src, ok := attr(n, "src")
	if !ok {
		return ""
	}
	return `<img src="` + ImageName(src) + `" />`
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// trimEdges trims surrounding whitespace but keeps a single space on each
// side that originally started or ended with one.
func trimEdges(s string) string {
	if s == "" {
		return ""
	}
	trimmed := strings.TrimSpace(s)
	if s[0] == ' ' {
		trimmed = " " + trimmed
	}
	if s[len(s)-1] == ' ' {
		trimmed += " "
	}
	return trimmed
}
