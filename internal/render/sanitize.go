package render

import (
	"strings"

	"github.com/odysseus0/ankiconv/internal/flatten"
	"golang.org/x/net/html"
)

var blockedTags = map[string]struct{}{
	"base":     {},
	"embed":    {},
	"form":     {},
	"head":     {},
	"iframe":   {},
	"input":    {},
	"link":     {},
	"meta":     {},
	"noscript": {},
	"object":   {},
	"script":   {},
	"style":    {},
	"textarea": {},
}

// SanitizeBody returns the cleaned children of the document's body rendered
// back to HTML, with image sources reduced to their file name.
func SanitizeBody(doc *html.Node) string {
	body := flatten.FindBody(doc)
	if body == nil {
		return ""
	}

	var b strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		sanitized := sanitizeNode(c)
		if sanitized == nil {
			continue
		}
		_ = html.Render(&b, sanitized)
	}
	return strings.TrimSpace(b.String())
}

func sanitizeNode(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	switch n.Type {
	case html.TextNode:
		return &html.Node{Type: html.TextNode, Data: n.Data}
	case html.ElementNode:
		tag := strings.ToLower(strings.TrimSpace(n.Data))
		if _, blocked := blockedTags[tag]; blocked {
			return nil
		}
		clone := &html.Node{Type: html.ElementNode, Data: n.Data, DataAtom: n.DataAtom, Namespace: n.Namespace}
		for _, a := range n.Attr {
			k := strings.ToLower(strings.TrimSpace(a.Key))
			if k == "" || strings.HasPrefix(k, "on") || k == "style" || k == "srcdoc" {
				continue
			}
			if isURLAttr(k) && !isSafeURL(a.Val, tag, k) {
				continue
			}
			if tag == "img" && k == "src" && !strings.HasPrefix(strings.ToLower(strings.TrimSpace(a.Val)), "data:") {
				a.Val = flatten.ImageName(a.Val)
			}
			clone.Attr = append(clone.Attr, a)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := sanitizeNode(c); child != nil {
				clone.AppendChild(child)
			}
		}
		return clone
	default:
		return nil
	}
}

func isURLAttr(k string) bool {
	switch k {
	case "href", "src", "poster", "cite", "action", "formaction", "data":
		return true
	default:
		return false
	}
}

func isSafeURL(v, tag, attr string) bool {
	u := strings.TrimSpace(strings.ToLower(v))
	if u == "" {
		return true
	}
	if strings.HasPrefix(u, "javascript:") || strings.HasPrefix(u, "vbscript:") {
		return false
	}
	if strings.HasPrefix(u, "data:") {
		return tag == "img" && attr == "src" && strings.HasPrefix(u, "data:image/")
	}
	return true
}
