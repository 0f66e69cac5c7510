package flatten

import "strings"

// Kind is the formatting rule an element is flattened with.
type Kind int

const (
	KindOther Kind = iota
	KindParagraph
	KindSuppressed
	KindImage
	KindDivision
	KindListItem
	KindOrderedList
	KindUnorderedList
	KindLineBreak
	KindPreformatted
)

var kindNames = map[Kind]string{
	KindOther:         "other",
	KindParagraph:     "paragraph",
	KindSuppressed:    "suppressed",
	KindImage:         "image",
	KindDivision:      "division",
	KindListItem:      "list-item",
	KindOrderedList:   "ordered-list",
	KindUnorderedList: "unordered-list",
	KindLineBreak:     "line-break",
	KindPreformatted:  "preformatted",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "other"
}

// Classify maps a tag name to its Kind. Unknown tags are KindOther.
func Classify(tag string) Kind {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "p", "h1", "h2", "h3", "h4", "h5", "h6":
		return KindParagraph
	case "head", "script", "style":
		return KindSuppressed
	case "img":
		return KindImage
	case "div":
		return KindDivision
	case "li":
		return KindListItem
	case "ol":
		return KindOrderedList
	case "ul":
		return KindUnorderedList
	case "br":
		return KindLineBreak
	case "pre":
		return KindPreformatted
	default:
		return KindOther
	}
}
