// Package linejoin collapses hard-wrapped paragraphs into single lines and
// rejoins words split across lines with a hyphen.
package linejoin

import "strings"

// JoinFile joins every paragraph block of contents into one line. Blocks are
// runs of non-blank lines; they are written back separated by a blank line
// and blocks that hold no text are dropped.
func JoinFile(contents string) string {
	contents = strings.ReplaceAll(contents, "\r\n", "\n")

	var joined []string
	var block []string
	flush := func() {
		if line := MultiToSingle(strings.Join(block, "\n")); line != "" {
			joined = append(joined, line)
		}
		block = block[:0]
	}
	for _, line := range strings.Split(contents, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		block = append(block, line)
	}
	flush()
	return strings.Join(joined, "\n\n")
}

// MultiToSingle folds the lines of a single block into one line. A line
// ending in a hyphen continues directly into the next one, and so does the
// line that follows such a continuation.
func MultiToSingle(block string) string {
	var b strings.Builder
	merged := false
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		acc := b.String()
		switch {
		case acc == "":
		case strings.HasSuffix(acc, "-"):
			b.Reset()
			b.WriteString(strings.TrimSuffix(acc, "-"))
			merged = true
		case merged:
			// The line after a continuation is appended without a separator.
			merged = false
		default:
			b.WriteByte(' ')
		}
		b.WriteString(line)
	}
	return strings.TrimSpace(b.String())
}
