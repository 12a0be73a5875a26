package protobuf

import (
	"strings"
	"unicode/utf8"
)

const (
	indent          = "  "
	commentWrapSize = 80
)

// protoWriter accumulates proto source. Output is only ever appended.
type protoWriter struct {
	builder strings.Builder
}

func (w *protoWriter) write(parts ...string) {
	for _, p := range parts {
		w.builder.WriteString(p)
	}
}

func (w *protoWriter) line(parts ...string) {
	w.write(parts...)
	w.builder.WriteString("\n")
}

// comment writes description as a block of line comments, each line starting
// with prefix. Nothing is written for an empty description.
func (w *protoWriter) comment(prefix, description string) {
	w.write(formatComment(prefix, description))
}

func (w *protoWriter) String() string {
	return w.builder.String()
}

// formatComment word-wraps text so that no line exceeds commentWrapSize
// characters, not counting prefix. Explicit line breaks in text are kept and a
// single word longer than the limit is left on its own line.
func formatComment(prefix, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			b.WriteString(strings.TrimRight(prefix, " "))
			b.WriteString("\n")
			continue
		}

		lineLen := 0
		b.WriteString(prefix)
		for i, word := range words {
			if i > 0 {
				if lineLen+1+utf8.RuneCountInString(word) > commentWrapSize {
					b.WriteString("\n")
					b.WriteString(prefix)
					lineLen = 0
				} else {
					b.WriteString(" ")
					lineLen++
				}
			}
			b.WriteString(word)
			lineLen += utf8.RuneCountInString(word)
		}
		b.WriteString("\n")
	}

	return b.String()
}
