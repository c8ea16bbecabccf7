// Package textcompress flattens multi-line text into a single line.
package textcompress

import "strings"

// Compress splits text on CRLF, CR or LF, trims spaces and tabs from both
// ends of each line, drops lines left empty and joins the rest with a single
// space. Whitespace inside a line is preserved.
func Compress(text string) string {
	lines := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' })
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Trim(line, " \t"); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, " ")
}
