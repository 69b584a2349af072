package asm

import (
	"bufio"
	"io"
	"strings"
)

// Line is one trimmed, comment-free source line.
type Line struct {
	No   int    // 1-based line number in the original source.
	Text string // Trimmed text, comments stripped.
}

// Preprocess reads the source, strips '#' comments and surrounding
// whitespace, and drops empty lines. Directive lines (leading '.') are kept;
// the instruction passes skip them.
func Preprocess(input io.Reader) (lines []Line, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if n := strings.IndexByte(text, '#'); n >= 0 {
			text = text[:n]
		}
		text = strings.TrimSpace(text)
		if len(text) == 0 {
			continue
		}

		lines = append(lines, Line{No: lineno, Text: text})
	}
	err = scanner.Err()

	return
}

// isDirective returns true for assembler directive lines.
func isDirective(text string) bool {
	return strings.HasPrefix(text, ".")
}

// splitLabel splits an optional leading 'label:' prefix from a line.
func splitLabel(text string) (label, rest string, found bool) {
	n := strings.IndexByte(text, ':')
	if n < 0 {
		rest = text
		return
	}

	label = strings.TrimSpace(text[:n])
	rest = strings.TrimSpace(text[n+1:])
	found = true
	return
}
