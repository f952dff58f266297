package extractor

import "strings"

// splitLines splits source text into lines without the trailing empty element
// a final newline would otherwise produce.
func splitLines(source string) []string {
	lines := strings.Split(source, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" && strings.HasSuffix(source, "\n") {
		lines = lines[:n-1]
	}
	return lines
}

// sliceSpan returns the verbatim lines covered by [start, end] (1-based,
// inclusive).
func sliceSpan(lines []string, start, end int) []string {
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return nil
	}
	out := make([]string, end-start+1)
	copy(out, lines[start-1:end])
	return out
}

// dedent strips the minimum leading whitespace width shared by all non-blank
// lines. Blank lines are untouched; relative indentation between lines is
// preserved, and no non-whitespace character is ever removed.
func dedent(lines []string) []string {
	min := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		w := leadingWhitespace(l)
		if min < 0 || w < min {
			min = w
		}
	}
	if min <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			out[i] = l
			continue
		}
		out[i] = l[min:]
	}
	return out
}

// leadingWhitespace counts the leading space/tab characters of a line.
func leadingWhitespace(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}
