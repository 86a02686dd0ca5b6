package rope

import "unicode/utf8"

// Summary holds aggregated metrics for a span of text. Summaries are
// additive: the summary of a concatenation is the sum of the parts.
type Summary struct {
	// Bytes is the UTF-8 encoded length.
	Bytes int

	// Runes is the count of Unicode scalar values.
	Runes int

	// Lines is the count of newline characters (not lines).
	Lines int
}

// add combines two summaries.
func (s Summary) add(other Summary) Summary {
	return Summary{
		Bytes: s.Bytes + other.Bytes,
		Runes: s.Runes + other.Runes,
		Lines: s.Lines + other.Lines,
	}
}

// computeSummary calculates metrics for a string in one pass.
func computeSummary(s string) Summary {
	var sum Summary
	sum.Bytes = len(s)
	for _, r := range s {
		sum.Runes++
		if r == '\n' {
			sum.Lines++
		}
	}
	return sum
}

// charToByteInString returns the byte index of the nth rune in s.
// n past the end of s returns len(s).
func charToByteInString(s string, n int) int {
	if n <= 0 {
		return 0
	}
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}

// countNewlines returns the number of '\n' bytes in s.
func countNewlines(s string) int {
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			count++
		}
	}
	return count
}

// findNthNewline returns the byte index of the nth newline (1-indexed)
// in s, or -1 when s contains fewer than n newlines.
func findNthNewline(s string, n int) int {
	if n <= 0 {
		return -1
	}
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			count++
			if count == n {
				return i
			}
		}
	}
	return -1
}

// runeCountPrefix returns the rune count of s[:byteOff]. byteOff must be
// a rune boundary.
func runeCountPrefix(s string, byteOff int) int {
	if byteOff >= len(s) {
		return utf8.RuneCountInString(s)
	}
	return utf8.RuneCountInString(s[:byteOff])
}
