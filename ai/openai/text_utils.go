package openai

import (
	"regexp"
	"strings"
)

// reasoning models such as deepseek-r1 prefix answers with a <think> block
var thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)

// scrubString removes control characters and trims whitespace from text.
func scrubString(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// stripReasoning removes reasoning blocks and trims the remaining answer.
func stripReasoning(s string) string {
	s = thinkBlock.ReplaceAllString(s, "")
	// an unterminated block means the answer was cut off mid-thought
	if i := strings.Index(s, "<think>"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
