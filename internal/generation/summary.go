package generation

import (
	"regexp"
	"strings"
)

// sentenceBreak matches a run of sentence-terminal punctuation.
var sentenceBreak = regexp.MustCompile(`[.!?]+`)

// Summarize keeps the leading fifth of the text's sentences, rounded up and
// never fewer than one, joined by ". " with a closing period.
// Blank input returns ErrEmptyInput.
func Summarize(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}

	sentences := Sentences(text)
	k := SummaryLength(len(sentences))
	if k > len(sentences) {
		k = len(sentences)
	}

	return strings.Join(sentences[:k], ". ") + ".", nil
}

// Sentences splits text on terminal punctuation and returns the trimmed,
// non-empty fragments in order.
func Sentences(text string) []string {
	var sentences []string
	for _, fragment := range sentenceBreak.Split(text, -1) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		sentences = append(sentences, fragment)
	}
	return sentences
}

// SummaryLength returns max(1, ceil(0.2*n)).
func SummaryLength(n int) int {
	k := (n + 4) / 5
	if k < 1 {
		return 1
	}
	return k
}
