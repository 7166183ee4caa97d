package service

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

type ITextService interface {
	Sanitize(input string) string
	RemoveTags(input string) string
	CollapseSpaces(input string) string
	ReduceToLength(input string, length int) string
	ClearAndReduce(input string, length int) string
}

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	spacePattern = regexp.MustCompile(`\s+`)
)

type TextService struct{}

func NewTextService() *TextService {
	return &TextService{}
}

// Sanitize trims the input and escapes HTML special characters.
func (ts *TextService) Sanitize(input string) string {
	return html.EscapeString(strings.TrimSpace(input))
}

// RemoveTags strips markup and decodes entities, so "<p>a &amp; b</p>" becomes "a & b".
func (ts *TextService) RemoveTags(input string) string {
	return html.UnescapeString(tagPattern.ReplaceAllString(input, " "))
}

func (ts *TextService) CollapseSpaces(input string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(input, " "))
}

// ReduceToLength cuts input to at most length runes on a word boundary.
// A single word longer than length is cut mid-word.
func (ts *TextService) ReduceToLength(input string, length int) string {
	if utf8.RuneCountInString(input) <= length {
		return input
	}
	var builder strings.Builder
	total := 0
	for i, word := range strings.Split(input, " ") {
		n := utf8.RuneCountInString(word)
		if i > 0 {
			n++
		}
		if total+n > length {
			break
		}
		if i > 0 {
			builder.WriteString(" ")
		}
		builder.WriteString(word)
		total += n
	}
	if total == 0 {
		return string([]rune(input)[:length])
	}
	return builder.String()
}

// ClearAndReduce turns HTML into plain text of at most length runes.
func (ts *TextService) ClearAndReduce(input string, length int) string {
	cleaned := ts.CollapseSpaces(ts.RemoveTags(input))
	return ts.ReduceToLength(cleaned, length)
}
