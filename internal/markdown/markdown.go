// Package markdown converts Snyk vulnerability descriptions to HTML.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var converter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// ToHTML renders markdown source as HTML. Raw HTML in the source is omitted.
func ToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := converter.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SplitSection removes the level-two section titled heading from src and
// returns its body and the remaining document, both trimmed. The match is
// case-insensitive. When no such section exists, body is empty and rest is src.
func SplitSection(src, heading string) (body, rest string) {
	lines := strings.Split(src, "\n")

	start := -1
	for i, line := range lines {
		if title, ok := headingTitle(line); ok && strings.EqualFold(title, heading) {
			start = i
			break
		}
	}
	if start == -1 {
		return "", strings.TrimSpace(src)
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if _, ok := headingTitle(lines[i]); ok {
			end = i
			break
		}
	}

	body = strings.Join(lines[start+1:end], "\n")
	remaining := append(append([]string{}, lines[:start]...), lines[end:]...)
	return strings.TrimSpace(body), strings.TrimSpace(strings.Join(remaining, "\n"))
}

// headingTitle reports the title of a level one or two ATX heading
func headingTitle(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range []string{"## ", "# "} {
		if strings.HasPrefix(trimmed, prefix) {
			return strings.TrimSpace(strings.TrimRight(trimmed[len(prefix):], "#")), true
		}
	}
	return "", false
}

// StripHeading removes the first level one or two heading titled heading,
// keeping the section body in place.
func StripHeading(src, heading string) string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		if title, ok := headingTitle(line); ok && strings.EqualFold(title, heading) {
			lines = append(lines[:i], lines[i+1:]...)
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
