// Package textutils provides text canonicalization and extraction utilities
// shared by the normalization and categorization pipeline.
package textutils

import (
	"errors"
	"strings"
)

// descriptionSeparator delimits the metadata segments appended to statement
// descriptions, e.g. "UBER TRIP 123 - corp - 04.172/0001".
const descriptionSeparator = " - "

// CleanDescription returns the canonical form of a transaction description:
// at most the first two " - "-delimited segments, rejoined with the same
// separator. Trailing segments carry per-occurrence metadata (document
// numbers, tax IDs) that would otherwise fragment the categorization cache
// key across semantically identical transactions.
func CleanDescription(raw string) string {
	if raw == "" {
		return ""
	}
	parts := strings.Split(raw, descriptionSeparator)
	if len(parts) <= 2 {
		return raw
	}
	return strings.Join(parts[:2], descriptionSeparator)
}

// ErrNoJSON is returned by ExtractJSON when the text holds no JSON value.
var ErrNoJSON = errors.New("no JSON object found in model output")

// ErrTruncatedJSON is returned by ExtractJSON when a JSON value starts but
// never closes.
var ErrTruncatedJSON = errors.New("truncated JSON in model output")

// ExtractJSON returns the first balanced JSON object or array embedded in a
// block of free text. Language models routinely wrap their JSON answers in
// prose; this recovers the payload without attempting to parse the prose.
func ExtractJSON(text string) (string, error) {
	s := strings.TrimSpace(text)

	start := strings.IndexByte(s, '{')
	startArr := strings.IndexByte(s, '[')
	if start == -1 || (startArr != -1 && startArr < start) {
		start = startArr
	}
	if start == -1 {
		return "", ErrNoJSON
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if ch == '"' && !escaped {
			inString = !inString
		}
		if !inString {
			switch ch {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
				if depth == 0 {
					return s[start : i+1], nil
				}
			}
		}
		escaped = ch == '\\' && !escaped
	}
	return "", ErrTruncatedJSON
}
