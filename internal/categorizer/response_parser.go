package categorizer

import (
	"regexp"
	"strings"

	"rmoreira/extrato-csv/internal/models"
)

// Model answers come back in loosely followed formats. The parser accepts any
// of these separators between description and category, tried in order.
var responseSeparators = []string{" - ", ":", " -> ", " | ", "\t"}

var (
	leadingNumbering    = regexp.MustCompile(`^\d+\.\s*`)
	categoryPunctuation = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
)

const similarityThreshold = 0.8

// ParseCategorizationResponse extracts (description, category) assignments
// from a raw model response, matched back against the block's canonical
// descriptions. Matching is tiered: exact, then case-insensitive, then fuzzy
// (substring either way, or character-set similarity above the threshold)
// against the candidates not yet matched. Lines whose description cannot be
// matched, or whose category is not one of the known labels, produce no
// assignment; the caller falls back to regex for those descriptions.
func ParseCategorizationResponse(response string, candidates []string) []models.Assignment {
	if response == "" || len(candidates) == 0 {
		return nil
	}

	lowerToCandidate := make(map[string]string, len(candidates))
	for _, candidate := range candidates {
		lowerToCandidate[strings.ToLower(candidate)] = candidate
	}
	assigned := make(map[string]bool, len(candidates))

	var assignments []models.Assignment
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = leadingNumbering.ReplaceAllString(line, "")

		for _, sep := range responseSeparators {
			if !strings.Contains(line, sep) {
				continue
			}
			parts := strings.Split(line, sep)
			if len(parts) < 2 {
				continue
			}
			descPart := strings.TrimSpace(parts[0])
			category := canonicalCategory(parts[len(parts)-1])
			if category == "" {
				continue
			}

			candidate, ok := matchCandidate(descPart, candidates, lowerToCandidate, assigned)
			if !ok {
				continue
			}
			assigned[candidate] = true
			assignments = append(assignments, models.Assignment{
				Description: candidate,
				Category:    category,
			})
			break
		}
	}
	return assignments
}

// matchCandidate resolves a description fragment from the response onto one of
// the block's canonical descriptions.
func matchCandidate(descPart string, candidates []string, lowerToCandidate map[string]string, assigned map[string]bool) (string, bool) {
	for _, candidate := range candidates {
		if candidate == descPart && !assigned[candidate] {
			return candidate, true
		}
	}

	if candidate, ok := lowerToCandidate[strings.ToLower(descPart)]; ok && !assigned[candidate] {
		return candidate, true
	}

	descLower := strings.ToLower(descPart)
	for _, candidate := range candidates {
		if assigned[candidate] {
			continue
		}
		candidateLower := strings.ToLower(candidate)
		if strings.Contains(candidateLower, descLower) ||
			strings.Contains(descLower, candidateLower) ||
			charSetSimilarity(descLower, candidateLower) > similarityThreshold {
			return candidate, true
		}
	}
	return "", false
}

// canonicalCategory strips punctuation from a category fragment and resolves
// it, case-insensitively, onto the closed label set. Unknown labels resolve
// to the empty string.
func canonicalCategory(raw string) string {
	cleaned := strings.TrimSpace(categoryPunctuation.ReplaceAllString(raw, ""))
	for _, label := range models.ExpenseCategories {
		if strings.EqualFold(cleaned, label) {
			return label
		}
	}
	return ""
}

// charSetSimilarity is the Jaccard index of the rune sets of two strings. It
// is a deliberately crude measure: cheap, order-insensitive and good enough to
// pair a lightly reworded description with its original.
func charSetSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	setA := make(map[rune]bool)
	for _, r := range a {
		setA[r] = true
	}
	setB := make(map[rune]bool)
	for _, r := range b {
		setB[r] = true
	}

	intersection := 0
	for r := range setA {
		if setB[r] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
