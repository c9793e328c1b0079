package errors

import (
	"fmt"
	"strings"
)

// SuggestFieldName suggests the closest known field id for an unknown one.
// It uses a case-insensitive Levenshtein distance and only suggests matches
// fewer than 5 edits away. It returns "" when nothing is close enough.
func SuggestFieldName(unknown string, known []string) string {
	if len(known) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string

	for _, field := range known {
		dist := levenshteinDistance(strings.ToLower(unknown), strings.ToLower(field))
		if dist < minDistance {
			minDistance = dist
			bestMatch = field
		}
	}

	if minDistance < 5 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}
	return ""
}

// SuggestKind suggests a valid field kind for an unrecognized type tag.
func SuggestKind(unknown string, kinds []string) string {
	if s := SuggestFieldName(unknown, kinds); s != "" {
		return s
	}
	return fmt.Sprintf("Valid types: %s", strings.Join(kinds, ", "))
}

// levenshteinDistance computes the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len1][len2]
}
