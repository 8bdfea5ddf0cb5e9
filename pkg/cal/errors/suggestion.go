package errors

import (
	"fmt"
	"sort"
)

// Suggest proposes the closest known name for an unknown identifier using
// Levenshtein distance. It returns "" when nothing is within three edits.
func Suggest(unknown string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	// Sorted for a deterministic pick among equal distances.
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	minDistance := 1000
	var bestMatch string

	for _, name := range sorted {
		dist := levenshteinDistance(unknown, name)
		if dist < minDistance {
			minDistance = dist
			bestMatch = name
		}
	}

	if minDistance > 0 && minDistance <= 3 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}
	return ""
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
