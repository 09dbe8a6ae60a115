package compare

import (
	"strings"

	"github.com/arbovm/levenshtein"
)

// CharErrorRate is the Levenshtein distance between the two texts normalized
// by the reference length. Identical texts score 0; an empty reference
// against a non-empty hypothesis scores 1.
func CharErrorRate(reference, hypothesis string) float64 {
	ref := strings.TrimSpace(reference)
	hyp := strings.TrimSpace(hypothesis)
	if ref == "" && hyp == "" {
		return 0
	}
	n := len([]rune(ref))
	if n == 0 {
		return 1
	}
	return float64(levenshtein.Distance(ref, hyp)) / float64(n)
}

// WordErrorRate is the word-level edit distance normalized by the reference
// word count.
func WordErrorRate(reference, hypothesis string) float64 {
	ref := strings.Fields(reference)
	hyp := strings.Fields(hypothesis)
	if len(ref) == 0 && len(hyp) == 0 {
		return 0
	}
	if len(ref) == 0 {
		return 1
	}
	return float64(wordDistance(ref, hyp)) / float64(len(ref))
}

// wordDistance is the edit distance over word tokens.
func wordDistance(ref, hyp []string) int {
	prev := make([]int, len(hyp)+1)
	curr := make([]int, len(hyp)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ref); i++ {
		curr[0] = i
		for j := 1; j <= len(hyp); j++ {
			cost := 1
			if ref[i-1] == hyp[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(hyp)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
