package grading

import (
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// EditSimilarity returns a character-level similarity in [0,1] between the
// normalized forms of a and b: 1 minus the Levenshtein distance scaled by
// the longer length. Two empty strings are identical, so the result is 1.
func EditSimilarity(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)

	lenA := utf8.RuneCountInString(na)
	lenB := utf8.RuneCountInString(nb)
	longest := lenA
	if lenB > longest {
		longest = lenB
	}
	if longest == 0 {
		return 1
	}

	dist := levenshtein.Distance(na, nb, nil)
	return 1 - float64(dist)/float64(longest)
}

// Jaccard returns the token-set overlap in [0,1] between the normalized
// forms of a and b. Two empty inputs are identical (1); if only one side is
// empty the union guard yields 0.
func Jaccard(a, b string) float64 {
	ta := Tokens(a)
	tb := Tokens(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 1
	}

	setA := make(map[string]struct{}, len(ta))
	for _, tok := range ta {
		setA[tok] = struct{}{}
	}
	setB := make(map[string]struct{}, len(tb))
	for _, tok := range tb {
		setB[tok] = struct{}{}
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// CombinedScore blends edit similarity and Jaccard overlap 50/50 into a
// single score in [0,1]. Edit distance catches misspellings of a single
// phrase, Jaccard catches multi-word answers given out of order or with
// extra filler; neither alone is robust to both failure modes.
//
// Equal non-empty normalized forms short-circuit to exactly 1, bypassing
// the float blend.
func CombinedScore(user, correct string) float64 {
	nu := Normalize(user)
	nc := Normalize(correct)
	if nu == nc && nu != "" {
		return 1
	}

	score := 0.5*EditSimilarity(user, correct) + 0.5*Jaccard(user, correct)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
