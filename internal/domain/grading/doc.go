// Package grading implements the answer-grading engine for study sessions.
//
// Grading happens in three layers:
//
//  1. Normalization: spoken or typed text is canonicalized (case folding,
//     diacritic stripping, punctuation removal, number-word mapping, naive
//     plural stemming, stop-word removal) so that superficial differences
//     never affect a grade.
//  2. Similarity: a bounded score in [0,1] blending character edit distance
//     (robust to misspellings of a single phrase) with token-set Jaccard
//     overlap (robust to reordered or padded multi-word answers).
//  3. Classification: the best score across a card's accepted answer
//     variants is mapped to a verdict using length-adaptive thresholds.
//     Only the extremes are auto-decided; the middle band, and low scores
//     rescued by lexical-overlap heuristics, defer to human review.
//
// Evaluate is total: it never fails and always returns exactly one verdict.
package grading
