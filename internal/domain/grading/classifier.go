package grading

import "strings"

// VerdictKind is the classifier's decision for one answer attempt.
type VerdictKind int

const (
	// AutoCorrect means the answer matched well enough to accept without
	// asking the user.
	AutoCorrect VerdictKind = iota

	// AutoIncorrect means the answer was far enough off to reject without
	// asking the user.
	AutoIncorrect

	// NeedsReview means the score landed in the ambiguous band (or a low
	// score was rescued by lexical overlap) and a human must confirm.
	NeedsReview
)

// String returns the verdict kind name.
func (k VerdictKind) String() string {
	switch k {
	case AutoCorrect:
		return "auto_correct"
	case AutoIncorrect:
		return "auto_incorrect"
	case NeedsReview:
		return "needs_review"
	default:
		return "unknown"
	}
}

// Verdict is the outcome of grading one answer attempt against a card.
// Produced fresh per attempt and never mutated.
type Verdict struct {
	Kind           VerdictKind `json:"kind"`
	Score          float64     `json:"score"`
	MatchedVariant string      `json:"matched_variant"`
}

// Classifier grades answers against reference answers using the configured
// thresholds. The zero value is not usable; construct with NewClassifier or
// NewDefaultClassifier.
type Classifier struct {
	params *Params
}

// NewDefaultClassifier creates a Classifier with the default thresholds.
func NewDefaultClassifier() *Classifier {
	return &Classifier{params: NewDefaultParams()}
}

// NewClassifier creates a Classifier with custom thresholds.
func NewClassifier(params *Params) *Classifier {
	return &Classifier{params: params}
}

// SplitVariants splits a stored answer into its accepted variants and trims
// surrounding whitespace. An answer without the delimiter yields a single
// variant; empty segments are kept so grading stays total.
func SplitVariants(answer string) []string {
	parts := strings.Split(answer, VariantDelimiter)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Evaluate grades a user's answer against a card's stored answer, splitting
// it into variants first. It is total: every input produces a verdict.
func (c *Classifier) Evaluate(userAnswer, correctAnswer string) Verdict {
	return c.EvaluateVariants(userAnswer, SplitVariants(correctAnswer))
}

// EvaluateVariants grades a user's answer against already-split accepted
// variants. Each variant is scored independently and the best one wins;
// thresholds then adapt to the winning variant's token length.
func (c *Classifier) EvaluateVariants(userAnswer string, variants []string) Verdict {
	if len(variants) == 0 {
		variants = []string{""}
	}

	best := 0.0
	bestVariant := variants[0]
	for i, variant := range variants {
		score := CombinedScore(userAnswer, variant)
		if i == 0 || score > best {
			best = score
			bestVariant = variant
		}
	}

	ctoks := Tokens(bestVariant)
	utoks := Tokens(userAnswer)

	high := c.params.HighShort
	if len(ctoks) > c.params.ShortAnswerTokens {
		high = c.params.HighLong
	}
	low := c.params.LowDefault
	if len(ctoks) >= c.params.LongAnswerTokens {
		low = c.params.LowLong
	}

	verdict := func(kind VerdictKind) Verdict {
		return Verdict{Kind: kind, Score: best, MatchedVariant: bestVariant}
	}

	if best >= high {
		return verdict(AutoCorrect)
	}

	if best <= low {
		if !c.subsetPartial(utoks, ctoks) &&
			!c.overlapPartial(utoks, ctoks) &&
			!c.substringPartial(utoks, ctoks) {
			return verdict(AutoIncorrect)
		}

		overlap := sharedTokens(utoks, ctoks)
		coverage := 0.0
		if len(ctoks) > 0 {
			coverage = float64(overlap) / float64(len(ctoks))
		}
		if len(ctoks) >= c.params.LongAnswerTokens &&
			(overlap < c.params.MinOverlapTokens || coverage < c.params.MinCoverage) {
			return verdict(AutoIncorrect)
		}
		return verdict(NeedsReview)
	}

	// The middle band is inherently ambiguous; always defer to a human.
	return verdict(NeedsReview)
}

// subsetPartial reports whether the user gave a true subset of a multi-token
// reference answer: every user token appears among the reference tokens.
func (c *Classifier) subsetPartial(utoks, ctoks []string) bool {
	if len(ctoks) < 2 || len(utoks) == 0 {
		return false
	}
	cset := tokenSet(ctoks)
	for _, tok := range utoks {
		if _, ok := cset[tok]; !ok {
			return false
		}
	}
	return true
}

// overlapPartial reports whether any significant user token appears verbatim
// among the reference tokens.
func (c *Classifier) overlapPartial(utoks, ctoks []string) bool {
	cset := tokenSet(ctoks)
	for _, tok := range utoks {
		if len(tok) < c.params.SignificantTokenLen {
			continue
		}
		if _, ok := cset[tok]; ok {
			return true
		}
	}
	return false
}

// substringPartial reports whether any significant user token is a substring
// of, or contains, a significant reference token. Catches compound words and
// partially recalled terms.
func (c *Classifier) substringPartial(utoks, ctoks []string) bool {
	for _, ut := range utoks {
		if len(ut) < c.params.SignificantTokenLen {
			continue
		}
		for _, ct := range ctoks {
			if len(ct) < c.params.SignificantTokenLen {
				continue
			}
			if strings.Contains(ut, ct) || strings.Contains(ct, ut) {
				return true
			}
		}
	}
	return false
}

func sharedTokens(utoks, ctoks []string) int {
	cset := tokenSet(ctoks)
	shared := 0
	seen := make(map[string]struct{}, len(utoks))
	for _, tok := range utoks {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		if _, ok := cset[tok]; ok {
			shared++
		}
	}
	return shared
}

func tokenSet(toks []string) map[string]struct{} {
	set := make(map[string]struct{}, len(toks))
	for _, tok := range toks {
		set[tok] = struct{}{}
	}
	return set
}
