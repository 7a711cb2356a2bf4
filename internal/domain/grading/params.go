package grading

// VariantDelimiter separates multiple accepted phrasings inside a card's
// stored answer, e.g. "Paris|City of Light".
const VariantDelimiter = "|"

// Params defines all configurable thresholds for the answer classifier.
type Params struct {
	// HighShort is the auto-correct threshold for short reference answers.
	// Short answers demand a tighter match; there is less room for partial
	// credit in one or two tokens.
	HighShort float64

	// HighLong is the auto-correct threshold for longer reference answers.
	HighLong float64

	// LowDefault is the auto-incorrect threshold for short reference
	// answers; scores at or below it are rejected unless an overlap
	// heuristic rescues them.
	LowDefault float64

	// LowLong is the auto-incorrect threshold for long reference answers,
	// graded more leniently because token noise accumulates.
	LowLong float64

	// ShortAnswerTokens is the maximum reference token count still graded
	// with the tighter HighShort threshold.
	ShortAnswerTokens int

	// LongAnswerTokens is the minimum reference token count that switches
	// to the LowLong threshold and the stricter overlap gate.
	LongAnswerTokens int

	// SignificantTokenLen is the minimum token length considered meaningful
	// for the shared-word and substring rescue heuristics.
	SignificantTokenLen int

	// MinOverlapTokens and MinCoverage gate rescued low scores on long
	// answers: weaker overlap than this is not trusted.
	MinOverlapTokens int
	MinCoverage      float64
}

// NewDefaultParams returns the classifier thresholds the product ships with.
func NewDefaultParams() *Params {
	return &Params{
		HighShort:           0.92,
		HighLong:            0.88,
		LowDefault:          0.55,
		LowLong:             0.50,
		ShortAnswerTokens:   3,
		LongAnswerTokens:    4,
		SignificantTokenLen: 4,
		MinOverlapTokens:    2,
		MinCoverage:         0.25,
	}
}
