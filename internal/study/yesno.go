package study

import "strings"

// Keyword lists for classifying short confirmation utterances. Single words
// match whole tokens ("incorrect" must not match "correct"); multi-word
// phrases match as substrings so fillers around them still classify.
var (
	yesPhrases = []string{
		"yes", "yeah", "yep", "yup", "sure", "correct", "right",
		"count it", "mark it", "that is correct", "affirmative",
		"ok", "okay", "aye",
	}
	noPhrases = []string{
		"no", "nope", "nah", "incorrect", "wrong", "don't", "do not",
		"not correct", "that is wrong", "negative",
	}
)

// ClassifyYesNo maps a raw transcript to a Decision using fixed keyword
// lists. No-phrases are checked first so negations ("not correct") win over
// the affirmative words they contain; anything matching neither list is
// DecisionNone.
func ClassifyYesNo(text string) Decision {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return DecisionNone
	}
	tokens := strings.Fields(s)
	if matchesAny(s, tokens, noPhrases) {
		return DecisionNo
	}
	if matchesAny(s, tokens, yesPhrases) {
		return DecisionYes
	}
	return DecisionNone
}

func matchesAny(s string, tokens []string, phrases []string) bool {
	for _, p := range phrases {
		if strings.ContainsRune(p, ' ') {
			if strings.Contains(s, p) {
				return true
			}
			continue
		}
		for _, tok := range tokens {
			if strings.Trim(tok, ".,!?'") == p {
				return true
			}
		}
	}
	return false
}
