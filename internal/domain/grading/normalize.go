package grading

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes text to NFD and drops combining marks, so that
// "Café" and "Cafe" normalize identically.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// numberWords maps spelled-out small numbers and decade words to digit
// strings. Applied token-wise, so "twenty one" becomes "21" only as two
// separate tokens ("20", "1").
var numberWords = map[string]string{
	"zero": "0", "one": "1", "two": "2", "three": "3", "four": "4",
	"five": "5", "six": "6", "seven": "7", "eight": "8", "nine": "9",
	"ten": "10", "eleven": "11", "twelve": "12", "thirteen": "13",
	"fourteen": "14", "fifteen": "15", "sixteen": "16", "seventeen": "17",
	"eighteen": "18", "nineteen": "19", "twenty": "20", "thirty": "30",
	"forty": "40", "fifty": "50", "sixty": "60", "seventy": "70",
	"eighty": "80", "ninety": "90",
}

// stopWords are tokens that carry no grading signal: articles, auxiliaries,
// common prepositions, and generic quiz-domain nouns that show up in
// questions and spill into spoken answers.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"do": {}, "does": {}, "did": {}, "have": {}, "has": {}, "had": {},
	"of": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {},
	"with": {}, "from": {}, "by": {}, "about": {},
	"capital": {}, "name": {}, "answer": {},
}

// Normalize canonicalizes text into a space-joined token string.
//
// The pipeline is order-sensitive: lowercase and strip diacritics, replace
// every non-letter/non-digit rune with a space, collapse whitespace, map
// number words to digits, stem naive plurals, and drop stop words.
// Normalize is deterministic, pure, and idempotent; empty input normalizes
// to the empty string.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	if stripped, _, err := transform.String(stripMarks, lowered); err == nil {
		lowered = stripped
	}

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	out := fields[:0]
	for _, tok := range fields {
		if digits, ok := numberWords[tok]; ok {
			tok = digits
		}
		tok = stemPlural(tok)
		// Stemming can uncover a number word ("ones" -> "one"); map again so
		// a second normalization pass has nothing left to do.
		if digits, ok := numberWords[tok]; ok {
			tok = digits
		}
		if _, skip := stopWords[tok]; skip {
			continue
		}
		out = append(out, tok)
	}

	return strings.Join(out, " ")
}

// Tokens normalizes text and splits the result into its token sequence.
// Empty input yields a nil slice.
func Tokens(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}

// stemPlural strips trailing "es"/"s" suffixes from a token until neither
// applies, so repeated normalization is a fixed point. Tokens not longer
// than the suffix are left untouched.
func stemPlural(tok string) string {
	for {
		switch {
		case len(tok) > 2 && strings.HasSuffix(tok, "es"):
			tok = tok[:len(tok)-2]
		case len(tok) > 1 && strings.HasSuffix(tok, "s"):
			tok = tok[:len(tok)-1]
		default:
			return tok
		}
	}
}
