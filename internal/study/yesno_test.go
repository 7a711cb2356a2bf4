package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyYesNo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want Decision
	}{
		{name: "plain yes", text: "yes", want: DecisionYes},
		{name: "yeah with filler", text: "Yeah, totally", want: DecisionYes},
		{name: "correct with punctuation", text: "correct!", want: DecisionYes},
		{name: "count it phrase", text: "please count it", want: DecisionYes},
		{name: "uppercase okay", text: "OKAY", want: DecisionYes},
		{name: "plain no", text: "no", want: DecisionNo},
		{name: "nope", text: "nope", want: DecisionNo},
		{name: "incorrect is not yes", text: "incorrect", want: DecisionNo},
		{name: "not correct wins over correct", text: "not correct", want: DecisionNo},
		{name: "do not count it", text: "do not count it", want: DecisionNo},
		{name: "wrong", text: "that was wrong", want: DecisionNo},
		{name: "unrelated speech", text: "banana sandwich", want: DecisionNone},
		{name: "empty", text: "", want: DecisionNone},
		{name: "whitespace only", text: "   ", want: DecisionNone},
		{name: "yes embedded in word ignored", text: "eyesight", want: DecisionNone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ClassifyYesNo(tt.text))
		})
	}
}
