package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditSimilarity(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{
			name:     "both empty",
			a:        "",
			b:        "",
			expected: 1,
		},
		{
			name:     "identical after normalization",
			a:        "Paris!",
			b:        "paris",
			expected: 1,
		},
		{
			name:     "one empty",
			a:        "paris",
			b:        "",
			expected: 0,
		},
		{
			name:     "single substitution",
			a:        "care",
			b:        "core",
			expected: 0.75,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.expected, EditSimilarity(tc.a, tc.b), 1e-9)
		})
	}
}

func TestJaccard(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{
			name:     "both empty",
			a:        "",
			b:        "",
			expected: 1,
		},
		{
			name:     "one side empty",
			a:        "paris",
			b:        "",
			expected: 0,
		},
		{
			name:     "identical token sets out of order",
			a:        "light city",
			b:        "city light",
			expected: 1,
		},
		{
			name:     "half overlap",
			a:        "red green",
			b:        "red blue green yellow",
			expected: 0.5,
		},
		{
			name:     "stop words only on both sides",
			a:        "the a",
			b:        "an the",
			expected: 1,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.expected, Jaccard(tc.a, tc.b), 1e-9)
		})
	}
}

func TestCombinedScore(t *testing.T) {
	t.Parallel()

	t.Run("identity scores exactly one", func(t *testing.T) {
		t.Parallel()
		for _, x := range []string{"paris", "The Powerhouse of the Cell", "forty two", "Café"} {
			assert.Equal(t, 1.0, CombinedScore(x, x))
		}
	})

	t.Run("exact match short-circuits the blend", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 1.0, CombinedScore("City of Light", "city light"))
	})

	t.Run("disjoint answers score near zero", func(t *testing.T) {
		t.Parallel()
		assert.Less(t, CombinedScore("london", "paris"), 0.3)
	})

	t.Run("result is always within bounds", func(t *testing.T) {
		t.Parallel()
		pairs := [][2]string{
			{"", ""},
			{"", "paris"},
			{"a very long answer with many words", "short"},
			{"pariss", "paris"},
		}
		for _, p := range pairs {
			score := CombinedScore(p[0], p[1])
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	})
}
