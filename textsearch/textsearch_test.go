package textsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBoundariesSplitsOnNonAlphabetic(t *testing.T) {
	boundaries := FindBoundaries("hello, world!")
	var texts []string
	for _, b := range boundaries {
		texts = append(texts, b.Text)
	}
	assert.Equal(t, []string{", ", "!"}, texts)
}

func TestFindBoundariesHandlesLeadingBoundary(t *testing.T) {
	boundaries := FindBoundaries("-hello")
	assert.Len(t, boundaries, 1)
	assert.Equal(t, "-", boundaries[0].Text)
}

func TestClassifyBoundariesLastIsAlwaysHard(t *testing.T) {
	boundaries := FindBoundaries("a-b c")
	strengths := ClassifyBoundaries(boundaries)
	assert.Equal(t, Hard, strengths[len(strengths)-1])
}

func TestClassifyBoundariesWeakPunctuation(t *testing.T) {
	boundaries := FindBoundaries("don't stop")
	strengths := ClassifyBoundaries(boundaries)
	assert.Equal(t, Weak, strengths[0])
}

func TestClassifyBoundariesMultiRuneIsHard(t *testing.T) {
	boundaries := FindBoundaries("a   b c")
	strengths := ClassifyBoundaries(boundaries)
	assert.Equal(t, Hard, strengths[0])
}

func TestFindNgramsUnigrams(t *testing.T) {
	text := "the quick fox"
	boundaries := FindBoundaries(text)
	ngrams := FindNgrams(text, boundaries, 1, 0)
	var texts []string
	for _, n := range ngrams {
		texts = append(texts, n.Text)
	}
	assert.Equal(t, []string{"the", "quick", "fox"}, texts)
}

func TestFindNgramsBigrams(t *testing.T) {
	text := "the quick fox"
	boundaries := FindBoundaries(text)
	ngrams := FindNgrams(text, boundaries, 2, 0)
	var texts []string
	for _, n := range ngrams {
		texts = append(texts, n.Text)
	}
	assert.Equal(t, []string{"the quick", "quick fox"}, texts)
}

func scored(text string, score float64) Match {
	return Match{Text: text, Variants: []RankedVariant{{Text: text, Score: score}}}
}

func TestConsolidatePicksNonOverlappingMaxSum(t *testing.T) {
	a := scored("ab", 1.0)
	a.Offset = Offset{Begin: 0, End: 2}
	b := scored("bc", 1.0)
	b.Offset = Offset{Begin: 1, End: 3}
	c := scored("cd", 1.0)
	c.Offset = Offset{Begin: 2, End: 4}

	// a+c (sum 2) beats b alone (sum 1): a and c don't overlap, b overlaps both.
	selected := Consolidate([]Match{a, b, c})
	var texts []string
	for _, m := range selected {
		texts = append(texts, m.Text)
	}
	assert.Equal(t, []string{"ab", "cd"}, texts)
}

func TestConsolidateDropsEmptyAndTransparentOnly(t *testing.T) {
	empty := Match{Text: "x", Offset: Offset{Begin: 0, End: 1}}
	onlyTransparent := Match{
		Text:     "y",
		Offset:   Offset{Begin: 2, End: 3},
		Variants: []RankedVariant{{Text: "y2", Score: 1, Transparent: true}},
	}
	assert.True(t, empty.IsEmpty())
	assert.True(t, onlyTransparent.onlyTransparent())
}

func TestFindAllMatchesAppliesCutoffThreshold(t *testing.T) {
	text := "house"
	params := Params{MaxNgram: 1, CutoffThreshold: 0.5, ConsolidateMatches: true}
	matches := FindAllMatches(text, params, func(s string) []RankedVariant {
		return []RankedVariant{{Text: "house", Score: 0.2}}
	})
	assert.Empty(t, matches)
}

func TestFindAllMatchesKeepsAboveCutoff(t *testing.T) {
	text := "house"
	params := Params{MaxNgram: 1, CutoffThreshold: 0.1, ConsolidateMatches: true}
	matches := FindAllMatches(text, params, func(s string) []RankedVariant {
		return []RankedVariant{{Text: "house", Score: 0.9}}
	})
	assert.Len(t, matches, 1)
	assert.Equal(t, "house", matches[0].Text)
}

func TestFindAllMatchesSelectsHighestScoringNonTransparentVariant(t *testing.T) {
	text := "house"
	params := Params{MaxNgram: 1, CutoffThreshold: 0.1, ConsolidateMatches: true}
	matches := FindAllMatches(text, params, func(s string) []RankedVariant {
		return []RankedVariant{
			{Text: "huose", Score: 0.95, Transparent: true},
			{Text: "house", Score: 0.9},
			{Text: "horse", Score: 0.5},
		}
	})
	require.Len(t, matches, 1)
	require.NotNil(t, matches[0].Selected)
	assert.Equal(t, "house", matches[0].Variants[*matches[0].Selected].Text)
}

func TestSelectVariantReturnsNilWhenOnlyTransparent(t *testing.T) {
	m := Match{Variants: []RankedVariant{{Text: "huose", Score: 0.9, Transparent: true}}}
	assert.Nil(t, m.selectVariant())
}
