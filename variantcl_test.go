package variantcl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/variantcl/variantcl/alphabet"
	"github.com/variantcl/variantcl/search"
	"github.com/variantcl/variantcl/textsearch"
	"github.com/variantcl/variantcl/vocab"
)

func testAlphabet(t *testing.T) *alphabet.Alphabet {
	t.Helper()
	classes := [][]string{
		{"a"}, {"b"}, {"c"}, {"d"}, {"e"}, {"f"}, {"g"}, {"h"}, {"i"}, {"j"},
		{"k"}, {"l"}, {"m"}, {"n"}, {"o"}, {"p"}, {"q"}, {"r"}, {"s"}, {"t"},
		{"u"}, {"v"}, {"w"}, {"x"}, {"y"}, {"z"},
	}
	a, err := alphabet.New(classes)
	require.NoError(t, err)
	return a
}

func TestFindVariantsRanksHouseHighestForHuose(t *testing.T) {
	m := New(testAlphabet(t), nil)
	require.NoError(t, m.LoadLexicon(strings.NewReader("house\t10\nmouse\t5\nhorse\t1\n"), vocab.DefaultParams()))
	require.NoError(t, m.Build())

	params := search.DefaultParams()
	params.MaxAnagramDistance = search.AbsoluteThreshold(1)
	params.MaxEditDistance = search.AbsoluteThreshold(2)
	params.Weights = search.Weights{LD: 1, Freq: 1}

	candidates, err := m.FindVariants("huose", params)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	assert.Equal(t, "house", candidates[0].Text)
}

func TestFindAllMatchesLocatesVariantSpans(t *testing.T) {
	m := New(testAlphabet(t), nil)
	require.NoError(t, m.LoadLexicon(strings.NewReader("house\t10\n"), vocab.DefaultParams()))
	require.NoError(t, m.Build())

	searchParams := search.DefaultParams()
	searchParams.MaxAnagramDistance = search.AbsoluteThreshold(1)
	searchParams.MaxEditDistance = search.AbsoluteThreshold(2)
	searchParams.Weights = search.Weights{LD: 1}

	spanParams := textsearch.Params{MaxNgram: 1, CutoffThreshold: 0, ConsolidateMatches: true}

	matches, err := m.FindAllMatches("huose", searchParams, spanParams)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "huose", matches[0].Text)
}

func TestFindVariantsErrorsBeforeBuild(t *testing.T) {
	m := New(testAlphabet(t), nil)
	_, err := m.FindVariants("house", search.DefaultParams())
	assert.Error(t, err)
}

func TestFindVariantsIterativeStopsAfterThresholdIsReached(t *testing.T) {
	m := New(testAlphabet(t), nil)
	require.NoError(t, m.LoadLexicon(strings.NewReader("house\t10\nmouse\t5\nhorse\t1\n"), vocab.DefaultParams()))
	require.NoError(t, m.Build())

	params := search.DefaultParams()
	params.MaxAnagramDistance = search.AbsoluteThreshold(2)
	params.MaxEditDistance = search.AbsoluteThreshold(2)
	params.Weights = search.Weights{LD: 1, Freq: 1}
	params.StopCriterion = search.StopCriterion{Kind: search.Iterative, Threshold: 1}

	candidates, err := m.FindVariants("huose", params)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	assert.Equal(t, "house", candidates[0].Text)
}

func TestFindVariantsIterativeStopAtExactMatchStopsAsSoonAsFound(t *testing.T) {
	m := New(testAlphabet(t), nil)
	require.NoError(t, m.LoadLexicon(strings.NewReader("house\t10\nmouse\t5\nhorse\t1\n"), vocab.DefaultParams()))
	require.NoError(t, m.Build())

	params := search.DefaultParams()
	params.MaxAnagramDistance = search.AbsoluteThreshold(2)
	params.MaxEditDistance = search.AbsoluteThreshold(2)
	params.Weights = search.Weights{LD: 1, Freq: 1}
	params.StopCriterion = search.StopCriterion{Kind: search.IterativeStopAtExactMatch, Threshold: 100}

	candidates, err := m.FindVariants("house", params)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	assert.Equal(t, "house", candidates[0].Text)
}

func TestFindVariantsExactMatchBypassesNeighbourhoodSearch(t *testing.T) {
	m := New(testAlphabet(t), nil)
	require.NoError(t, m.LoadLexicon(strings.NewReader("house\t10\nmouse\t5\n"), vocab.DefaultParams()))
	require.NoError(t, m.Build())

	params := search.DefaultParams()
	params.StopCriterion = search.StopCriterion{Kind: search.StopAtExactMatch}
	params.Weights = search.Weights{LD: 1, Freq: 1}

	candidates, err := m.FindVariants("house", params)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "house", candidates[0].Text)
	assert.Equal(t, 1.0, candidates[0].Score)
}
