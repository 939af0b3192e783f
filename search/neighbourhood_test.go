package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/variantcl/variantcl/alphabet"
	"github.com/variantcl/variantcl/anahash"
	"github.com/variantcl/variantcl/anaindex"
	"github.com/variantcl/variantcl/vocab"
)

func testAlphabet(t *testing.T) *alphabet.Alphabet {
	t.Helper()
	classes := [][]string{
		{"a", "A"}, {"b", "B"}, {"c", "C"}, {"d", "D"}, {"e", "E"},
		{"f", "F"}, {"g", "G"}, {"h", "H"}, {"i", "I"}, {"j", "J"},
		{"k", "K"}, {"l", "L"}, {"m", "M"}, {"n", "N"}, {"o", "O"},
		{"p", "P"}, {"q", "Q"}, {"r", "R"}, {"s", "S"}, {"t", "T"},
		{"u", "U"}, {"v", "V"}, {"w", "W"}, {"x", "X"}, {"y", "Y"},
		{"z", "Z"}, {".", ",", "/"},
	}
	a, err := alphabet.New(classes)
	require.NoError(t, err)
	return a
}

func buildIndex(t *testing.T, words ...string) (*alphabet.Alphabet, *vocab.Store, *anaindex.Index) {
	t.Helper()
	a := testAlphabet(t)
	store := vocab.NewStore(a)
	for _, w := range words {
		store.Add(w, nil, vocab.DefaultParams())
	}
	idx, err := anaindex.Build(27, a, store)
	require.NoError(t, err)
	return a, store, idx
}

func TestNeighbourhoodIncludesExactMatch(t *testing.T) {
	a, _, idx := buildIndex(t, "house", "mouse", "horse")
	q := anahash.Of("house", a)
	neighbours := Neighbourhood(idx, q, 1, nil)
	found := false
	for _, h := range neighbours {
		if h.Equal(q) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestNeighbourhoodFindsInsertionNeighbour(t *testing.T) {
	a, _, idx := buildIndex(t, "house", "houses")
	q := anahash.Of("house", a)
	neighbours := Neighbourhood(idx, q, 1, nil)
	target := anahash.Of("houses", a)
	found := false
	for _, h := range neighbours {
		if h.Equal(target) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestNeighbourhoodFindsDeletionNeighbour(t *testing.T) {
	a, _, idx := buildIndex(t, "house", "hose")
	q := anahash.Of("house", a)
	neighbours := Neighbourhood(idx, q, 1, nil)
	target := anahash.Of("hose", a)
	found := false
	for _, h := range neighbours {
		if h.Equal(target) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestNeighbourhoodRespectsCache(t *testing.T) {
	a, _, idx := buildIndex(t, "house", "hose")
	q := anahash.Of("house", a)
	cache := NewCache(100)
	first := Neighbourhood(idx, q, 1, cache)
	second := Neighbourhood(idx, q, 1, cache)
	assert.Equal(t, len(first), len(second))
}
