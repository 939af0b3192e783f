// Package variantcl ties the alphabet, vocabulary, anagram index, search
// and text-search layers together into one model: load an alphabet and one
// or more lexicons, optionally variants and confusables, build the index
// once, then repeatedly query for variants of a word or free text.
package variantcl

import (
	"fmt"
	"io"

	"github.com/coregx/ahocorasick"
	"go.uber.org/zap"

	"github.com/variantcl/variantcl/alphabet"
	"github.com/variantcl/variantcl/anahash"
	"github.com/variantcl/variantcl/anaindex"
	"github.com/variantcl/variantcl/confusable"
	"github.com/variantcl/variantcl/search"
	"github.com/variantcl/variantcl/textsearch"
	"github.com/variantcl/variantcl/vocab"
)

// Model is the built, queryable engine: an alphabet, its vocabulary store,
// the anagram index over that vocabulary, and any loaded confusables.
type Model struct {
	alphabet    *alphabet.Alphabet
	store       *vocab.Store
	index       *anaindex.Index
	confusables []*confusable.Confusable
	exact       *ahocorasick.Automaton
	log         *zap.Logger
	built       bool
}

// New creates an unbuilt model around the given alphabet.
func New(a *alphabet.Alphabet, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	return &Model{
		alphabet: a,
		store:    vocab.NewStore(a),
		log:      log,
	}
}

// LoadLexicon reads a TSV lexicon into the model's vocabulary store.
func (m *Model) LoadLexicon(r io.Reader, params vocab.Params) error {
	return m.store.LoadVocabulary(r, params, m.log)
}

// LoadVariants reads a mutual-variant TSV file.
func (m *Model) LoadVariants(r io.Reader) error {
	return m.store.LoadVariants(r, m.log)
}

// LoadWeightedVariants reads a weighted variant / error-list TSV file.
func (m *Model) LoadWeightedVariants(r io.Reader, errorList bool) error {
	return m.store.LoadWeightedVariants(r, errorList, m.log)
}

// LoadConfusables parses each edit script in scripts (with optional '^'/'$'
// anchors) and adds it with the weight at the same position in weights,
// defaulting to 1.0 where weights is shorter than scripts.
func (m *Model) LoadConfusables(scripts []string, weights []float64) error {
	for i, s := range scripts {
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		c, err := confusable.New(s, w)
		if err != nil {
			return fmt.Errorf("variantcl: loading confusable %q: %w", s, err)
		}
		m.confusables = append(m.confusables, c)
	}
	return nil
}

// Build computes every lexicon entry's anagram hash and indexes it, and
// compiles an Aho-Corasick automaton over the vocabulary's surface forms
// used as a literal-match bypass ahead of the full anagram/edit-distance
// search (see findExact). It must run once, after all loading and before
// any query.
func (m *Model) Build() error {
	idx, err := anaindex.Build(alphabet.Class(m.alphabet.Len()+1), m.alphabet, m.store)
	if err != nil {
		return fmt.Errorf("variantcl: building index: %w", err)
	}
	m.index = idx

	builder := ahocorasick.NewBuilder()
	for id := 0; id < m.store.Len(); id++ {
		entry, ok := m.store.Entry(vocab.ID(id))
		if !ok || !entry.VocabType.Check(vocab.FlagIndexed) {
			continue
		}
		builder.AddPattern([]byte(entry.Text))
	}
	automaton, err := builder.Build()
	if err != nil {
		return fmt.Errorf("variantcl: building exact-match automaton: %w", err)
	}
	m.exact = automaton

	m.built = true
	m.log.Info("model built",
		zap.Int("vocabulary_size", m.store.Len()),
		zap.Int("anagram_buckets", m.index.Size()),
	)
	return nil
}

// findExact reports whether input is itself, verbatim, an indexed
// vocabulary entry, using the Aho-Corasick automaton as a fast literal
// check ahead of confirming the full-span match against the store.
func (m *Model) findExact(input string) (vocab.ID, bool) {
	match := m.exact.Find([]byte(input), 0)
	if match == nil || match.Start != 0 || match.End != len(input) {
		return 0, false
	}
	return m.store.Lookup(input)
}

// FindVariants finds the top lexicon variants of input. Build must have run
// first.
func (m *Model) FindVariants(input string, params search.Params) ([]search.Candidate, error) {
	if !m.built {
		return nil, fmt.Errorf("variantcl: FindVariants called before Build")
	}

	if params.StopCriterion.Kind == search.StopAtExactMatch || params.StopCriterion.Kind == search.IterativeStopAtExactMatch {
		if id, ok := m.findExact(input); ok {
			entry, _ := m.store.Entry(id)
			candidates := []search.Candidate{{
				ID:   id,
				Text: entry.Text,
				Dist: search.Distance{
					LD:        0,
					LCS:       uint16(len(entry.Norm)),
					PrefixLen: uint16(len(entry.Norm)),
					SuffixLen: uint16(len(entry.Norm)),
					Freq:      entry.Frequency,
					LexWeight: entry.LexWeight,
				},
				EntryLen: len(entry.Norm),
				SameCase: true,
			}}
			search.Score(candidates, input, params.Weights, m.store.HasFrequencyData())
			return candidates, nil
		}
	}

	queryNorm := m.alphabet.Normalize(input)
	q := anahash.FromNormString(queryNorm)

	anagramK := params.MaxAnagramDistance.Resolve(len(queryNorm))
	editK := params.MaxEditDistance.Resolve(len(queryNorm))

	var candidates []search.Candidate
	switch params.StopCriterion.Kind {
	case search.Iterative, search.IterativeStopAtExactMatch:
		candidates = m.widenUntilStop(q, queryNorm, input, anagramK, editK, params.StopCriterion)
	default:
		// The cache is always private to this call (never shared across
		// goroutines), so it is safe to enable regardless of how the
		// caller is itself being invoked; the parallel driver's "no
		// shared cache" rule is satisfied by construction, not by
		// toggling it off here.
		cache := search.NewCache(10000)
		hashes := search.Neighbourhood(m.index, q, anagramK, cache)
		candidates = search.Gather(m.store, hashes, m.index, queryNorm, input, editK)
	}

	search.Score(candidates, input, params.Weights, m.store.HasFrequencyData())
	search.Rank(candidates)

	if params.ScoreThreshold > 0 {
		candidates = filterByScore(candidates, params.ScoreThreshold)
	}
	candidates = search.Truncate(candidates, params.MaxMatches)

	if len(m.confusables) > 0 {
		search.ReweightConfusables(candidates, m.confusables, func(candidateText string) confusable.Script {
			return confusable.Trace(input, candidateText)
		})
	}
	return candidates, nil
}

// widenUntilStop implements the Iterative/IterativeStopAtExactMatch stop
// criteria: anagram distance is increased one step at a time, from 0 up to
// anagramK, re-gathering candidates at each step, until either an
// edit-distance-0 candidate appears (IterativeStopAtExactMatch only) or the
// candidate count reaches criterion.Threshold. Each step gets its own
// cache.
func (m *Model) widenUntilStop(q anahash.Value, queryNorm alphabet.NormString, input string, anagramK, editK uint8, criterion search.StopCriterion) []search.Candidate {
	var candidates []search.Candidate
	for d := 0; d <= int(anagramK); d++ {
		cache := search.NewCache(10000)
		hashes := search.Neighbourhood(m.index, q, uint8(d), cache)
		candidates = search.Gather(m.store, hashes, m.index, queryNorm, input, editK)

		if criterion.Kind == search.IterativeStopAtExactMatch && hasExactMatch(candidates) {
			break
		}
		if criterion.Threshold > 0 && len(candidates) >= criterion.Threshold {
			break
		}
	}
	return candidates
}

func hasExactMatch(candidates []search.Candidate) bool {
	for _, c := range candidates {
		if c.Dist.LD == 0 {
			return true
		}
	}
	return false
}

func filterByScore(candidates []search.Candidate, threshold float64) []search.Candidate {
	out := candidates[:0]
	for _, c := range candidates {
		if c.Score >= threshold {
			out = append(out, c)
		}
	}
	return out
}

// FindAllMatches locates every token/n-gram span in free text with
// variants at or above spanParams.CutoffThreshold, then (when
// spanParams.ConsolidateMatches is set) consolidates overlapping spans into a
// non-overlapping, score-maximising subset.
func (m *Model) FindAllMatches(text string, searchParams search.Params, spanParams textsearch.Params) ([]textsearch.Match, error) {
	if !m.built {
		return nil, fmt.Errorf("variantcl: FindAllMatches called before Build")
	}

	var findErr error
	matches := textsearch.FindAllMatches(text, spanParams, func(span string) []textsearch.RankedVariant {
		candidates, err := m.FindVariants(span, searchParams)
		if err != nil {
			findErr = err
			return nil
		}
		out := make([]textsearch.RankedVariant, len(candidates))
		for i, c := range candidates {
			entry, _ := m.store.Entry(c.ID)
			out[i] = textsearch.RankedVariant{
				Text:        c.Text,
				Score:       c.Score,
				Transparent: entry.VocabType.Check(vocab.FlagTransparent),
			}
		}
		return out
	})
	if findErr != nil {
		return nil, findErr
	}
	return matches, nil
}
