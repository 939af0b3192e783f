package search

import (
	"sort"
	"strings"

	"github.com/variantcl/variantcl/alphabet"
	"github.com/variantcl/variantcl/anahash"
	"github.com/variantcl/variantcl/anaindex"
	"github.com/variantcl/variantcl/confusable"
	"github.com/variantcl/variantcl/distance"
	"github.com/variantcl/variantcl/vocab"
)

// Distance is the bundle of per-candidate distance/similarity signals
// feeding the composite score.
type Distance struct {
	LD        uint8
	LCS       uint16
	PrefixLen uint16
	SuffixLen uint16
	Freq      uint32
	LexWeight float32
}

// Candidate is one gathered, not-yet-ranked vocabulary match.
type Candidate struct {
	ID       vocab.ID
	Text     string
	Dist     Distance
	EntryLen int
	SameCase bool
	Score    float64
}

// VariantResult is a ranked result record: vocabulary id, distance and
// frequency scores, and an optional bridging id. variantcl.Model.FindVariants
// returns Candidates, not VariantResults.
type VariantResult struct {
	VocabID   vocab.ID
	Text      string
	DistScore float64
	FreqScore float64
	Via       *vocab.ID
	Score     float64
}

// Gather iterates every instance of every included anagram hash, computes
// bounded Damerau-Levenshtein against the query, and drops anything
// exceeding maxEditDistance.
func Gather(store *vocab.Store, hashes []anahash.Value, idx *anaindex.Index, queryNorm alphabet.NormString, queryText string, maxEditDistance uint8) []Candidate {
	var out []Candidate
	seen := make(map[vocab.ID]struct{})

	for _, h := range hashes {
		node, ok := idx.Lookup(h)
		if !ok {
			continue
		}
		for _, id := range node.Instances {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}

			entry, ok := store.Entry(id)
			if !ok {
				continue
			}
			ld, within := distance.DamerauLevenshtein(queryNorm, entry.Norm, maxEditDistance)
			if !within {
				continue
			}
			out = append(out, Candidate{
				ID:   id,
				Text: entry.Text,
				Dist: Distance{
					LD:        ld,
					LCS:       distance.LongestCommonSubstringLength(queryNorm, entry.Norm),
					PrefixLen: distance.CommonPrefixLength(queryNorm, entry.Norm),
					SuffixLen: distance.CommonSuffixLength(queryNorm, entry.Norm),
					Freq:      entry.Frequency,
					LexWeight: entry.LexWeight,
				},
				EntryLen: len(entry.Norm),
				SameCase: entry.Text == queryText,
			})
		}
	}
	return out
}

// Score computes the composite score of every candidate in place, per the
// weighted combination of normalized distance/similarity signals. hasFreq
// forces freq_score to 1 for every candidate when the vocabulary never
// carried frequency data (so the freq term becomes a no-op rather than an
// arbitrary penalty).
func Score(candidates []Candidate, queryText string, w Weights, hasFreq bool) {
	if len(candidates) == 0 {
		return
	}
	sum := w.Sum()
	if sum <= 0 {
		sum = 1
	}

	var maxLD uint8
	var maxPrefix, maxSuffix uint16
	var maxFreq uint32
	for _, c := range candidates {
		if c.Dist.LD > maxLD {
			maxLD = c.Dist.LD
		}
		if c.Dist.PrefixLen > maxPrefix {
			maxPrefix = c.Dist.PrefixLen
		}
		if c.Dist.SuffixLen > maxSuffix {
			maxSuffix = c.Dist.SuffixLen
		}
		if c.Dist.Freq > maxFreq {
			maxFreq = c.Dist.Freq
		}
	}

	for i := range candidates {
		c := &candidates[i]

		distanceScore := 1.0
		if maxLD > 0 {
			distanceScore = 1.0 - float64(c.Dist.LD)/float64(maxLD)
		}

		lcsScore := 0.0
		if c.EntryLen > 0 {
			lcsScore = float64(c.Dist.LCS) / float64(c.EntryLen)
		}

		prefixScore := 0.0
		if maxPrefix > 0 {
			prefixScore = float64(c.Dist.PrefixLen) / float64(maxPrefix)
		}

		suffixScore := 0.0
		if maxSuffix > 0 {
			suffixScore = float64(c.Dist.SuffixLen) / float64(maxSuffix)
		}

		freqScore := 1.0
		if hasFreq && maxFreq > 0 {
			freqScore = float64(c.Dist.Freq) / float64(maxFreq)
		}

		// case_score: a candidate whose raw text differs from the query
		// only in case is penalised to 0; anything else (exact match or a
		// genuinely different spelling) leaves the case term untouched.
		caseScore := 1.0
		if !c.SameCase && strings.EqualFold(c.Text, queryText) {
			caseScore = 0.0
		}

		c.Score = (w.LD*distanceScore + w.Freq*freqScore + w.LCS*lcsScore +
			w.Prefix*prefixScore + w.Suffix*suffixScore +
			w.Case*caseScore + w.Lex*float64(c.Dist.LexWeight)) / sum
	}
}

// Rank sorts candidates descending by score, stable so ties preserve
// gather order (which follows the order of the hashes passed to Gather).
func Rank(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

// Truncate applies a tie-aware max-matches cutoff. If the candidate at
// position maxMatches scores lower than the one before it, it keeps the
// first maxMatches. Otherwise it finds early, the first position holding
// that tied score, and late, the first position after the tie with a lower
// score, and keeps early+1 candidates when early > 0, else late+1 (capped
// at the slice length).
func Truncate(candidates []Candidate, maxMatches int) []Candidate {
	if maxMatches <= 0 || len(candidates) <= maxMatches {
		return candidates
	}
	if candidates[maxMatches].Score < candidates[maxMatches-1].Score {
		return candidates[:maxMatches]
	}

	cutScore := candidates[maxMatches].Score
	early := 0
	for i := 0; i < maxMatches; i++ {
		if candidates[i].Score == cutScore {
			early = i
			break
		}
	}
	late := maxMatches
	for late < len(candidates) && candidates[late].Score == cutScore {
		late++
	}
	if early > 0 {
		return candidates[:early+1]
	}
	end := late + 1
	if end > len(candidates) {
		end = len(candidates)
	}
	return candidates[:end]
}

// ReweightConfusables multiplies each candidate's score by the product of
// weights of every loaded confusable whose pattern is found embedded in
// the edit script from queryText to the candidate's text, then re-sorts
// descending. scriptOf computes that edit script (callers typically back
// it with a sesdiff-style tracer over the same Damerau-Levenshtein
// alignment already computed during Gather).
func ReweightConfusables(candidates []Candidate, confusables []*confusable.Confusable, scriptOf func(candidateText string) confusable.Script) {
	if len(confusables) == 0 {
		return
	}
	for i := range candidates {
		script := scriptOf(candidates[i].Text)
		factor := 1.0
		for _, c := range confusables {
			if c.FoundIn(script) {
				factor *= c.Weight
			}
		}
		candidates[i].Score *= factor
	}
	Rank(candidates)
}
