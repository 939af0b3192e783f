package textsearch

import "sort"

// Params bounds the n-gram sweep and filters low-value spans.
type Params struct {
	MaxNgram           uint8
	CutoffThreshold    float64
	ConsolidateMatches bool
}

// SearchFunc runs the per-span variant search (gather/score/rank) over
// one n-gram's text, returning its ranked variants.
type SearchFunc func(text string) []RankedVariant

// FindAllMatches runs boundary detection, enumerates n-grams of every
// order up to params.MaxNgram, searches each n-gram's text with searchFn,
// drops spans below the cutoff threshold or with no genuine (non-
// TRANSPARENT) variants, then consolidates the survivors into the
// non-overlapping subset maximising the sum of best scores.
func FindAllMatches(text string, params Params, searchFn SearchFunc) []Match {
	boundaries := FindBoundaries(text)

	var candidates []Match
	for order := uint8(1); order <= params.MaxNgram; order++ {
		for _, ngram := range FindNgrams(text, boundaries, order, 0) {
			if ngram.Text == "" {
				continue
			}
			ngram.Variants = searchFn(ngram.Text)
			if ngram.IsEmpty() || ngram.onlyTransparent() {
				continue
			}
			if ngram.BestScore() < params.CutoffThreshold {
				continue
			}
			ngram.Selected = ngram.selectVariant()
			candidates = append(candidates, ngram)
		}
	}

	if !params.ConsolidateMatches {
		return candidates
	}
	return Consolidate(candidates)
}

// Consolidate selects the non-overlapping subset of spans maximising the
// sum of best scores (classic weighted interval scheduling). Between
// equally-scoring choices it keeps the span that comes later in end-offset
// order; it does not guarantee that the longer span or the earlier offset
// wins such a tie.
func Consolidate(spans []Match) []Match {
	if len(spans) == 0 {
		return nil
	}

	ordered := append([]Match(nil), spans...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Offset.End != ordered[j].Offset.End {
			return ordered[i].Offset.End < ordered[j].Offset.End
		}
		li := ordered[i].Offset.End - ordered[i].Offset.Begin
		lj := ordered[j].Offset.End - ordered[j].Offset.Begin
		if li != lj {
			return li > lj
		}
		return ordered[i].Offset.Begin < ordered[j].Offset.Begin
	})

	n := len(ordered)
	pred := make([]int, n)
	for i := range ordered {
		pred[i] = -1
		for j := i - 1; j >= 0; j-- {
			if ordered[j].Offset.End <= ordered[i].Offset.Begin {
				pred[i] = j
				break
			}
		}
	}

	dp := make([]float64, n)
	take := make([]bool, n)
	for i := 0; i < n; i++ {
		withoutI := 0.0
		if i > 0 {
			withoutI = dp[i-1]
		}
		withI := ordered[i].BestScore()
		if pred[i] >= 0 {
			withI += dp[pred[i]]
		}
		// Tie resolved in favour of including the current span. The
		// pre-sort places the longer span first among equal end-offsets,
		// so on a tie between spans sharing an end offset the shorter,
		// later-sorted one is kept.
		if withI >= withoutI {
			dp[i] = withI
			take[i] = true
		} else {
			dp[i] = withoutI
			take[i] = false
		}
	}

	var selected []Match
	i := n - 1
	for i >= 0 {
		if take[i] {
			selected = append(selected, ordered[i])
			i = pred[i]
		} else {
			i--
		}
	}

	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Offset.Begin < selected[j].Offset.Begin
	})
	return selected
}
