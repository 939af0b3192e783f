package search

import (
	"github.com/variantcl/variantcl/anahash"
	"github.com/variantcl/variantcl/anaindex"
)

// Neighbourhood computes the set of existing index hashes within
// maxDistance insertions and/or deletions of q. cache, if non-nil, records
// the deletion values already seen so that their bucket scan is not
// repeated; it is the caller's responsibility to pass nil in parallel mode.
func Neighbourhood(idx *anaindex.Index, q anahash.Value, maxDistance uint8, cache *Cache) []anahash.Value {
	seen := make(map[string]struct{})
	var out []anahash.Value
	include := func(h anahash.Value) {
		key := h.String()
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, h)
	}

	if idx.Contains(q) {
		include(q)
	}

	alphabetSize := idx.AlphabetSize()
	qCharCount := q.CharCount(alphabetSize)

	// Pure insertions: every existing hash h with h = q * (product of d
	// inserted characters) necessarily has charcount(q)+d and is divisible
	// by q.
	for d := uint8(1); d <= maxDistance; d++ {
		cc := qCharCount + uint16(d)
		idx.EachInBucketContaining(cc, q, func(h anahash.Value) bool {
			include(h)
			return true
		})
	}

	// Deletions, and deletion-then-insertion (substitutions): walk the
	// recursive deletion closure up to maxDistance deep, deduping visited
	// deletions; only at the maximum depth is the secondary bucket of the
	// deletion's own character count also scanned for hashes containing it
	// (no insertion step is added on top of that depth).
	k := uint32(maxDistance)
	it := q.IterDeletions(alphabetSize, anahash.RecurseParams{
		BreadthFirst:     true,
		MaxDepth:         &k,
		AllowDuplicates:  false,
		AllowEmptyLeaves: false,
	})
	for {
		res, depth, ok := it.Next()
		if !ok {
			break
		}
		if idx.Contains(res.Value) {
			include(res.Value)
		}
		if cache != nil {
			if cache.Visited(res.Value) {
				continue
			}
			cache.Mark(res.Value)
			cache.Check()
		}
		if depth == k {
			idx.EachInBucketContaining(res.Value.CharCount(alphabetSize), res.Value, func(h anahash.Value) bool {
				include(h)
				return true
			})
		}
	}

	return out
}
