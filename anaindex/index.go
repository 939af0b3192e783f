// Package anaindex implements the anagram index: a primary map from
// anagram hash to the vocabulary ids that produce it, and a secondary
// per-character-count ordered index used by neighbourhood search to scan
// only the hashes that could plausibly be within a given anagram distance.
package anaindex

import (
	"fmt"

	"github.com/google/btree"

	"github.com/variantcl/variantcl/alphabet"
	"github.com/variantcl/variantcl/anahash"
	"github.com/variantcl/variantcl/vocab"
)

// btreeDegree is the branching factor passed to btree.New; 32 keeps nodes
// cache-friendly for the small-to-medium bucket sizes typical of a single
// character-count stratum.
const btreeDegree = 32

// Node is one primary-index bucket: every vocabulary id whose text hashes
// to the same anagram value, plus that value's character count (computed
// once at insertion, not on every lookup).
type Node struct {
	Instances []vocab.ID
	CharCount uint16
}

// hashItem adapts anahash.Value to btree.Item: Value does not implement a
// total order cheaper than big.Int.Cmp, so Less delegates to Value.Cmp.
type hashItem struct {
	value anahash.Value
}

func (h hashItem) Less(than btree.Item) bool {
	return h.value.Cmp(than.(hashItem).value) < 0
}

// Index is the frozen anagram index built by Build. It is read-only from
// the moment Build returns; nothing in this package mutates it afterward.
type Index struct {
	alphabetSize alphabet.Class
	primary      map[string]*Node
	hashes       map[string]anahash.Value // primary key string -> the Value it was computed from
	secondary    map[uint16]*btree.BTree
}

// New creates an empty, unbuilt index for the given alphabet size (used to
// bound CharCount/deletion-closure computations).
func New(alphabetSize alphabet.Class) *Index {
	return &Index{
		alphabetSize: alphabetSize,
		primary:      make(map[string]*Node),
		hashes:       make(map[string]anahash.Value),
		secondary:    make(map[uint16]*btree.BTree),
	}
}

// Build computes anahash(entry.text) for every INDEXED entry in store and
// populates both the primary and secondary indices. It is the only mutator
// this package exposes; call it exactly once after loading is complete.
func Build(alphabetSize alphabet.Class, a *alphabet.Alphabet, store *vocab.Store) (*Index, error) {
	idx := New(alphabetSize)
	for id := 0; id < store.Len(); id++ {
		entry, ok := store.Entry(vocab.ID(id))
		if !ok {
			return nil, fmt.Errorf("anaindex: store reports id %d but Entry lookup failed", id)
		}
		if !entry.VocabType.Check(vocab.FlagIndexed) {
			continue
		}
		h := anahash.Of(entry.Text, a)
		idx.insert(h, vocab.ID(id))
	}
	idx.sortSecondary()
	return idx, nil
}

func (idx *Index) insert(h anahash.Value, id vocab.ID) {
	key := h.String()
	node, exists := idx.primary[key]
	if !exists {
		node = &Node{CharCount: h.CharCount(idx.alphabetSize)}
		idx.primary[key] = node
		idx.hashes[key] = h
		idx.bucketFor(node.CharCount).ReplaceOrInsert(hashItem{value: h})
	}
	node.Instances = append(node.Instances, id)
}

func (idx *Index) bucketFor(charcount uint16) *btree.BTree {
	b, ok := idx.secondary[charcount]
	if !ok {
		b = btree.New(btreeDegree)
		idx.secondary[charcount] = b
	}
	return b
}

// sortSecondary is a no-op under google/btree (ReplaceOrInsert keeps the
// tree ordered as items arrive); it exists so Build's three-step structure
// mirrors the documented construction order and so a future backing
// structure that needs an explicit finalize step has somewhere to put it.
func (idx *Index) sortSecondary() {}

// Lookup returns the node for an exact anagram hash, if present.
func (idx *Index) Lookup(h anahash.Value) (*Node, bool) {
	node, ok := idx.primary[h.String()]
	return node, ok
}

// Contains reports whether h is a key of the primary index.
func (idx *Index) Contains(h anahash.Value) bool {
	_, ok := idx.primary[h.String()]
	return ok
}

// Bucket returns the secondary-index tree for a character count, or nil if
// no hash with that count was ever inserted.
func (idx *Index) Bucket(charcount uint16) *btree.BTree {
	return idx.secondary[charcount]
}

// AscendBucket visits every hash in the charcount bucket in ascending
// order, calling fn with the original Value (not the btree.Item wrapper).
// Iteration stops early if fn returns false.
func (idx *Index) AscendBucket(charcount uint16, fn func(anahash.Value) bool) {
	b := idx.secondary[charcount]
	if b == nil {
		return
	}
	b.Ascend(func(item btree.Item) bool {
		return fn(item.(hashItem).value)
	})
}

// EachInBucketContaining visits every hash h in the charcount bucket for
// which h.Contains(q) holds -- the pure-insertion step of neighbourhood
// search: every existing hash reachable from q by inserting characters
// has a higher or equal character count and is divisible by q.
func (idx *Index) EachInBucketContaining(charcount uint16, q anahash.Value, fn func(anahash.Value) bool) {
	idx.AscendBucket(charcount, func(h anahash.Value) bool {
		if h.Contains(q) {
			return fn(h)
		}
		return true
	})
}

// AlphabetSize returns the alphabet size this index was built against.
func (idx *Index) AlphabetSize() alphabet.Class {
	return idx.alphabetSize
}

// Size returns the number of distinct anagram hashes in the primary index.
func (idx *Index) Size() int {
	return len(idx.primary)
}
