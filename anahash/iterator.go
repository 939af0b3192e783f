package anahash

import "github.com/variantcl/variantcl/alphabet"

// DeletionResult is one step of a deletion walk: the anahash obtained after
// removing one character, and the class index of the character removed.
type DeletionResult struct {
	Value Value
	Class alphabet.Class
}

// DeletionIterator yields, for class indices alphabetSize-1 down to 0, the
// single-character deletion of value for that class, whenever the class is
// actually present in value. It is a classic pull-based Go iterator: call
// Next until it returns false.
//
// It never yields a deletion of the empty value (value == Empty()
// terminates immediately), and it is the base case from which
// RecurseDeletionIterator is built.
type DeletionIterator struct {
	value        Value
	alphabetSize alphabet.Class
	next         int // next class index to try, counted down from alphabetSize
	done         bool
}

// IterParents returns the single-deletion iterator over v (the "parents"
// reached by deleting exactly one character).
func (v Value) IterParents(alphabetSize alphabet.Class) *DeletionIterator {
	return &DeletionIterator{value: v, alphabetSize: alphabetSize, next: int(alphabetSize)}
}

// Next advances the iterator. It returns the next deletion result and true,
// or a zero DeletionResult and false once exhausted.
func (it *DeletionIterator) Next() (DeletionResult, bool) {
	if it.done || it.value.IsEmpty() {
		return DeletionResult{}, false
	}
	for it.next > 0 {
		it.next--
		classIdx := alphabet.Class(it.next)
		if result, ok := it.value.Delete(Character(classIdx)); ok {
			return DeletionResult{Value: result, Class: classIdx}, true
		}
	}
	it.done = true
	return DeletionResult{}, false
}

// Parents materializes all deletion results of IterParents, in descending
// class-index order. The single-deletion space is bounded by the alphabet
// size (at most MaxClasses+1), so unlike RecurseDeletionIterator below
// there is no memory-pressure reason to keep this one lazily pull-based for
// callers that just want to range over "the parents".
func (v Value) Parents(alphabetSize alphabet.Class) []DeletionResult {
	it := v.IterParents(alphabetSize)
	var out []DeletionResult
	for {
		r, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, r)
	}
	return out
}

// RecurseParams configures RecurseDeletionIterator's traversal of the
// deletion DAG rooted at a value.
type RecurseParams struct {
	// SingleBeam restricts depth-first traversal to the first child at
	// each level (a single descending line), used by CharCount.
	SingleBeam bool
	// MaxDepth, if non-nil, stops expansion strictly before exceeding the
	// given depth.
	MaxDepth *uint32
	// BreadthFirst selects a FIFO queue; otherwise a LIFO stack is used
	// and children are pushed in reverse so they pop in descending
	// class-index order (stable DFS pre-order).
	BreadthFirst bool
	// AllowDuplicates, when false, suppresses revisits using a visited
	// set of hashes (keyed by Value.String()).
	AllowDuplicates bool
	// AllowEmptyLeaves, when false, skips results equal to Empty().
	AllowEmptyLeaves bool
}

type recurseNode struct {
	result DeletionResult
	depth  uint32
}

// RecurseDeletionIterator is a pull-based traversal of the deletion DAG
// rooted at a value. The root itself is never yielded. Iteration order is
// a pure function of (value, alphabetSize, params): see Next for the exact
// rules. It is implemented as an explicit stack/queue state machine (not a
// goroutine-based generator) so that it can share a visited set with its
// driver without extra synchronization.
type RecurseDeletionIterator struct {
	alphabetSize alphabet.Class
	params       RecurseParams
	queue        []recurseNode // back = top of stack (DFS) or front = head of FIFO (BFS); we always pop/shift conceptually from one end
	visited      map[string]struct{}
}

// Iter returns the canonical full-closure iterator used by CharCount and
// AlphabetUpperBound: single-beam DFS down to (and including) the empty
// value, with duplicates allowed (there is only one path in single-beam
// mode) and empty leaves allowed.
func (v Value) Iter(alphabetSize alphabet.Class) *RecurseDeletionIterator {
	return v.IterDeletions(alphabetSize, RecurseParams{
		SingleBeam:       true,
		AllowDuplicates:  true,
		AllowEmptyLeaves: true,
	})
}

// IterDeletions returns the recursive deletion iterator over v configured
// by params.
func (v Value) IterDeletions(alphabetSize alphabet.Class, params RecurseParams) *RecurseDeletionIterator {
	it := &RecurseDeletionIterator{
		alphabetSize: alphabetSize,
		params:       params,
		queue:        []recurseNode{{result: DeletionResult{Value: v}, depth: 0}},
	}
	if !params.AllowDuplicates {
		it.visited = make(map[string]struct{})
	}
	return it
}

func (it *RecurseDeletionIterator) withinDepth(depth uint32) bool {
	return it.params.MaxDepth == nil || depth < *it.params.MaxDepth
}

func (it *RecurseDeletionIterator) expand(node recurseNode) {
	if !it.withinDepth(node.depth) {
		return
	}
	parents := node.result.Value.Parents(it.alphabetSize)
	if it.params.BreadthFirst {
		for _, child := range parents {
			it.queue = append(it.queue, recurseNode{result: child, depth: node.depth + 1})
		}
		return
	}
	// DFS: push in reverse so the first (highest class index) child pops
	// first, giving stable pre-order.
	if it.params.SingleBeam {
		if len(parents) > 0 {
			it.queue = append(it.queue, recurseNode{result: parents[0], depth: node.depth + 1})
		}
		return
	}
	for i := len(parents) - 1; i >= 0; i-- {
		it.queue = append(it.queue, recurseNode{result: parents[i], depth: node.depth + 1})
	}
}

func (it *RecurseDeletionIterator) pop() (recurseNode, bool) {
	if len(it.queue) == 0 {
		return recurseNode{}, false
	}
	if it.params.BreadthFirst {
		node := it.queue[0]
		it.queue = it.queue[1:]
		return node, true
	}
	node := it.queue[len(it.queue)-1]
	it.queue = it.queue[:len(it.queue)-1]
	return node, true
}

// Next advances the iterator, returning the next (result, depth) pair, or
// false once the traversal is exhausted.
func (it *RecurseDeletionIterator) Next() (DeletionResult, uint32, bool) {
	for {
		node, ok := it.pop()
		if !ok {
			return DeletionResult{}, 0, false
		}

		if !it.params.AllowDuplicates && node.depth > 0 {
			key := node.result.Value.String()
			if _, seen := it.visited[key]; seen {
				continue
			}
			it.visited[key] = struct{}{}
		}

		it.expand(node)

		if node.depth == 0 {
			// don't yield the root, just recurse
			continue
		}
		if !it.params.AllowEmptyLeaves && node.result.Value.IsEmpty() {
			continue
		}
		return node.result, node.depth, true
	}
}
