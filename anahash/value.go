// Package anahash implements the multiplicative anagram hash (AnaValue):
// an arbitrary-precision product-of-primes fingerprint of a string's
// multiset of alphabet classes, plus the deletion iterators used to
// explore its neighbourhood.
package anahash

import (
	"fmt"
	"math/big"

	"github.com/variantcl/variantcl/alphabet"
)

// Value is an arbitrary-precision non-negative integer: the product of
// Primes[class] over every normalized character of a string.
type Value struct {
	n *big.Int
}

// Empty is the anahash of the empty string: the multiplicative identity.
func Empty() Value {
	return Value{n: big.NewInt(1)}
}

// Character returns the anahash of a single character of the given class.
func Character(class alphabet.Class) Value {
	if int(class) >= len(Primes) {
		panic(fmt.Sprintf("anahash: class index %d exceeds the %d-prime table", class, len(Primes)))
	}
	return Value{n: new(big.Int).SetUint64(Primes[class])}
}

// FromNormString computes the anahash of an already-normalized string by
// multiplying the per-character prime values. Sharing this code path with
// alphabet.Normalize (rather than re-walking the string independently)
// is what guarantees anahash(s) == product(Primes[normalize(s)[i]]) by
// construction instead of by coincidence between two separately
// maintained loops.
func FromNormString(ns alphabet.NormString) Value {
	h := Empty()
	for _, c := range ns {
		h = h.Insert(Character(c))
	}
	return h
}

// Of computes the anahash of s directly via the given alphabet.
func Of(s string, a *alphabet.Alphabet) Value {
	return FromNormString(a.Normalize(s))
}

// IsEmpty reports whether v is the anahash of the empty string.
func (v Value) IsEmpty() bool {
	return v.n == nil || v.n.Cmp(big.NewInt(1)) == 0 || v.n.Sign() == 0
}

// Insert returns the anahash obtained by adding the characters represented
// by other (multiplication); inserting into the empty value of zero yields
// other itself.
func (v Value) Insert(other Value) Value {
	if v.n == nil || v.n.Sign() == 0 {
		return other
	}
	return Value{n: new(big.Int).Mul(v.n, other.n)}
}

// Delete returns the anahash obtained by removing the characters
// represented by other (division), and true, iff v contains other.
// Otherwise it returns the zero Value and false.
func (v Value) Delete(other Value) (Value, bool) {
	if !v.Contains(other) {
		return Value{}, false
	}
	return Value{n: new(big.Int).Div(v.n, other.n)}, true
}

// Contains reports whether v contains all the characters represented by
// other, i.e. whether other divides v.
func (v Value) Contains(other Value) bool {
	if other.n.Cmp(v.n) > 0 {
		return false
	}
	mod := new(big.Int).Mod(v.n, other.n)
	return mod.Sign() == 0
}

// Equal reports value equality.
func (v Value) Equal(other Value) bool {
	return v.n.Cmp(other.n) == 0
}

// Cmp orders two values for use in sorted containers (e.g. the secondary
// anagram index).
func (v Value) Cmp(other Value) int {
	return v.n.Cmp(other.n)
}

// String renders the value's decimal form, used as the map key for the
// primary anagram index (Go maps cannot key on *big.Int pointer identity).
func (v Value) String() string {
	if v.n == nil {
		return "1"
	}
	return v.n.String()
}

// BigInt exposes the underlying integer, read-only by convention.
func (v Value) BigInt() *big.Int {
	return v.n
}

// CharCount computes the number of prime factors (with multiplicity) of v
// that are within the given alphabet size, by iterating the deletion
// closure rather than trial division over the whole prime table.
func (v Value) CharCount(alphabetSize alphabet.Class) uint16 {
	var count uint16
	it := v.Iter(alphabetSize)
	for {
		if _, _, ok := it.Next(); !ok {
			break
		}
		count++
	}
	return count
}

// AlphabetUpperBound returns the largest class index appearing in v and the
// total character count, both derived from the deletion closure.
func (v Value) AlphabetUpperBound(alphabetSize alphabet.Class) (alphabet.Class, uint16) {
	var maxClass alphabet.Class
	var count uint16
	it := v.Iter(alphabetSize)
	for {
		d, _, ok := it.Next()
		if !ok {
			break
		}
		count++
		if d.Class > maxClass {
			maxClass = d.Class
		}
	}
	return maxClass, count
}
