// Package distance implements bounded string-edit metrics over normalized
// class sequences: Levenshtein and Damerau-Levenshtein edit distance,
// longest common substring length, and common prefix/suffix length.
//
// Every distance is bounded: callers pass a maxDistance and get back
// (0, false) when the distance exceeds it. A length difference larger than
// maxDistance is rejected before any dynamic-programming matrix is built.
package distance

import (
	"github.com/variantcl/variantcl/alphabet"
)

// Levenshtein computes the Levenshtein edit distance between a and b,
// returning (0, false) when it exceeds maxDistance. Only the length checks
// return early; otherwise the full row-by-row computation runs.
//
// Adapted from the classic single-row dynamic-programming formulation (as
// used by the levenshtein-rs crate) generalized from bytes to alphabet
// classes.
func Levenshtein(a, b alphabet.NormString, maxDistance uint8) (uint8, bool) {
	if equalNorm(a, b) {
		return 0, true
	}

	lenA, lenB := len(a), len(b)
	max := int(maxDistance)

	if lenA == 0 {
		if lenB > max {
			return 0, false
		}
		return uint8(lenB), true
	}
	if lenA > lenB && lenA-lenB > max {
		return 0, false
	}
	if lenB == 0 {
		if lenA > max {
			return 0, false
		}
		return uint8(lenA), true
	}
	if lenB > lenA && lenB-lenA > max {
		return 0, false
	}

	cache := make([]int, lenA)
	for i := range cache {
		cache[i] = i + 1
	}

	result := 0
	for indexB, elemB := range b {
		result = indexB
		distA := indexB

		for indexA, elemA := range a {
			var distB int
			if elemA == elemB {
				distB = distA
			} else {
				distB = distA + 1
			}

			distA = cache[indexA]

			if distA > result {
				if distB > result {
					result++
				} else {
					result = distB
				}
			} else if distB > distA {
				result = distA + 1
			} else {
				result = distB
			}

			cache[indexA] = result
		}
	}

	if result > max {
		return 0, false
	}
	return uint8(result), true
}

// DamerauLevenshtein computes the Damerau-Levenshtein edit distance (which,
// unlike Levenshtein, counts an adjacent transposition as a single edit)
// between a and b, bounded by maxDistance.
//
// Adapted from the distance crate's unrestricted (Lowrance-Wagner) matrix
// formulation.
func DamerauLevenshtein(a, b alphabet.NormString, maxDistance uint8) (uint8, bool) {
	lenA, lenB := len(a), len(b)
	max := int(maxDistance)

	if lenA == 0 {
		if lenB > max {
			return 0, false
		}
		return uint8(lenB), true
	}
	if lenA > lenB && lenA-lenB > max {
		return 0, false
	}
	if lenB == 0 {
		if lenA > max {
			return 0, false
		}
		return uint8(lenA), true
	}
	if lenB > lenA && lenB-lenA > max {
		return 0, false
	}

	upperBound := lenA + lenB

	mat := make([][]int, lenA+2)
	for i := range mat {
		mat[i] = make([]int, lenB+2)
	}
	mat[0][0] = upperBound
	for i := 0; i <= lenA; i++ {
		mat[i+1][0] = upperBound
		mat[i+1][1] = i
	}
	for j := 0; j <= lenB; j++ {
		mat[0][j+1] = upperBound
		mat[1][j+1] = j
	}

	lastSeen := make(map[alphabet.Class]int)
	for i, sChar := range a {
		db := 0
		row := i + 1

		for j, tChar := range b {
			col := j + 1
			last := lastSeen[tChar]

			cost := 1
			if sChar == tChar {
				cost = 0
			}

			mat[row+1][col+1] = min4(
				mat[row+1][col]+1,                          // deletion
				mat[row][col+1]+1,                          // insertion
				mat[row][col]+cost,                         // substitution
				mat[last][db]+(row-last-1)+1+(col-db-1), // transposition
			)

			if cost == 0 {
				db = col
			}
		}

		lastSeen[sChar] = row
	}

	result := mat[lenA+1][lenB+1]
	if result > max {
		return 0, false
	}
	return uint8(result), true
}

// LongestCommonSubstringLength returns the length of the longest run of
// consecutive classes shared by a and b (a common substring, not a common
// subsequence).
func LongestCommonSubstringLength(a, b alphabet.NormString) uint16 {
	var lcs uint16
	for i := range a {
		for j := range b {
			if a[i] != b[j] {
				continue
			}
			run := uint16(1)
			ti, tj := i+1, j+1
			for ti < len(a) && tj < len(b) && a[ti] == b[tj] {
				run++
				ti++
				tj++
			}
			if run > lcs {
				lcs = run
			}
		}
	}
	return lcs
}

// CommonPrefixLength returns how many leading classes a and b share.
func CommonPrefixLength(a, b alphabet.NormString) uint16 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var length uint16
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			break
		}
		length++
	}
	return length
}

// CommonSuffixLength returns how many trailing classes a and b share.
func CommonSuffixLength(a, b alphabet.NormString) uint16 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var length uint16
	for i := 0; i < n; i++ {
		if a[len(a)-i-1] != b[len(b)-i-1] {
			break
		}
		length++
	}
	return length
}

func equalNorm(a, b alphabet.NormString) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func min4(a, b, c, d int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	if d < m {
		m = d
	}
	return m
}
