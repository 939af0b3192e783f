// Package alphabet implements the user-defined character alphabet and the
// greedy longest-match normaliser used to turn input strings into sequences
// of class indices.
package alphabet

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Class is a small unsigned alphabet class index. Index N (where N is the
// number of declared classes) is reserved for the unknown class.
type Class uint8

// NormString is a string normalized to a sequence of alphabet classes.
type NormString []Class

// MaxClasses bounds the number of user-defined classes, one below the size
// of the hard-coded PRIMES table in package anahash.
const MaxClasses = 199

// Alphabet is an ordered sequence of equivalence classes. Each class is a
// non-empty set of spellings (one or more characters) that map to the same
// class index. Order matters: matching tries classes in declared order and,
// within a class, spellings in declared order, taking the first (and
// therefore longest-preferred, if the caller ordered spellings that way)
// match.
type Alphabet struct {
	classes [][]string
}

// New builds an Alphabet from an ordered list of classes, each a list of
// alternative spellings.
func New(classes [][]string) (*Alphabet, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("alphabet: no classes defined")
	}
	if len(classes) > MaxClasses {
		return nil, fmt.Errorf("alphabet: %d classes exceeds the maximum of %d", len(classes), MaxClasses)
	}
	for i, spellings := range classes {
		if len(spellings) == 0 {
			return nil, fmt.Errorf("alphabet: class %d has no spellings", i)
		}
	}
	cp := make([][]string, len(classes))
	for i, spellings := range classes {
		cp[i] = append([]string(nil), spellings...)
	}
	return &Alphabet{classes: cp}, nil
}

// Len returns the number of user-defined classes (not counting UNK).
func (a *Alphabet) Len() int {
	return len(a.classes)
}

// UnknownClass is the reserved class index for characters matching no
// declared class.
func (a *Alphabet) UnknownClass() Class {
	return Class(len(a.classes))
}

// Classes returns the declared classes in order, read-only.
func (a *Alphabet) Classes() [][]string {
	return a.classes
}

// Normalize greedily maps s onto a sequence of class indices, trying every
// class in declared order at each position and, within a class, every
// spelling in declared order. The first matching spelling wins and its
// length is skipped. Positions matching no class become UnknownClass.
func (a *Alphabet) Normalize(s string) NormString {
	result := make(NormString, 0, len(s))
	runes := []rune(s)
	n := len(runes)
	pos := 0
	for pos < n {
		matched := false
	classLoop:
		for seqnr, spellings := range a.classes {
			for _, element := range spellings {
				elemRunes := []rune(element)
				l := len(elemRunes)
				if pos+l > n {
					continue
				}
				if string(runes[pos:pos+l]) == element {
					result = append(result, Class(seqnr))
					pos += l
					matched = true
					break classLoop
				}
			}
		}
		if !matched {
			result = append(result, a.UnknownClass())
			pos++
		}
	}
	return result
}

// Load reads a UTF-8 TSV alphabet file: each non-empty line defines one
// class, columns on the line are alternative spellings within that class.
// Order of lines defines class index.
func Load(r io.Reader) (*Alphabet, error) {
	var classes [][]string
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		var spellings []string
		for _, f := range fields {
			if f == "" {
				continue
			}
			spellings = append(spellings, f)
		}
		if len(spellings) == 0 {
			continue
		}
		classes = append(classes, spellings)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("alphabet: reading file at line %d: %w", lineno, err)
	}
	return New(classes)
}
