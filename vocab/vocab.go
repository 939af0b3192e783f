// Package vocab implements the vocabulary store: the id-indexed entry table
// that backs both the anagram index and the language-model frequency data,
// plus the TSV loaders that populate it from lexicon, variant, and
// confusable-adjacent error-list files.
package vocab

import (
	"fmt"

	"github.com/variantcl/variantcl/alphabet"
)

// ID indexes into a Store's entry table. Three ids are reserved before any
// user vocabulary is loaded.
type ID int32

const (
	// BOS is the reserved begin-of-sequence id.
	BOS ID = 0
	// EOS is the reserved end-of-sequence id.
	EOS ID = 1
	// UNK is the reserved unknown-word id.
	UNK ID = 2
)

// Type is a bitmask classifying how an entry participates in matching.
type Type uint8

const (
	// None marks an entry with no special role (the BOS/EOS/UNK sentinels).
	None Type = 0
	// FlagIndexed entries are inserted into the anagram index and are
	// eligible to be returned as variant results.
	FlagIndexed Type = 1 << 0
	// FlagLM entries contribute frequency to language-model scoring only.
	FlagLM Type = 1 << 1
	// FlagTransparent entries are reachable as a bridge to canonical forms
	// but are never themselves returned as a solution.
	FlagTransparent Type = 1 << 2
)

// Check reports whether t has every bit of test set.
func (t Type) Check(test Type) bool {
	return t&test == test
}

// VariantReference points from one entry to another entry considered a
// variant of it, with a confidence score in [0,1].
type VariantReference struct {
	ID    ID
	Score float64
}

// Entry is one vocabulary item: a lexicon word or phrase, its alphabet
// normalization, frequency and lexicon metadata, and any variant references
// installed by a variant/error-list loader.
type Entry struct {
	Text       string
	Norm       alphabet.NormString
	Frequency  uint32
	TokenCount uint8
	LexIndex   uint8
	LexWeight  float32
	VocabType  Type
	Variants   []VariantReference
}

// FrequencyHandling resolves frequency conflicts when the same text is
// added to the store more than once (e.g. from multiple lexicons).
type FrequencyHandling int

const (
	Sum FrequencyHandling = iota
	Max
	Min
	Replace
)

func (h FrequencyHandling) combine(existing, incoming uint32) uint32 {
	switch h {
	case Sum:
		return existing + incoming
	case Max:
		if incoming > existing {
			return incoming
		}
		return existing
	case Min:
		if incoming < existing {
			return incoming
		}
		return existing
	case Replace:
		return incoming
	default:
		return existing
	}
}

// Params configures add_to_vocabulary and the TSV loaders built on it.
// LexWeight is the per-lexicon-file weight passed to every Add call made
// while loading that file, not a per-row column; a word merged in from
// more than one lexicon keeps the highest of the weights it was added
// with. A nil LexWeight defaults to 1.0, mirroring lexicon_weight's
// Option<f32>/unwrap_or(1.0) default; pass a pointer to 0.0 explicitly
// for a source (e.g. a corpus list) that should never outweigh a real
// lexicon entry.
type Params struct {
	TextColumn   int
	FreqColumn   *int
	FreqHandling FrequencyHandling
	VocabType    Type
	Index        uint8
	LexWeight    *float32
}

// DefaultParams mirrors the column/handling defaults of a plain frequency
// lexicon: text in column 0, frequency in column 1, duplicates resolved by
// taking the max, default (1.0) lexicon weight.
func DefaultParams() Params {
	freqCol := 1
	return Params{
		TextColumn:   0,
		FreqColumn:   &freqCol,
		FreqHandling: Max,
		VocabType:    FlagIndexed,
		Index:        0,
	}
}

// Store is the id-indexed vocabulary: entries are appended in arrival
// order, id == slice index, and encoder maps text back to id for dedup and
// variant-file resolution.
type Store struct {
	alphabet        *alphabet.Alphabet
	entries         []Entry
	encoder         map[string]ID
	anyFreq         bool
	reverseVariants map[ID][]VariantReference
}

// NewStore creates an empty store preloaded with the BOS/EOS/UNK sentinels,
// normalizing future entries against a.
func NewStore(a *alphabet.Alphabet) *Store {
	s := &Store{
		alphabet: a,
		encoder:  make(map[string]ID),
	}
	s.initVocab()
	return s
}

func (s *Store) initVocab() {
	sentinels := []string{"<bos>", "<eos>", "<unk>"}
	for _, text := range sentinels {
		s.entries = append(s.entries, Entry{
			Text:       text,
			TokenCount: 1,
			VocabType:  None,
		})
		s.encoder[text] = ID(len(s.entries) - 1)
	}
}

// Len returns the number of entries, including the three sentinels.
func (s *Store) Len() int {
	return len(s.entries)
}

// Entry returns the entry at id. The second return is false for an
// out-of-range id.
func (s *Store) Entry(id ID) (Entry, bool) {
	if id < 0 || int(id) >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[id], true
}

// Lookup resolves text to its id, if already encoded.
func (s *Store) Lookup(text string) (ID, bool) {
	id, ok := s.encoder[text]
	return id, ok
}

// HasFrequencyData reports whether any entry was ever added with an
// explicit frequency; search.Score uses this to give every candidate a
// frequency score of 1 when the loaded lexicon carried no counts at all.
func (s *Store) HasFrequencyData() bool {
	return s.anyFreq
}

// Add implements add_to_vocabulary: merge into an existing entry by text,
// or append a new one. It returns the entry's id.
func (s *Store) Add(text string, frequency *uint32, params Params) ID {
	lexWeight := float32(1.0)
	if params.LexWeight != nil {
		lexWeight = *params.LexWeight
	}

	if id, ok := s.encoder[text]; ok {
		e := &s.entries[id]
		if frequency != nil {
			e.Frequency = params.FreqHandling.combine(e.Frequency, *frequency)
			s.anyFreq = true
		}
		if lexWeight > e.LexWeight {
			e.LexWeight = lexWeight
		}
		e.VocabType |= params.VocabType
		// e.LexIndex keeps the first lexicon index that matched; do not overwrite.
		return id
	}

	freq := uint32(1) // smoothing, matches the unseen-entry default
	if frequency != nil {
		freq = *frequency
		s.anyFreq = true
	}
	norm := alphabet.NormString(nil)
	if s.alphabet != nil {
		norm = s.alphabet.Normalize(text)
	}
	e := Entry{
		Text:       text,
		Norm:       norm,
		Frequency:  freq,
		TokenCount: countSpaces(text) + 1,
		LexIndex:   params.Index,
		LexWeight:  lexWeight,
		VocabType:  params.VocabType,
	}
	s.entries = append(s.entries, e)
	id := ID(len(s.entries) - 1)
	s.encoder[text] = id
	return id
}

// AddVariant records that `of` is a variant of `canonical`, with the given
// score, creating `of` as a plain vocabulary entry first if it is not
// already encoded. extra is OR'd into the variant entry's type, whether it
// is new or already encoded (e.g. FlagTransparent for error-list variants).
func (s *Store) AddVariant(canonical ID, of string, score float64, extra Type) error {
	if int(canonical) < 0 || int(canonical) >= len(s.entries) {
		return fmt.Errorf("vocab: canonical id %d out of range", canonical)
	}
	variantID := s.Add(of, nil, Params{VocabType: extra})
	s.linkVariant(canonical, variantID, score)
	return nil
}

// linkVariant records that `to` is a variant of `from` with the given
// score, maintaining both the forward Entry.Variants list and the
// reverseVariants by-product index.
func (s *Store) linkVariant(from, to ID, score float64) {
	s.entries[from].Variants = append(s.entries[from].Variants, VariantReference{ID: to, Score: score})
	if s.reverseVariants == nil {
		s.reverseVariants = make(map[ID][]VariantReference)
	}
	s.reverseVariants[to] = append(s.reverseVariants[to], VariantReference{ID: from, Score: score})
}

// ReverseVariants returns every canonical entry that named id as one of
// its variants, a construction by-product of LoadVariants/
// LoadWeightedVariants used to walk from a surface form back to the forms
// it is known to bridge to.
func (s *Store) ReverseVariants(id ID) []VariantReference {
	return s.reverseVariants[id]
}

func countSpaces(text string) uint8 {
	var n uint8
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' {
			n++
		}
	}
	return n
}
