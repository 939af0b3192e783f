package vocab

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// LoadVocabulary parses a lexicon TSV (text column, optional frequency
// column, blank lines skipped) and adds every row to the store.
func (s *Store) LoadVocabulary(r io.Reader, params Params, log *zap.Logger) error {
	log = nopIfNil(log)
	scanner := bufio.NewScanner(r)
	row := 0
	for scanner.Scan() {
		row++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if params.TextColumn >= len(cols) {
			log.Warn("vocab: skipping row, text column out of range", zap.Int("row", row))
			continue
		}
		text := cols[params.TextColumn]
		if text == "" {
			continue
		}

		var freq *uint32
		if params.FreqColumn != nil && *params.FreqColumn < len(cols) {
			raw := cols[*params.FreqColumn]
			n, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return fmt.Errorf("vocab: row %d: invalid frequency %q: %w", row, raw, err)
			}
			f := uint32(n)
			freq = &f
		}

		s.Add(text, freq, params)
	}
	return scanner.Err()
}

// LoadVariants parses a mutual-variant TSV: every tab-separated item on a
// line is an equal-weight variant of every other item on that line.
func (s *Store) LoadVariants(r io.Reader, log *zap.Logger) error {
	log = nopIfNil(log)
	scanner := bufio.NewScanner(r)
	row := 0
	for scanner.Scan() {
		row++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 2 {
			log.Warn("vocab: skipping variant row with fewer than two items", zap.Int("row", row))
			continue
		}
		ids := make([]ID, len(cols))
		for i, text := range cols {
			ids[i] = s.Add(text, nil, Params{VocabType: FlagIndexed})
		}
		for i := range cols {
			for j := range cols {
				if i == j {
					continue
				}
				s.linkVariant(ids[i], ids[j], 1.0)
			}
		}
	}
	return scanner.Err()
}

// LoadWeightedVariants parses a weighted-variant or error-list TSV: column
// 0 is the canonical entry, and the remaining columns alternate variant,
// score pairs. When errorList is true, loaded variants are marked
// TRANSPARENT (an error list describes misspellings that should never be
// returned as a solution themselves, only bridge to the canonical form).
func (s *Store) LoadWeightedVariants(r io.Reader, errorList bool, log *zap.Logger) error {
	log = nopIfNil(log)
	scanner := bufio.NewScanner(r)
	row := 0
	for scanner.Scan() {
		row++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 3 || (len(cols)-1)%2 != 0 {
			log.Warn("vocab: skipping malformed weighted-variant row", zap.Int("row", row), zap.Int("columns", len(cols)))
			continue
		}
		canonical := s.Add(cols[0], nil, Params{VocabType: FlagIndexed})

		var extra Type
		if errorList {
			extra = FlagTransparent
		}
		for i := 1; i < len(cols); i += 2 {
			variantText := cols[i]
			score, err := strconv.ParseFloat(cols[i+1], 64)
			if err != nil {
				return fmt.Errorf("vocab: row %d: invalid score %q: %w", row, cols[i+1], err)
			}
			if err := s.AddVariant(canonical, variantText, score, extra); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
