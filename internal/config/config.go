// Package config loads the CLI's configuration file (alphabet/lexicon/
// confusable/variant file paths plus the SearchParameters enumeration)
// through viper, so it can come from a file or environment variables
// interchangeably.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/variantcl/variantcl/search"
)

// Files lists the input file paths the CLI loads before build(). Lexicons
// are loaded at full (1.0) lexicon weight; Corpora are loaded at zero
// weight, so a word seen only in a corpus file scores lower on the lex
// dimension than one backed by an actual lexicon, while a word present in
// both keeps the higher, lexicon-backed weight (max-merge).
type Files struct {
	Alphabet    string
	Lexicons    []string
	Corpora     []string
	Variants    []string
	Weighted    []string
	ErrorLists  []string
	Confusables []string
}

// Config is the fully resolved runtime configuration: input files plus
// search parameters.
type Config struct {
	Files        Files
	Params       search.Params
	MaxNgram     uint8
	Cutoff       float64
	Consolidate  bool
	Verbose      bool
	OutputFormat string
}

// Load reads configuration from the file at path (if non-empty), then
// environment variables prefixed VARIANTCL_, applying defaults for
// anything unset.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("variantcl")
	v.AutomaticEnv()

	v.SetDefault("max_anagram_distance", 2)
	v.SetDefault("max_edit_distance", 2)
	v.SetDefault("max_matches", 10)
	v.SetDefault("max_ngram", 3)
	v.SetDefault("cutoff_threshold", 0.0)
	v.SetDefault("score_threshold", 0.0)
	v.SetDefault("consolidate_matches", true)
	v.SetDefault("output_format", "tsv")
	v.SetDefault("weights.ld", 1.0)
	v.SetDefault("weights.lcs", 1.0)
	v.SetDefault("weights.freq", 1.0)
	v.SetDefault("weights.prefix", 1.0)
	v.SetDefault("weights.suffix", 1.0)
	v.SetDefault("weights.case", 0.0)
	v.SetDefault("weights.lex", 0.0)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	weights := search.Weights{
		LD:     v.GetFloat64("weights.ld"),
		LCS:    v.GetFloat64("weights.lcs"),
		Freq:   v.GetFloat64("weights.freq"),
		Prefix: v.GetFloat64("weights.prefix"),
		Suffix: v.GetFloat64("weights.suffix"),
		Case:   v.GetFloat64("weights.case"),
		Lex:    v.GetFloat64("weights.lex"),
	}
	if weights.Sum() <= 0 {
		return Config{}, fmt.Errorf("config: weights must sum to a positive value")
	}

	cfg := Config{
		Files: Files{
			Alphabet:    v.GetString("alphabet"),
			Lexicons:    v.GetStringSlice("lexicons"),
			Corpora:     v.GetStringSlice("corpora"),
			Variants:    v.GetStringSlice("variants"),
			Weighted:    v.GetStringSlice("weighted_variants"),
			ErrorLists:  v.GetStringSlice("error_lists"),
			Confusables: v.GetStringSlice("confusables"),
		},
		Params: search.Params{
			MaxAnagramDistance: search.AbsoluteThreshold(uint8(v.GetInt("max_anagram_distance"))),
			MaxEditDistance:    search.AbsoluteThreshold(uint8(v.GetInt("max_edit_distance"))),
			MaxMatches:         v.GetInt("max_matches"),
			ScoreThreshold:     v.GetFloat64("score_threshold"),
			Weights:            weights,
			StopCriterion:      search.StopCriterion{Kind: search.Exhaustive},
		},
		MaxNgram:     uint8(v.GetInt("max_ngram")),
		Cutoff:       v.GetFloat64("cutoff_threshold"),
		Consolidate:  v.GetBool("consolidate_matches"),
		Verbose:      v.GetBool("verbose"),
		OutputFormat: v.GetString("output_format"),
	}
	return cfg, nil
}
