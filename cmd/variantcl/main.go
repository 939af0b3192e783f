// Command variantcl loads an alphabet and lexicon (plus optional variant
// and confusable files), builds the anagram index, and reports variants
// for every line of input, either as standalone words or as free text
// searched for known spans.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/variantcl/variantcl"
	"github.com/variantcl/variantcl/alphabet"
	"github.com/variantcl/variantcl/internal/config"
	"github.com/variantcl/variantcl/internal/logging"
	"github.com/variantcl/variantcl/search"
	"github.com/variantcl/variantcl/textsearch"
	"github.com/variantcl/variantcl/vocab"
)

func main() {
	app := &cli.App{
		Name:  "variantcl",
		Usage: "find approximate-string / spelling-variant matches against a lexicon",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a YAML/TOML/JSON config file"},
			&cli.BoolFlag{Name: "text", Usage: "treat input lines as free text, searching for known spans instead of whole-word variants"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "variantcl:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.Files.Alphabet == "" {
		return fmt.Errorf("no alphabet file configured (set 'alphabet' in the config file)")
	}
	alphabetFile, err := os.Open(cfg.Files.Alphabet)
	if err != nil {
		return err
	}
	defer alphabetFile.Close()
	a, err := alphabet.Load(alphabetFile)
	if err != nil {
		return fmt.Errorf("loading alphabet: %w", err)
	}

	model := variantcl.New(a, log)
	if err := loadLexicons(model, cfg); err != nil {
		return err
	}
	if err := loadVariants(model, cfg); err != nil {
		return err
	}
	if err := loadConfusables(model, cfg); err != nil {
		return err
	}
	if err := model.Build(); err != nil {
		return err
	}

	spanParams := textsearch.Params{
		MaxNgram:           cfg.MaxNgram,
		CutoffThreshold:    cfg.Cutoff,
		ConsolidateMatches: cfg.Consolidate,
	}

	scanner := bufio.NewScanner(os.Stdin)
	writer := bufio.NewWriter(os.Stdout)
	defer writer.Flush()

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if c.Bool("text") {
			matches, err := model.FindAllMatches(line, cfg.Params, spanParams)
			if err != nil {
				return err
			}
			if err := emitMatches(writer, line, matches, cfg.OutputFormat); err != nil {
				return err
			}
			continue
		}
		candidates, err := model.FindVariants(line, cfg.Params)
		if err != nil {
			return err
		}
		if err := emitVariants(writer, line, candidates, cfg.OutputFormat); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func loadLexicons(model *variantcl.Model, cfg config.Config) error {
	if err := loadLexiconFiles(model, cfg.Files.Lexicons, nil); err != nil {
		return err
	}
	// Corpus-derived lists are loaded at zero lex weight: a word seen only
	// in a corpus never outscores one backed by a real lexicon on the lex
	// dimension, matching the CLI's "corpus is given less weight" lexicon.
	corpusWeight := float32(0.0)
	return loadLexiconFiles(model, cfg.Files.Corpora, &corpusWeight)
}

func loadLexiconFiles(model *variantcl.Model, paths []string, lexWeight *float32) error {
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		params := vocab.DefaultParams()
		params.LexWeight = lexWeight
		err = model.LoadLexicon(f, params)
		f.Close()
		if err != nil {
			return fmt.Errorf("loading lexicon %s: %w", path, err)
		}
	}
	return nil
}

func loadVariants(model *variantcl.Model, cfg config.Config) error {
	for _, path := range cfg.Files.Variants {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		err = model.LoadVariants(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("loading variants %s: %w", path, err)
		}
	}
	for _, path := range cfg.Files.Weighted {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		err = model.LoadWeightedVariants(f, false)
		f.Close()
		if err != nil {
			return fmt.Errorf("loading weighted variants %s: %w", path, err)
		}
	}
	for _, path := range cfg.Files.ErrorLists {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		err = model.LoadWeightedVariants(f, true)
		f.Close()
		if err != nil {
			return fmt.Errorf("loading error list %s: %w", path, err)
		}
	}
	return nil
}

func loadConfusables(model *variantcl.Model, cfg config.Config) error {
	var scripts []string
	var weights []float64
	for _, path := range cfg.Files.Confusables {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			var script string
			var weight float64 = 1.0
			if n, _ := fmt.Sscanf(line, "%s\t%f", &script, &weight); n < 1 {
				script = line
				weight = 1.0
			}
			scripts = append(scripts, script)
			weights = append(weights, weight)
		}
		err = scanner.Err()
		f.Close()
		if err != nil {
			return fmt.Errorf("reading confusables %s: %w", path, err)
		}
	}
	if len(scripts) == 0 {
		return nil
	}
	return model.LoadConfusables(scripts, weights)
}

type jsonVariant struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

type jsonMatch struct {
	Input    string        `json:"input"`
	Begin    *int          `json:"begin,omitempty"`
	End      *int          `json:"end,omitempty"`
	Variants []jsonVariant `json:"variants"`
}

func emitVariants(w *bufio.Writer, input string, candidates []search.Candidate, format string) error {
	if format == "json" {
		variants := make([]jsonVariant, len(candidates))
		for i, c := range candidates {
			variants[i] = jsonVariant{Text: c.Text, Score: c.Score}
		}
		enc := json.NewEncoder(w)
		return enc.Encode(jsonMatch{Input: input, Variants: variants})
	}

	fmt.Fprint(w, input)
	for _, c := range candidates {
		fmt.Fprintf(w, "\t%s", c.Text)
	}
	fmt.Fprintln(w)
	return nil
}

func emitMatches(w *bufio.Writer, input string, matches []textsearch.Match, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		for _, m := range matches {
			begin, end := m.Offset.Begin, m.Offset.End
			variants := make([]jsonVariant, len(m.Variants))
			for i, v := range m.Variants {
				variants[i] = jsonVariant{Text: v.Text, Score: v.Score}
			}
			if err := enc.Encode(jsonMatch{Input: m.Text, Begin: &begin, End: &end, Variants: variants}); err != nil {
				return err
			}
		}
		return nil
	}

	for _, m := range matches {
		fmt.Fprintf(w, "%s", m.Text)
		for _, v := range m.Variants {
			fmt.Fprintf(w, "\t%s", v.Text)
		}
		fmt.Fprintln(w)
	}
	return nil
}
