package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/coregx/sufmatch/builder"
	"github.com/coregx/sufmatch/internal/concurrency"
	"github.com/coregx/sufmatch/matcher"
	"github.com/coregx/sufmatch/store"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "sufmatch: logger init:", err)
		os.Exit(exitCodeFor(err))
	}
	defer logger.Sync() //nolint:errcheck

	app := &cli.App{
		Name:      "sufmatch",
		Usage:     "match parts against masterParts by longest-suffix priority",
		ArgsUsage: "<partsFile> <masterPartsFile> <resultsFile>",
		Action: func(c *cli.Context) error {
			return run(c, logger)
		},
	}

	if err := app.Run(os.Args); err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintf(os.Stderr, "usage: %s %s\n", app.Name, app.ArgsUsage)
		} else {
			logger.Error("run failed", zap.Error(err))
		}
		os.Exit(exitCodeFor(err))
	}
}

func run(c *cli.Context, logger *zap.Logger) error {
	cfg := Config{
		PartsFile:       c.Args().Get(0),
		MasterPartsFile: c.Args().Get(1),
		ResultsFile:     c.Args().Get(2),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	start := time.Now()

	partsF, err := os.Open(cfg.PartsFile)
	if err != nil {
		return fmt.Errorf("%w: opening parts file: %v", store.ErrIO, err)
	}
	defer partsF.Close()

	masterF, err := os.Open(cfg.MasterPartsFile)
	if err != nil {
		return fmt.Errorf("%w: opening masterParts file: %v", store.ErrIO, err)
	}
	defer masterF.Close()

	s, err := store.Build(partsF, masterF)
	if err != nil {
		return err
	}
	defer s.Close()

	pool := concurrency.NewPool(store.MaxLen - store.MinLen)
	tables, err := builder.BuildAll(s, pool)
	if err != nil {
		return err
	}
	m := matcher.New(s, tables)

	resultsF, err := os.Create(cfg.ResultsFile)
	if err != nil {
		return fmt.Errorf("%w: creating results file: %v", store.ErrIO, err)
	}
	defer resultsF.Close()

	if err := writeResults(resultsF, s.PartsByOrigIndex(), m); err != nil {
		return fmt.Errorf("%w: writing results: %v", store.ErrIO, err)
	}

	stats := m.Stats()
	logger.Info("match run complete",
		zap.Duration("elapsed", time.Since(start)),
		zap.String("parts", humanize.Comma(int64(len(s.PartsByOrigIndex())))),
		zap.Int("hyphenated_suffix_matches", stats.HyphenatedSuffixMatches),
		zap.Int("no_hyphens_suffix_matches", stats.NoHyphensSuffixMatches),
		zap.Int("master_is_suffix_matches", stats.MasterIsSuffixMatches),
		zap.Int("unmatched", stats.Unmatched),
		zap.Uint64("fingerprint", m.Fingerprint()),
	)
	return nil
}

// exitCodeFor maps an error kind to a process exit code. A nil error
// exits 0; one that doesn't match a known kind exits 1.
func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var cfgErr *ConfigError
	switch {
	case errors.As(err, &cfgErr):
		return 2
	case errors.Is(err, store.ErrIO):
		return 3
	case errors.Is(err, store.ErrEmptyInput):
		return 4
	default:
		return 1
	}
}
