// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.



package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/poiesic/suggestor"
	"github.com/poiesic/suggestor/config"
	"github.com/poiesic/suggestor/learning"
	"github.com/poiesic/suggestor/reindex"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "suggestor",
		Usage: "Adaptive query suggestions learned from search history",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log output format (text, json, logfmt)",
				Value: "text",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML configuration file",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB term library directory",
			},
			&cli.StringFlag{
				Name:  "index",
				Usage: "Path to the document index (in-memory when empty)",
			},
			&cli.BoolFlag{
				Name:  "in-memory",
				Usage: "Keep the term library in memory only",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "record",
				Usage:     "Record a search in the term library",
				ArgsUsage: "<query>",
				Action:    recordCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "user",
						Usage: "User the search is attributed to",
					},
				},
			},
			{
				Name:   "learn",
				Usage:  "Record every line of a search log",
				Action: learnCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Search log, one query per line (stdin when omitted)",
					},
				},
			},
			{
				Name:      "suggest",
				Usage:     "Print suggestions for a partial query",
				ArgsUsage: "<query>",
				Action:    suggestCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "max",
						Aliases: []string{"n"},
						Usage:   "Maximum number of suggestions (configured default when 0)",
					},
					&cli.StringFlag{
						Name:  "scope",
						Usage: "Restrict document completions to a scope",
					},
					&cli.BoolFlag{
						Name:  "detailed",
						Usage: "Show score, source and category for each suggestion",
					},
				},
			},
			{
				Name:   "inspect",
				Usage:  "List learned terms and library statistics",
				Action: inspectCommand,
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  "min-frequency",
						Usage: "Only list terms at or above this frequency",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of terms to list (all when 0)",
						Value: 50,
					},
				},
			},
			{
				Name:   "top",
				Usage:  "List the most frequent searches",
				Action: topCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of searches to list",
						Value: 10,
					},
				},
			},
			{
				Name:   "reset-stats",
				Usage:  "Clear per-query search counts",
				Action: resetStatsCommand,
			},
			{
				Name:   "sweep",
				Usage:  "Remove rarely used, stale terms",
				Action: sweepCommand,
			},
			{
				Name:   "index",
				Usage:  "Load a filename listing into the document index",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Listing of filenames, optionally prefixed by scope and a tab (stdin when omitted)",
					},
					&cli.StringFlag{
						Name:  "scope",
						Usage: "Scope assigned to filenames listed without one",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents to index in each batch",
						Value: reindex.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N documents",
						Value: 500,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed batches",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 200 * time.Millisecond,
					},
				},
			},
		},
	}
}

// loadConfig builds the engine configuration from --config and the storage
// flags, flags taking precedence over the file.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var opts []config.ConfigOption
	if c.IsSet("db") {
		opts = append(opts, config.WithStoragePath(c.String("db")))
	}
	if c.IsSet("index") {
		opts = append(opts, config.WithIndexPath(c.String("index")))
	}
	if c.Bool("in-memory") {
		opts = append(opts, config.WithInMemory(true))
	}

	if path := c.String("config"); path != "" {
		return config.Load(path, opts...)
	}
	cfg := config.NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openEngine(c *cli.Context) (*suggestor.Engine, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	engine, err := suggestor.NewEngine(cfg, suggestor.WithLogger(slog.Default()))
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}
	return engine, nil
}

func queryArg(c *cli.Context) (string, error) {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return "", errors.New("query is required")
	}
	return query, nil
}

// openInput returns the named file, or stdin when name is empty.
func openInput(c *cli.Context, name string) (io.ReadCloser, error) {
	if name == "" {
		return io.NopCloser(c.App.Reader), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	return f, nil
}

func recordCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	var opts []learning.RecordOption
	if user := c.String("user"); user != "" {
		opts = append(opts, learning.WithUser(user))
	}
	engine.Learn(c.Context, query, opts...)
	return nil
}

func learnCommand(c *cli.Context) error {
	in, err := openInput(c, c.String("file"))
	if err != nil {
		return err
	}
	defer in.Close()

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	var learned int
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		engine.Learn(c.Context, line)
		learned++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading search log: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Learned %d searches\n", learned)
	return nil
}

func suggestCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	var opts []suggestor.SuggestOption
	if n := c.Int("max"); n > 0 {
		opts = append(opts, suggestor.WithMaxResults(n))
	}
	if scope := c.String("scope"); scope != "" {
		opts = append(opts, suggestor.WithScope(scope))
	}

	if !c.Bool("detailed") {
		for _, text := range engine.Suggest(c.Context, query, opts...) {
			fmt.Fprintln(c.App.Writer, text)
		}
		return nil
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tSOURCE\tCATEGORY\tSUGGESTION\tNOTE")
	for _, s := range engine.SuggestDetailed(c.Context, query, opts...) {
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\t%s\n", s.Score, s.Kind, s.Category, s.Text, s.ContextNote)
	}
	return w.Flush()
}

func inspectCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	report, err := engine.InspectLibrary(c.Context, c.Float64("min-frequency"), c.Int("limit"))
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Total searches: %d\n", report.Stats.TotalSearches)
	fmt.Fprintf(c.App.Writer, "Unique terms: %d\n", report.Stats.UniqueTermCount)
	if !report.Stats.LastUpdatedAt.IsZero() {
		fmt.Fprintf(c.App.Writer, "Last updated: %s\n", report.Stats.LastUpdatedAt.Format(time.RFC3339))
	}
	fmt.Fprintln(c.App.Writer)

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FREQUENCY\tLAST USED\tTERM\tVARIANTS")
	for _, term := range report.Terms {
		fmt.Fprintf(w, "%.1f\t%s\t%s\t%s\n",
			term.Frequency,
			term.LastUsedAt.Format(time.DateOnly),
			term.Key,
			strings.Join(term.DisplayVariants, ", "))
	}
	return w.Flush()
}

func topCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	top, err := engine.TopSearches(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COUNT\tLAST SEARCHED\tQUERY")
	for _, sc := range top {
		fmt.Fprintf(w, "%d\t%s\t%s\n", sc.Count, sc.LastSearchedAt.Format(time.RFC3339), sc.Query)
	}
	return w.Flush()
}

func resetStatsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.ResetStatistics(c.Context); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	fmt.Fprintln(c.App.Writer, "Search statistics cleared")
	return nil
}

func sweepCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	result, err := engine.Sweep(c.Context)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Scanned %d terms, removed %d, %d remaining\n", result.Scanned, result.Removed, result.Remaining)
	return nil
}

func indexCommand(c *cli.Context) error {
	cfg := &reindex.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		MaxRetryDelay:  reindex.DefaultConfig().MaxRetryDelay,
		Scope:          c.String("scope"),
	}

	// Validate config
	if cfg.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if cfg.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if cfg.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	in, err := openInput(c, c.String("file"))
	if err != nil {
		return err
	}
	defer in.Close()

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	reindexer, err := engine.NewReindexer(cfg, c.App.ErrWriter)
	if err != nil {
		return err
	}

	result, err := reindexer.Run(c.Context, in, 0)
	if err != nil {
		return err
	}
	count, err := engine.DocumentCount()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Indexed %d documents in %s (%d total)\n", result.Indexed, result.Elapsed.Round(time.Millisecond), count)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	var formatter log.Formatter
	switch strings.ToLower(c.String("log-format")) {
	case "", "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return fmt.Errorf("invalid log format %q: must be one of text, json, logfmt", c.String("log-format"))
	}

	handler := log.NewWithOptions(c.App.ErrWriter, log.Options{
		Level:           log.Level(level),
		ReportTimestamp: true,
		Formatter:       formatter,
		Prefix:          "suggestor",
	})
	slog.SetDefault(slog.New(handler))

	return nil
}
