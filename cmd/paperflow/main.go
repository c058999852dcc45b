// Copyright 2026 Constellar Labs
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
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/constellar/paperflow/ai"
	"github.com/constellar/paperflow/ai/openai"
	"github.com/constellar/paperflow/core"
	"github.com/constellar/paperflow/fetch"
	"github.com/constellar/paperflow/index"
	"github.com/constellar/paperflow/ingestion"
	"github.com/constellar/paperflow/redensify"
	"github.com/constellar/paperflow/search"
	"github.com/constellar/paperflow/server"
	"github.com/constellar/paperflow/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "paperflow",
		Usage: "Academic paper ingestion and densification pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the ingestion HTTP API",
				Action: serveCommand,
				Flags: append(pipelineFlags(),
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   ":8080",
						EnvVars: []string{"PAPERFLOW_ADDR"},
					},
				),
			},
			{
				Name:      "ingest",
				Usage:     "Ingest a single paper synchronously",
				ArgsUsage: "<arxiv-id-or-url>",
				Action:    ingestCommand,
				Flags: append(pipelineFlags(),
					&cli.StringFlag{
						Name:  "title",
						Usage: "Paper title",
					},
					&cli.StringFlag{
						Name:  "collection",
						Usage: "Collection id to tag the paper with",
					},
				),
			},
			{
				Name:      "status",
				Usage:     "Show the record for a paper",
				ArgsUsage: "<arxiv-id-or-url>",
				Action:    statusCommand,
				Flags:     []cli.Flag{dbFlag()},
			},
			{
				Name:   "list",
				Usage:  "List all paper records",
				Action: listCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:      "search",
				Usage:     "Search stored papers by keyword",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:  "max-hits",
						Usage: "Maximum number of results",
						Value: 10,
					},
				},
			},
			{
				Name:   "redensify",
				Usage:  "Rebuild densified markdown for all complete papers",
				Action: redensifyCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:    "ai-host",
						Usage:   "OpenAI-compatible chat API base URL",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"PAPERFLOW_AI_HOST"},
					},
					&cli.StringFlag{
						Name:    "ai-key",
						Usage:   "API key for the chat API",
						EnvVars: []string{"PAPERFLOW_AI_KEY"},
					},
					&cli.StringFlag{
						Name:     "densify-model",
						Usage:    "Model used for section densification",
						Required: true,
						EnvVars:  []string{"PAPERFLOW_DENSIFY_MODEL"},
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N papers",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed calls",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.IntFlag{
						Name:  "min-section-length",
						Usage: "Skip densification for shorter section bodies",
						Value: 100,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
		EnvVars:  []string{"PAPERFLOW_DB"},
	}
}

func pipelineFlags() []cli.Flag {
	return []cli.Flag{
		dbFlag(),
		&cli.StringFlag{
			Name:    "cache-dir",
			Usage:   "Directory for cached PDF downloads (empty disables caching)",
			EnvVars: []string{"PAPERFLOW_CACHE_DIR"},
		},
		&cli.StringFlag{
			Name:    "ai-host",
			Usage:   "OpenAI-compatible chat API base URL",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"PAPERFLOW_AI_HOST"},
		},
		&cli.StringFlag{
			Name:    "ai-key",
			Usage:   "API key for the chat API",
			EnvVars: []string{"PAPERFLOW_AI_KEY"},
		},
		&cli.StringFlag{
			Name:     "convert-model",
			Usage:    "Model used for chunk-to-markdown conversion",
			Required: true,
			EnvVars:  []string{"PAPERFLOW_CONVERT_MODEL"},
		},
		&cli.StringFlag{
			Name:    "densify-model",
			Usage:   "Model used for section densification (empty disables densification)",
			EnvVars: []string{"PAPERFLOW_DENSIFY_MODEL"},
		},
		&cli.StringFlag{
			Name:    "index-url",
			Usage:   "Search index service base URL (empty disables indexing)",
			EnvVars: []string{"PAPERFLOW_INDEX_URL"},
		},
		&cli.StringFlag{
			Name:    "index-key",
			Usage:   "API key for the search index service",
			EnvVars: []string{"PAPERFLOW_INDEX_KEY"},
		},
		&cli.StringFlag{
			Name:    "container-tag",
			Usage:   "Container tag scoping index documents",
			Value:   "paperflow",
			EnvVars: []string{"PAPERFLOW_CONTAINER_TAG"},
		},
		&cli.IntFlag{
			Name:  "pages-per-chunk",
			Usage: "Pages grouped into one conversion chunk",
			Value: 5,
		},
		&cli.IntFlag{
			Name:  "convert-concurrency",
			Usage: "Concurrent chunk conversion calls",
			Value: 8,
		},
		&cli.IntFlag{
			Name:  "densify-concurrency",
			Usage: "Concurrent section densification calls",
			Value: 4,
		},
		&cli.DurationFlag{
			Name:  "call-timeout",
			Usage: "Timeout for each model call",
			Value: 2 * time.Minute,
		},
	}
}

// buildPipeline wires the storage, fetch, AI and index collaborators from
// the command flags. The returned cleanup must run on exit.
func buildPipeline(c *cli.Context) (*ingestion.Pipeline, func(), error) {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo, err := badger.NewPaperRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("failed to create repository: %w", err)
	}
	cleanup := func() {
		repo.Close()
	}

	fetcher, err := fetch.NewHTTPFetcher(c.String("cache-dir"))
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create fetcher: %w", err)
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithAPIKey(c.String("ai-key")),
		ai.WithConvertModel(c.String("convert-model")),
		ai.WithDensifyModel(c.String("densify-model")),
	)
	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create AI provider: %w", err)
	}

	opts := []ingestion.Option{
		ingestion.WithPagesPerChunk(c.Int("pages-per-chunk")),
		ingestion.WithConvertConcurrency(c.Int("convert-concurrency")),
		ingestion.WithDensifyConcurrency(c.Int("densify-concurrency")),
		ingestion.WithCallTimeout(c.Duration("call-timeout")),
	}
	if indexURL := c.String("index-url"); indexURL != "" {
		client := index.NewClient(indexURL, c.String("index-key"), c.String("container-tag"))
		opts = append(opts, ingestion.WithIndexService(client))
	}

	pipeline, err := ingestion.NewPipeline(repo, fetcher, provider, opts...)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create pipeline: %w", err)
	}

	return pipeline, cleanup, nil
}

func serveCommand(c *cli.Context) error {
	pipeline, cleanup, err := buildPipeline(c)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := server.NewServer(pipeline)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(c.String("addr"))
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one arxiv id or URL argument")
	}

	pipeline, cleanup, err := buildPipeline(c)
	if err != nil {
		return err
	}
	defer cleanup()

	urlOrID := c.Args().First()
	result, err := pipeline.Process(c.Context, ingestion.Request{
		ArxivID:      urlOrID,
		PaperURL:     urlOrID,
		Title:        c.String("title"),
		CollectionID: c.String("collection"),
	})
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Outcome: %s\n", result.Outcome)
	if result.ArxivID == "" {
		return nil
	}

	record, err := pipeline.Status(c.Context, result.ArxivID)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Paper: %s\n", record.ArxivID)
	fmt.Fprintf(os.Stderr, "Status: %s\n", record.Status)
	fmt.Fprintf(os.Stderr, "Pages: %d, words: %d\n", record.PageCount, record.WordCount)
	return nil
}

func statusCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one arxiv id or URL argument")
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewPaperRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	arxivID, ok := core.ExtractArxivID(c.Args().First())
	if !ok {
		return fmt.Errorf("no arxiv identifier in %q", c.Args().First())
	}

	record, err := repo.GetPaper(c.Context, arxivID)
	if err != nil {
		return err
	}

	fmt.Printf("Paper:   %s\n", record.ArxivID)
	fmt.Printf("Title:   %s\n", record.Title)
	fmt.Printf("Status:  %s\n", record.Status)
	if record.ErrorMessage != "" {
		fmt.Printf("Error:   %s\n", record.ErrorMessage)
	}
	fmt.Printf("Pages:   %d\n", record.PageCount)
	fmt.Printf("Words:   %d\n", record.WordCount)
	fmt.Printf("Updated: %s\n", record.UpdatedAt.Format(time.RFC3339))
	return nil
}

func listCommand(c *cli.Context) error {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewPaperRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	records, err := repo.ListPapers(c.Context)
	if err != nil {
		return err
	}

	for _, record := range records {
		fmt.Printf("%-20s %-12s %6dw %4dp  %s\n",
			record.ArxivID, record.Status, record.WordCount, record.PageCount, record.Title)
	}
	fmt.Fprintf(os.Stderr, "%d papers\n", len(records))
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("expected a search query")
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewPaperRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	searcher, err := search.NewSearcher(repo)
	if err != nil {
		return err
	}

	query := strings.Join(c.Args().Slice(), " ")
	results, err := searcher.Find(c.Context, query, c.Int("max-hits"))
	if err != nil {
		return err
	}

	for _, result := range results {
		fmt.Printf("%6.2f  %-20s %s\n", result.Score, result.Record.ArxivID, result.Record.Title)
	}
	fmt.Fprintf(os.Stderr, "%d results\n", len(results))
	return nil
}

func redensifyCommand(c *cli.Context) error {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewPaperRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithAPIKey(c.String("ai-key")),
		// The conversion model is not used for redensification.
		ai.WithConvertModel("unused"),
		ai.WithDensifyModel(c.String("densify-model")),
	)
	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}

	config := &redensify.Config{
		ReportInterval:   c.Int("report-interval"),
		MaxRetries:       c.Int("max-retries"),
		RetryDelay:       c.Duration("retry-delay"),
		MinSectionLength: c.Int("min-section-length"),
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	redensifier, err := redensify.NewRedensifier(repo, provider.Densifier(), config, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Densify host: %s\n", c.String("ai-host"))
	fmt.Fprintf(os.Stderr, "Densify model: %s\n", c.String("densify-model"))
	fmt.Fprintln(os.Stderr)

	if err := redensifier.Run(c.Context); err != nil {
		return fmt.Errorf("redensification failed: %w", err)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
