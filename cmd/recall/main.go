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
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/ai/openai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/doctree"
	"github.com/poiesic/recall/reembed"
	"github.com/poiesic/recall/search"
	"github.com/poiesic/recall/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "recall",
		Usage: "Semantic retrieval for rich-document notes",
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
				Name:   "search",
				Usage:  "Search an owner's notes by meaning",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "owner",
						Aliases:  []string{"o"},
						Usage:    "Owner whose notes are searched",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Query text",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Minimum cosine similarity for a match",
						Value: 0.6,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: search.DefaultLimit,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Batch-embed an owner's notes",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "owner",
						Aliases:  []string{"o"},
						Usage:    "Owner whose notes are embedded",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "full",
						Usage: "Re-embed every note, not just notes missing an embedding",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Number of notes embedded concurrently per chunk",
						Value: 5,
					},
					&cli.DurationFlag{
						Name:  "chunk-delay",
						Usage: "Pause between chunks",
						Value: 1 * time.Second,
					},
					&cli.IntFlag{
						Name:  "min-content-len",
						Usage: "Minimum extracted text length worth embedding",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for provider calls",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N notes",
						Value: 10,
					},
				},
			},
			{
				Name:   "add",
				Usage:  "Add a note and embed it",
				Action: addCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "owner",
						Aliases:  []string{"o"},
						Usage:    "Owner of the new note",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Note title",
					},
					&cli.StringFlag{
						Name:  "content",
						Usage: "Note content as rich-document JSON or plain text",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL (omit to skip embedding)",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name (omit to skip embedding)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	store, err := badger.NewNoteStore(backend)
	if err != nil {
		return fmt.Errorf("failed to create note store: %w", err)
	}
	defer store.Close()

	embedder, err := newEmbedder(c)
	if err != nil {
		return err
	}

	searcher, err := search.NewSearcher(store, embedder)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	result, err := searcher.Search(ctx, c.String("owner"), c.String("query"),
		float32(c.Float64("threshold")), c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(result.Results) == 0 {
		fmt.Printf("No matches (%d notes scored)\n", result.TotalCandidates)
		return nil
	}

	fmt.Printf("%d of %d matches (%d notes scored)\n\n",
		len(result.Results), result.TotalFound, result.TotalCandidates)
	for i, match := range result.Results {
		fmt.Printf("%2d. [%.3f] %s (id %d)\n", i+1, match.Score, match.Title, match.Id)
	}

	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	store, err := badger.NewNoteStore(backend)
	if err != nil {
		return fmt.Errorf("failed to create note store: %w", err)
	}
	defer store.Close()

	embedder, err := newEmbedder(c)
	if err != nil {
		return err
	}

	config := &reembed.Config{
		ChunkSize:      c.Int("chunk-size"),
		ChunkDelay:     c.Duration("chunk-delay"),
		MinContentLen:  c.Int("min-content-len"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		ReportInterval: c.Int("report-interval"),
	}
	if config.ChunkSize <= 0 {
		return fmt.Errorf("chunk-size must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	coordinator, err := reembed.NewCoordinator(store, embedder, config, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create coordinator: %w", err)
	}
	defer coordinator.Release()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	summary, err := coordinator.Run(ctx, c.String("owner"), c.Bool("full"))
	if err != nil {
		return fmt.Errorf("embedding run failed: %w", err)
	}

	for _, outcome := range summary.Outcomes {
		if outcome.Status != reembed.StatusProcessed {
			fmt.Fprintf(os.Stderr, "note %d: %s (%s)\n", outcome.Id, outcome.Status, outcome.Detail)
		}
	}

	return nil
}

func addCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	store, err := badger.NewNoteStore(backend)
	if err != nil {
		return fmt.Errorf("failed to create note store: %w", err)
	}
	defer store.Close()

	content := c.String("content")
	if content != "" && !strings.HasPrefix(strings.TrimSpace(content), "{") {
		// Plain text: wrap it in a single-paragraph document
		encoded, err := doctree.Encode(&doctree.Node{
			Type: "doc",
			Content: []doctree.Node{
				{Type: "paragraph", Content: []doctree.Node{{Type: "text", Text: content}}},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to encode content: %w", err)
		}
		content = string(encoded)
	}

	added, err := store.AddNotes(ctx, &core.Note{
		Owner:   c.String("owner"),
		Title:   c.String("title"),
		Content: content,
	})
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}
	note := added[0]
	fmt.Printf("Added note %d\n", note.Id)

	// Embed right away when an embedding endpoint was given
	if c.String("embedding-model") == "" {
		return nil
	}

	embedder, err := newEmbedder(c)
	if err != nil {
		return err
	}

	text := doctree.ExtractJSON([]byte(note.Content))
	if note.Title != "" {
		text = strings.TrimSpace(note.Title + "\n" + text)
	}
	if ai.IsBlank(text) {
		fmt.Println("Note has no extractable text; skipping embedding")
		return nil
	}

	embedding, err := embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embedding failed: %w", err)
	}
	if _, err := store.UpdateEmbedding(ctx, note.Id, embedding.Vector); err != nil {
		return fmt.Errorf("failed to store embedding: %w", err)
	}
	fmt.Printf("Embedded note %d (%d dimensions, %d tokens)\n",
		note.Id, len(embedding.Vector), embedding.Tokens)

	return nil
}

func newEmbedder(c *cli.Context) (ai.Embedder, error) {
	host := c.String("embedding-host")
	if host == "" {
		host = "http://localhost:11434/v1"
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(host),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	return embedder, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
