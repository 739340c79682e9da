// Copyright 2026 StudyReel Authors
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
	"strconv"
	"strings"
	"time"

	"github.com/studyreel/studyreel"
	"github.com/studyreel/studyreel/ai"
	"github.com/studyreel/studyreel/core"
	"github.com/studyreel/studyreel/reembed"
	"github.com/studyreel/studyreel/search"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "studyreel",
		Usage: "Match learning-material concepts to video moments",
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
				Name:   "add",
				Usage:  "Add a learning material from text or a file",
				Action: addCommand,
				Flags: append(append(databaseFlags(), serviceFlags()...),
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Material title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "text",
						Usage: "Material text content",
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Read material text content from a file",
					},
					&cli.BoolFlag{
						Name:  "process",
						Usage: "Run the matching pipeline immediately after adding",
					},
				),
			},
			{
				Name:      "process",
				Usage:     "Run the matching pipeline for a material",
				ArgsUsage: "<material-id>",
				Action:    processCommand,
				Flags:     append(databaseFlags(), serviceFlags()...),
			},
			{
				Name:      "status",
				Usage:     "Show a material's processing status",
				ArgsUsage: "<material-id>",
				Action:    statusCommand,
				Flags:     databaseFlags(),
			},
			{
				Name:      "concepts",
				Usage:     "List concepts extracted from a material",
				ArgsUsage: "<material-id>",
				Action:    conceptsCommand,
				Flags:     databaseFlags(),
			},
			{
				Name:      "matches",
				Usage:     "List video moments matched to a concept",
				ArgsUsage: "<concept-id>",
				Action:    matchesCommand,
				Flags:     databaseFlags(),
			},
			{
				Name:      "search",
				Usage:     "Search stored transcript chunks by free text",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(append(databaseFlags(), serviceFlags()...),
					&cli.Float64Flag{
						Name:  "min-similarity",
						Usage: "Minimum cosine similarity for a hit",
						Value: float64(search.DefaultMinSimilarity),
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: search.DefaultLimit,
					},
				),
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all transcript chunks and concepts",
				Action: reembedCommand,
				Flags: append(append(databaseFlags(), serviceFlags()...),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func databaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
	}
}

func serviceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL (empty uses the deterministic fallback)",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "text-embedding-3-small",
		},
		&cli.StringFlag{
			Name:  "extractor-url",
			Usage: "Concept extraction service base URL (empty uses the local splitter)",
		},
		&cli.StringFlag{
			Name:    "youtube-api-key",
			Usage:   "YouTube Data API key (empty uses the deterministic stub)",
			EnvVars: []string{"YOUTUBE_API_KEY"},
		},
		&cli.StringFlag{
			Name:  "transcript-url",
			Usage: "Transcript service base URL (empty uses the deterministic stub)",
		},
	}
}

// openDatabase assembles a Database from the command's flags.
// Service flags are optional; commands that only touch storage pass none.
func openDatabase(c *cli.Context) (*studyreel.Database, error) {
	opts := []studyreel.DatabaseOption{
		studyreel.WithAIConfig(ai.NewConfig(
			ai.WithEmbeddingHost(c.String("embedding-host")),
			ai.WithEmbeddingModel(c.String("embedding-model")),
			ai.WithExtractorBaseURL(c.String("extractor-url")),
		)),
	}
	if key := c.String("youtube-api-key"); key != "" {
		opts = append(opts, studyreel.WithYouTubeAPIKey(key))
	}
	if url := c.String("transcript-url"); url != "" {
		opts = append(opts, studyreel.WithTranscriptBaseURL(url))
	}

	db, err := studyreel.NewDatabase(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func idArg(c *cli.Context) (core.ID, error) {
	raw := c.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("an ID argument is required")
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ID %q: %w", raw, err)
	}
	return core.ID(parsed), nil
}

func addCommand(c *cli.Context) error {
	ctx := context.Background()

	text := c.String("text")
	if file := c.String("file"); file != "" {
		if text != "" {
			return fmt.Errorf("use either --text or --file, not both")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read material file: %w", err)
		}
		text = string(data)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	material, err := db.MaterialRepository().AddMaterial(ctx, &core.Material{
		Title:       c.String("title"),
		TextContent: text,
	})
	if err != nil {
		return fmt.Errorf("failed to add material: %w", err)
	}

	fmt.Printf("Added material %d: %s\n", material.Id, material.Title)

	if c.Bool("process") {
		p, err := db.NewPipeline()
		if err != nil {
			return fmt.Errorf("failed to create pipeline: %w", err)
		}
		if err := p.Process(ctx, material.Id); err != nil {
			return fmt.Errorf("processing failed: %w", err)
		}
		fmt.Printf("Material %d is ready\n", material.Id)
	}
	return nil
}

func processCommand(c *cli.Context) error {
	ctx := context.Background()

	materialID, err := idArg(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := db.NewPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	if err := p.Process(ctx, materialID); err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	material, err := db.MaterialRepository().GetMaterial(ctx, materialID)
	if err != nil {
		return err
	}
	fmt.Printf("Material %d is %s\n", material.Id, material.Status)
	return nil
}

func statusCommand(c *cli.Context) error {
	ctx := context.Background()

	materialID, err := idArg(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	material, err := db.MaterialRepository().GetMaterial(ctx, materialID)
	if err != nil {
		return fmt.Errorf("failed to load material: %w", err)
	}

	fmt.Printf("Material %d: %s\n", material.Id, material.Title)
	fmt.Printf("  Status:   %s\n", material.Status)
	fmt.Printf("  Added:    %s\n", material.InsertedAt.Format(time.RFC3339))
	fmt.Printf("  Updated:  %s\n", material.UpdatedAt.Format(time.RFC3339))
	return nil
}

func conceptsCommand(c *cli.Context) error {
	ctx := context.Background()

	materialID, err := idArg(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	concepts, err := db.ConceptRepository().GetConceptsByMaterial(ctx, materialID)
	if err != nil {
		return fmt.Errorf("failed to load concepts: %w", err)
	}

	if len(concepts) == 0 {
		fmt.Println("No concepts found")
		return nil
	}

	for _, concept := range concepts {
		fmt.Printf("%d\t[%d]\t%s\n", concept.Id, concept.Priority, concept.Title)
	}
	return nil
}

func matchesCommand(c *cli.Context) error {
	ctx := context.Background()

	conceptID, err := idArg(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	matches, err := db.VideoRepository().GetMatchesByConcept(ctx, conceptID)
	if err != nil {
		return fmt.Errorf("failed to load matches: %w", err)
	}

	if len(matches) == 0 {
		fmt.Println("No matches found")
		return nil
	}

	chunks, videos, err := chunkIndex(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range matches {
		chunk, ok := chunks[m.ChunkId]
		if !ok {
			fmt.Printf("%.3f\tchunk %d (missing)\n", m.Similarity, m.ChunkId)
			continue
		}
		video := videos[chunk.VideoId]
		fmt.Printf("%.3f\t%s\t%s-%s\t%s\n",
			m.Similarity, video.Title,
			formatSeconds(chunk.StartSeconds), formatSeconds(chunk.EndSeconds),
			m.Rationale)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher(
		search.WithMinSimilarity(float32(c.Float64("min-similarity"))),
		search.WithLimit(c.Int("limit")),
	)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	results, err := searcher.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No moments found")
		return nil
	}

	for _, result := range results {
		fmt.Printf("%.3f\t%s\t%s-%s\n",
			result.Score, result.Video.Title,
			formatSeconds(result.Chunk.StartSeconds), formatSeconds(result.Chunk.EndSeconds))
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	config := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	if host := c.String("embedding-host"); host != "" {
		fmt.Fprintf(os.Stderr, "Embedding host: %s\n", host)
		fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	} else {
		fmt.Fprintln(os.Stderr, "Embedding host: (deterministic fallback)")
	}
	fmt.Fprintln(os.Stderr)

	reembedder := db.NewReembedder(config, os.Stderr)
	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

// chunkIndex loads every stored chunk and video keyed by ID for display.
func chunkIndex(ctx context.Context, db *studyreel.Database) (map[core.ID]*core.TranscriptChunk, map[core.ID]*core.Video, error) {
	videos, err := db.VideoRepository().ListVideos(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list videos: %w", err)
	}

	chunkByID := make(map[core.ID]*core.TranscriptChunk)
	videoByID := make(map[core.ID]*core.Video, len(videos))
	for _, video := range videos {
		videoByID[video.Id] = video
		chunks, err := db.VideoRepository().GetChunksByVideo(ctx, video.Id)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list chunks: %w", err)
		}
		for _, chunk := range chunks {
			chunkByID[chunk.Id] = chunk
		}
	}
	return chunkByID, videoByID, nil
}

func formatSeconds(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	minutes := int(d.Minutes())
	return fmt.Sprintf("%02d:%02d", minutes, int(d.Seconds())-minutes*60)
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
