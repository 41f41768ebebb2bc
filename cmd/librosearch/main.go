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
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/librosearch/ai"
	"github.com/poiesic/librosearch/ai/openai"
	"github.com/poiesic/librosearch/backfill"
	"github.com/poiesic/librosearch/search"
	"github.com/poiesic/librosearch/server"
	"github.com/poiesic/librosearch/session"
	"github.com/poiesic/librosearch/storage/postgres"
)

func main() {
	// Missing .env is fine; flags and the real environment still apply.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "librosearch",
		Usage: "Conversational search service for an art book catalog",
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
				Usage:  "Run the HTTP search API",
				Action: serveCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   ":8080",
						EnvVars: []string{"LIBROSEARCH_ADDR"},
					},
					&cli.StringFlag{
						Name:    "session-driver",
						Usage:   "Session store driver (memory, redis, badger)",
						Value:   "memory",
						EnvVars: []string{"SESSION_DRIVER"},
					},
					&cli.StringFlag{
						Name:    "redis-url",
						Usage:   "Redis connection URL for the redis session driver",
						EnvVars: []string{"REDIS_URL"},
					},
					&cli.StringFlag{
						Name:    "badger-path",
						Usage:   "Database directory for the badger session driver (empty runs in memory)",
						EnvVars: []string{"BADGER_PATH"},
					},
					&cli.DurationFlag{
						Name:    "session-ttl",
						Usage:   "Idle session lifetime",
						Value:   24 * time.Hour,
						EnvVars: []string{"SESSION_TTL"},
					},
					&cli.IntFlag{
						Name:  "semantic-limit",
						Usage: "Result count for thematic searches",
						Value: 10,
					},
				),
			},
			{
				Name:   "backfill",
				Usage:  "Populate missing embeddings and cover hashes in the catalog",
				Action: backfillCommand,
				Flags: append(commonFlags(),
					&cli.BoolFlag{
						Name:  "embeddings",
						Usage: "Backfill missing embedding vectors",
					},
					&cli.BoolFlag{
						Name:  "covers",
						Usage: "Backfill missing cover image hashes",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of books to process in each batch",
						Value: 64,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Concurrent cover downloads (0 picks a CPU-based default)",
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for embedding calls",
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

// commonFlags returns the flags both commands share: database and AI
// service endpoints.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "database-url",
			Aliases:  []string{"d"},
			Usage:    "PostgreSQL connection string",
			Required: true,
			EnvVars:  []string{"DATABASE_URL"},
		},
		&cli.StringFlag{
			Name:    "ai-host",
			Usage:   "OpenAI-compatible service host URL",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"AI_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL (defaults to ai-host)",
			EnvVars: []string{"EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "chat-model",
			Usage:   "Model for classification and narration",
			Value:   "gpt-4o-mini",
			EnvVars: []string{"CHAT_MODEL"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Model for text embeddings",
			Value:   "text-embedding-3-small",
			EnvVars: []string{"EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for the AI services",
			Value:   "none",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
	}
}

func serveCommand(c *cli.Context) error {
	ctx := context.Background()

	repo, err := postgres.New(ctx, c.String("database-url"))
	if err != nil {
		return fmt.Errorf("opening catalog database: %w", err)
	}
	defer repo.Close()

	provider, err := newProvider(c)
	if err != nil {
		return err
	}
	defer provider.Close()

	sessions, err := newSessionStore(c)
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer sessions.Close()

	searcher, err := search.NewSearcher(repo, sessions, provider,
		search.WithSemanticLimit(c.Int("semantic-limit")),
	)
	if err != nil {
		return fmt.Errorf("creating search engine: %w", err)
	}

	srv, err := server.New(searcher, server.WithAddr(c.String("addr")))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Serve until interrupted, then drain in-flight requests.
	stopCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", c.String("addr"))
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-stopCtx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func backfillCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runEmbeddings := c.Bool("embeddings")
	runCovers := c.Bool("covers")
	if !runEmbeddings && !runCovers {
		// No selection means both.
		runEmbeddings = true
		runCovers = true
	}

	repo, err := postgres.New(ctx, c.String("database-url"))
	if err != nil {
		return fmt.Errorf("opening catalog database: %w", err)
	}
	defer repo.Close()

	provider, err := newProvider(c)
	if err != nil {
		return err
	}
	defer provider.Close()

	opts := []backfill.Option{
		backfill.WithBatchSize(c.Int("batch-size")),
		backfill.WithRetryPolicy(c.Int("max-retries"), c.Duration("retry-delay")),
	}
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, backfill.WithPoolSize(size))
	}

	filler, err := backfill.NewBackfiller(repo, provider, opts...)
	if err != nil {
		return fmt.Errorf("creating backfiller: %w", err)
	}
	defer filler.Close()

	if runEmbeddings {
		n, err := filler.Embeddings(ctx)
		if err != nil {
			return fmt.Errorf("embedding backfill failed after %d books: %w", n, err)
		}
		fmt.Fprintf(os.Stderr, "Embedded %d books\n", n)
	}
	if runCovers {
		n, err := filler.CoverHashes(ctx)
		if err != nil {
			return fmt.Errorf("cover hash backfill failed after %d books: %w", n, err)
		}
		fmt.Fprintf(os.Stderr, "Hashed %d covers\n", n)
	}
	return nil
}

// newProvider builds the AI provider from the shared endpoint flags.
func newProvider(c *cli.Context) (ai.Provider, error) {
	embeddingHost := c.String("embedding-host")
	if embeddingHost == "" {
		embeddingHost = c.String("ai-host")
	}

	aiConfig := ai.NewConfig(
		ai.WithChatHost(c.String("ai-host")),
		ai.WithEmbeddingHost(embeddingHost),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithAPIKey(c.String("api-key")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		return nil, fmt.Errorf("creating AI provider: %w", err)
	}
	return provider, nil
}

// newSessionStore builds the session store selected by the driver flag.
func newSessionStore(c *cli.Context) (session.Store, error) {
	driver := session.Driver(strings.ToLower(c.String("session-driver")))
	opts := []session.StoreOption{session.WithTTL(c.Duration("session-ttl"))}

	switch driver {
	case session.DriverMemory:
	case session.DriverRedis:
		redisOpts, err := redis.ParseURL(c.String("redis-url"))
		if err != nil {
			return nil, fmt.Errorf("invalid redis-url: %w", err)
		}
		opts = append(opts, session.WithRedisClient(redis.NewClient(redisOpts)))
	case session.DriverBadger:
		opts = append(opts, session.WithBadgerPath(c.String("badger-path")))
	default:
		return nil, fmt.Errorf("unknown session driver %q", driver)
	}

	return session.NewStore(driver, opts...)
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
