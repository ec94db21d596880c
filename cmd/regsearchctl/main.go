package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/2025DataEdu/project-5/internal/app"
	"github.com/2025DataEdu/project-5/internal/config"
	"github.com/2025DataEdu/project-5/internal/domain"
	logpkg "github.com/2025DataEdu/project-5/internal/logger"
	"github.com/2025DataEdu/project-5/internal/version"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "regsearchctl",
		Usage:   "Maintenance commands for the regulation search service",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "Configuration environment (local, prod)",
				Value:   config.GetEnv(),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "embeddings",
				Usage: "Manage stored document embeddings",
				Subcommands: []*cli.Command{
					{
						Name:   "generate",
						Usage:  "Embed registry rows and PDF documents that have no embedding yet",
						Action: generateCommand,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "refresh-stale",
								Usage: "Re-embed documents whose text changed since they were embedded",
							},
						},
					},
					{
						Name:   "stats",
						Usage:  "Show embedding counts by type and department",
						Action: statsCommand,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Run a hybrid search and print the resulting state",
				ArgsUsage: "<query>",
				Action:    searchCommand,
			},
			{
				Name:  "statistics",
				Usage: "Manage popular document statistics",
				Subcommands: []*cli.Command{
					{
						Name:   "refresh",
						Usage:  "Recompute popular statistics from document views",
						Action: refreshCommand,
					},
					{
						Name:   "popular",
						Usage:  "Print the top popular documents",
						Action: popularCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "department",
								Usage: "Only documents of this department",
							},
						},
					},
				},
			},
		},
	}
}

// withApp loads the configuration, builds the services and runs fn.
func withApp(c *cli.Context, adjust func(*config.Config), fn func(ctx context.Context, a *app.App) error) error {
	env := c.String("env")
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if adjust != nil {
		adjust(&cfg)
	}

	level := c.String("log-level")
	if level == "" {
		level = cfg.Logging.Level
	}
	logger, err := logpkg.NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	start := time.Now()
	err = fn(ctx, a)
	logger.Debug("Command finished", zap.String("command", c.Command.FullName()), zap.Duration("duration", time.Since(start)))
	return err
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func generateCommand(c *cli.Context) error {
	adjust := func(cfg *config.Config) {
		if c.Bool("refresh-stale") {
			cfg.Indexing.RefreshStale = true
		}
	}
	return withApp(c, adjust, func(ctx context.Context, a *app.App) error {
		sum, err := a.Indexer.Generate(ctx)
		if err != nil {
			return fmt.Errorf("generate embeddings: %w", err)
		}
		return printJSON(c, sum)
	})
}

func statsCommand(c *cli.Context) error {
	return withApp(c, nil, func(ctx context.Context, a *app.App) error {
		stats, err := a.Indexer.Stats(ctx)
		if err != nil {
			return fmt.Errorf("embedding stats: %w", err)
		}
		return printJSON(c, stats)
	})
}

func searchCommand(c *cli.Context) error {
	q := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if q == "" {
		return fmt.Errorf("query is required")
	}
	return withApp(c, nil, func(ctx context.Context, a *app.App) error {
		out, err := a.Hybrid.Search(ctx, domain.NewSession(time.Now()), q)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		return printJSON(c, out)
	})
}

func refreshCommand(c *cli.Context) error {
	return withApp(c, nil, func(ctx context.Context, a *app.App) error {
		n, err := a.Analytics.RefreshPopularStatistics(ctx)
		if err != nil {
			return fmt.Errorf("refresh popular statistics: %w", err)
		}
		_, err = fmt.Fprintf(c.App.Writer, "updated %d documents\n", n)
		return err
	})
}

func popularCommand(c *cli.Context) error {
	return withApp(c, nil, func(ctx context.Context, a *app.App) error {
		entries, err := a.Analytics.PopularStatistics(ctx, c.String("department"))
		if err != nil {
			return fmt.Errorf("popular statistics: %w", err)
		}
		return printJSON(c, entries)
	})
}
