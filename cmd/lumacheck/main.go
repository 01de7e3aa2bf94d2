package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/lumaqa/lumacheck/internal/browser"
	internalcli "github.com/lumaqa/lumacheck/internal/cli"
	"github.com/lumaqa/lumacheck/internal/config"
	"github.com/lumaqa/lumacheck/internal/database"
	"github.com/lumaqa/lumacheck/internal/fixtures"
	"github.com/lumaqa/lumacheck/internal/logging"
	"github.com/lumaqa/lumacheck/internal/repository"
	"github.com/lumaqa/lumacheck/internal/routes"
	"github.com/lumaqa/lumacheck/internal/services"
	"github.com/lumaqa/lumacheck/internal/storefront"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var version = "0.1.0"

// newLogger builds the logger from the global --log-level flag
func newLogger(c *cli.Context) (*zap.Logger, error) {
	return logging.New(c.String("log-level"))
}

// buildServerDependencies creates all dependencies needed for the stub storefront
func buildServerDependencies(logger *zap.Logger) (internalcli.ServerDependencies, error) {
	var deps internalcli.ServerDependencies

	serverConfig, err := config.LoadServerConfig(nil)
	if err != nil {
		return deps, err
	}
	deps.ServerConfig = serverConfig
	deps.Logger = logger

	catalog, err := fixtures.Load()
	if err != nil {
		return deps, fmt.Errorf("failed to load fixtures: %w", err)
	}

	opts := []storefront.Option{storefront.WithLogger(logger)}
	if serverConfig.SeedEmail != "" {
		opts = append(opts, storefront.WithCustomer(storefront.Customer{
			FirstName: serverConfig.SeedFirstName,
			LastName:  serverConfig.SeedLastName,
			Email:     serverConfig.SeedEmail,
			Password:  serverConfig.SeedPassword,
		}))
	}

	site, err := storefront.New(catalog, opts...)
	if err != nil {
		return deps, fmt.Errorf("failed to create storefront: %w", err)
	}
	deps.Storefront = site

	return deps, nil
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the stub Luma storefront",
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			deps, err := buildServerDependencies(logger)
			if err != nil {
				return err
			}

			return internalcli.RunServe(deps)
		},
	}
}

// RoutesCommand returns the routes command
func RoutesCommand() *cli.Command {
	return &cli.Command{
		Name:  "routes",
		Usage: "List the route registry",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "routes-file",
				Usage:   "YAML file with route overrides",
				EnvVars: []string{"ROUTES_FILE"},
			},
		},
		Action: func(c *cli.Context) error {
			registry, err := routes.LoadRegistryFile(c.String("routes-file"))
			if err != nil {
				return err
			}
			return internalcli.WriteRoutes(c.App.Writer, registry)
		},
	}
}

// ProbeCommand returns the probe command
func ProbeCommand() *cli.Command {
	return &cli.Command{
		Name:  "probe",
		Usage: "Visit each GET route on a storefront and report status and latency",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "storefront origin",
				Value:   config.DefaultBaseURL,
				EnvVars: []string{"BASE_URL"},
			},
			&cli.StringSliceFlag{
				Name:  "route",
				Usage: "route key to probe, repeatable (default: every literal GET route)",
			},
			&cli.StringFlag{
				Name:    "routes-file",
				Usage:   "YAML file with route overrides",
				EnvVars: []string{"ROUTES_FILE"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "per-route timeout",
				Value:   config.DefaultRequestTimeout,
				EnvVars: []string{"REQUEST_TIMEOUT"},
			},
			&cli.Uint64Flag{
				Name:  "retries",
				Usage: "retries for connection failures",
				Value: 2,
			},
		},
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			registry, err := routes.LoadRegistryFile(c.String("routes-file"))
			if err != nil {
				return err
			}

			results, err := internalcli.Probe(c.Context, c.String("base-url"), registry, internalcli.ProbeOptions{
				Keys:    c.StringSlice("route"),
				Timeout: c.Duration("timeout"),
				Retries: c.Uint64("retries"),
			}, logger)
			if err != nil {
				return err
			}

			failed, err := internalcli.WriteProbe(c.App.Writer, results)
			if err != nil {
				return err
			}
			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d routes failed", failed, len(results)), 1)
			}
			return nil
		},
	}
}

// InstallCommand returns the install command
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Install the playwright driver and browser",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "browser",
				Usage:   "chromium, firefox or webkit",
				Value:   "chromium",
				EnvVars: []string{"BROWSER"},
			},
		},
		Action: func(c *cli.Context) error {
			return browser.Install(c.String("browser"))
		},
	}
}

// ReportCommand returns the report command
func ReportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Summarise the latest suite runs from the run ledger",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "number of runs to show",
				Value: 10,
			},
		},
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			pgConfig, err := config.LoadPostgresConfig(nil)
			if err != nil {
				return fmt.Errorf("run ledger is not configured: %w", err)
			}

			db, err := database.Open(c.Context, pgConfig)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			if err := database.Migrate(c.Context, db, logger); err != nil {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}

			summaries, err := services.Report(c.Context, repository.NewRunRepository(db), c.Int("limit"))
			if err != nil {
				return err
			}
			return internalcli.WriteReport(c.App.Writer, summaries)
		},
	}
}

func main() {
	// The --log-level flag is not parsed yet, so .env loading logs at info.
	boot := logging.Must("info")
	if err := godotenv.Load(); err != nil {
		boot.Warn(".env file not found, using environment variables", zap.Error(err))
	}
	_ = boot.Sync()

	app := &cli.App{
		Name:    "lumacheck",
		Usage:   "Luma storefront browser suite tooling",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			ServeCommand(),
			RoutesCommand(),
			ProbeCommand(),
			InstallCommand(),
			ReportCommand(),
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
