// Command tilemerge serves the 4x4 tile merge game.
//
// It supports two modes:
//  1. "server" (default) runs the HTTP server exposing the REST API, WebSocket
//     board updates and an /mcp HTTP endpoint
//  2. "mcp" runs an MCP stdio server and spins up an internal HTTP API if none
//     is available
//
// Settings come from an optional YAML file, then environment variables (a
// .env file is loaded first), then command-line flags.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/wricardo/tilemerge/game/config"
	"github.com/wricardo/tilemerge/internal/logging"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "tilemerge"
)

func main() {
	loaded, err := config.LoadDotEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(loaded).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
}

// newApp builds the command tree. dotEnvLoaded is only reported in the
// startup log.
func newApp(dotEnvLoaded bool) *cli.Command {
	return &cli.Command{
		Name:    AppName,
		Usage:   "4x4 tile merge game server",
		Version: Version,
		Flags:   globalFlags(),
		Action:  serverAction(dotEnvLoaded),
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "Run the HTTP server with REST API, WebSocket and MCP endpoint",
				Action:  serverAction(dotEnvLoaded),
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "Run an MCP stdio server, starting an internal HTTP API if needed",
				Action:  mcpAction,
			},
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "YAML settings file",
			Sources: cli.EnvVars("TILEMERGE_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "host",
			Usage:   "HTTP server host",
			Sources: cli.EnvVars("TILEMERGE_HOST"),
		},
		&cli.IntFlag{
			Name:    "port",
			Usage:   "HTTP server port",
			Sources: cli.EnvVars("TILEMERGE_PORT"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "debug, info, warn or error",
			Sources: cli.EnvVars("TILEMERGE_LOG_LEVEL"),
		},
		&cli.BoolFlag{
			Name:    "dev",
			Usage:   "Human-readable development logging",
			Sources: cli.EnvVars("TILEMERGE_DEV"),
		},
		&cli.DurationFlag{
			Name:    "session-ttl",
			Usage:   "Remove sessions idle for longer than this",
			Sources: cli.EnvVars("TILEMERGE_SESSION_TTL"),
		},
		&cli.DurationFlag{
			Name:    "cleanup-interval",
			Usage:   "How often expired sessions are removed",
			Sources: cli.EnvVars("TILEMERGE_CLEANUP_INTERVAL"),
		},
		&cli.Uint64Flag{
			Name:    "seed",
			Usage:   "Seed for sessions created without one (reproducible spawns)",
			Sources: cli.EnvVars("TILEMERGE_SEED"),
		},
		&cli.StringFlag{
			Name:    "external-api",
			Usage:   "API the mcp command reuses when it is reachable",
			Sources: cli.EnvVars("TILEMERGE_EXTERNAL_API"),
		},
		&cli.BoolFlag{
			Name:    "ngrok",
			Usage:   "Enable ngrok tunnel",
			Sources: cli.EnvVars("NGROK_ENABLED"),
		},
		&cli.StringFlag{
			Name:    "ngrok-auth",
			Usage:   "Ngrok auth token",
			Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
		},
		&cli.StringFlag{
			Name:    "ngrok-domain",
			Usage:   "Custom ngrok domain (optional)",
			Sources: cli.EnvVars("NGROK_DOMAIN"),
		},
	}
}

// loadSettings layers flags and environment over the settings file.
func loadSettings(cmd *cli.Command) (config.Settings, error) {
	settings, err := config.Load(cmd.String("config"))
	if err != nil {
		return settings, err
	}

	if cmd.IsSet("host") {
		settings.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		settings.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("log-level") {
		settings.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("dev") {
		settings.Development = cmd.Bool("dev")
	}
	if cmd.IsSet("session-ttl") {
		settings.SessionTTL = cmd.Duration("session-ttl")
	}
	if cmd.IsSet("cleanup-interval") {
		settings.CleanupInterval = cmd.Duration("cleanup-interval")
	}
	if cmd.IsSet("seed") {
		seed := cmd.Uint64("seed")
		settings.DefaultSeed = &seed
	}
	if cmd.IsSet("external-api") {
		settings.ExternalAPI = cmd.String("external-api")
	}
	if cmd.IsSet("ngrok") {
		settings.Ngrok.Enabled = cmd.Bool("ngrok")
	}
	if cmd.IsSet("ngrok-auth") {
		settings.Ngrok.AuthToken = cmd.String("ngrok-auth")
	}
	if cmd.IsSet("ngrok-domain") {
		settings.Ngrok.Domain = cmd.String("ngrok-domain")
	}

	return settings, settings.Validate()
}

// setup resolves settings and builds the process logger.
func setup(cmd *cli.Command) (config.Settings, *zap.Logger, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return settings, nil, err
	}

	logger, err := logging.New(settings.LogLevel, settings.Development)
	if err != nil {
		return settings, nil, err
	}
	return settings, logger, nil
}

func serverAction(dotEnvLoaded bool) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		settings, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		logger.Info("starting",
			zap.String("app", AppName),
			zap.String("version", Version),
			zap.String("mode", "server"),
			zap.Bool("dotenv", dotEnvLoaded))

		return runServer(ctx, settings, logger)
	}
}

func mcpAction(ctx context.Context, cmd *cli.Command) error {
	settings, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.String("app", AppName),
		zap.String("version", Version),
		zap.String("mode", "mcp"))

	return runStdioMCP(ctx, settings, logger)
}
