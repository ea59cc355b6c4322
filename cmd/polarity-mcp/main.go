package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ironsheep/polarity-mcp/internal/config"
	"github.com/ironsheep/polarity-mcp/internal/logging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// app carries the configuration and logger shared by every subcommand.
type app struct {
	cfg *config.Config
	log *logrus.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	var (
		logLevel  string
		logFormat string
		quality   int
	)

	root := &cobra.Command{
		Use:   "polarity-mcp",
		Short: "MCP server for inverting scanned film negatives",
		Long: `polarity-mcp inverts scanned colour negatives, applies an orange-mask
correction and exports the positive.

With no subcommand it serves MCP over stdin/stdout. Configure it in your
MCP client (e.g., Claude Desktop).

Environment variables:
  POLARITY_LOG_LEVEL     debug, info, warn or error (default info)
  POLARITY_LOG_FORMAT    text or json (default json)
  POLARITY_JPEG_QUALITY  jpg export quality 1-100 (default 90)
  POLARITY_ASSET_BASE    base URL for relative offline assets
  POLARITY_CACHE_NAME    offline cache version name
  POLARITY_CACHE_SIZE    entries per offline cache`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			if flags.Changed("jpeg-quality") {
				cfg.JPEGQuality = quality
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// stdout is reserved for MCP traffic
			logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, logger

			logger.WithFields(logrus.Fields{
				"version": Version,
				"built":   BuildTime,
				"commit":  GitCommit,
			}).Debug("Polarity MCP starting")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.StringVar(&logFormat, "log-format", "json", "log format: text or json")
	pf.IntVar(&quality, "jpeg-quality", 90, "jpg export quality (1-100)")

	root.AddCommand(
		newServeCmd(a),
		newConvertCmd(a),
		newAssetsCmd(a),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Skip configuration loading
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "polarity-mcp %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
}
