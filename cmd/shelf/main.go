package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/shelf/internal/app"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "shelf: %v\n", err)
		return 1
	}
	return 0
}

type globalFlags struct {
	configPath string
	endpoint   string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	var (
		global      globalFlags
		prefsPath   string
		metricsAddr string
	)

	root := &cobra.Command{
		Use:   "shelf",
		Short: "Browse a WooCommerce shop from the terminal",
		Long: `shelf searches a shop exposing the wps/v1/shop endpoint.
Type to search, toggle categories, colors and sizes, and set price bounds;
results refresh as the filters change.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath:  global.configPath,
				PrefsPath:   prefsPath,
				Endpoint:    global.endpoint,
				LogLevel:    global.logLevel,
				MetricsAddr: metricsAddr,
			})
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&global.configPath, "config", "", "config file path (default ~/.config/shelf/config.toml)")
	flags.StringVar(&global.endpoint, "endpoint", "", "shop base URL, overrides the config file")
	flags.StringVar(&global.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.Flags().StringVar(&prefsPath, "prefs", "", "preferences file path (default ~/.config/shelf/prefs.toml)")
	root.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	root.AddCommand(newQueryCommand(&global), newVersionCommand())
	return root
}

func newQueryCommand(global *globalFlags) *cobra.Command {
	opts := app.QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [text]",
		Short: "Run a single search and print the results",
		Example: `  shelf query shirt --color 12 --min 10 --max 50
  shelf query --category 4 --page 2 --format json
  shelf query hoodie --format url`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Text = args[0]
			}
			opts.ConfigPath = global.configPath
			opts.Endpoint = global.endpoint
			opts.LogLevel = global.logLevel
			if opts.LogLevel == "" {
				opts.LogLevel = "warn"
			}
			return app.Query(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.IntSliceVar(&opts.Categories, "category", nil, "category term IDs")
	flags.IntSliceVar(&opts.Colors, "color", nil, "color term IDs")
	flags.IntSliceVar(&opts.Sizes, "size", nil, "size term IDs")
	flags.StringVar(&opts.MinPrice, "min", "", "minimum price")
	flags.StringVar(&opts.MaxPrice, "max", "", "maximum price")
	flags.IntVar(&opts.Page, "page", 1, "result page")
	flags.StringVarP(&opts.Format, "format", "o", app.FormatTable, "output format: table, json or url")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the shelf version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shelf %s\n", version)
		},
	}
}
