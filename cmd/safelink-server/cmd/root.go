package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/safelink/internal/config"
	"github.com/oshokin/safelink/internal/service/server"
	"github.com/oshokin/safelink/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// rootCmd represents the base command for running the HTTP server.
	rootCmd = &cobra.Command{
		Use:   "safelink-server [listen-address]",
		Short: "Run the safelink coordination server.",
		Long: `Starts the HTTP server that coordinates proximity-based help requests:
users broadcast alerts with their location, helpers respond and are tracked,
and pollers receive a live list of approaching helpers with distances.

The server listens on the specified address or uses settings from the
configuration file. Only the port from server_addr is used for listening
(e.g., :8080). A listen address argument overrides the config (e.g., :9090,
0.0.0.0:8080). All coordination state is held in memory and is discarded
on restart.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &server.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
			}

			return server.Run(ctx, options)
		},
	}
)

// Execute runs the safelink-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
}
