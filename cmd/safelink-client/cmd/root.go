package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oshokin/safelink/internal/config"
	"github.com/oshokin/safelink/internal/geo"
	"github.com/oshokin/safelink/internal/service/client"
	"github.com/oshokin/safelink/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// serverAddress overrides the server address from config when specified.
	serverAddress string

	// rootCmd represents the base command for the safelink API client.
	rootCmd = &cobra.Command{
		Use:   "safelink-client",
		Short: "Command-line client for the safelink coordination server.",
		Long: `Talks to a running safelink server over its HTTP API. Useful for smoke
testing a deployment and for scripting coordination operations: reporting
locations, raising and cancelling alerts, responding as a helper, and
polling the alert list.`,
	}
)

// Execute runs the safelink-client CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newClient builds an API client from config and flag overrides.
func newClient() (*client.Client, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	address := cfg.ServerAddress
	if serverAddress != "" {
		address = serverAddress
	}

	return client.New(address, client.WithCallTimeout(cfg.Timeout))
}

// parseCoordinate converts a pair of CLI arguments into a Point.
func parseCoordinate(latArg, lngArg string) (geo.Point, error) {
	lat, err := strconv.ParseFloat(latArg, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("invalid latitude %q: %w", latArg, err)
	}

	lng, err := strconv.ParseFloat(lngArg, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("invalid longitude %q: %w", lngArg, err)
	}

	return geo.Point{Lat: lat, Lng: lng}, nil
}

// printStatus renders a mutation outcome on stdout.
func printStatus(cmd *cobra.Command, status *client.Status) {
	if status.Distance != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (distance: %s km)\n", status.Status, status.Distance)

		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), status.Status)
}

//nolint:gochecknoinits,funlen // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVarP(&serverAddress, "server", "s", "", "server address override (host:port)")

	var share bool

	reportCmd := &cobra.Command{
		Use:   "report <user> <lat> <lng>",
		Short: "Report a user's current location.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			location, err := parseCoordinate(args[1], args[2])
			if err != nil {
				return err
			}

			status, err := c.ReportLocation(context.Background(), args[0], location, share)
			if err != nil {
				return err
			}

			printStatus(cmd, status)

			return nil
		},
	}
	reportCmd.Flags().BoolVar(&share, "share", true, "share the location with other users")
	rootCmd.AddCommand(reportCmd)

	var cancel bool

	alertCmd := &cobra.Command{
		Use:   "alert <user> <lat> <lng>",
		Short: "Raise (or cancel, with --cancel) a help alert.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			location, err := parseCoordinate(args[1], args[2])
			if err != nil {
				return err
			}

			status, err := c.SendAlert(context.Background(), args[0], location, !cancel)
			if err != nil {
				return err
			}

			printStatus(cmd, status)

			return nil
		},
	}
	alertCmd.Flags().BoolVar(&cancel, "cancel", false, "cancel the alert instead of raising it")
	rootCmd.AddCommand(alertCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "respond <helper> <needy> <lat> <lng>",
		Short: "Respond to a user's alert as a helper.",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			location, err := parseCoordinate(args[2], args[3])
			if err != nil {
				return err
			}

			status, err := c.Respond(context.Background(), args[0], args[1], location)
			if err != nil {
				return err
			}

			printStatus(cmd, status)

			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "refine <needy> <helper> <distance-km>",
		Short: "Push a refined distance for an existing response.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			status, err := c.RefineDistance(context.Background(), args[0], args[1], args[2])
			if err != nil {
				return err
			}

			printStatus(cmd, status)

			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "safe <user>",
		Short: "Mark a user safe, releasing their responders.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			status, err := c.MarkSafe(context.Background(), args[0])
			if err != nil {
				return err
			}

			printStatus(cmd, status)

			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "logout <user>",
		Short: "Detach a user from all coordination state.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			status, err := c.Logout(context.Background(), args[0])
			if err != nil {
				return err
			}

			printStatus(cmd, status)

			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "alerts [requesting-user]",
		Short: "Poll the alert list, optionally as a specific user.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			var requester string
			if len(args) > 0 {
				requester = args[0]
			}

			alerts, err := c.Alerts(context.Background(), requester)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")

			return encoder.Encode(alerts)
		},
	})
}
