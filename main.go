// esstat is a live terminal dashboard for a single Elasticsearch cluster:
// health, persistent and transient settings, shard relocations and
// recoveries, refreshed on a fixed cadence.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"esstat/cluster"
	"esstat/config"
	"esstat/input"
	"esstat/ui"
)

var version = "dev"

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		port     int
		scheme   string
		interval int
		cfgFile  string
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "esstat HOST",
		Short: "Live terminal dashboard for an Elasticsearch cluster",
		Long: `esstat polls an Elasticsearch node and renders cluster health,
settings, shard relocations and recoveries as a full-screen
terminal dashboard.`,
		Args:          cobra.ExactArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cfgFile, interval, noColor)
			if err != nil {
				return err
			}
			return run(args[0], port, scheme, cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 9200, "HTTP port of the target node")
	cmd.Flags().StringVarP(&scheme, "scheme", "s", "http", "URL scheme (http or https)")
	cmd.Flags().IntVarP(&interval, "interval", "i", 0, "refresh interval in seconds (overrides config)")
	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "path to a YAML config file")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}

// resolveConfig layers the optional config file over the defaults and applies
// flag overrides on top.
func resolveConfig(cfgFile string, interval int, noColor bool) (config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if interval > 0 {
		cfg.Poll.IntervalSeconds = interval
	}
	if noColor {
		cfg.UI.Color = false
	}
	return cfg, nil
}

func run(host string, port int, scheme string, cfg config.Config) error {
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", scheme)
	}

	client := cluster.New(host, port, scheme, cfg)
	log.Printf("esstat %s connecting to %s, refresh every %s", version, client.Base(), cfg.Poll.Interval())

	// Without a terminal on stdin the dashboard still runs, driven only by
	// the poll cadence; signals are the only way out.
	var (
		raw  *input.RawMode
		keys <-chan input.Event
	)
	if input.IsInteractive() {
		var err error
		raw, err = input.MakeRaw()
		if err != nil {
			return fmt.Errorf("enter raw mode: %w", err)
		}
		defer raw.Restore()

		listener := input.NewListener(os.Stdin)
		listener.Start()
		keys = listener.Events()
	} else {
		log.Print("stdin is not a terminal, keyboard input disabled")
	}

	frame := ui.NewFrameWriter(os.Stdout)
	frame.Start()
	defer frame.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	renderer := ui.NewRenderer("esstat", cfg.UI.Color)
	dash := ui.NewDashboard(client, renderer, frame, keys, cfg.Poll.Interval())

	err := dash.Run(ctx)

	// Restore the terminal before anything else writes to it.
	frame.Stop()
	raw.Restore()

	if err == context.Canceled {
		// Interrupted by signal; treat like a regular quit.
		return nil
	}
	return err
}
