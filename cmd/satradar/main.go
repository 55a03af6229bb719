package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"satradar/internal/config"
	"satradar/internal/logging"
)

var (
	// Global flags
	verbose bool
	cfgPath string
	timeout time.Duration

	// Built by the root PersistentPreRunE before every command
	logger *zap.Logger
	cfg    *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "satradar",
	Short: "satradar - satellite prime survey radar (Q47 window)",
	Long: `satradar sweeps the neighborhood below giant primes of the form
P = n^47 - (n-1)^47 for satellite primes P - k.

Each main star n taken from a confirmed prime quadruplet derives one
candidate giant P. The radar tests every admissible even gap k inside
the detection radius, records the primes it finds in the catalog, and
feeds the statistical battery (Poisson fit, gap uniformity, residue
classes, nearest-satellite spacing, conditional Hardy-Littlewood,
density by base) and the survey figures.`,
	Version: "3.0.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", cfgPath, err)
		}

		// The sweep display owns the terminal; logs go to the file.
		logger, err = logging.New(cfg.Logging, logging.Options{
			Verbose:  verbose,
			FileOnly: cmd == scanCmd && sweepWantsTUI(),
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "satradar.yaml", "Config file path")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Operation timeout (0 uses the config value)")

	// Add commands to root
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(harvestCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(figuresCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// commandContext applies the resolved timeout and wires SIGINT/SIGTERM
// into cancellation so a sweep can stop cleanly mid-flight.
func commandContext() (context.Context, context.CancelFunc) {
	d := timeout
	if d == 0 && cfg != nil {
		d = cfg.GetScanTimeout()
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if d > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), d)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			logger.Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
