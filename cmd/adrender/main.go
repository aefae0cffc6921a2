package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mossjr/tab-image-gen-poc/internal/bootstrap"
	"github.com/mossjr/tab-image-gen-poc/internal/configstore"
	"github.com/mossjr/tab-image-gen-poc/internal/infra"
)

var (
	jsonOutput bool
	verbose    bool

	cfg        *infra.Config
	logger     zerolog.Logger
	store      *configstore.Store
	closeStore func()
)

var rootCmd = &cobra.Command{
	Use:           "adrender <command>",
	Short:         "Render and inspect race ad slots",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		c, err := infra.LoadConfig()
		if err != nil {
			return err
		}
		cfg = c
		logger = infra.NewLoggerTo(cfg.AppEnv, os.Stderr).Level(zerolog.WarnLevel)
		if verbose {
			logger = logger.Level(zerolog.DebugLevel)
		}
		if !needsStore(cmd) {
			return nil
		}
		s, closeFn, err := bootstrap.OpenStore(context.Background(), cfg, logger)
		if err != nil {
			return fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
		}
		store, closeStore = s, closeFn
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
}

// needsStore reports whether cmd reads or writes slot records.
func needsStore(cmd *cobra.Command) bool {
	return cmd.Annotations["store"] != "none"
}

// execute runs the command tree and releases the store even when the
// command failed, which cobra's post-run hooks do not cover.
func execute() error {
	err := rootCmd.Execute()
	if closeStore != nil {
		closeStore()
		closeStore = nil
	}
	store = nil
	return err
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
