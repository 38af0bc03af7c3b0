package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"shireesh.com/boilergen/internal/config"
	"shireesh.com/boilergen/internal/generator"
)

var (
	configPath string
	verbose    bool

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "boilergen"})
)

var rootCmd = &cobra.Command{
	Use:   "boilergen",
	Short: "Generate color tables and style setters from line listings",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runJobs(cmd.Context(), false)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $"+config.EnvPath+" or "+config.DefaultPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	path, explicit := config.ResolvePath(configPath)
	logger.Debug("loading config", "path", path, "required", explicit)
	return config.Load(path, explicit)
}

func runJobs(ctx context.Context, check bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	results, err := generator.Run(ctx, cfg, check, logger)
	if err != nil {
		return err
	}
	if check {
		logger.Info("all outputs up to date", "jobs", len(results))
	}
	return nil
}
