package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"shireesh.com/boilergen/internal/config"
	"shireesh.com/boilergen/internal/tui"
)

const doneChoice = "done"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively write a config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func inputPrompt(label, def string) (string, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: def,
		Validate: func(s string) error {
			if s == "" {
				return errors.New("value required")
			}
			return nil
		},
	}
	return prompt.Run()
}

func runInit() error {
	path := configPath
	if path == "" {
		path = config.DefaultPath
	}
	if _, err := os.Stat(path); err == nil {
		confirm := promptui.Prompt{Label: fmt.Sprintf("Overwrite %s", path), IsConfirm: true}
		if _, err := confirm.Run(); err != nil {
			logger.Info("keeping existing config", "path", path)
			return nil
		}
	}

	var cfg config.Config
	for {
		kind, err := tui.Select("Add a generator:", []string{config.KindColors, config.KindStyles, doneChoice})
		if err != nil {
			return err
		}
		if kind == doneChoice {
			break
		}
		def := defaultJob(kind)
		job := config.Job{Kind: kind}
		if job.Input, err = inputPrompt("Input file", def.Input); err != nil {
			return err
		}
		if job.Output, err = inputPrompt("Output file", def.Output); err != nil {
			return err
		}
		if err := job.Validate(); err != nil {
			return err
		}
		cfg.Jobs = append(cfg.Jobs, job)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}
	logger.Info("wrote config", "path", path, "jobs", len(cfg.Jobs))
	return nil
}
