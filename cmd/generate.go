package cmd

import (
	"github.com/spf13/cobra"

	"shireesh.com/boilergen/internal/config"
	"shireesh.com/boilergen/internal/generator"
	"shireesh.com/boilergen/internal/stylesetter"
)

type jobFlags struct {
	input, output string
	stdout        bool
}

func (f *jobFlags) register(cmd *cobra.Command, job config.Job) {
	cmd.Flags().StringVarP(&f.input, "input", "i", job.Input, "input listing")
	cmd.Flags().StringVarP(&f.output, "output", "o", job.Output, "generated output file")
	cmd.Flags().BoolVar(&f.stdout, "stdout", false, "print the result instead of writing the output file")
}

func (f *jobFlags) run(cmd *cobra.Command, job config.Job) error {
	var err error
	if job.Input, err = config.ExpandPath(f.input); err != nil {
		return err
	}
	if job.Output, err = config.ExpandPath(f.output); err != nil {
		return err
	}
	if err := job.Validate(); err != nil {
		return err
	}
	if f.stdout {
		_, err := generator.Render(job, cmd.OutOrStdout())
		return err
	}
	_, err = generator.Generate(job, logger)
	return err
}

func defaultJob(kind string) config.Job {
	for _, j := range config.Default().Jobs {
		if j.Kind == kind {
			return j
		}
	}
	return config.Job{Kind: kind}
}

var (
	colorFlags     jobFlags
	validateColors bool

	styleFlags  jobFlags
	prefixWidth int
	suffixWidth int
)

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "Generate color match entries from a color constant listing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		job := defaultJob(config.KindColors)
		job.ValidateColors = validateColors
		return colorFlags.run(cmd, job)
	},
}

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "Generate fluent style setters from a field listing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		job := defaultJob(config.KindStyles)
		job.PrefixWidth = &prefixWidth
		job.SuffixWidth = &suffixWidth
		return styleFlags.run(cmd, job)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every job in the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runJobs(cmd.Context(), false)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify generated outputs match their inputs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runJobs(cmd.Context(), true)
	},
}

func init() {
	colorFlags.register(colorsCmd, defaultJob(config.KindColors))
	colorsCmd.Flags().BoolVar(&validateColors, "validate-colors", false, "reject annotation values that are not hex colors")

	styleFlags.register(stylesCmd, defaultJob(config.KindStyles))
	stylesCmd.Flags().IntVar(&prefixWidth, "prefix", stylesetter.DefaultPrefixWidth, "characters stripped before each field")
	stylesCmd.Flags().IntVar(&suffixWidth, "suffix", stylesetter.DefaultSuffixWidth, "characters stripped after each field")

	rootCmd.AddCommand(colorsCmd, stylesCmd, runCmd, checkCmd)
}
