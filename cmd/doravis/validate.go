package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var errValidation = errors.New("configuration has unresolved issues")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the data loader, data root and output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		report := cfg.Validate()

		out := cmd.OutOrStdout()
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed, color.Bold).SprintFunc()

		if report.LoaderErr == nil {
			fmt.Fprintf(out, "%s %s is a supported data loader.\n", green("✓"), cfg.LoaderName)
		} else {
			fmt.Fprintf(out, "%s Fatal: %s is not a supported data loader.\n", red("✗"), cfg.LoaderName)
		}
		if report.DataRootFound {
			fmt.Fprintf(out, "%s %s is a valid data root.\n", green("✓"), cfg.DataToScore)
		} else {
			fmt.Fprintf(out, "%s Can't locate %s, specify the data root with --data-root.\n", red("✗"), cfg.DataToScore)
		}
		if report.OutDirFound {
			fmt.Fprintf(out, "%s %s is a valid output directory.\n", green("✓"), cfg.OutDir)
		} else {
			fmt.Fprintf(out, "%s Can't locate %s, specify the DORA results directory with --out-dir.\n", red("✗"), cfg.OutDir)
		}

		if !report.OK() {
			return errValidation
		}
		return nil
	},
}
