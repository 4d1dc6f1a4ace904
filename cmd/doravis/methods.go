package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hed1ad/doravis/pkg/results"
)

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List configured methods and their selection files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		for _, m := range cfg.Methods {
			path := results.Resolve(cfg.OutDir, m)
			status := gray("found")
			if _, err := os.Stat(path); err != nil {
				status = red("missing")
			}
			fmt.Fprintf(out, "%s\n    %s (%s)\n", cyan(m.Name), path, status)
		}
		return nil
	},
}
