package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Show a row's feature values and where they fall among all rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		method, _ := cmd.Flags().GetString("method")
		if method == "" {
			method = s.Config().Methods[0].Name
		}
		rank, _ := cmd.Flags().GetInt("row")
		bins, _ := cmd.Flags().GetInt("bins")

		table, err := s.LoadMethod(cmd.Context(), method)
		if err != nil {
			return err
		}
		if len(table.FeatureNames) == 0 {
			return fmt.Errorf("%s data has no feature vectors", table.Kind)
		}

		i := rank - 1
		ranks, err := table.Percentiles(i)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		e := table.Entries[i]
		fmt.Fprintf(out, "%s rank %d, id %d, score %g\n\n", cyan(table.Method), e.Rank, e.ID, e.Score)

		dists := table.Distributions()
		for c, name := range table.FeatureNames {
			d := dists[c]
			fmt.Fprintf(out, "%-20s %12.6g  p%-5.1f  %s  [%g, %g]\n",
				name, e.Vector[c], ranks[c]*100,
				renderHistogram(d.Histogram(bins), d.Bin(e.Vector[c], bins)), d.Min(), d.Max())
		}
		return nil
	},
}

func init() {
	featuresCmd.Flags().StringP("method", "m", "", "method to read (default: first configured)")
	featuresCmd.Flags().IntP("row", "r", 1, "row position in the selection file, starting at 1")
	featuresCmd.Flags().Int("bins", 10, "histogram bins per feature")
}

var histogramLevels = []rune("▁▂▃▄▅▆▇█")

// renderHistogram draws counts as a bar per bin, highlighting bin mark.
func renderHistogram(counts []int, mark int) string {
	peak := 0
	for _, c := range counts {
		peak = max(peak, c)
	}
	if peak == 0 {
		return ""
	}

	highlight := color.New(color.FgRed, color.Bold).SprintFunc()
	var b strings.Builder
	for i, c := range counts {
		level := histogramLevels[c*(len(histogramLevels)-1)/peak]
		if i == mark {
			b.WriteString(highlight(string(level)))
			continue
		}
		b.WriteRune(level)
	}
	return b.String()
}
