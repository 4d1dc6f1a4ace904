package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hed1ad/doravis/pkg/visualizer"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Compare every method's selections side by side (image data only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		table, err := s.LoadAggregate(cmd.Context())
		if err != nil {
			return err
		}

		pageNum, _ := cmd.Flags().GetInt("page")
		page := visualizer.Paginate(table.Rows, pageNum-1, pageSize())

		out := cmd.OutOrStdout()
		yellow := color.New(color.FgYellow).SprintFunc()

		header := []string{fmt.Sprintf("%6s", "Rank")}
		for _, m := range table.Methods {
			header = append(header, fmt.Sprintf("%-30s", m))
		}
		fmt.Fprintf(out, "%s\n", yellow(strings.Join(header, "  ")))

		for _, row := range page.Items {
			line := []string{fmt.Sprintf("%6d", row.Rank)}
			for _, m := range row.Methods {
				line = append(line, fmt.Sprintf("%-30s", row.Cells[m].FileName))
			}
			fmt.Fprintln(out, strings.Join(line, "  "))
		}
		fmt.Fprintf(out, "\nPage %d of %d\n", page.Index+1, page.Count)
		return nil
	},
}

func init() {
	aggregateCmd.Flags().IntP("page", "p", 1, "page number, starting at 1")
}
