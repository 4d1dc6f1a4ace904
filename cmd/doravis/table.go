package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hed1ad/doravis/pkg/visualizer"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Show one method's ranked selections",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		method, _ := cmd.Flags().GetString("method")
		if method == "" {
			method = s.Config().Methods[0].Name
		}
		page, _ := cmd.Flags().GetInt("page")
		sortBy, _ := cmd.Flags().GetString("sort")
		desc, _ := cmd.Flags().GetBool("desc")
		asJSON, _ := cmd.Flags().GetBool("json")

		key, err := visualizer.ParseSortKey(sortBy)
		if err != nil {
			return err
		}

		table, err := s.LoadMethod(cmd.Context(), method)
		if err != nil {
			return err
		}
		entries := visualizer.Paginate(visualizer.Sort(table.Entries, key, desc), page-1, pageSize())
		if asJSON {
			return writeTableJSON(cmd.OutOrStdout(), table, entries)
		}
		printTable(cmd.OutOrStdout(), table, entries)
		return nil
	},
}

func init() {
	tableCmd.Flags().StringP("method", "m", "", "method to show (default: first configured)")
	tableCmd.Flags().IntP("page", "p", 1, "page number, starting at 1")
	tableCmd.Flags().StringP("sort", "s", "rank", "sort column: rank, id or score")
	tableCmd.Flags().Bool("desc", false, "sort in descending order")
	tableCmd.Flags().Bool("json", false, "write the page as JSON, with images as data URIs")
}

type jsonEntry struct {
	Rank     int       `json:"rank"`
	ID       int       `json:"id"`
	FileName string    `json:"fileName"`
	Score    float64   `json:"score"`
	Image    string    `json:"image,omitempty"`
	Vector   []float64 `json:"vector,omitempty"`
}

type jsonPage struct {
	Method    string      `json:"method"`
	Path      string      `json:"path"`
	Features  []string    `json:"features,omitempty"`
	Page      int         `json:"page"`
	PageCount int         `json:"pageCount"`
	Entries   []jsonEntry `json:"entries"`
}

func writeTableJSON(out io.Writer, table *visualizer.Table, page visualizer.Page[visualizer.Entry]) error {
	doc := jsonPage{
		Method:    table.Method,
		Path:      table.Path,
		Features:  table.FeatureNames,
		Page:      page.Index + 1,
		PageCount: page.Count,
		Entries:   make([]jsonEntry, 0, len(page.Items)),
	}
	for _, e := range page.Items {
		doc.Entries = append(doc.Entries, jsonEntry{
			Rank:     e.Rank,
			ID:       e.ID,
			FileName: e.FileName,
			Score:    e.Score,
			Image:    e.DataURI(),
			Vector:   e.Vector,
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func printTable(out io.Writer, table *visualizer.Table, page visualizer.Page[visualizer.Entry]) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(out, "\n%s\n", cyan("=== "+table.Method+" ==="))
	fmt.Fprintf(out, "%s\n\n", table.Path)
	fmt.Fprintf(out, "%s\n", yellow(fmt.Sprintf("%6s %8s  %-40s %12s  %s", "Rank", "ID", "Filename", "Score", "Payload")))

	for _, e := range page.Items {
		fmt.Fprintf(out, "%6d %8d  %-40s %12.6g  %s\n", e.Rank, e.ID, e.FileName, e.Score, payloadSummary(e))
	}
	fmt.Fprintf(out, "\nPage %d of %d\n", page.Index+1, page.Count)
}

func payloadSummary(e visualizer.Entry) string {
	if e.ImageData != "" {
		return fmt.Sprintf("%s, %d bytes", e.MIMEType, len(e.ImageData)*3/4)
	}
	const preview = 4
	parts := make([]string, 0, preview+1)
	for i, v := range e.Vector {
		if i == preview {
			parts = append(parts, fmt.Sprintf("… (%d)", len(e.Vector)))
			break
		}
		parts = append(parts, fmt.Sprintf("%.4g", v))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
