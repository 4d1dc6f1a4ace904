package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hed1ad/doravis/pkg/results"
	"github.com/hed1ad/doravis/pkg/sources"
	"github.com/hed1ad/doravis/pkg/visualizer"
)

func TestWriteTableJSON(t *testing.T) {
	table := &visualizer.Table{
		Method: "rx",
		Path:   "/out/rx/selections-rx.csv",
		Entries: []visualizer.Entry{
			{Row: results.Row{Rank: 1, ID: 4, FileName: "a.png", Score: 0.9}, Feature: sources.Feature{ImageData: "AAA", MIMEType: "image/png"}},
			{Row: results.Row{Rank: 2, ID: 1, FileName: "b.png", Score: 0.2}, Feature: sources.Feature{ImageData: "BBB", MIMEType: "image/jpeg"}},
		},
	}
	page := visualizer.Paginate(visualizer.Sort(table.Entries, visualizer.SortScore, false), 0, 10)

	var buf bytes.Buffer
	require.NoError(t, writeTableJSON(&buf, table, page))

	var got jsonPage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "rx", got.Method)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 1, got.PageCount)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "b.png", got.Entries[0].FileName)
	assert.Equal(t, "data:image/jpeg;base64,BBB", got.Entries[0].Image)
	assert.Equal(t, "data:image/png;base64,AAA", got.Entries[1].Image)
	assert.Nil(t, got.Entries[0].Vector)
}

func TestRenderHistogram(t *testing.T) {
	color.NoColor = true

	assert.Equal(t, "▁▄█", renderHistogram([]int{0, 3, 6}, 1))
	assert.Equal(t, "", renderHistogram([]int{0, 0}, 0))
	assert.Equal(t, "", renderHistogram(nil, -1))
}
