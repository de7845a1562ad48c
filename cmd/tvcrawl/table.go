package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dbytex91/tvcrawl/internal/crawler"
)

func renderSummary(summary *crawler.Summary) string {
	if summary == nil || len(summary.Records) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(fmt.Sprintf("Run %s", summary.RunID))
	tw.AppendHeader(table.Row{"Channel", "Stream", "Icon", "Playlist"})

	for _, row := range summary.Rows() {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d/%d channels", summary.Processed, summary.Channels),
		"",
		"",
		fmt.Sprintf("%d written", summary.Written()),
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
