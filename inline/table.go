package inline

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/reelfeed/reelfeed/util"
)

var headers = table.Row{"#", "Title", "Duration", "Resume", "URL"}

func renderTable(entries []*Entry, width int, colored bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if colored {
		tw.SetStyle(table.StyleColoredBright)
	}

	tw.AppendHeader(headers)
	for _, e := range entries {
		tw.AppendRow(table.Row{
			strconv.Itoa(e.Index),
			e.Title,
			clock(e.Duration),
			clock(e.LastPosition),
			e.URL,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, WidthMax: 60, WidthMaxEnforcer: text.Trim},
	})

	if width > 0 {
		tw.SetAllowedRowLength(width)
	}

	return tw.Render()
}

func clock(seconds float64) string {
	if !util.IsFinitePositive(seconds) {
		return "-"
	}
	return util.FormatClock(seconds)
}
