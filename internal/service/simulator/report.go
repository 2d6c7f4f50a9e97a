package simulator

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Render writes the result as a table.
func Render(w io.Writer, result *Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Element", "Group", "Clicks", "Accepted", "Ignored"})
	table.SetBorder(false)

	for _, s := range result.Stats {
		table.Append([]string{
			s.Element,
			s.Group,
			strconv.Itoa(s.Clicks),
			strconv.Itoa(s.Accepted),
			strconv.Itoa(s.Ignored()),
		})
	}

	table.Render()
}
