package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/scoring"
)

func formatScore(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// renderBreakdown prints one table per competency type followed by the indices
func renderBreakdown(w io.Writer, res scoring.Result) {
	codes := scoring.Codes
	header := []string{"Competency", "Mean"}
	for _, c := range codes {
		header = append(header, string(c))
	}

	for _, tr := range res.Breakdown {
		fmt.Fprintf(w, "\n%s (sum %s / %s = %s)\n",
			strings.ToUpper(string(tr.Type)),
			formatScore(tr.Sum), formatScore(tr.Divisor), formatScore(tr.Average))

		table := tablewriter.NewWriter(w)
		table.SetHeader(header)
		for _, cr := range tr.Competencies {
			row := []string{cr.Name, formatScore(cr.Mean)}
			for _, code := range codes {
				row = append(row, cellFor(res.SalaryGrade, cr.Cells, code))
			}
			table.Append(row)
		}
		table.Render()
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Salary grade:    %d\n", res.SalaryGrade)
	fmt.Fprintf(w, "Rounding mode:   %s\n", res.Mode)
	fmt.Fprintf(w, "Leadership:      %t\n", res.LeadershipIncluded)
	fmt.Fprintf(w, "Psycho-Social:   %s\n", color.CyanString(formatScore(res.PsychoSocial)))
	fmt.Fprintf(w, "Potential:       %s\n", color.CyanString(formatScore(res.Potential)))
	fmt.Fprintf(w, "Total:           %s\n", color.GreenString(formatScore(res.Total())))
}

// cellFor joins every cell of a code. A code may have several raters.
func cellFor(salaryGrade int, cells []scoring.RaterCell, code scoring.RaterCode) string {
	var parts []string
	for _, c := range cells {
		if c.Code == code {
			parts = append(parts, c.Display)
		}
	}
	if len(parts) == 0 {
		return scoring.DisplayCell(salaryGrade, code, nil)
	}
	return strings.Join(parts, ", ")
}
