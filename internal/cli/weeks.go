package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sarefo/calendar/pkg/calendar"
	"github.com/sarefo/calendar/pkg/locale"
)

// weeksCommand creates the weeks command for inspecting grid structure
// and ISO week numbers before committing photos to a layout.
func (c *CLI) weeksCommand() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "weeks <year|monthkey>",
		Short: "Inspect month grids and ISO week numbers",
		Long: `Weeks shows how months lay out on the page.

A year argument prints the overview: rows, ISO week range, and cell
dimensions for each month. A month key shows the full grid with every
week row and its overflow days:

  photocal weeks 2026
  photocal weeks 202601`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args[0]) == 6 {
				return runWeeksMonth(args[0], lang)
			}
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year or month key %q", args[0])
			}
			return runWeeksYear(year, lang)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", locale.Default, "language for month names")
	return cmd
}

// runWeeksYear prints the layout overview for all twelve months.
func runWeeksYear(year int, lang string) error {
	rows := [][]string{}
	for month := time.January; month <= time.December; month++ {
		grid, err := calendar.BuildGrid(year, month)
		if err != nil {
			return err
		}

		first := grid.Weeks[0].ISO
		last := grid.Weeks[len(grid.Weeks)-1].ISO
		rows = append(rows, []string{
			calendar.MonthKey(year, month),
			locale.MonthName(lang, month),
			strconv.Itoa(grid.Layout.Rows),
			fmt.Sprintf("%s – %s", first, last),
			fmt.Sprintf("%.1f×%.1f mm", grid.Layout.CellWidth, grid.Layout.CellHeight),
		})
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Month grids %d", year)))
	fmt.Println(weeksTable([]string{"Key", "Month", "Rows", "ISO weeks", "Cell"}, rows))
	return nil
}

// runWeeksMonth prints one month's grid week by week.
func runWeeksMonth(monthKey, lang string) error {
	year, month, err := calendar.ParseMonthKey(monthKey)
	if err != nil {
		return err
	}
	grid, err := calendar.BuildGrid(year, month)
	if err != nil {
		return err
	}

	rows := [][]string{}
	for _, week := range grid.Weeks {
		var days []string
		for _, cell := range week.Days {
			day := strconv.Itoa(cell.Date.Day())
			if cell.Membership != calendar.Current {
				day = StyleDim.Render(day)
			}
			days = append(days, fmt.Sprintf("%3s", day))
		}
		rows = append(rows, []string{
			week.ISO.String(),
			week.ISO.Monday().String(),
			strings.Join(days, " "),
		})
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("%s %d", locale.MonthName(lang, month), year)))
	printDetail("%d rows · cell %.1f×%.1f mm", grid.Layout.Rows, grid.Layout.CellWidth, grid.Layout.CellHeight)
	fmt.Println(weeksTable([]string{"Week", "Monday", strings.Join(locale.WeekdayNames(lang, true), "  ")}, rows))
	return nil
}

func weeksTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
