package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sarefo/calendar/pkg/calendar"
	"github.com/sarefo/calendar/pkg/locale"
	"github.com/sarefo/calendar/pkg/manifest"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// MonthListModel - Interactive month selection
// =============================================================================

// MonthChoice is one selectable month from the manifest.
type MonthChoice struct {
	Key      string // e.g. "202601"
	Name     string // e.g. "January 2026"
	Photos   int    // manifest entries for the month
	Days     int    // days in the month
	Complete bool   // every day has an entry
}

// monthChoices lists the manifest's months as selectable choices,
// oldest first.
func monthChoices(m *manifest.Manifest) []MonthChoice {
	var choices []MonthChoice
	for _, key := range m.Months() {
		year, month, err := calendar.ParseMonthKey(key)
		if err != nil {
			continue
		}
		days := calendar.DaysInMonth(year, month)
		count := m.Count(key)
		choices = append(choices, MonthChoice{
			Key:      key,
			Name:     fmt.Sprintf("%s %d", locale.MonthName(locale.Default, month), year),
			Photos:   count,
			Days:     days,
			Complete: count >= days,
		})
	}
	return choices
}

// MonthListModel is the bubbletea model for interactive month selection.
// Months with incomplete photo coverage are listed but cannot be
// selected, mirroring what a build of them would do.
type MonthListModel struct {
	Choices  []MonthChoice
	Cursor   int
	Selected *MonthChoice
	Height   int
	Offset   int
}

// NewMonthListModel creates a new month list model.
func NewMonthListModel(choices []MonthChoice) MonthListModel {
	return MonthListModel{
		Choices: choices,
		Height:  15,
	}
}

func (m MonthListModel) Init() tea.Cmd {
	return nil
}

func (m MonthListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Choices)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			choice := m.Choices[m.Cursor]
			if !choice.Complete {
				return m, nil
			}
			m.Selected = &choice
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m MonthListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Month"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Choices) {
		end = len(m.Choices)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		choice := m.Choices[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		coverage := fmt.Sprintf("%d/%d", choice.Photos, choice.Days)
		status := styleIconSuccess.Render(iconSuccess)
		if !choice.Complete {
			status = styleIconWarning.Render(iconWarning)
		}

		rows = append(rows, []string{cursor, choice.Key, choice.Name, coverage, status})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Key", "Month", "Photos", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Choices) {
				return lipgloss.NewStyle()
			}
			choice := m.Choices[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if isCurrent {
				if choice.Complete {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Foreground(colorDim).Bold(true)
			}
			if !choice.Complete {
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Choices))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// formatBuildTime renders a report timestamp for terminal output.
func formatBuildTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}
