package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/meridian/starchart/pkg/drafts"
	"github.com/meridian/starchart/pkg/errors"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// DraftListModel is the bubbletea model for interactive draft selection.
type DraftListModel struct {
	Drafts   []drafts.Draft
	Cursor   int
	Selected *drafts.Draft
}

// NewDraftListModel creates a new draft list model.
func NewDraftListModel(list []drafts.Draft) DraftListModel {
	return DraftListModel{Drafts: list}
}

func (m DraftListModel) Init() tea.Cmd {
	return nil
}

func (m DraftListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Drafts)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Drafts[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m DraftListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Draft"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	b.WriteString(renderDraftTable(m.Drafts, m.Cursor))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Drafts))))

	return b.String()
}

// renderDraftTable renders drafts as a bordered table. A cursor of -1 means
// no row is highlighted.
func renderDraftTable(list []drafts.Draft, cursor int) string {
	rows := [][]string{}
	for i, d := range list {
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		rows = append(rows, []string{
			marker,
			d.Name,
			fmt.Sprintf("%d", d.Config.TotalSectors),
			fmt.Sprintf("%.0f%%", d.Config.PortDensity),
			formatRelativeTime(d.UpdatedAt),
			shortUUID(d.ID.String()),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Sectors", "Ports", "Updated", "ID").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}

// runDraftPicker shows the interactive draft list and returns the selection.
func runDraftPicker(ctx context.Context, store drafts.Store) (*drafts.Draft, error) {
	list, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errors.New(errors.ErrCodeDraftNotFound, "no drafts saved")
	}

	program := tea.NewProgram(NewDraftListModel(list), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return nil, err
	}

	model, ok := final.(DraftListModel)
	if !ok || model.Selected == nil {
		return nil, errors.New(errors.ErrCodeDraftNotFound, "no draft selected")
	}
	return model.Selected, nil
}

func shortUUID(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
