package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pipwise/pipwise/pkg/recommend"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// DecisionModel - Interactive suggestion accept/reject
// =============================================================================

// decisionItem is one suggestion awaiting a decision.
type decisionItem struct {
	Kind        string // "alternative" or "additional"
	Name        string
	Detail      string // "replaces X" for alternatives, empty otherwise
	Reason      string
	Description string
	Accepted    bool
}

// DecisionModel is the bubbletea model for reviewing model suggestions.
// Every suggestion starts rejected; the user toggles the ones they want.
type DecisionModel struct {
	Items     []decisionItem
	Cursor    int
	Confirmed bool
	Aborted   bool
}

// NewDecisionModel builds the decision list from a recommendation:
// alternatives first, then additional packages, matching resolve order.
func NewDecisionModel(rec *recommend.Recommendation) DecisionModel {
	var items []decisionItem
	for _, alt := range rec.Alternatives {
		items = append(items, decisionItem{
			Kind:        "alternative",
			Name:        alt.Suggested,
			Detail:      "replaces " + alt.Original,
			Reason:      alt.Reason,
			Description: alt.Description,
		})
	}
	for _, add := range rec.Additional {
		items = append(items, decisionItem{
			Kind:        "additional",
			Name:        add.Name,
			Reason:      add.Reason,
			Description: add.Description,
		})
	}
	return DecisionModel{Items: items}
}

// Decisions returns the accept/reject map in the form the resolver takes.
func (m DecisionModel) Decisions() recommend.Decisions {
	decisions := make(recommend.Decisions, len(m.Items))
	for _, item := range m.Items {
		decisions[item.Name] = item.Accepted
	}
	return decisions
}

func (m DecisionModel) Init() tea.Cmd {
	return nil
}

func (m DecisionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
			}
		case " ", "y", "n":
			if len(m.Items) > 0 {
				switch msg.String() {
				case "y":
					m.Items[m.Cursor].Accepted = true
				case "n":
					m.Items[m.Cursor].Accepted = false
				default:
					m.Items[m.Cursor].Accepted = !m.Items[m.Cursor].Accepted
				}
			}
		case "a":
			for i := range m.Items {
				m.Items[i].Accepted = true
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m DecisionModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Review Suggestions"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a accept all  ⏎ confirm  q abort"))
	b.WriteString("\n\n")

	rows := [][]string{}
	for i, item := range m.Items {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		status := iconError
		if item.Accepted {
			status = iconSuccess
		}
		detail := item.Reason
		if item.Detail != "" {
			detail = item.Detail + ": " + detail
		}
		rows = append(rows, []string{cursor, status, item.Name, item.Kind, detail})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Package", "Kind", "Why").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= len(m.Items) {
				return lipgloss.NewStyle()
			}
			item := m.Items[row]
			base := lipgloss.NewStyle()
			if col == 1 {
				if item.Accepted {
					return base.Foreground(colorGreen)
				}
				return base.Foreground(colorDim)
			}
			if row == m.Cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			if item.Accepted {
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorGray)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if len(m.Items) > 0 {
		item := m.Items[m.Cursor]
		desc := item.Description
		if desc == "" {
			desc = "No description available"
		}
		b.WriteString("\n  " + listSelectedStyle.Render(item.Name) + " " + StyleDim.Render(desc) + "\n")
	}

	b.WriteString(listDimStyle.Render(fmt.Sprintf("\n  [%d/%d]", m.Cursor+1, len(m.Items))))

	return b.String()
}

// runDecisionTUI shows the decision list and blocks until the user
// confirms or aborts. A nil map means the user aborted.
func runDecisionTUI(rec *recommend.Recommendation) (recommend.Decisions, error) {
	if len(rec.Alternatives) == 0 && len(rec.Additional) == 0 {
		return recommend.Decisions{}, nil
	}

	model := NewDecisionModel(rec)
	prog := tea.NewProgram(model)
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("run decision list: %w", err)
	}

	result := final.(DecisionModel)
	if result.Aborted {
		return nil, nil
	}
	return result.Decisions(), nil
}
