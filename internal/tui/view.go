package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"factshare/internal/board"
	"factshare/internal/models"
)

const appTitle = "LEARN SOMETHING NEW TODAY"

// View renders the header, the optional form, the category bar, the list
// and the status line.
func (m Model) View() string {
	state := m.board.Snapshot()

	var sb strings.Builder
	sb.WriteString(m.viewHeader(state))
	sb.WriteString("\n\n")

	if state.ShowForm {
		sb.WriteString(m.viewForm(state))
		sb.WriteString("\n")
	}

	sb.WriteString(m.viewCategories(state))
	sb.WriteString("\n")
	sb.WriteString(m.viewList(state))

	if state.Err != nil {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Status.Render(state.Err.Error()))
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render(m.help(state)))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) viewHeader(state board.State) string {
	toggle := "n: Share a fact"
	if state.ShowForm {
		toggle = "esc: Close"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Title.Render("💡 "+appTitle),
		"   ",
		m.styles.Hint.Render(toggle),
	)
}

func (m Model) viewForm(state board.State) string {
	lines := make([]string, 0, fieldCount+1)
	for i := range m.inputs {
		line := m.inputs[i].View()
		if i == fieldText {
			line += "  " + m.styles.Counter.Render(fmt.Sprintf("%d", state.Draft.Remaining()))
		}
		lines = append(lines, line)
	}
	if state.Uploading {
		lines = append(lines, m.spinner.View()+" Posting")
	} else {
		lines = append(lines, m.styles.Hint.Render("enter: Post"))
	}
	return m.styles.Form.Render(strings.Join(lines, "\n"))
}

func (m Model) viewCategories(state board.State) string {
	parts := make([]string, 0, len(m.filters))
	for i, name := range m.filters {
		label := name
		if name == models.CategoryAll {
			label = "All"
		}
		st := badge(name)
		if name == state.Category {
			st = st.Bold(true)
		}
		if i == m.filter {
			label = "▸" + label
			st = st.Underline(true)
		}
		parts = append(parts, st.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) viewList(state board.State) string {
	if state.Loading {
		return m.styles.Message.Render(m.spinner.View() + " Loading")
	}
	if len(state.Facts) == 0 {
		return m.styles.Message.Render("No facts for this category yet")
	}

	var sb strings.Builder
	for i, f := range state.Facts {
		sb.WriteString(m.viewFact(state, i, f))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) viewFact(state board.State, i int, f models.Fact) string {
	var line strings.Builder
	if f.IsDisputed() {
		line.WriteString(m.styles.Disputed.Render("[⛔️DISPUTED⛔️]") + " ")
	}
	line.WriteString(f.Text)
	line.WriteString(" ")
	line.WriteString(m.styles.Source.Render("(" + f.Source + ")"))
	line.WriteString(" ")
	line.WriteString(badge(f.Category).Render(f.Category))
	line.WriteString(" ")

	if state.IsUpdating(f.ID) {
		line.WriteString(m.spinner.View())
	} else {
		votes := make([]string, 0, len(models.VoteColumns))
		for _, c := range models.VoteColumns {
			votes = append(votes, fmt.Sprintf("%s %d", c.Emoji(), f.Votes(c)))
		}
		line.WriteString(m.styles.Votes.Render(strings.Join(votes, "  ")))
	}

	if i == m.cursor {
		return m.styles.Selected.Render("> " + line.String())
	}
	return m.styles.Fact.Render("  " + line.String())
}

func (m Model) help(state board.State) string {
	if state.ShowForm {
		return "tab/↑/↓ field • enter post • esc close • ctrl+c quit"
	}
	return "←/→ category • enter filter • ↑/↓ move • 1 👍 2 🤔 3 ❌ • n share • r refresh • q quit"
}
