package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the three-pane layout with the message bar underneath and
// modal overlays replacing the board pane when active.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	total := m.width
	if total < 60 {
		total = 60
	}
	rosterWidth := total * 35 / 100
	plansWidth := total * 22 / 100
	boardWidth := total - rosterWidth - plansWidth - 6

	var center string
	switch m.mode {
	case modeParachuteSelect, modeTandemSelect:
		center = m.renderSelector(boardWidth)
	case modePersonForm, modeParachuteForm:
		center = m.renderForm(boardWidth)
	case modeHelp:
		center = m.renderHelp(boardWidth)
	default:
		center = m.renderBoard(boardWidth)
	}

	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderRoster(rosterWidth),
		center,
		m.renderPlans(plansWidth),
	)

	var b strings.Builder
	b.WriteString(m.renderHeader(total))
	b.WriteByte('\n')
	b.WriteString(panes)
	b.WriteByte('\n')
	if bar := m.renderGrabBar(); bar != "" {
		b.WriteString(bar)
		b.WriteByte('\n')
	}
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m *Model) renderHeader(width int) string {
	left := m.styles.Title.Render("MANIFEST")
	mode := "remote"
	if m.offline {
		mode = "offline"
	}
	right := m.styles.Muted.Render(mode + "  ·  " + m.theme.Name + "  ·  ? help")
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) renderStatusBar() string {
	if m.busy && m.status.level == levelNone {
		return m.styles.Muted.Render("…syncing")
	}
	switch m.status.level {
	case levelSuccess:
		return m.styles.MsgSuccess.Render(m.status.text)
	case levelError:
		return m.styles.MsgError.Render(m.status.text)
	case levelInfo:
		return m.styles.MsgInfo.Render(m.status.text)
	}
	return ""
}

func (m *Model) renderHelp(width int) string {
	k := m.keys
	rows := []struct{ b, what string }{
		{k.Tab.Help().Key, k.Tab.Help().Desc},
		{k.Section.Help().Key, k.Section.Help().Desc},
		{k.Add.Help().Key, k.Add.Help().Desc},
		{k.Remove.Help().Key, k.Remove.Help().Desc},
		{k.Grab.Help().Key, k.Grab.Help().Desc},
		{k.Parachute.Help().Key, k.Parachute.Help().Desc},
		{k.Tandem.Help().Key, k.Tandem.Help().Desc},
		{k.EditTime.Help().Key, k.EditTime.Help().Desc},
		{k.Save.Help().Key, k.Save.Help().Desc},
		{k.Dispatch.Help().Key, k.Dispatch.Help().Desc},
		{k.UndoDispatch.Help().Key, k.UndoDispatch.Help().Desc},
		{k.DeletePlan.Help().Key, k.DeletePlan.Help().Desc},
		{k.NewPlan.Help().Key, k.NewPlan.Help().Desc},
		{k.NewEntry.Help().Key, k.NewEntry.Help().Desc},
		{k.ToggleBlock.Help().Key, k.ToggleBlock.Help().Desc},
		{k.DeleteEntry.Help().Key, k.DeleteEntry.Help().Desc},
		{k.RefreshNow.Help().Key, k.RefreshNow.Help().Desc},
		{k.CycleTheme.Help().Key, k.CycleTheme.Help().Desc},
		{k.Quit.Help().Key, k.Quit.Help().Desc},
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Keys"))
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString(m.styles.Accent.Render(padRight(row.b, 12)))
		b.WriteString(m.styles.Text.Render(row.what))
		b.WriteByte('\n')
	}
	b.WriteString(m.styles.Muted.Render("any key to close"))

	return m.styles.FocusPane.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s + " "
	}
	return s + strings.Repeat(" ", n-len(s))
}
