package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skydz/manifest/internal/dropzone"
	"github.com/skydz/manifest/internal/plan"
)

func (m *Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.slotCursor > 1 {
			m.slotCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.slotCursor < dropzone.MaxSlots {
			m.slotCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Remove):
		m.editor.RemoveFromFlight(m.slotCursor)
		return m, nil

	case key.Matches(msg, m.keys.Parachute):
		return m.openParachuteSelector(m.slotCursor)

	case key.Matches(msg, m.keys.Tandem):
		return m.openTandemSelector(m.slotCursor)

	case key.Matches(msg, m.keys.Grab):
		slot := m.snapshot.SlotByNumber(m.slotCursor)
		if slot == nil || m.snapshot.Locked() {
			return m, nil
		}
		label := m.personLabel(slot.Kind, slot.PersonID)
		m.beginGrab(slot.Kind, slot.PersonID, label, slot.SlotNumber)
		return m, nil

	case key.Matches(msg, m.keys.Save):
		if diag := plan.Diagnose(m.snapshot); diag != "" {
			return m, m.showStatus(levelError, diag, 7*time.Second)
		}
		return m, m.runOp(opSave, m.svc.SavePlan)

	case key.Matches(msg, m.keys.Dispatch):
		if diag := plan.Diagnose(m.snapshot); diag != "" {
			return m, m.showStatus(levelError, diag, 7*time.Second)
		}
		return m, m.runOp(opDispatch, m.svc.DispatchPlan)

	case key.Matches(msg, m.keys.UndoDispatch):
		return m, m.runOp(opUndo, m.svc.UndoDispatch)

	case key.Matches(msg, m.keys.DeletePlan):
		return m, m.runOp(opDelete, m.svc.DeletePlan)

	case key.Matches(msg, m.keys.NewPlan):
		m.startNewPlan()
		return m, nil

	case key.Matches(msg, m.keys.EditTime):
		if m.snapshot.Locked() {
			return m, nil
		}
		m.mode = modeTimeEdit
		m.timeInput.SetValue(m.snapshot.Draft.Time)
		m.timeInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model) handlePlansKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.planCursor > 0 {
			m.planCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.planCursor < len(m.snapshot.Plans.List)-1 {
			m.planCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if m.planCursor < len(m.snapshot.Plans.List) {
			m.setActivePlan(m.snapshot.Plans.List[m.planCursor].ID)
			m.focus = PaneBoard
		}
		return m, nil

	case key.Matches(msg, m.keys.NewPlan):
		m.startNewPlan()
		m.focus = PaneBoard
		return m, nil
	}
	return m, nil
}

func (m *Model) handleTimeEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeNormal
		m.timeInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		clock := dropzone.NormalizeClock(m.timeInput.Value())
		if clock == "" {
			return m, m.showStatus(levelError, "Time must be HH:MM", 5*time.Second)
		}
		m.editor.SetDraftTime(clock)
		m.mode = modeNormal
		m.timeInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.timeInput, cmd = m.timeInput.Update(msg)
	return m, cmd
}

func (m *Model) personLabel(kind dropzone.Kind, id int64) string {
	if p := m.snapshot.FindPerson(kind, id); p != nil {
		return p.FullName()
	}
	return fmt.Sprintf("#%d", id)
}

// renderBoard draws the active plan header, the five slots, and the current
// readiness diagnostic.
func (m *Model) renderBoard(width int) string {
	snap := m.snapshot
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(strings.ToUpper(m.activePlanLabel())))
	b.WriteString("  ")
	b.WriteString(m.styles.Muted.Render(snap.Draft.Aircraft))
	b.WriteByte('\n')

	if m.mode == modeTimeEdit {
		b.WriteString(m.styles.Text.Render("Takeoff: "))
		b.WriteString(m.timeInput.View())
	} else {
		b.WriteString(m.styles.Text.Render("Takeoff: " + snap.Draft.Time))
	}
	b.WriteString("  ")
	if snap.Locked() {
		b.WriteString(m.styles.Warning.Render("● DISPATCHED"))
	} else {
		b.WriteString(m.styles.Info.Render("○ draft"))
	}
	b.WriteString("\n\n")

	for n := 1; n <= dropzone.MaxSlots; n++ {
		b.WriteString(m.renderSlot(n, width-4))
		b.WriteByte('\n')
	}

	if diag := plan.Diagnose(snap); diag != "" {
		b.WriteString(m.styles.Warning.Render("⚠ " + diag))
	} else if len(snap.Draft.Slots) > 0 {
		b.WriteString(m.styles.Success.Render("✓ Ready to dispatch"))
	}

	style := m.styles.Pane
	if m.focus == PaneBoard {
		style = m.styles.FocusPane
	}
	return style.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) renderSlot(n, width int) string {
	snap := m.snapshot
	slot := snap.SlotByNumber(n)

	cursor := " "
	if m.focus == PaneBoard && m.slotCursor == n && m.mode != modeGrab {
		cursor = "›"
	}

	if slot == nil {
		line := fmt.Sprintf("%s %d. —", cursor, n)
		if m.mode == modeGrab && m.grab.target == n {
			return m.styles.SlotTarget.Width(width).Render(line + "  (drop here)")
		}
		return m.styles.SlotEmpty.Width(width).Render(line)
	}

	name := m.personLabel(slot.Kind, slot.PersonID)
	parts := []string{fmt.Sprintf("%s %d. %s", cursor, n, name)}

	if slot.Kind == dropzone.KindPassenger {
		if slot.TandemInstructorID != 0 {
			parts = append(parts, "↳ with "+m.personLabel(dropzone.KindSkydiver, slot.TandemInstructorID))
		} else {
			parts = append(parts, "↳ no instructor")
		}
	}
	if slot.ParachuteID != 0 {
		if c := snap.FindParachute(slot.ParachuteID); c != nil {
			parts = append(parts, "⛨ "+c.Label())
		}
	} else if slot.Kind == dropzone.KindSkydiver {
		parts = append(parts, "⛨ none")
	}

	line := strings.Join(parts, "   ")
	if m.mode == modeGrab && m.grab.target == n {
		return m.styles.SlotTarget.Width(width).Render(line)
	}
	if m.mode == modeGrab && m.grab.fromSlot == n {
		return m.styles.SlotFilled.Width(width).Render(m.styles.Muted.Render(line + "  (moving)"))
	}
	return m.styles.SlotFilled.Width(width).Render(line)
}

// renderPlans draws the committed plan list.
func (m *Model) renderPlans(width int) string {
	snap := m.snapshot
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Plans"))
	b.WriteByte('\n')

	if len(snap.Plans.List) == 0 {
		b.WriteString(m.styles.Muted.Render("  (no saved plans)"))
	}
	for i, p := range snap.Plans.List {
		marker := "  "
		if p.ID == snap.ActivePlanID() {
			marker = "● "
		}
		line := fmt.Sprintf("%s#%d  %s  %d aboard", marker, p.ID, p.Time, len(p.Slots))
		if p.Status == dropzone.StatusDispatched {
			line += "  ✈"
		}

		selected := m.focus == PanePlans && i == m.planCursor
		switch {
		case selected:
			b.WriteString(m.styles.Selected.Render(line))
		case p.Status == dropzone.StatusDispatched:
			b.WriteString(m.styles.Muted.Render(line))
		default:
			b.WriteString(m.styles.Text.Render(line))
		}
		b.WriteByte('\n')
	}

	style := m.styles.Pane
	if m.focus == PanePlans {
		style = m.styles.FocusPane
	}
	return style.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}
