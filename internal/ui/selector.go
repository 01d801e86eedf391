package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skydz/manifest/internal/dropzone"
	"github.com/skydz/manifest/internal/plan"
)

// selectorChoice is one pickable row in an overlay.
type selectorChoice struct {
	id    int64
	label string
}

// openParachuteSelector enters parachute-pick mode for the slot under the
// cursor. Only skydiver slots take a parachute directly; a passenger's
// follows the linked instructor.
func (m *Model) openParachuteSelector(slotNumber int) (tea.Model, tea.Cmd) {
	slot := m.snapshot.SlotByNumber(slotNumber)
	if slot == nil || m.snapshot.Locked() {
		return m, nil
	}
	if slot.Kind != dropzone.KindSkydiver {
		return m, m.showStatus(levelInfo, "Passengers share the instructor's parachute", 4*time.Second)
	}
	if len(m.parachuteChoices()) == 0 {
		return m, m.showStatus(levelInfo, "No parachutes available", 4*time.Second)
	}
	m.mode = modeParachuteSelect
	m.selectorSlot = slotNumber
	m.selectorCursor = 0
	return m, nil
}

// openTandemSelector enters instructor-pick mode for a passenger slot.
func (m *Model) openTandemSelector(slotNumber int) (tea.Model, tea.Cmd) {
	slot := m.snapshot.SlotByNumber(slotNumber)
	if slot == nil || m.snapshot.Locked() {
		return m, nil
	}
	if slot.Kind != dropzone.KindPassenger {
		return m, m.showStatus(levelInfo, "Only passengers take a tandem instructor", 4*time.Second)
	}
	if len(m.tandemChoices()) == 0 {
		return m, m.showStatus(levelInfo, "No tandem instructor with a Tandem parachute aboard", 5*time.Second)
	}
	m.mode = modeTandemSelect
	m.selectorSlot = slotNumber
	m.selectorCursor = 0
	return m, nil
}

// parachuteChoices lists parachutes assignable to the selector's slot:
// not blocked, not committed elsewhere, not already used by another slot.
func (m *Model) parachuteChoices() []selectorChoice {
	snap := m.snapshot
	activeID := snap.ActivePlanID()

	current := int64(0)
	if slot := snap.SlotByNumber(m.selectorSlot); slot != nil {
		current = slot.ParachuteID
	}

	var out []selectorChoice
	for _, c := range snap.Parachutes {
		if plan.ParachuteBlockReason(c, activeID) != "" {
			continue
		}
		if c.ID != current && plan.ParachuteInDraft(snap.Draft.Slots, c.ID) {
			continue
		}
		out = append(out, selectorChoice{id: c.ID, label: c.Label() + "  " + c.Type})
	}
	return out
}

// tandemChoices lists the draft's eligible tandem instructors.
func (m *Model) tandemChoices() []selectorChoice {
	var out []selectorChoice
	for _, cand := range plan.TandemCandidates(m.snapshot) {
		out = append(out, selectorChoice{
			id:    cand.Person.ID,
			label: fmt.Sprintf("%s  slot %d  %s", cand.Person.FullName(), cand.Slot.SlotNumber, cand.Parachute.Label()),
		})
	}
	return out
}

func (m *Model) selectorChoices() []selectorChoice {
	if m.mode == modeTandemSelect {
		return m.tandemChoices()
	}
	return m.parachuteChoices()
}

func (m *Model) handleSelectorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	choices := m.selectorChoices()

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeNormal
		m.selectorSlot = 0
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selectorCursor > 0 {
			m.selectorCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selectorCursor < len(choices)-1 {
			m.selectorCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if m.selectorCursor >= len(choices) {
			return m, nil
		}
		choice := choices[m.selectorCursor]
		slotNumber := m.selectorSlot
		wasTandem := m.mode == modeTandemSelect

		m.mode = modeNormal
		m.selectorSlot = 0

		if wasTandem {
			if err := m.editor.AssignTandemInstructor(slotNumber, choice.id); err != nil {
				return m, m.showStatus(levelError, err.Error(), 7*time.Second)
			}
			return m, nil
		}
		m.editor.AssignParachute(slotNumber, choice.id)
		return m, nil
	}
	return m, nil
}

// renderSelector draws the overlay list for either picker.
func (m *Model) renderSelector(width int) string {
	var b strings.Builder
	if m.mode == modeTandemSelect {
		b.WriteString(m.styles.Title.Render(fmt.Sprintf("Tandem instructor for slot %d", m.selectorSlot)))
	} else {
		b.WriteString(m.styles.Title.Render(fmt.Sprintf("Parachute for slot %d", m.selectorSlot)))
	}
	b.WriteByte('\n')

	for i, choice := range m.selectorChoices() {
		line := "  " + choice.label
		if i == m.selectorCursor {
			b.WriteString(m.styles.Selected.Render("› " + choice.label))
		} else {
			b.WriteString(m.styles.Text.Render(line))
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.styles.Muted.Render("enter: assign   esc: cancel"))

	return m.styles.FocusPane.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}
