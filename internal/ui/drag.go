package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skydz/manifest/internal/dropzone"
)

// beginGrab starts the move gesture. fromSlot is 0 when the person is
// picked up from the roster; the initial target is the first free slot,
// falling back to slot 1.
func (m *Model) beginGrab(kind dropzone.Kind, personID int64, label string, fromSlot int) {
	if m.snapshot.Locked() {
		return
	}
	target := fromSlot
	if target == 0 {
		target = 1
	}
	m.mode = modeGrab
	m.focus = PaneBoard
	m.grab = grabState{
		active:   true,
		kind:     kind,
		personID: personID,
		label:    label,
		fromSlot: fromSlot,
		target:   target,
	}
}

func (m *Model) cancelGrab() {
	if m.mode == modeGrab {
		m.mode = modeNormal
	}
	m.grab = grabState{}
}

func (m *Model) handleGrabKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.cancelGrab()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.grab.target > 1 {
			m.grab.target--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.grab.target < dropzone.MaxSlots {
			m.grab.target++
		}
		return m, nil

	case key.Matches(msg, m.keys.Remove):
		// Dropping outside the board: a grab that started on a slot clears
		// that slot; a roster grab just ends.
		if m.grab.fromSlot != 0 {
			m.editor.RemoveFromFlight(m.grab.fromSlot)
		}
		m.cancelGrab()
		return m, nil

	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Grab):
		m.dropGrab()
		return m, nil
	}

	// Digits jump straight to a slot and drop.
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '0'+dropzone.MaxSlots {
		m.grab.target = int(s[0] - '0')
		m.dropGrab()
		return m, nil
	}
	return m, nil
}

// dropGrab lands the grabbed person on the target slot. Dropping back on
// the origin slot is a no-op cancel.
func (m *Model) dropGrab() {
	g := m.grab
	m.cancelGrab()
	if !g.active || g.target == g.fromSlot {
		return
	}
	m.editor.MovePerson(g.kind, g.personID, g.target)
	m.slotCursor = g.target
}

func (m *Model) renderGrabBar() string {
	if m.mode != modeGrab {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Accent.Render("Moving " + m.grab.label))
	b.WriteString(m.styles.Muted.Render("  ↑/↓ or 1-5: pick slot   enter: drop   r: take off board   esc: cancel"))
	return b.String()
}
