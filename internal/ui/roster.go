package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skydz/manifest/internal/dropzone"
	"github.com/skydz/manifest/internal/plan"
)

var sectionTitles = [sectionCount]string{
	"Fun jumpers",
	"Staff",
	"Passengers",
	"Parachutes",
}

// rosterEntry is one selectable row in the roster pane. Parachute rows set
// parachuteID instead of personID.
type rosterEntry struct {
	label       string
	detail      string
	kind        dropzone.Kind
	personID    int64
	parachuteID int64
	blockReason string
	inDraft     bool
	blocked     bool // manual block flag, for toggling
}

// rosterEntries builds the rows of one section from the current snapshot.
func (m *Model) rosterEntries(section int) []rosterEntry {
	snap := m.snapshot
	activeID := snap.ActivePlanID()

	var out []rosterEntry
	switch section {
	case SectionFunJumpers, SectionStaff:
		wantStaff := section == SectionStaff
		for _, p := range snap.People.Skydivers {
			if p.IsStaff() != wantStaff {
				continue
			}
			out = append(out, rosterEntry{
				label:       p.FullName(),
				detail:      skydiverDetail(p),
				kind:        dropzone.KindSkydiver,
				personID:    p.ID,
				blockReason: plan.PersonBlockReason(p, activeID),
				inDraft:     plan.PersonInDraft(snap.Draft.Slots, dropzone.KindSkydiver, p.ID),
				blocked:     p.ManualBlocked,
			})
		}
	case SectionPassengers:
		for _, p := range snap.People.Passengers {
			out = append(out, rosterEntry{
				label:       p.FullName(),
				detail:      fmt.Sprintf("%d kg", p.Weight),
				kind:        dropzone.KindPassenger,
				personID:    p.ID,
				blockReason: plan.PersonBlockReason(p, activeID),
				inDraft:     plan.PersonInDraft(snap.Draft.Slots, dropzone.KindPassenger, p.ID),
				blocked:     p.ManualBlocked,
			})
		}
	case SectionParachutes:
		for _, c := range snap.Parachutes {
			out = append(out, rosterEntry{
				label:       c.Label(),
				detail:      c.Type,
				parachuteID: c.ID,
				blockReason: plan.ParachuteBlockReason(c, activeID),
				inDraft:     plan.ParachuteInDraft(snap.Draft.Slots, c.ID),
				blocked:     c.ManualBlocked,
			})
		}
	}
	return out
}

func skydiverDetail(p dropzone.Person) string {
	var tags []string
	if p.LicenseLevel != "" {
		tags = append(tags, p.LicenseLevel)
	}
	if p.Role != "" {
		tags = append(tags, string(p.Role))
	}
	if p.IsTandemInstructor {
		tags = append(tags, "TI")
	}
	if p.IsAFFInstructor {
		tags = append(tags, "AFF-I")
	}
	return strings.Join(tags, " ")
}

func (m *Model) selectedRosterEntry() (rosterEntry, bool) {
	entries := m.rosterEntries(m.rosterSection)
	cursor := m.rosterCursor[m.rosterSection]
	if cursor < 0 || cursor >= len(entries) {
		return rosterEntry{}, false
	}
	return entries[cursor], true
}

func (m *Model) handleRosterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.rosterCursor[m.rosterSection] > 0 {
			m.rosterCursor[m.rosterSection]--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.rosterCursor[m.rosterSection] < len(m.rosterEntries(m.rosterSection))-1 {
			m.rosterCursor[m.rosterSection]++
		}
		return m, nil

	case key.Matches(msg, m.keys.Section):
		m.rosterSection = (m.rosterSection + 1) % sectionCount
		return m, nil

	case key.Matches(msg, m.keys.Add):
		entry, ok := m.selectedRosterEntry()
		if !ok || entry.parachuteID != 0 {
			return m, nil
		}
		if entry.blockReason != "" {
			return m, m.showStatus(levelInfo, entry.blockReason, 4*time.Second)
		}
		m.editor.AddToFlight(entry.kind, entry.personID)
		return m, nil

	case key.Matches(msg, m.keys.Grab):
		entry, ok := m.selectedRosterEntry()
		if !ok || entry.parachuteID != 0 || entry.blockReason != "" {
			return m, nil
		}
		m.beginGrab(entry.kind, entry.personID, entry.label, 0)
		return m, nil

	case key.Matches(msg, m.keys.ToggleBlock):
		entry, ok := m.selectedRosterEntry()
		if !ok {
			return m, nil
		}
		return m, m.toggleBlock(entry)

	case key.Matches(msg, m.keys.DeleteEntry):
		entry, ok := m.selectedRosterEntry()
		if !ok {
			return m, nil
		}
		return m, m.deleteEntry(entry)

	case key.Matches(msg, m.keys.NewEntry):
		m.openEntryForm()
		return m, nil
	}
	return m, nil
}

func (m *Model) toggleBlock(entry rosterEntry) tea.Cmd {
	blocked := !entry.blocked
	if entry.parachuteID != 0 {
		id := entry.parachuteID
		return m.runOp(opRoster, func(ctx context.Context) error {
			return m.svc.SetParachuteBlocked(ctx, id, blocked)
		})
	}
	kind, id := entry.kind, entry.personID
	return m.runOp(opRoster, func(ctx context.Context) error {
		return m.svc.SetPersonBlocked(ctx, kind, id, blocked)
	})
}

func (m *Model) deleteEntry(entry rosterEntry) tea.Cmd {
	if entry.parachuteID != 0 {
		id := entry.parachuteID
		return m.runOp(opRoster, func(ctx context.Context) error {
			return m.svc.DeleteParachute(ctx, id)
		})
	}
	kind, id := entry.kind, entry.personID
	return m.runOp(opRoster, func(ctx context.Context) error {
		return m.svc.DeletePerson(ctx, kind, id)
	})
}

// renderRoster draws the roster pane, all sections stacked, the active
// section's cursor highlighted.
func (m *Model) renderRoster(width int) string {
	var b strings.Builder
	focused := m.focus == PaneRoster

	for section := 0; section < sectionCount; section++ {
		title := sectionTitles[section]
		if focused && section == m.rosterSection {
			b.WriteString(m.styles.Title.Render("▸ " + title))
		} else {
			b.WriteString(m.styles.Muted.Render("  " + title))
		}
		b.WriteByte('\n')

		entries := m.rosterEntries(section)
		if len(entries) == 0 {
			b.WriteString(m.styles.Muted.Render("    (none)"))
			b.WriteByte('\n')
			continue
		}
		for i, entry := range entries {
			b.WriteString(m.renderRosterRow(section, i, entry))
			b.WriteByte('\n')
		}
	}

	style := m.styles.Pane
	if focused {
		style = m.styles.FocusPane
	}
	return style.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) renderRosterRow(section, index int, entry rosterEntry) string {
	line := "  " + entry.label
	if entry.detail != "" {
		line += "  " + entry.detail
	}
	switch {
	case entry.blockReason != "":
		line += "  [" + entry.blockReason + "]"
	case entry.inDraft:
		line += "  [on board]"
	}

	selected := m.focus == PaneRoster &&
		section == m.rosterSection &&
		index == m.rosterCursor[m.rosterSection]

	switch {
	case selected:
		return m.styles.Selected.Render(line)
	case entry.blockReason != "":
		return m.styles.Muted.Render(line)
	case entry.inDraft:
		return m.styles.Success.Render(line)
	default:
		return m.styles.Text.Render(line)
	}
}
