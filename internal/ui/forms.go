package ui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skydz/manifest/internal/dropzone"
)

// entryForm is the inline registration form for a new skydiver, passenger,
// or parachute. Which fields appear follows the roster section it was
// opened from.
type entryForm struct {
	section int
	labels  []string
	inputs  []textinput.Model
	focused int
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 24
	return ti
}

// openEntryForm enters form mode for the current roster section.
func (m *Model) openEntryForm() {
	var labels []string
	var inputs []textinput.Model

	switch m.rosterSection {
	case SectionParachutes:
		m.mode = modeParachuteForm
		labels = []string{"Model", "Size", "Type", "Custom name"}
		inputs = []textinput.Model{
			newInput("Navigator", 40),
			newInput("240", 4),
			newInput("Student / Tandem / Sport", 20),
			newInput("optional", 40),
		}
	case SectionPassengers:
		m.mode = modePersonForm
		labels = []string{"First name", "Last name", "Weight (kg)"}
		inputs = []textinput.Model{
			newInput("", 40),
			newInput("", 40),
			newInput("80", 4),
		}
	default:
		m.mode = modePersonForm
		labels = []string{"First name", "Last name", "Weight (kg)", "License", "Role", "Tandem instructor (y/n)", "AFF instructor (y/n)"}
		inputs = []textinput.Model{
			newInput("", 40),
			newInput("", 40),
			newInput("80", 4),
			newInput("A / B / C / D", 4),
			newInput("Student / StudentAFF / FunJumper / Instructor / Examiner", 20),
			newInput("n", 1),
			newInput("n", 1),
		}
	}

	inputs[0].Focus()
	m.form = entryForm{section: m.rosterSection, labels: labels, inputs: inputs}
}

func (m *Model) closeForm() {
	m.mode = modeNormal
	m.form = entryForm{}
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closeForm()
		return m, nil

	case msg.Type == tea.KeyTab, msg.Type == tea.KeyDown:
		m.focusFormField((m.form.focused + 1) % len(m.form.inputs))
		return m, nil

	case msg.Type == tea.KeyShiftTab, msg.Type == tea.KeyUp:
		m.focusFormField((m.form.focused + len(m.form.inputs) - 1) % len(m.form.inputs))
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		// Enter advances until the last field, then submits.
		if m.form.focused < len(m.form.inputs)-1 {
			m.focusFormField(m.form.focused + 1)
			return m, nil
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focused], cmd = m.form.inputs[m.form.focused].Update(msg)
	return m, cmd
}

func (m *Model) focusFormField(idx int) {
	m.form.inputs[m.form.focused].Blur()
	m.form.focused = idx
	m.form.inputs[idx].Focus()
}

func (m *Model) submitForm() (tea.Model, tea.Cmd) {
	values := make([]string, len(m.form.inputs))
	for i, in := range m.form.inputs {
		values[i] = strings.TrimSpace(in.Value())
	}
	section := m.form.section

	if section == SectionParachutes {
		if values[0] == "" {
			return m, m.showStatus(levelError, "Model is required", 5*time.Second)
		}
		size, _ := strconv.Atoi(values[1])
		chute := dropzone.Parachute{
			Model:      values[0],
			Size:       size,
			Type:       values[2],
			CustomName: values[3],
		}
		m.closeForm()
		return m, m.runOp(opRoster, func(ctx context.Context) error {
			return m.svc.AddParachute(ctx, chute)
		})
	}

	if values[0] == "" || values[1] == "" {
		return m, m.showStatus(levelError, "First and last name are required", 5*time.Second)
	}
	weight, _ := strconv.Atoi(values[2])
	person := dropzone.Person{
		FirstName: values[0],
		LastName:  values[1],
		Weight:    weight,
	}
	if section == SectionPassengers {
		person.Kind = dropzone.KindPassenger
	} else {
		person.Kind = dropzone.KindSkydiver
		person.LicenseLevel = values[3]
		person.Role = dropzone.Role(values[4])
		if person.Role == "" {
			person.Role = dropzone.RoleFunJumper
		}
		person.IsTandemInstructor = strings.EqualFold(values[5], "y")
		person.IsAFFInstructor = strings.EqualFold(values[6], "y")
	}

	m.closeForm()
	return m, m.runOp(opRoster, func(ctx context.Context) error {
		return m.svc.AddPerson(ctx, person)
	})
}

func (m *Model) renderForm(width int) string {
	var b strings.Builder
	title := "Register skydiver"
	switch m.form.section {
	case SectionPassengers:
		title = "Register passenger"
	case SectionParachutes:
		title = "Register parachute"
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteByte('\n')

	for i, label := range m.form.labels {
		if i == m.form.focused {
			b.WriteString(m.styles.Accent.Render("› " + label + ": "))
		} else {
			b.WriteString(m.styles.Muted.Render("  " + label + ": "))
		}
		b.WriteString(m.form.inputs[i].View())
		b.WriteByte('\n')
	}
	b.WriteString(m.styles.Muted.Render("enter: next/submit   esc: cancel"))

	return m.styles.FocusPane.Width(width).Render(b.String())
}
