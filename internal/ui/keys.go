package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding
	RefreshNow key.Binding

	// Navigation
	Up      key.Binding
	Down    key.Binding
	Section key.Binding

	// Roster actions
	Add         key.Binding
	ToggleBlock key.Binding
	DeleteEntry key.Binding
	NewEntry    key.Binding

	// Board actions
	Remove       key.Binding
	Parachute    key.Binding
	Tandem       key.Binding
	Grab         key.Binding
	Save         key.Binding
	Dispatch     key.Binding
	UndoDispatch key.Binding
	DeletePlan   key.Binding
	NewPlan      key.Binding
	EditTime     key.Binding

	// Selection
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Cycle panes"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Cycle panes (reverse)"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		RefreshNow: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Refresh from service"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "Down"),
		),
		Section: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "Next roster section"),
		),

		Add: key.NewBinding(
			key.WithKeys("enter", "a"),
			key.WithHelp("a/enter", "Add to flight"),
		),
		ToggleBlock: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Block/unblock"),
		),
		DeleteEntry: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Delete from roster"),
		),
		NewEntry: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "Register new"),
		),

		Remove: key.NewBinding(
			key.WithKeys("backspace", "r"),
			key.WithHelp("r", "Remove from flight"),
		),
		Parachute: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Assign parachute"),
		),
		Tandem: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Assign tandem instructor"),
		),
		Grab: key.NewBinding(
			key.WithKeys("g", " "),
			key.WithHelp("g/space", "Grab for move"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Save plan"),
		),
		Dispatch: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Dispatch plan"),
		),
		UndoDispatch: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Undo dispatch"),
		),
		DeletePlan: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete plan"),
		),
		NewPlan: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New plan"),
		),
		EditTime: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit takeoff time"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}
