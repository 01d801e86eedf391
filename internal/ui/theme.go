package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string
	Border     string
	FocusEdge  string

	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	SelectionBg   string
	SelectionText string
}

// Styles returns the Lipgloss styles derived from a theme.
type Styles struct {
	Pane       lipgloss.Style
	FocusPane  lipgloss.Style
	Title      lipgloss.Style
	Text       lipgloss.Style
	Muted      lipgloss.Style
	Accent     lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	Danger     lipgloss.Style
	Info       lipgloss.Style
	Selected   lipgloss.Style
	SlotEmpty  lipgloss.Style
	SlotFilled lipgloss.Style
	SlotTarget lipgloss.Style
	MsgSuccess lipgloss.Style
	MsgError   lipgloss.Style
	MsgInfo    lipgloss.Style
}

// Styles materializes the theme.
func (t Theme) Styles() Styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Border)).
		Padding(0, 1)

	slot := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(t.Border)).
		Padding(0, 1)

	return Styles{
		Pane: pane,
		FocusPane: pane.
			BorderForeground(lipgloss.Color(t.FocusEdge)),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),
		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
		SlotEmpty: slot.
			Foreground(lipgloss.Color(t.Muted)),
		SlotFilled: slot.
			Foreground(lipgloss.Color(t.Text)),
		SlotTarget: slot.
			BorderForeground(lipgloss.Color(t.Warning)),
		MsgSuccess: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Success)).
			Foreground(lipgloss.Color(t.Background)).
			Padding(0, 1),
		MsgError: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Danger)).
			Foreground(lipgloss.Color(t.Background)).
			Padding(0, 1),
		MsgInfo: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Warning)).
			Foreground(lipgloss.Color(t.Background)).
			Padding(0, 1),
	}
}

// Themes available for cycling; the preferred one persists via prefs.
var Themes = []Theme{
	{
		Name:          "Night Jump",
		Background:    "#1a1b26",
		Surface:       "#24283b",
		Border:        "#3b4261",
		FocusEdge:     "#7aa2f7",
		Text:          "#c0caf5",
		Muted:         "#565f89",
		Accent:        "#7aa2f7",
		Success:       "#9ece6a",
		Warning:       "#e0af68",
		Danger:        "#f7768e",
		Info:          "#7dcfff",
		SelectionBg:   "#33467c",
		SelectionText: "#c0caf5",
	},
	{
		Name:          "Sunset Load",
		Background:    "#282828",
		Surface:       "#32302f",
		Border:        "#504945",
		FocusEdge:     "#fe8019",
		Text:          "#ebdbb2",
		Muted:         "#928374",
		Accent:        "#fe8019",
		Success:       "#b8bb26",
		Warning:       "#fabd2f",
		Danger:        "#fb4934",
		Info:          "#83a598",
		SelectionBg:   "#665c54",
		SelectionText: "#fbf1c7",
	},
}

// ThemeByName returns the named theme, defaulting to the first.
func ThemeByName(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after the given one, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
