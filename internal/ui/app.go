// Package ui provides the Bubble Tea terminal interface for building exit
// plans: a roster pane, the slot board, the committed plan list, selector
// overlays, and the grab-and-drop move controller.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skydz/manifest/internal/dropzone"
	"github.com/skydz/manifest/internal/plan"
	"github.com/skydz/manifest/internal/prefs"
	"github.com/skydz/manifest/internal/state"
	syncsvc "github.com/skydz/manifest/internal/sync"
)

// Pane identifies the focusable columns.
type Pane int

const (
	PaneRoster Pane = iota
	PaneBoard
	PanePlans
)

// Roster sections, in display order.
const (
	SectionFunJumpers = iota
	SectionStaff
	SectionPassengers
	SectionParachutes
	sectionCount
)

// mode is the modal input state. Selector and form modes capture all keys;
// grab mode is the drag gesture.
type mode int

const (
	modeNormal mode = iota
	modeParachuteSelect
	modeTandemSelect
	modeGrab
	modeTimeEdit
	modePersonForm
	modeParachuteForm
	modeHelp
)

// grabState tracks the single in-progress move gesture. Only one grab is
// active at a time; plan switches and focus loss cancel it.
type grabState struct {
	active   bool
	kind     dropzone.Kind
	personID int64
	label    string
	fromSlot int // 0 when grabbed from the roster
	target   int
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Service   syncsvc.Service
	ThemeName string
	PrefsPath string
	Offline   bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	store     *state.Store
	svc       syncsvc.Service
	editor    *plan.Editor
	prefsPath string
	offline   bool

	theme  Theme
	styles Styles
	keys   keyMap

	width  int
	height int
	ready  bool

	snapshot dropzone.Snapshot
	updates  chan struct{}

	focus         Pane
	mode          mode
	rosterSection int
	rosterCursor  [sectionCount]int
	slotCursor    int // 1..MaxSlots
	planCursor    int

	selectorSlot   int
	selectorCursor int

	grab grabState

	status    statusMessage
	statusSeq int

	timeInput textinput.Model
	form      entryForm

	busy bool
}

// New creates the root model and wires the store subscription that drives
// re-renders.
func New(opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	theme := ThemeByName(opts.ThemeName)

	ti := textinput.New()
	ti.Placeholder = "HH:MM"
	ti.CharLimit = 5
	ti.Width = 8

	m := &Model{
		ctx:        ctx,
		store:      opts.Store,
		svc:        opts.Service,
		editor:     plan.NewEditor(opts.Store),
		prefsPath:  opts.PrefsPath,
		offline:    opts.Offline,
		theme:      theme,
		styles:     theme.Styles(),
		keys:       DefaultKeyMap(),
		snapshot:   opts.Store.Snapshot(),
		updates:    make(chan struct{}, 16),
		focus:      PaneBoard,
		slotCursor: 1,
		timeInput:  ti,
	}

	opts.Store.Subscribe(state.TopicAll, func(dropzone.Snapshot) {
		select {
		case m.updates <- struct{}{}:
		default:
		}
	})
	return m
}

// Run starts the Bubble Tea program and blocks until quit or context
// cancellation.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(m.ctx),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}

// Init starts listening for store changes.
func (m *Model) Init() tea.Cmd {
	return m.listenStore()
}

func (m *Model) listenStore() tea.Cmd {
	return func() tea.Msg {
		<-m.updates
		return storeChangedMsg{}
	}
}

// Update is the Bubble Tea message pump.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.BlurMsg:
		// Losing the terminal unconditionally cancels a drag.
		if m.mode == modeGrab {
			m.cancelGrab()
		}
		return m, nil

	case storeChangedMsg:
		m.snapshot = m.store.Snapshot()
		m.clampCursors()
		return m, m.listenStore()

	case opDoneMsg:
		return m.handleOpDone(msg)

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = statusMessage{}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && m.mode != modeTimeEdit && m.mode != modePersonForm && m.mode != modeParachuteForm {
		return m, tea.Quit
	}

	switch m.mode {
	case modeHelp:
		m.mode = modeNormal
		return m, nil
	case modeParachuteSelect, modeTandemSelect:
		return m.handleSelectorKey(msg)
	case modeGrab:
		return m.handleGrabKey(msg)
	case modeTimeEdit:
		return m.handleTimeEditKey(msg)
	case modePersonForm, modeParachuteForm:
		return m.handleFormKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = NextTheme(m.theme.Name)
		m.styles = m.theme.Styles()
		_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.focus = (m.focus + 1) % 3
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.focus = (m.focus + 2) % 3
		return m, nil

	case key.Matches(msg, m.keys.RefreshNow):
		return m, m.runOp(opRefresh, m.svc.Refresh)
	}

	switch m.focus {
	case PaneRoster:
		return m.handleRosterKey(msg)
	case PaneBoard:
		return m.handleBoardKey(msg)
	default:
		return m.handlePlansKey(msg)
	}
}

// startNewPlan detaches the draft and resets all transient interaction
// state: selector waits, grabs, and the message bar.
func (m *Model) startNewPlan() {
	m.resetTransient()
	m.editor.StartNewPlan()
}

// setActivePlan opens a committed plan, resetting transient state first.
func (m *Model) setActivePlan(id int64) {
	m.resetTransient()
	m.editor.SetActivePlan(id)
}

func (m *Model) resetTransient() {
	m.mode = modeNormal
	m.selectorSlot = 0
	m.selectorCursor = 0
	m.cancelGrab()
	m.status = statusMessage{}
}

func (m *Model) clampCursors() {
	for section := 0; section < sectionCount; section++ {
		size := len(m.rosterEntries(section))
		if m.rosterCursor[section] >= size {
			m.rosterCursor[section] = max(0, size-1)
		}
	}
	if m.planCursor >= len(m.snapshot.Plans.List) {
		m.planCursor = max(0, len(m.snapshot.Plans.List)-1)
	}
	if m.slotCursor < 1 {
		m.slotCursor = 1
	}
	if m.slotCursor > dropzone.MaxSlots {
		m.slotCursor = dropzone.MaxSlots
	}
}

// handleOpDone reacts to a finished synchronization call.
func (m *Model) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		text, d := classifyError(msg.err, opFallback(msg.op))
		return m, m.showStatus(levelError, text, d)
	}

	switch msg.op {
	case opSave:
		return m, m.showStatus(levelSuccess, "Saved", 3500*time.Millisecond)
	case opDispatch:
		return m, m.showStatus(levelSuccess, "Dispatched", 4*time.Second)
	case opUndo:
		return m, m.showStatus(levelInfo, "Dispatch undone", 5*time.Second)
	case opDelete:
		return m, m.showStatus(levelInfo, "Plan deleted", 4*time.Second)
	case opRefresh:
		return m, nil
	}
	return m, nil
}

func (m *Model) runOp(op string, fn func(context.Context) error) tea.Cmd {
	m.busy = true
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

// activePlanLabel names the open plan for the header.
func (m *Model) activePlanLabel() string {
	id := m.snapshot.ActivePlanID()
	if id == 0 {
		return "new plan"
	}
	return fmt.Sprintf("plan #%d", id)
}
