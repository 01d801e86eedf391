package ui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skydz/manifest/internal/api"
	syncsvc "github.com/skydz/manifest/internal/sync"
)

// Synchronization operation labels carried through opDoneMsg.
const (
	opRefresh  = "refresh"
	opSave     = "save"
	opDispatch = "dispatch"
	opUndo     = "undo"
	opDelete   = "delete"
	opRoster   = "roster"
)

// opDoneMsg reports a finished service call.
type opDoneMsg struct {
	op  string
	err error
}

// storeChangedMsg signals that the snapshot should be re-read.
type storeChangedMsg struct{}

// statusExpiredMsg dismisses the message bar when its timer fires. The
// sequence number guards against a stale timer clearing a newer message.
type statusExpiredMsg struct {
	seq int
}

type statusLevel int

const (
	levelNone statusLevel = iota
	levelSuccess
	levelInfo
	levelError
)

// statusMessage is the transient bar at the bottom of the screen.
type statusMessage struct {
	level statusLevel
	text  string
}

// showStatus replaces the current message and schedules its dismissal.
func (m *Model) showStatus(level statusLevel, text string, d time.Duration) tea.Cmd {
	m.statusSeq++
	m.status = statusMessage{level: level, text: text}
	seq := m.statusSeq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

// classifyError turns a service error into message text and a display
// duration. Conflicts and field errors surface the service's own wording;
// anything else falls back to the operation description.
func classifyError(err error, fallback string) (string, time.Duration) {
	if errors.Is(err, syncsvc.ErrNoPlanID) {
		return "Save the plan before dispatching it", 5 * time.Second
	}

	var notReady *syncsvc.NotReadyError
	if errors.As(err, &notReady) {
		return notReady.Diagnostic, 7 * time.Second
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch {
		case api.IsConflict(err):
			return apiErr.Message, 7 * time.Second
		case api.IsBadInput(err):
			if field := api.FirstFieldError(err); field != "" {
				return fallback + ": " + field, 7 * time.Second
			}
			if apiErr.Message != "" {
				return fallback + ": " + apiErr.Message, 7 * time.Second
			}
			return fallback + ": invalid request", 7 * time.Second
		case api.IsServerFault(err):
			return fallback + ": service error, try again", 7 * time.Second
		}
	}
	return fallback + ": " + err.Error(), 7 * time.Second
}

func opFallback(op string) string {
	switch op {
	case opRefresh:
		return "Refresh failed"
	case opSave:
		return "Save failed"
	case opDispatch:
		return "Dispatch failed"
	case opUndo:
		return "Undo failed"
	case opDelete:
		return "Delete failed"
	case opRoster:
		return "Update failed"
	}
	return "Operation failed"
}
