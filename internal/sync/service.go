package sync

import (
	"context"
	"errors"

	"github.com/skydz/manifest/internal/dropzone"
	"github.com/skydz/manifest/internal/plan"
)

// ErrNoPlanID rejects dispatch and undo on a plan that was never saved.
var ErrNoPlanID = errors.New("save the plan first")

// NotReadyError refuses a save or dispatch on a draft that fails a
// flight-readiness rule. Diagnostic is the highest-priority failure.
type NotReadyError struct {
	Diagnostic string
}

func (e *NotReadyError) Error() string { return e.Diagnostic }

// readinessGate returns the refusal for an unready draft, or nil.
func readinessGate(s dropzone.Snapshot) error {
	if diag := plan.Diagnose(s); diag != "" {
		return &NotReadyError{Diagnostic: diag}
	}
	return nil
}

// Service is the synchronization contract the UI drives. Remote implements
// it against the manifest service with a reconciling refresh after every
// mutation; Offline implements the same operations purely against the local
// snapshot. The UI cannot tell the two apart.
type Service interface {
	// Refresh re-establishes ground truth: reference collections, the plan
	// list, and the active draft are replaced wholesale.
	Refresh(ctx context.Context) error

	// SavePlan commits the draft: create when detached, update otherwise.
	// An unready draft is refused with NotReadyError.
	SavePlan(ctx context.Context) error
	// DispatchPlan locks the active plan. Refused with NotReadyError when
	// the draft fails a readiness rule.
	DispatchPlan(ctx context.Context) error
	// UndoDispatch returns a dispatched plan to Draft and detaches the
	// editor onto a fresh plan.
	UndoDispatch(ctx context.Context) error
	// DeletePlan removes the active plan in either status, releasing every
	// person and parachute it had committed.
	DeletePlan(ctx context.Context) error

	AddPerson(ctx context.Context, p dropzone.Person) error
	DeletePerson(ctx context.Context, kind dropzone.Kind, id int64) error
	SetPersonBlocked(ctx context.Context, kind dropzone.Kind, id int64, blocked bool) error

	AddParachute(ctx context.Context, p dropzone.Parachute) error
	DeleteParachute(ctx context.Context, id int64) error
	SetParachuteBlocked(ctx context.Context, id int64, blocked bool) error
}

// resetToNewPlan detaches the draft onto an empty plan. Shared by both
// execution modes after undo and delete.
func resetToNewPlan(s dropzone.Snapshot) dropzone.Snapshot {
	s.Plans.ActiveID = 0
	s.Plans.ActiveStatus = dropzone.StatusDraft
	s.Draft.ExitPlanID = 0
	s.Draft.Slots = nil
	s.Draft.Time = dropzone.NowClock()
	return s
}

// reconcileActive re-reads the active plan from the plan list into the
// draft. A plan that disappeared from the list detaches the editor.
func reconcileActive(s dropzone.Snapshot) dropzone.Snapshot {
	if s.Plans.ActiveID == 0 {
		return s
	}
	active := s.FindPlan(s.Plans.ActiveID)
	if active == nil {
		s.Plans.ActiveID = 0
		s.Plans.ActiveStatus = dropzone.StatusDraft
		s.Draft.ExitPlanID = 0
		return s
	}

	s.Plans.ActiveStatus = active.Status
	s.Draft.ExitPlanID = active.ID
	if active.Aircraft != "" {
		s.Draft.Aircraft = active.Aircraft
	}
	if active.Time != "" {
		s.Draft.Time = active.Time
	} else {
		s.Draft.Time = dropzone.NowClock()
	}
	s.Draft.Slots = dropzone.CloneSlots(active.Slots)
	return s
}
