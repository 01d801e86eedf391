package plan

import (
	"github.com/skydz/manifest/internal/dropzone"
	"github.com/skydz/manifest/internal/state"
)

// Editor applies assignment operations to the store's draft. Every method
// funnels through store.Mutate, so structural invariants hold between any
// two operations and subscribers see each change exactly once.
type Editor struct {
	store *state.Store
}

// NewEditor binds an editor to the store.
func NewEditor(store *state.Store) *Editor {
	return &Editor{store: store}
}

// AddToFlight seats a person at the lowest free slot.
func (e *Editor) AddToFlight(kind dropzone.Kind, personID int64) {
	e.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		return AddToFlight(s, kind, personID)
	}, state.TopicDraft)
}

// RemoveFromFlight empties a slot, cascading tandem invalidation.
func (e *Editor) RemoveFromFlight(slotNumber int) {
	e.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		return RemoveFromFlight(s, slotNumber)
	}, state.TopicDraft)
}

// AssignParachute equips a slot.
func (e *Editor) AssignParachute(slotNumber int, parachuteID int64) {
	e.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		return AssignParachute(s, slotNumber, parachuteID)
	}, state.TopicDraft)
}

// AssignTandemInstructor pairs a passenger with an instructor. The returned
// error carries the rejection diagnostic; the draft is untouched on error.
func (e *Editor) AssignTandemInstructor(passengerSlot int, instructorID int64) error {
	var rejected error
	e.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		next, err := AssignTandemInstructor(s, passengerSlot, instructorID)
		rejected = err
		return next
	}, state.TopicDraft)
	return rejected
}

// MovePerson performs the drag-drop reassignment.
func (e *Editor) MovePerson(kind dropzone.Kind, personID int64, target int) {
	e.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		return MovePerson(s, kind, personID, target)
	}, state.TopicDraft)
}

// ClearSlot empties a slot via the drop-outside gesture.
func (e *Editor) ClearSlot(slotNumber int) {
	e.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		return ClearSlot(s, slotNumber)
	}, state.TopicDraft)
}

// StartNewPlan detaches the draft into an empty new plan scheduled for the
// current wall-clock time.
func (e *Editor) StartNewPlan() {
	e.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		s.Plans.ActiveID = 0
		s.Plans.ActiveStatus = dropzone.StatusDraft
		s.Draft.ExitPlanID = 0
		s.Draft.Slots = nil
		s.Draft.Time = dropzone.NowClock()
		return s
	}, state.TopicPlans, state.TopicDraft)
}

// SetActivePlan opens a committed plan for editing, replacing the draft
// wholesale. It reports whether the plan exists.
func (e *Editor) SetActivePlan(id int64) bool {
	found := false
	e.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		target := s.FindPlan(id)
		if target == nil {
			return s
		}
		found = true

		s.Plans.ActiveID = id
		s.Plans.ActiveStatus = target.Status

		s.Draft.ExitPlanID = id
		if target.Aircraft != "" {
			s.Draft.Aircraft = target.Aircraft
		}
		if target.Time != "" {
			s.Draft.Time = target.Time
		} else {
			s.Draft.Time = dropzone.NowClock()
		}
		s.Draft.Slots = dropzone.CloneSlots(target.Slots)
		return s
	}, state.TopicPlans, state.TopicDraft)
	return found
}

// SetDraftTime updates the scheduled wall-clock time of the open draft.
func (e *Editor) SetDraftTime(clock string) {
	normalized := dropzone.NormalizeClock(clock)
	if normalized == "" {
		return
	}
	e.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		if s.Locked() {
			return s
		}
		s.Draft.Time = normalized
		return s
	}, state.TopicDraft)
}
