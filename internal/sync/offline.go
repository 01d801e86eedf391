package sync

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/skydz/manifest/internal/api"
	"github.com/skydz/manifest/internal/dropzone"
	"github.com/skydz/manifest/internal/plan"
	"github.com/skydz/manifest/internal/state"
)

// Offline implements the synchronization contract purely against the local
// snapshot. Ids are allocated as one past the maximum in use, and the
// assignedExitPlanId bookkeeping on people and parachutes mirrors exactly
// what the remote service would have done: set on commit, cleared on delete
// or removal. Refusals that the service would answer with 409 are raised as
// the same api.Error, so the message surface is identical in both modes.
type Offline struct {
	store *state.Store
}

// NewOffline binds the offline synchronizer.
func NewOffline(store *state.Store) *Offline {
	return &Offline{store: store}
}

var _ Service = (*Offline)(nil)

// Refresh reconciles the draft against the local plan list. There is no
// remote truth to fetch, but the reconciliation step is the same one the
// remote path runs, so the modes stay behaviorally aligned.
func (o *Offline) Refresh(ctx context.Context) error {
	o.store.Mutate(reconcileActive, state.TopicPlans, state.TopicDraft)
	return nil
}

// SavePlan commits the draft into the local plan list. An unready draft is
// refused with the prioritized diagnostic, exactly like the remote path.
func (o *Offline) SavePlan(ctx context.Context) error {
	snap := o.store.Snapshot()
	if snap.Locked() {
		return nil
	}
	if err := readinessGate(snap); err != nil {
		return err
	}

	o.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		if s.Locked() {
			return s
		}

		id := s.Plans.ActiveID
		if id == 0 {
			id = maxPlanID(s.Plans.List) + 1
		}

		slots := dropzone.CloneSlots(s.Draft.Slots)
		sort.Slice(slots, func(i, j int) bool {
			return slots[i].SlotNumber < slots[j].SlotNumber
		})

		committed := dropzone.ExitPlan{
			ID:       id,
			Aircraft: s.Draft.Aircraft,
			Time:     s.Draft.Time,
			Status:   dropzone.StatusDraft,
			Slots:    slots,
		}
		if committed.Time == "" {
			committed.Time = dropzone.NowClock()
		}

		replaced := false
		for i := range s.Plans.List {
			if s.Plans.List[i].ID == id {
				s.Plans.List[i] = committed
				replaced = true
				break
			}
		}
		if !replaced {
			s.Plans.List = append(s.Plans.List, committed)
		}

		s.Plans.ActiveID = id
		s.Plans.ActiveStatus = dropzone.StatusDraft
		s.Draft.ExitPlanID = id

		rebindPlanResources(&s, id, slots)
		return s
	}, state.TopicPeople, state.TopicParachutes, state.TopicPlans, state.TopicDraft)
	return nil
}

// DispatchPlan locks the active plan locally.
func (o *Offline) DispatchPlan(ctx context.Context) error {
	snap := o.store.Snapshot()
	if snap.ActivePlanID() == 0 {
		return ErrNoPlanID
	}
	if err := readinessGate(snap); err != nil {
		return err
	}
	o.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		if s.Locked() {
			return s
		}
		target := s.FindPlan(s.ActivePlanID())
		if target == nil {
			return s
		}
		target.Status = dropzone.StatusDispatched
		target.DispatchedAt = time.Now().UTC().Format(time.RFC3339)
		s.Plans.ActiveStatus = dropzone.StatusDispatched
		return s
	}, state.TopicPlans, state.TopicDraft)
	return nil
}

// UndoDispatch unlocks the active plan and detaches the editor.
func (o *Offline) UndoDispatch(ctx context.Context) error {
	if id := o.store.Snapshot().ActivePlanID(); id == 0 {
		return ErrNoPlanID
	}
	o.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		target := s.FindPlan(s.ActivePlanID())
		if target == nil {
			return s
		}
		target.Status = dropzone.StatusDraft
		target.DispatchedAt = ""
		return resetToNewPlan(s)
	}, state.TopicPlans, state.TopicDraft)
	return nil
}

// DeletePlan removes the active plan and releases everything it committed.
func (o *Offline) DeletePlan(ctx context.Context) error {
	o.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		id := s.ActivePlanID()
		if id == 0 {
			return resetToNewPlan(s)
		}

		releasePlanResources(&s, id)
		list := s.Plans.List[:0]
		for _, p := range s.Plans.List {
			if p.ID != id {
				list = append(list, p)
			}
		}
		if len(list) == 0 {
			list = nil
		}
		s.Plans.List = list
		return resetToNewPlan(s)
	}, state.TopicPeople, state.TopicParachutes, state.TopicPlans, state.TopicDraft)
	return nil
}

// AddPerson registers a person locally, allocating the next id.
func (o *Offline) AddPerson(ctx context.Context, p dropzone.Person) error {
	o.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		p.AssignedExitPlanID = 0
		if p.Kind == dropzone.KindSkydiver {
			p.ID = maxPersonID(s.People.Skydivers) + 1
			s.People.Skydivers = append(s.People.Skydivers, p)
		} else {
			p.ID = maxPersonID(s.People.Passengers) + 1
			s.People.Passengers = append(s.People.Passengers, p)
		}
		return s
	}, state.TopicPeople)
	return nil
}

// DeletePerson removes a person. A person committed to a plan is refused
// with the same conflict the service would answer.
func (o *Offline) DeletePerson(ctx context.Context, kind dropzone.Kind, id int64) error {
	snap := o.store.Snapshot()
	person := snap.FindPerson(kind, id)
	if person == nil {
		return nil
	}
	if person.AssignedExitPlanID != 0 {
		return &api.Error{
			Status:  http.StatusConflict,
			Message: fmt.Sprintf("%s is committed to plan #%d", person.FullName(), person.AssignedExitPlanID),
		}
	}

	o.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		if kind == dropzone.KindSkydiver {
			s.People.Skydivers = removePerson(s.People.Skydivers, id)
		} else {
			s.People.Passengers = removePerson(s.People.Passengers, id)
		}
		// Drop any draft slot the person occupied, with its cascade.
		for _, slot := range s.Draft.Slots {
			if slot.Kind == kind && slot.PersonID == id {
				s = plan.RemoveFromFlight(s, slot.SlotNumber)
				break
			}
		}
		return s
	}, state.TopicPeople, state.TopicDraft)
	return nil
}

// SetPersonBlocked toggles the manual block locally.
func (o *Offline) SetPersonBlocked(ctx context.Context, kind dropzone.Kind, id int64, blocked bool) error {
	o.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		if p := s.FindPerson(kind, id); p != nil {
			p.ManualBlocked = blocked
		}
		return s
	}, state.TopicPeople)
	return nil
}

// AddParachute registers a parachute locally, allocating the next id.
func (o *Offline) AddParachute(ctx context.Context, p dropzone.Parachute) error {
	o.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		p.ID = maxParachuteID(s.Parachutes) + 1
		p.AssignedExitPlanID = 0
		s.Parachutes = append(s.Parachutes, p)
		return s
	}, state.TopicParachutes)
	return nil
}

// DeleteParachute removes a parachute, refusing when committed to a plan.
func (o *Offline) DeleteParachute(ctx context.Context, id int64) error {
	snap := o.store.Snapshot()
	chute := snap.FindParachute(id)
	if chute == nil {
		return nil
	}
	if chute.AssignedExitPlanID != 0 {
		return &api.Error{
			Status:  http.StatusConflict,
			Message: fmt.Sprintf("%s is committed to plan #%d", chute.Label(), chute.AssignedExitPlanID),
		}
	}

	o.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		list := s.Parachutes[:0]
		for _, p := range s.Parachutes {
			if p.ID != id {
				list = append(list, p)
			}
		}
		if len(list) == 0 {
			list = nil
		}
		s.Parachutes = list

		for i := range s.Draft.Slots {
			if s.Draft.Slots[i].ParachuteID == id {
				s.Draft.Slots[i].ParachuteID = 0
				if s.Draft.Slots[i].Kind == dropzone.KindPassenger {
					s.Draft.Slots[i].TandemInstructorID = 0
				}
			}
		}
		return s
	}, state.TopicParachutes, state.TopicDraft)
	return nil
}

// SetParachuteBlocked toggles the manual block locally.
func (o *Offline) SetParachuteBlocked(ctx context.Context, id int64, blocked bool) error {
	o.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		if p := s.FindParachute(id); p != nil {
			p.ManualBlocked = blocked
		}
		return s
	}, state.TopicParachutes)
	return nil
}

// rebindPlanResources rewrites the assignedExitPlanId bookkeeping for one
// plan: everything previously bound to it is released, then every person
// and parachute in the committed slots is bound.
func rebindPlanResources(s *dropzone.Snapshot, planID int64, slots []dropzone.Slot) {
	releasePlanResources(s, planID)
	for _, slot := range slots {
		if p := s.FindPerson(slot.Kind, slot.PersonID); p != nil {
			p.AssignedExitPlanID = planID
		}
		if slot.ParachuteID != 0 {
			if c := s.FindParachute(slot.ParachuteID); c != nil {
				c.AssignedExitPlanID = planID
			}
		}
	}
}

// releasePlanResources clears every back-reference to the plan.
func releasePlanResources(s *dropzone.Snapshot, planID int64) {
	for i := range s.People.Skydivers {
		if s.People.Skydivers[i].AssignedExitPlanID == planID {
			s.People.Skydivers[i].AssignedExitPlanID = 0
		}
	}
	for i := range s.People.Passengers {
		if s.People.Passengers[i].AssignedExitPlanID == planID {
			s.People.Passengers[i].AssignedExitPlanID = 0
		}
	}
	for i := range s.Parachutes {
		if s.Parachutes[i].AssignedExitPlanID == planID {
			s.Parachutes[i].AssignedExitPlanID = 0
		}
	}
}

func maxPlanID(list []dropzone.ExitPlan) int64 {
	var max int64
	for _, p := range list {
		if p.ID > max {
			max = p.ID
		}
	}
	return max
}

func maxPersonID(list []dropzone.Person) int64 {
	var max int64
	for _, p := range list {
		if p.ID > max {
			max = p.ID
		}
	}
	return max
}

func maxParachuteID(list []dropzone.Parachute) int64 {
	var max int64
	for _, p := range list {
		if p.ID > max {
			max = p.ID
		}
	}
	return max
}

func removePerson(list []dropzone.Person, id int64) []dropzone.Person {
	out := list[:0]
	for _, p := range list {
		if p.ID != id {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
