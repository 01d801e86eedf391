package sync

import (
	"context"
	"fmt"
	"log"

	"github.com/skydz/manifest/internal/api"
	"github.com/skydz/manifest/internal/dropzone"
	"github.com/skydz/manifest/internal/state"
)

// Remote executes the synchronization protocol against the manifest
// service. Every mutating call runs as an explicit two-phase sequence:
// commit attempt, then an unconditional authoritative refresh, also on
// failure, so the local view can never stay speculatively correct.
type Remote struct {
	client api.Service
	store  *state.Store
}

// NewRemote binds the remote synchronizer.
func NewRemote(client api.Service, store *state.Store) *Remote {
	return &Remote{client: client, store: store}
}

var _ Service = (*Remote)(nil)

// Refresh fetches people, parachutes, and plans, replaces the store's
// sub-trees wholesale, and reconciles the active draft against the fetched
// plan list.
func (r *Remote) Refresh(ctx context.Context) error {
	skydivers, err := r.client.ListSkydivers(ctx)
	if err != nil {
		return fmt.Errorf("fetch skydivers: %w", err)
	}
	passengers, err := r.client.ListPassengers(ctx)
	if err != nil {
		return fmt.Errorf("fetch passengers: %w", err)
	}
	parachutes, err := r.client.ListParachutes(ctx)
	if err != nil {
		return fmt.Errorf("fetch parachutes: %w", err)
	}
	wirePlans, err := r.client.ListExitPlans(ctx)
	if err != nil {
		return fmt.Errorf("fetch exit plans: %w", err)
	}

	people := MapPeople(skydivers, passengers)

	chutes := make([]dropzone.Parachute, 0, len(parachutes))
	for _, p := range parachutes {
		chutes = append(chutes, MapParachute(p))
	}

	plans := make([]dropzone.ExitPlan, 0, len(wirePlans))
	for _, p := range wirePlans {
		plans = append(plans, NormalizePlan(p, people))
	}

	r.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		s.People = people
		s.Parachutes = chutes
		s.Plans.List = plans
		return reconcileActive(s)
	}, state.TopicPeople, state.TopicParachutes, state.TopicPlans, state.TopicDraft)

	return nil
}

// refreshAfter is the unconditional post-mutation refresh. When it fails the
// last successfully reconciled snapshot stays in place and the failure is
// only logged; the caller's own error is what surfaces.
func (r *Remote) refreshAfter(ctx context.Context) {
	if err := r.Refresh(ctx); err != nil {
		log.Printf("sync: refresh after mutation failed: %v", err)
	}
}

// SavePlan commits the draft, creating a plan when detached and updating
// otherwise. An unready draft is refused before anything is sent. The
// payload is captured before the call suspends, so edits made while the
// request is in flight are picked up by the refresh instead.
func (r *Remote) SavePlan(ctx context.Context) error {
	snap := r.store.Snapshot()
	if snap.Locked() {
		return nil
	}
	if err := readinessGate(snap); err != nil {
		return err
	}
	payload := BuildPayload(snap)

	var opErr error
	if snap.Plans.ActiveID == 0 {
		ref, err := r.client.CreateExitPlan(ctx, payload)
		if err == nil {
			if id := ref.NewID(); id != 0 {
				r.store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
					s.Plans.ActiveID = id
					s.Plans.ActiveStatus = dropzone.StatusDraft
					s.Draft.ExitPlanID = id
					return s
				}, state.TopicPlans, state.TopicDraft)
			}
		}
		opErr = err
	} else {
		opErr = r.client.UpdateExitPlan(ctx, snap.Plans.ActiveID, payload)
	}

	r.refreshAfter(ctx)
	return opErr
}

// DispatchPlan locks the active plan on the service.
func (r *Remote) DispatchPlan(ctx context.Context) error {
	snap := r.store.Snapshot()
	if snap.Locked() {
		return nil
	}
	id := snap.ActivePlanID()
	if id == 0 {
		return ErrNoPlanID
	}
	if err := readinessGate(snap); err != nil {
		return err
	}

	opErr := r.client.DispatchExitPlan(ctx, id)
	r.refreshAfter(ctx)
	return opErr
}

// UndoDispatch returns the active plan to Draft and detaches the editor.
func (r *Remote) UndoDispatch(ctx context.Context) error {
	id := r.store.Snapshot().ActivePlanID()
	if id == 0 {
		return ErrNoPlanID
	}

	opErr := r.client.UndoDispatchExitPlan(ctx, id)
	if opErr == nil {
		r.store.Mutate(resetToNewPlan, state.TopicPlans, state.TopicDraft)
	}
	r.refreshAfter(ctx)
	return opErr
}

// DeletePlan removes the active plan. Deleting a never-saved draft is a
// purely local reset.
func (r *Remote) DeletePlan(ctx context.Context) error {
	id := r.store.Snapshot().ActivePlanID()
	if id == 0 {
		r.store.Mutate(resetToNewPlan, state.TopicPlans, state.TopicDraft)
		return nil
	}

	opErr := r.client.DeleteExitPlan(ctx, id)
	if opErr == nil {
		r.store.Mutate(resetToNewPlan, state.TopicPlans, state.TopicDraft)
	}
	r.refreshAfter(ctx)
	return opErr
}

// AddPerson registers a skydiver or passenger.
func (r *Remote) AddPerson(ctx context.Context, p dropzone.Person) error {
	var opErr error
	if p.Kind == dropzone.KindSkydiver {
		_, opErr = r.client.CreateSkydiver(ctx, api.Skydiver{
			FirstName:          p.FirstName,
			LastName:           p.LastName,
			Weight:             p.Weight,
			LicenseLevel:       p.LicenseLevel,
			Role:               string(p.Role),
			IsAFFInstructor:    p.IsAFFInstructor,
			IsTandemInstructor: p.IsTandemInstructor,
		})
	} else {
		_, opErr = r.client.CreatePassenger(ctx, api.Passenger{
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Weight:    p.Weight,
		})
	}
	r.refreshAfter(ctx)
	return opErr
}

// DeletePerson removes a skydiver or passenger.
func (r *Remote) DeletePerson(ctx context.Context, kind dropzone.Kind, id int64) error {
	var opErr error
	if kind == dropzone.KindSkydiver {
		opErr = r.client.DeleteSkydiver(ctx, id)
	} else {
		opErr = r.client.DeletePassenger(ctx, id)
	}
	r.refreshAfter(ctx)
	return opErr
}

// SetPersonBlocked toggles the manual block.
func (r *Remote) SetPersonBlocked(ctx context.Context, kind dropzone.Kind, id int64, blocked bool) error {
	var opErr error
	switch {
	case kind == dropzone.KindSkydiver && blocked:
		opErr = r.client.BlockSkydiver(ctx, id)
	case kind == dropzone.KindSkydiver:
		opErr = r.client.UnblockSkydiver(ctx, id)
	case blocked:
		opErr = r.client.BlockPassenger(ctx, id)
	default:
		opErr = r.client.UnblockPassenger(ctx, id)
	}
	r.refreshAfter(ctx)
	return opErr
}

// AddParachute registers a parachute.
func (r *Remote) AddParachute(ctx context.Context, p dropzone.Parachute) error {
	_, opErr := r.client.CreateParachute(ctx, api.Parachute{
		Model:      p.Model,
		Size:       p.Size,
		Type:       p.Type,
		CustomName: p.CustomName,
	})
	r.refreshAfter(ctx)
	return opErr
}

// DeleteParachute removes a parachute.
func (r *Remote) DeleteParachute(ctx context.Context, id int64) error {
	opErr := r.client.DeleteParachute(ctx, id)
	r.refreshAfter(ctx)
	return opErr
}

// SetParachuteBlocked toggles the manual block.
func (r *Remote) SetParachuteBlocked(ctx context.Context, id int64, blocked bool) error {
	var opErr error
	if blocked {
		opErr = r.client.BlockParachute(ctx, id)
	} else {
		opErr = r.client.UnblockParachute(ctx, id)
	}
	r.refreshAfter(ctx)
	return opErr
}
