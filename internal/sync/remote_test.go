package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/skydz/manifest/internal/api"
	"github.com/skydz/manifest/internal/dropzone"
	"github.com/skydz/manifest/internal/state"
)

// fakeAPI is an in-memory api.Service that records calls and serves canned
// collections.
type fakeAPI struct {
	skydivers  []api.Skydiver
	passengers []api.Passenger
	parachutes []api.Parachute
	plans      []api.ExitPlan

	createdPlanID int64
	failCreate    error
	failUpdate    error
	failList      error

	calls []string
}

func (f *fakeAPI) record(name string) { f.calls = append(f.calls, name) }

func createdRef(id int64) api.CreatedRef {
	return api.CreatedRef{ID: &id}
}

func (f *fakeAPI) ListSkydivers(context.Context) ([]api.Skydiver, error) {
	f.record("ListSkydivers")
	return f.skydivers, f.failList
}

func (f *fakeAPI) CreateSkydiver(context.Context, api.Skydiver) (api.CreatedRef, error) {
	f.record("CreateSkydiver")
	return createdRef(99), nil
}

func (f *fakeAPI) DeleteSkydiver(context.Context, int64) error {
	f.record("DeleteSkydiver")
	return nil
}

func (f *fakeAPI) BlockSkydiver(context.Context, int64) error {
	f.record("BlockSkydiver")
	return nil
}

func (f *fakeAPI) UnblockSkydiver(context.Context, int64) error {
	f.record("UnblockSkydiver")
	return nil
}

func (f *fakeAPI) ListPassengers(context.Context) ([]api.Passenger, error) {
	f.record("ListPassengers")
	return f.passengers, nil
}

func (f *fakeAPI) CreatePassenger(context.Context, api.Passenger) (api.CreatedRef, error) {
	f.record("CreatePassenger")
	return createdRef(99), nil
}

func (f *fakeAPI) DeletePassenger(context.Context, int64) error {
	f.record("DeletePassenger")
	return nil
}

func (f *fakeAPI) BlockPassenger(context.Context, int64) error {
	f.record("BlockPassenger")
	return nil
}

func (f *fakeAPI) UnblockPassenger(context.Context, int64) error {
	f.record("UnblockPassenger")
	return nil
}

func (f *fakeAPI) ListParachutes(context.Context) ([]api.Parachute, error) {
	f.record("ListParachutes")
	return f.parachutes, nil
}

func (f *fakeAPI) CreateParachute(context.Context, api.Parachute) (api.CreatedRef, error) {
	f.record("CreateParachute")
	return createdRef(99), nil
}

func (f *fakeAPI) DeleteParachute(context.Context, int64) error {
	f.record("DeleteParachute")
	return nil
}

func (f *fakeAPI) BlockParachute(context.Context, int64) error {
	f.record("BlockParachute")
	return nil
}

func (f *fakeAPI) UnblockParachute(context.Context, int64) error {
	f.record("UnblockParachute")
	return nil
}

func (f *fakeAPI) ListExitPlans(context.Context) ([]api.ExitPlan, error) {
	f.record("ListExitPlans")
	return f.plans, nil
}

func (f *fakeAPI) CreateExitPlan(context.Context, api.ExitPlanRequest) (api.CreatedRef, error) {
	f.record("CreateExitPlan")
	if f.failCreate != nil {
		return api.CreatedRef{}, f.failCreate
	}
	return createdRef(f.createdPlanID), nil
}

func (f *fakeAPI) UpdateExitPlan(context.Context, int64, api.ExitPlanRequest) error {
	f.record("UpdateExitPlan")
	return f.failUpdate
}

func (f *fakeAPI) DeleteExitPlan(context.Context, int64) error {
	f.record("DeleteExitPlan")
	return nil
}

func (f *fakeAPI) DispatchExitPlan(context.Context, int64) error {
	f.record("DispatchExitPlan")
	return nil
}

func (f *fakeAPI) UndoDispatchExitPlan(context.Context, int64) error {
	f.record("UndoDispatchExitPlan")
	return nil
}

func (f *fakeAPI) called(name string) int {
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func TestRemoteRefreshReplacesCollections(t *testing.T) {
	planID := int64(3)
	fake := &fakeAPI{
		skydivers: []api.Skydiver{
			{ID: 1, FirstName: "Anna", LastName: "Ti", IsTandemInstructor: true},
		},
		passengers: []api.Passenger{{ID: 11, FirstName: "Pia", LastName: "One", AssignedExitPlanID: &planID}},
		parachutes: []api.Parachute{{ID: 21, Model: "Sigma", Size: 370, Type: "Tandem"}},
		plans: []api.ExitPlan{
			{ID: 3, Aircraft: "CESSNA_182", Date: "2026-09-01T09:00:00Z"},
		},
	}
	store := state.New(nil)
	remote := NewRemote(fake, store)

	if err := remote.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	snap := store.Snapshot()
	if len(snap.People.Skydivers) != 1 || snap.People.Skydivers[0].Kind != dropzone.KindSkydiver {
		t.Errorf("skydivers = %+v", snap.People.Skydivers)
	}
	if got := snap.People.Passengers[0].AssignedExitPlanID; got != 3 {
		t.Errorf("passenger AssignedExitPlanID = %d, want 3", got)
	}
	if len(snap.Plans.List) != 1 || snap.Plans.List[0].Status != dropzone.StatusDraft {
		t.Errorf("plans = %+v", snap.Plans.List)
	}
}

func TestRemoteRefreshReconcilesActivePlan(t *testing.T) {
	fake := &fakeAPI{
		plans: []api.ExitPlan{{ID: 3, Aircraft: "CESSNA_182", Date: "2026-09-01T09:00:00Z"}},
	}
	store := state.New(nil)
	store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		s.Plans.ActiveID = 3
		s.Draft.Time = "23:59" // stale local edit
		return s
	}, state.TopicPlans)

	remote := NewRemote(fake, store)
	if err := remote.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	snap := store.Snapshot()
	if snap.Draft.ExitPlanID != 3 {
		t.Errorf("Draft.ExitPlanID = %d, want 3", snap.Draft.ExitPlanID)
	}
	if snap.Draft.Time == "23:59" {
		t.Error("stale draft time survived reconciliation")
	}
}

func TestRemoteRefreshDetachesVanishedPlan(t *testing.T) {
	fake := &fakeAPI{} // empty plan list
	store := state.New(nil)
	store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		s.Plans.ActiveID = 9
		s.Draft.ExitPlanID = 9
		return s
	}, state.TopicPlans)

	remote := NewRemote(fake, store)
	if err := remote.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	snap := store.Snapshot()
	if snap.ActivePlanID() != 0 {
		t.Errorf("ActivePlanID = %d, want 0 after the plan vanished", snap.ActivePlanID())
	}
}

func TestRemoteSavePlanCreateAdoptsID(t *testing.T) {
	fake := &fakeAPI{
		createdPlanID: 12,
		plans:         []api.ExitPlan{{ID: 12, Aircraft: "CESSNA_182", Date: "2026-09-01T09:00:00Z"}},
	}
	store := state.New(nil)
	store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		s.Draft.Time = "10:30"
		return s
	}, state.TopicDraft)

	remote := NewRemote(fake, store)
	if err := remote.SavePlan(context.Background()); err != nil {
		t.Fatalf("SavePlan() error = %v", err)
	}

	if fake.called("CreateExitPlan") != 1 {
		t.Error("CreateExitPlan not called for a detached draft")
	}
	if fake.called("UpdateExitPlan") != 0 {
		t.Error("UpdateExitPlan called for a detached draft")
	}
	if fake.called("ListExitPlans") != 1 {
		t.Error("no authoritative refresh after save")
	}
	if got := store.Snapshot().ActivePlanID(); got != 12 {
		t.Errorf("ActivePlanID = %d, want adopted id 12", got)
	}
}

func TestRemoteSavePlanUpdateWhenAttached(t *testing.T) {
	fake := &fakeAPI{
		plans: []api.ExitPlan{{ID: 7, Aircraft: "CESSNA_182", Date: "2026-09-01T09:00:00Z"}},
	}
	store := state.New(nil)
	store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		s.Plans.ActiveID = 7
		return s
	}, state.TopicPlans)

	remote := NewRemote(fake, store)
	if err := remote.SavePlan(context.Background()); err != nil {
		t.Fatal(err)
	}
	if fake.called("UpdateExitPlan") != 1 || fake.called("CreateExitPlan") != 0 {
		t.Errorf("calls = %v, want one update and no create", fake.calls)
	}
}

func TestRemoteSavePlanRefusesUnreadyDraft(t *testing.T) {
	fake := &fakeAPI{}
	store := state.New(nil)
	store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		s.Draft.Slots = []dropzone.Slot{{SlotNumber: 1, PersonID: 1, Kind: dropzone.KindSkydiver}}
		return s
	}, state.TopicDraft)

	remote := NewRemote(fake, store)
	err := remote.SavePlan(context.Background())
	var notReady *NotReadyError
	if !errors.As(err, &notReady) {
		t.Fatalf("SavePlan() error = %v, want NotReadyError", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("calls = %v, want none for an unready draft", fake.calls)
	}
}

func TestRemoteSaveFailureStillRefreshes(t *testing.T) {
	wantErr := &api.Error{Status: 400, Message: "Validation failed"}
	fake := &fakeAPI{failCreate: wantErr}
	store := state.New(nil)

	remote := NewRemote(fake, store)
	err := remote.SavePlan(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("SavePlan() error = %v, want the create failure", err)
	}
	if fake.called("ListExitPlans") != 1 {
		t.Error("refresh skipped after a failed save")
	}
	if got := store.Snapshot().ActivePlanID(); got != 0 {
		t.Errorf("ActivePlanID = %d, want 0 (no id adopted on failure)", got)
	}
}

func TestRemoteDispatchUnsavedPlan(t *testing.T) {
	fake := &fakeAPI{}
	remote := NewRemote(fake, state.New(nil))

	if err := remote.DispatchPlan(context.Background()); !errors.Is(err, ErrNoPlanID) {
		t.Fatalf("DispatchPlan() error = %v, want ErrNoPlanID", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("calls = %v, want none for an unsaved plan", fake.calls)
	}
}

func TestRemoteUndoDispatchDetaches(t *testing.T) {
	fake := &fakeAPI{
		plans: []api.ExitPlan{{ID: 4, Aircraft: "CESSNA_182", Date: "2026-09-01T09:00:00Z"}},
	}
	store := state.New(nil)
	store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		s.Plans.ActiveID = 4
		s.Plans.ActiveStatus = dropzone.StatusDispatched
		return s
	}, state.TopicPlans)

	remote := NewRemote(fake, store)
	if err := remote.UndoDispatch(context.Background()); err != nil {
		t.Fatal(err)
	}
	if fake.called("UndoDispatchExitPlan") != 1 {
		t.Error("UndoDispatchExitPlan not called")
	}
	if got := store.Snapshot().ActivePlanID(); got != 0 {
		t.Errorf("ActivePlanID = %d, want 0 (detached)", got)
	}
}

func TestRemoteDeleteUnsavedPlanIsLocalReset(t *testing.T) {
	fake := &fakeAPI{}
	store := state.New(nil)
	store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		s.Draft.Slots = []dropzone.Slot{{SlotNumber: 1, PersonID: 1, Kind: dropzone.KindSkydiver}}
		return s
	}, state.TopicDraft)

	remote := NewRemote(fake, store)
	if err := remote.DeletePlan(context.Background()); err != nil {
		t.Fatal(err)
	}
	if fake.called("DeleteExitPlan") != 0 {
		t.Error("DeleteExitPlan called for a never-saved draft")
	}
	if got := store.Snapshot().Draft.Slots; len(got) != 0 {
		t.Errorf("draft slots = %+v, want cleared", got)
	}
}
