package plan

import (
	"errors"
	"testing"

	"github.com/skydz/manifest/internal/dropzone"
)

func TestAddToFlight(t *testing.T) {
	t.Run("fills lowest free slot", func(t *testing.T) {
		snap := testSnapshot()
		snap = AddToFlight(snap, dropzone.KindSkydiver, 1)
		snap = AddToFlight(snap, dropzone.KindSkydiver, 2)
		snap = AddToFlight(snap, dropzone.KindPassenger, 11)

		if len(snap.Draft.Slots) != 3 {
			t.Fatalf("slots = %d, want 3", len(snap.Draft.Slots))
		}
		for i, want := range []int{1, 2, 3} {
			if snap.Draft.Slots[i].SlotNumber != want {
				t.Errorf("slot[%d].SlotNumber = %d, want %d", i, snap.Draft.Slots[i].SlotNumber, want)
			}
		}
		if snap.Draft.Slots[2].Kind != dropzone.KindPassenger {
			t.Errorf("slot 3 kind = %q, want passenger", snap.Draft.Slots[2].Kind)
		}
	})

	t.Run("new slot starts clean", func(t *testing.T) {
		snap := testSnapshot()
		snap = AddToFlight(snap, dropzone.KindSkydiver, 1)
		s := snap.Draft.Slots[0]
		if s.ParachuteID != 0 || s.TandemInstructorID != 0 {
			t.Errorf("new slot carries parachute %d / instructor %d, want clean", s.ParachuteID, s.TandemInstructorID)
		}
	})

	t.Run("duplicate is no-op", func(t *testing.T) {
		snap := testSnapshot()
		snap = AddToFlight(snap, dropzone.KindSkydiver, 1)
		snap = AddToFlight(snap, dropzone.KindSkydiver, 1)
		if len(snap.Draft.Slots) != 1 {
			t.Errorf("slots = %d, want 1", len(snap.Draft.Slots))
		}
	})

	t.Run("sixth person is no-op", func(t *testing.T) {
		snap := testSnapshot()
		for _, id := range []int64{1, 2, 3, 4, 5} {
			snap = AddToFlight(snap, dropzone.KindSkydiver, id)
		}
		snap = AddToFlight(snap, dropzone.KindPassenger, 11)
		if len(snap.Draft.Slots) != dropzone.MaxSlots {
			t.Errorf("slots = %d, want %d", len(snap.Draft.Slots), dropzone.MaxSlots)
		}
	})

	t.Run("blocked person is no-op", func(t *testing.T) {
		snap := testSnapshot()
		snap.People.Skydivers[0].ManualBlocked = true
		snap = AddToFlight(snap, dropzone.KindSkydiver, 1)
		if len(snap.Draft.Slots) != 0 {
			t.Errorf("slots = %d, want 0", len(snap.Draft.Slots))
		}
	})

	t.Run("committed elsewhere is no-op", func(t *testing.T) {
		snap := testSnapshot()
		snap.People.Skydivers[0].AssignedExitPlanID = 9
		snap = AddToFlight(snap, dropzone.KindSkydiver, 1)
		if len(snap.Draft.Slots) != 0 {
			t.Errorf("slots = %d, want 0", len(snap.Draft.Slots))
		}
	})

	t.Run("dispatched plan rejects all edits", func(t *testing.T) {
		snap := testSnapshot()
		snap.Plans.ActiveID = 1
		snap.Plans.ActiveStatus = dropzone.StatusDispatched
		snap = AddToFlight(snap, dropzone.KindSkydiver, 1)
		if len(snap.Draft.Slots) != 0 {
			t.Errorf("slots = %d, want 0", len(snap.Draft.Slots))
		}
	})
}

// tandemDraft seats instructor 1 with the tandem rig and passenger 11
// linked to them, plus fun jumper 3 on their own parachute.
func tandemDraft() dropzone.Snapshot {
	snap := testSnapshot()
	snap.Draft.Slots = []dropzone.Slot{
		{SlotNumber: 1, PersonID: 1, Kind: dropzone.KindSkydiver, ParachuteID: 21},
		{SlotNumber: 2, PersonID: 11, Kind: dropzone.KindPassenger, ParachuteID: 21, TandemInstructorID: 1},
		{SlotNumber: 3, PersonID: 3, Kind: dropzone.KindSkydiver, ParachuteID: 23},
	}
	return snap
}

func TestRemoveFromFlightCascade(t *testing.T) {
	snap := RemoveFromFlight(tandemDraft(), 1)

	if len(snap.Draft.Slots) != 2 {
		t.Fatalf("slots = %d, want 2", len(snap.Draft.Slots))
	}
	passenger := snap.SlotByNumber(2)
	if passenger == nil {
		t.Fatal("passenger slot gone, want it kept")
	}
	if passenger.TandemInstructorID != 0 {
		t.Errorf("passenger TandemInstructorID = %d, want 0", passenger.TandemInstructorID)
	}
	if passenger.ParachuteID != 0 {
		t.Errorf("passenger ParachuteID = %d, want 0", passenger.ParachuteID)
	}
	// Plan readiness flips back to failing.
	if got := Diagnose(snap); got != MsgTandemNoInstructor {
		t.Errorf("Diagnose() = %q, want %q", got, MsgTandemNoInstructor)
	}
}

func TestRemoveFromFlightUnrelated(t *testing.T) {
	// Removing the fun jumper leaves the tandem pair intact.
	snap := RemoveFromFlight(tandemDraft(), 3)
	passenger := snap.SlotByNumber(2)
	if passenger == nil || passenger.TandemInstructorID != 1 || passenger.ParachuteID != 21 {
		t.Errorf("tandem pair disturbed: %+v", passenger)
	}
}

func TestAssignParachute(t *testing.T) {
	t.Run("assigns", func(t *testing.T) {
		snap := testSnapshot()
		snap = AddToFlight(snap, dropzone.KindSkydiver, 3)
		snap = AssignParachute(snap, 1, 23)
		if got := snap.SlotByNumber(1).ParachuteID; got != 23 {
			t.Errorf("ParachuteID = %d, want 23", got)
		}
	})

	t.Run("in use by another slot is no-op", func(t *testing.T) {
		snap := tandemDraft()
		snap = AssignParachute(snap, 3, 21)
		if got := snap.SlotByNumber(3).ParachuteID; got != 23 {
			t.Errorf("ParachuteID = %d, want 23 unchanged", got)
		}
	})

	t.Run("blocked parachute is no-op", func(t *testing.T) {
		snap := testSnapshot()
		snap.Parachutes[2].ManualBlocked = true
		snap = AddToFlight(snap, dropzone.KindSkydiver, 3)
		snap = AssignParachute(snap, 1, 23)
		if got := snap.SlotByNumber(1).ParachuteID; got != 0 {
			t.Errorf("ParachuteID = %d, want 0", got)
		}
	})
}

func TestAssignTandemInstructor(t *testing.T) {
	t.Run("links and shares parachute", func(t *testing.T) {
		snap := testSnapshot()
		snap.Draft.Slots = []dropzone.Slot{
			{SlotNumber: 1, PersonID: 1, Kind: dropzone.KindSkydiver, ParachuteID: 21},
			{SlotNumber: 2, PersonID: 11, Kind: dropzone.KindPassenger},
		}
		snap, err := AssignTandemInstructor(snap, 2, 1)
		if err != nil {
			t.Fatalf("AssignTandemInstructor() error = %v", err)
		}
		passenger := snap.SlotByNumber(2)
		if passenger.TandemInstructorID != 1 || passenger.ParachuteID != 21 {
			t.Errorf("passenger = %+v, want instructor 1 parachute 21", passenger)
		}
	})

	t.Run("wrong parachute type rejected atomically", func(t *testing.T) {
		snap := testSnapshot()
		snap.Draft.Slots = []dropzone.Slot{
			{SlotNumber: 1, PersonID: 1, Kind: dropzone.KindSkydiver, ParachuteID: 23}, // Sport rig
			{SlotNumber: 2, PersonID: 11, Kind: dropzone.KindPassenger},
		}
		got, err := AssignTandemInstructor(snap, 2, 1)
		if !errors.Is(err, ErrTandemParachuteType) {
			t.Fatalf("error = %v, want ErrTandemParachuteType", err)
		}
		passenger := got.SlotByNumber(2)
		if passenger.TandemInstructorID != 0 || passenger.ParachuteID != 0 {
			t.Errorf("rejection left partial state: %+v", passenger)
		}
	})

	t.Run("instructor without parachute rejected", func(t *testing.T) {
		snap := testSnapshot()
		snap.Draft.Slots = []dropzone.Slot{
			{SlotNumber: 1, PersonID: 1, Kind: dropzone.KindSkydiver},
			{SlotNumber: 2, PersonID: 11, Kind: dropzone.KindPassenger},
		}
		_, err := AssignTandemInstructor(snap, 2, 1)
		if !errors.Is(err, ErrTandemParachuteType) {
			t.Fatalf("error = %v, want ErrTandemParachuteType", err)
		}
	})
}

func TestMovePerson(t *testing.T) {
	t.Run("move within board cascades both ends", func(t *testing.T) {
		// Instructor moves onto the fun jumper's slot: passenger loses the
		// link, fun jumper is displaced, instructor lands clean.
		snap := MovePerson(tandemDraft(), dropzone.KindSkydiver, 1, 3)

		landed := snap.SlotByNumber(3)
		if landed == nil || landed.PersonID != 1 {
			t.Fatalf("slot 3 = %+v, want instructor 1", landed)
		}
		if landed.ParachuteID != 0 || landed.TandemInstructorID != 0 {
			t.Errorf("landed slot not clean: %+v", landed)
		}
		if snap.SlotByNumber(1) != nil {
			t.Error("origin slot 1 still occupied")
		}
		passenger := snap.SlotByNumber(2)
		if passenger.TandemInstructorID != 0 || passenger.ParachuteID != 0 {
			t.Errorf("passenger link survived the move: %+v", passenger)
		}
		if PersonInDraft(snap.Draft.Slots, dropzone.KindSkydiver, 3) {
			t.Error("displaced fun jumper still aboard")
		}
	})

	t.Run("move from roster displaces occupant", func(t *testing.T) {
		snap := MovePerson(tandemDraft(), dropzone.KindSkydiver, 2, 3)
		landed := snap.SlotByNumber(3)
		if landed == nil || landed.PersonID != 2 {
			t.Fatalf("slot 3 = %+v, want skydiver 2", landed)
		}
		if PersonInDraft(snap.Draft.Slots, dropzone.KindSkydiver, 3) {
			t.Error("displaced occupant still aboard")
		}
	})

	t.Run("move onto own slot is no-op", func(t *testing.T) {
		before := tandemDraft()
		after := MovePerson(before, dropzone.KindSkydiver, 1, 1)
		if len(after.Draft.Slots) != len(before.Draft.Slots) {
			t.Errorf("slots = %d, want %d", len(after.Draft.Slots), len(before.Draft.Slots))
		}
		if got := after.SlotByNumber(1); got.ParachuteID != 21 {
			t.Errorf("self-move cleared the parachute: %+v", got)
		}
	})

	t.Run("locked plan rejects move", func(t *testing.T) {
		snap := tandemDraft()
		snap.Plans.ActiveID = 1
		snap.Plans.ActiveStatus = dropzone.StatusDispatched
		after := MovePerson(snap, dropzone.KindSkydiver, 1, 3)
		if after.SlotByNumber(3).PersonID != 3 {
			t.Error("move applied on a dispatched plan")
		}
	})

	t.Run("target out of range is no-op", func(t *testing.T) {
		snap := MovePerson(tandemDraft(), dropzone.KindSkydiver, 1, 6)
		if got := snap.SlotByNumber(1); got == nil || got.PersonID != 1 {
			t.Errorf("slot 1 = %+v, want instructor kept", got)
		}
	})
}
