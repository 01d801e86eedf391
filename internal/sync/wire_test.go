package sync

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/skydz/manifest/internal/api"
	"github.com/skydz/manifest/internal/dropzone"
)

func TestBuildPayload(t *testing.T) {
	snap := dropzone.NewSnapshot("test")
	snap.Draft.Time = "13:45"
	snap.Draft.Slots = []dropzone.Slot{
		{SlotNumber: 3, PersonID: 11, Kind: dropzone.KindPassenger, ParachuteID: 21, TandemInstructorID: 1},
		{SlotNumber: 1, PersonID: 1, Kind: dropzone.KindSkydiver, ParachuteID: 21},
		{SlotNumber: 2, PersonID: 3, Kind: dropzone.KindSkydiver},
	}

	payload := BuildPayload(snap)

	if payload.Aircraft != snap.Draft.Aircraft {
		t.Errorf("Aircraft = %q, want %q", payload.Aircraft, snap.Draft.Aircraft)
	}
	if _, err := time.Parse(time.RFC3339, payload.Date); err != nil {
		t.Errorf("Date %q is not RFC3339: %v", payload.Date, err)
	}

	if len(payload.Slots) != 3 {
		t.Fatalf("slots = %d, want 3", len(payload.Slots))
	}
	for i, want := range []int{1, 2, 3} {
		if payload.Slots[i].SlotNumber != want {
			t.Errorf("slot[%d].SlotNumber = %d, want %d (sorted)", i, payload.Slots[i].SlotNumber, want)
		}
	}

	if payload.Slots[0].PersonType != wireSkydiver {
		t.Errorf("slot 1 PersonType = %q, want %q", payload.Slots[0].PersonType, wireSkydiver)
	}
	if payload.Slots[2].PersonType != wirePassenger {
		t.Errorf("slot 3 PersonType = %q, want %q", payload.Slots[2].PersonType, wirePassenger)
	}

	if payload.Slots[1].ParachuteID != nil {
		t.Error("empty parachute travels as non-nil")
	}
	if payload.Slots[0].ParachuteID == nil || *payload.Slots[0].ParachuteID != 21 {
		t.Errorf("slot 1 ParachuteID = %v, want 21", payload.Slots[0].ParachuteID)
	}
}

func TestNormalizePlanInfersTandemLink(t *testing.T) {
	people := dropzone.People{
		Skydivers: []dropzone.Person{
			{ID: 1, Kind: dropzone.KindSkydiver, IsTandemInstructor: true},
			{ID: 3, Kind: dropzone.KindSkydiver},
		},
		Passengers: []dropzone.Person{{ID: 11, Kind: dropzone.KindPassenger}},
	}
	chute := int64(21)
	other := int64(23)
	wire := api.ExitPlan{
		ID:       5,
		Aircraft: "CESSNA_182",
		Date:     "2026-09-01T10:30:00Z",
		Status:   json.RawMessage(`"Draft"`),
		Slots: []api.PlanSlot{
			{SlotNumber: 1, PersonID: 1, PersonType: wireSkydiver, ParachuteID: &chute},
			{SlotNumber: 2, PersonID: 3, PersonType: wireSkydiver, ParachuteID: &other},
			{SlotNumber: 3, PersonID: 11, PersonType: wirePassenger, ParachuteID: &chute},
		},
	}

	got := NormalizePlan(wire, people)

	if got.ID != 5 || got.Status != dropzone.StatusDraft {
		t.Errorf("plan = id %d status %q", got.ID, got.Status)
	}
	if got.Time == "" {
		t.Error("wall-clock time not extracted")
	}

	passenger := got.Slots[2]
	if passenger.Kind != dropzone.KindPassenger {
		t.Fatalf("slot 3 kind = %q", passenger.Kind)
	}
	if passenger.TandemInstructorID != 1 {
		t.Errorf("TandemInstructorID = %d, want 1 inferred from shared parachute", passenger.TandemInstructorID)
	}
}

func TestNormalizePlanNoLinkWithoutInstructorFlag(t *testing.T) {
	// The skydiver sharing the rig is not flagged as a tandem instructor,
	// so no link is derived.
	people := dropzone.People{
		Skydivers:  []dropzone.Person{{ID: 3, Kind: dropzone.KindSkydiver}},
		Passengers: []dropzone.Person{{ID: 11, Kind: dropzone.KindPassenger}},
	}
	chute := int64(21)
	wire := api.ExitPlan{
		Slots: []api.PlanSlot{
			{SlotNumber: 1, PersonID: 3, PersonType: wireSkydiver, ParachuteID: &chute},
			{SlotNumber: 2, PersonID: 11, PersonType: wirePassenger, ParachuteID: &chute},
		},
	}

	got := NormalizePlan(wire, people)
	if got.Slots[1].TandemInstructorID != 0 {
		t.Errorf("TandemInstructorID = %d, want 0", got.Slots[1].TandemInstructorID)
	}
}

func TestNormalizeWireStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want dropzone.PlanStatus
	}{
		{"empty", "", dropzone.StatusDraft},
		{"int zero", "0", dropzone.StatusDraft},
		{"int one", "1", dropzone.StatusDispatched},
		{"string draft", `"Draft"`, dropzone.StatusDraft},
		{"string dispatched", `"Dispatched"`, dropzone.StatusDispatched},
		{"case insensitive", `"DISPATCHED"`, dropzone.StatusDispatched},
		{"garbage", `{"x":1}`, dropzone.StatusDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeWireStatus(json.RawMessage(tt.raw))
			if got != tt.want {
				t.Errorf("normalizeWireStatus(%s) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
