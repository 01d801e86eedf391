package sync

import (
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/skydz/manifest/internal/api"
	"github.com/skydz/manifest/internal/dropzone"
)

const (
	wireSkydiver  = "Skydiver"
	wirePassenger = "Passenger"
)

// BuildPayload maps the draft to the wire format: slots sorted by slot
// number, the wall-clock time joined with today at the dropzone, ids passed
// through unchanged. The tandem link never travels; it is re-derived on the
// way back in.
func BuildPayload(snap dropzone.Snapshot) api.ExitPlanRequest {
	slots := dropzone.CloneSlots(snap.Draft.Slots)
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].SlotNumber < slots[j].SlotNumber
	})

	wire := make([]api.PlanSlot, 0, len(slots))
	for _, s := range slots {
		ps := api.PlanSlot{
			SlotNumber: s.SlotNumber,
			PersonID:   s.PersonID,
			PersonType: wirePassenger,
		}
		if s.Kind == dropzone.KindSkydiver {
			ps.PersonType = wireSkydiver
		}
		if s.ParachuteID != 0 {
			id := s.ParachuteID
			ps.ParachuteID = &id
		}
		wire = append(wire, ps)
	}

	return api.ExitPlanRequest{
		Date:     dropzone.ClockToUTC(snap.Draft.Time, time.Now()).Format(time.RFC3339),
		Aircraft: snap.Draft.Aircraft,
		Slots:    wire,
	}
}

// MapSkydiver converts the wire skydiver into the domain person.
func MapSkydiver(s api.Skydiver) dropzone.Person {
	return dropzone.Person{
		ID:                 s.ID,
		Kind:               dropzone.KindSkydiver,
		FirstName:          s.FirstName,
		LastName:           s.LastName,
		Weight:             s.Weight,
		LicenseLevel:       s.LicenseLevel,
		Role:               dropzone.Role(s.Role),
		IsAFFInstructor:    s.IsAFFInstructor,
		IsTandemInstructor: s.IsTandemInstructor,
		ManualBlocked:      s.ManualBlocked,
		AssignedExitPlanID: deref(s.AssignedExitPlanID),
	}
}

// MapPassenger converts the wire passenger into the domain person.
func MapPassenger(p api.Passenger) dropzone.Person {
	return dropzone.Person{
		ID:                 p.ID,
		Kind:               dropzone.KindPassenger,
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		Weight:             p.Weight,
		ManualBlocked:      p.ManualBlocked,
		AssignedExitPlanID: deref(p.AssignedExitPlanID),
	}
}

// MapParachute converts the wire parachute into the domain parachute.
func MapParachute(p api.Parachute) dropzone.Parachute {
	return dropzone.Parachute{
		ID:                 p.ID,
		Model:              p.Model,
		Size:               p.Size,
		Type:               p.Type,
		CustomName:         p.CustomName,
		ManualBlocked:      p.ManualBlocked,
		AssignedExitPlanID: deref(p.AssignedExitPlanID),
	}
}

// MapPeople converts both wire collections at once.
func MapPeople(skydivers []api.Skydiver, passengers []api.Passenger) dropzone.People {
	people := dropzone.People{}
	for _, s := range skydivers {
		people.Skydivers = append(people.Skydivers, MapSkydiver(s))
	}
	for _, p := range passengers {
		people.Passengers = append(people.Passengers, MapPassenger(p))
	}
	return people
}

// NormalizePlan converts a wire plan into the domain plan, extracting the
// wall-clock time and re-deriving each passenger slot's tandem instructor by
// matching its shared parachute against the skydiver slots.
func NormalizePlan(wire api.ExitPlan, people dropzone.People) dropzone.ExitPlan {
	out := dropzone.ExitPlan{
		ID:           wire.ID,
		Aircraft:     wire.Aircraft,
		Time:         dropzone.ClockFromTimestamp(wire.Date),
		Status:       normalizeWireStatus(wire.Status),
		DispatchedAt: wire.DispatchedAt,
	}

	for _, ws := range wire.Slots {
		kind := dropzone.KindPassenger
		if ws.PersonType == wireSkydiver {
			kind = dropzone.KindSkydiver
		}
		out.Slots = append(out.Slots, dropzone.Slot{
			SlotNumber:  ws.SlotNumber,
			PersonID:    ws.PersonID,
			Kind:        kind,
			ParachuteID: deref(ws.ParachuteID),
		})
	}

	for i := range out.Slots {
		if out.Slots[i].Kind != dropzone.KindPassenger {
			continue
		}
		out.Slots[i].TandemInstructorID = inferTandemInstructor(out.Slots, people, out.Slots[i])
	}
	return out
}

// inferTandemInstructor finds the skydiver slot sharing the passenger's
// parachute whose person is a tandem instructor. The wire format does not
// carry the link, so the shared rig is the ground truth.
func inferTandemInstructor(slots []dropzone.Slot, people dropzone.People, ps dropzone.Slot) int64 {
	if ps.ParachuteID == 0 {
		return 0
	}
	for _, s := range slots {
		if s.Kind != dropzone.KindSkydiver || s.ParachuteID != ps.ParachuteID {
			continue
		}
		for _, person := range people.Skydivers {
			if person.ID == s.PersonID && person.IsTandemInstructor {
				return s.PersonID
			}
		}
	}
	return 0
}

// normalizeWireStatus accepts both status encodings the service has used:
// 0/1 integers and Draft/Dispatched strings. Anything else reads as Draft.
func normalizeWireStatus(raw json.RawMessage) dropzone.PlanStatus {
	if len(raw) == 0 {
		return dropzone.StatusDraft
	}
	var asInt int
	if err := json.Unmarshal(raw, &asInt); err == nil {
		if asInt == 1 {
			return dropzone.StatusDispatched
		}
		return dropzone.StatusDraft
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if strings.EqualFold(asString, string(dropzone.StatusDispatched)) {
			return dropzone.StatusDispatched
		}
	}
	return dropzone.StatusDraft
}

func deref(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
