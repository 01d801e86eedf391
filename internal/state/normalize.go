package state

import (
	json "github.com/goccy/go-json"

	"github.com/skydz/manifest/internal/dropzone"
)

// rawDoc splits the persisted document into independently decodable fields
// so one corrupt sub-tree cannot take the rest of the snapshot down with it.
type rawDoc struct {
	Meta       json.RawMessage `json:"meta"`
	People     rawPeople       `json:"people"`
	Parachutes json.RawMessage `json:"parachutes"`
	Plans      rawPlans        `json:"plans"`
	Draft      rawDraft        `json:"draft"`
}

type rawPeople struct {
	Skydivers  json.RawMessage `json:"skydivers"`
	Passengers json.RawMessage `json:"passengers"`
}

type rawPlans struct {
	List         json.RawMessage `json:"list"`
	ActiveID     json.RawMessage `json:"activeId"`
	ActiveStatus json.RawMessage `json:"activeStatus"`
}

type rawDraft struct {
	ExitPlanID json.RawMessage `json:"exitPlanId"`
	Aircraft   json.RawMessage `json:"aircraft"`
	Time       json.RawMessage `json:"time"`
	Slots      json.RawMessage `json:"slots"`
}

// Normalize decodes a cached snapshot document defensively. Unknown or
// wrong-shaped fields fall back to defaults field by field; only a document
// that is not a JSON object at all is rejected.
func Normalize(data []byte) (dropzone.Snapshot, bool) {
	var doc rawDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return dropzone.Snapshot{}, false
	}

	snap := dropzone.NewSnapshot("load")

	decode(doc.Meta, &snap.Meta)
	decode(doc.People.Skydivers, &snap.People.Skydivers)
	decode(doc.People.Passengers, &snap.People.Passengers)
	decode(doc.Parachutes, &snap.Parachutes)
	decode(doc.Plans.List, &snap.Plans.List)
	decode(doc.Plans.ActiveID, &snap.Plans.ActiveID)
	decode(doc.Draft.ExitPlanID, &snap.Draft.ExitPlanID)
	decode(doc.Draft.Time, &snap.Draft.Time)
	decode(doc.Draft.Slots, &snap.Draft.Slots)

	var aircraft string
	if decode(doc.Draft.Aircraft, &aircraft) && aircraft != "" {
		snap.Draft.Aircraft = aircraft
	}

	var status string
	decode(doc.Plans.ActiveStatus, &status)
	snap.Plans.ActiveStatus = normalizeStatus(status)

	snap.Meta.Source = "load"
	snap.People.Skydivers = keepKind(snap.People.Skydivers, dropzone.KindSkydiver)
	snap.People.Passengers = keepKind(snap.People.Passengers, dropzone.KindPassenger)
	snap.Draft.Slots = sanitizeSlots(snap.Draft.Slots)
	for i := range snap.Plans.List {
		snap.Plans.List[i].Status = normalizeStatus(string(snap.Plans.List[i].Status))
		snap.Plans.List[i].Slots = sanitizeSlots(snap.Plans.List[i].Slots)
	}

	return snap, true
}

func decode(raw json.RawMessage, dest any) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func normalizeStatus(raw string) dropzone.PlanStatus {
	if dropzone.PlanStatus(raw) == dropzone.StatusDispatched {
		return dropzone.StatusDispatched
	}
	return dropzone.StatusDraft
}

// keepKind stamps the expected kind on each person from the given list,
// repairing documents written before the discriminant existed.
func keepKind(list []dropzone.Person, kind dropzone.Kind) []dropzone.Person {
	out := list[:0]
	for _, p := range list {
		if p.ID == 0 {
			continue
		}
		p.Kind = kind
		out = append(out, p)
	}
	return out
}

// sanitizeSlots drops slots that violate structural invariants: slot numbers
// outside [1,MaxSlots], duplicate slot numbers, duplicate persons, dangling
// tandem links, or duplicate parachutes outside a linked tandem pair.
func sanitizeSlots(slots []dropzone.Slot) []dropzone.Slot {
	seenSlot := make(map[int]bool)
	seenPerson := make(map[int64]bool)

	out := slots[:0]
	for _, s := range slots {
		if s.SlotNumber < 1 || s.SlotNumber > dropzone.MaxSlots {
			continue
		}
		if s.Kind != dropzone.KindSkydiver && s.Kind != dropzone.KindPassenger {
			continue
		}
		if s.PersonID == 0 || seenSlot[s.SlotNumber] || seenPerson[s.PersonID] {
			continue
		}
		seenSlot[s.SlotNumber] = true
		seenPerson[s.PersonID] = true
		out = append(out, s)
	}

	// Skydivers claim parachutes first; a rig equips one skydiver at most.
	seenChute := make(map[int64]bool)
	chuteOf := make(map[int64]int64)
	for i := range out {
		if out[i].Kind != dropzone.KindSkydiver {
			continue
		}
		if out[i].ParachuteID != 0 && seenChute[out[i].ParachuteID] {
			out[i].ParachuteID = 0
		}
		if out[i].ParachuteID != 0 {
			seenChute[out[i].ParachuteID] = true
		}
		chuteOf[out[i].PersonID] = out[i].ParachuteID
	}

	// A passenger's link must point at a surviving skydiver slot; an
	// orphaned link loses the shared parachute too, like the removal
	// cascade would have cleared it. Sharing the linked instructor's rig
	// is the one permitted parachute duplication.
	for i := range out {
		if out[i].Kind != dropzone.KindPassenger {
			continue
		}
		if out[i].TandemInstructorID != 0 {
			if _, aboard := chuteOf[out[i].TandemInstructorID]; !aboard {
				out[i].TandemInstructorID = 0
				out[i].ParachuteID = 0
			}
		}
		id := out[i].ParachuteID
		if id == 0 {
			continue
		}
		shared := out[i].TandemInstructorID != 0 && chuteOf[out[i].TandemInstructorID] == id
		if seenChute[id] && !shared {
			out[i].ParachuteID = 0
			continue
		}
		seenChute[id] = true
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
