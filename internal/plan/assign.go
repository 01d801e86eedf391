package plan

import (
	"errors"

	"github.com/skydz/manifest/internal/dropzone"
)

// ErrTandemParachuteType rejects a tandem assignment when the instructor's
// current parachute is not of type Tandem.
var ErrTandemParachuteType = errors.New(MsgTandemWrongType)

// releaseTandemLinks clears the tandem linkage and shared parachute of every
// passenger slot that referenced the given skydiver. Every mutation that can
// orphan an instructor reference runs this pass.
func releaseTandemLinks(slots []dropzone.Slot, instructorID int64) {
	for i := range slots {
		if slots[i].Kind != dropzone.KindPassenger {
			continue
		}
		if slots[i].TandemInstructorID != instructorID {
			continue
		}
		slots[i].TandemInstructorID = 0
		slots[i].ParachuteID = 0
	}
}

// dropSlot removes the slot with the given number, cascading the tandem
// release when its occupant was a skydiver.
func dropSlot(slots []dropzone.Slot, slotNumber int) []dropzone.Slot {
	var removed *dropzone.Slot
	for i := range slots {
		if slots[i].SlotNumber == slotNumber {
			removed = &slots[i]
			break
		}
	}
	if removed == nil {
		return slots
	}
	if removed.Kind == dropzone.KindSkydiver {
		releaseTandemLinks(slots, removed.PersonID)
	}

	out := slots[:0]
	for _, s := range slots {
		if s.SlotNumber != slotNumber {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// AddToFlight seats the person at the lowest free slot number with no
// parachute and no tandem link. The call is a silent no-op when the plan is
// locked, the person is blocked or committed elsewhere, the person already
// occupies a slot, or all five slots are taken.
func AddToFlight(snap dropzone.Snapshot, kind dropzone.Kind, personID int64) dropzone.Snapshot {
	if snap.Locked() {
		return snap
	}
	person := snap.FindPerson(kind, personID)
	if person == nil {
		return snap
	}
	if PersonBlockReason(*person, snap.ActivePlanID()) != "" {
		return snap
	}
	if PersonInDraft(snap.Draft.Slots, kind, personID) {
		return snap
	}
	num := FirstFreeSlot(snap.Draft.Slots)
	if num == 0 {
		return snap
	}

	snap.Draft.Slots = append(snap.Draft.Slots, dropzone.Slot{
		SlotNumber: num,
		PersonID:   personID,
		Kind:       kind,
	})
	return snap
}

// RemoveFromFlight deletes the slot. A removed skydiver who served as a
// tandem instructor takes the passenger's link and shared parachute with
// them, never leaving a dangling reference.
func RemoveFromFlight(snap dropzone.Snapshot, slotNumber int) dropzone.Snapshot {
	if snap.Locked() {
		return snap
	}
	snap.Draft.Slots = dropSlot(snap.Draft.Slots, slotNumber)
	return snap
}

// AssignParachute equips the slot with the parachute. Refused silently when
// the plan is locked, the parachute is unknown, blocked, committed to a
// different plan, or already used by another draft slot.
func AssignParachute(snap dropzone.Snapshot, slotNumber int, parachuteID int64) dropzone.Snapshot {
	if snap.Locked() {
		return snap
	}
	chute := snap.FindParachute(parachuteID)
	if chute == nil {
		return snap
	}
	if ParachuteBlockReason(*chute, snap.ActivePlanID()) != "" {
		return snap
	}
	if ParachuteInDraft(snap.Draft.Slots, parachuteID) {
		return snap
	}
	slot := snap.SlotByNumber(slotNumber)
	if slot == nil {
		return snap
	}

	slot.ParachuteID = parachuteID
	return snap
}

// AssignTandemInstructor links the passenger slot to the instructor and
// copies the instructor's parachute onto the passenger, so the pair shares
// one rig by construction. When the instructor's parachute is missing or
// not of type Tandem the draft is returned unchanged with
// ErrTandemParachuteType; the assignment is never partially applied.
func AssignTandemInstructor(snap dropzone.Snapshot, passengerSlot int, instructorID int64) (dropzone.Snapshot, error) {
	if snap.Locked() {
		return snap, nil
	}
	ps := snap.SlotByNumber(passengerSlot)
	if ps == nil || ps.Kind != dropzone.KindPassenger {
		return snap, nil
	}

	var instructor *dropzone.Slot
	for i := range snap.Draft.Slots {
		s := &snap.Draft.Slots[i]
		if s.Kind == dropzone.KindSkydiver && s.PersonID == instructorID {
			instructor = s
			break
		}
	}
	if instructor == nil {
		return snap, ErrTandemParachuteType
	}
	chute := snap.FindParachute(instructor.ParachuteID)
	if chute == nil || chute.Type != dropzone.ParachuteTandem {
		return snap, ErrTandemParachuteType
	}

	ps.TandemInstructorID = instructorID
	ps.ParachuteID = instructor.ParachuteID
	return snap, nil
}

// MovePerson reassigns a person to the target slot number, the drag-drop
// semantics: the person's previous slot (if any) is removed with its
// cascade, and whatever occupied the target is displaced with its own
// cascade. The landed slot starts clean, with no parachute or tandem link.
func MovePerson(snap dropzone.Snapshot, kind dropzone.Kind, personID int64, target int) dropzone.Snapshot {
	if snap.Locked() || target < 1 || target > dropzone.MaxSlots {
		return snap
	}
	person := snap.FindPerson(kind, personID)
	if person == nil {
		return snap
	}
	if PersonBlockReason(*person, snap.ActivePlanID()) != "" {
		return snap
	}

	slots := snap.Draft.Slots
	for _, s := range slots {
		if s.Kind == kind && s.PersonID == personID {
			if s.SlotNumber == target {
				return snap
			}
			slots = dropSlot(slots, s.SlotNumber)
			break
		}
	}
	slots = dropSlot(slots, target)
	slots = append(slots, dropzone.Slot{
		SlotNumber: target,
		PersonID:   personID,
		Kind:       kind,
	})

	snap.Draft.Slots = slots
	return snap
}

// ClearSlot empties a slot, the drop-outside-the-board gesture. Identical to
// RemoveFromFlight; named for the drag controller's intent.
func ClearSlot(snap dropzone.Snapshot, slotNumber int) dropzone.Snapshot {
	return RemoveFromFlight(snap, slotNumber)
}
