package plan

import (
	"fmt"

	"github.com/skydz/manifest/internal/dropzone"
)

// Diagnostics returned by the validation pass. The UI shows exactly one of
// these at a time, picked in a fixed priority order.
const (
	MsgParachuteMissing    = "At least one slot has no parachute assigned."
	MsgTandemNoInstructor  = "A passenger has no tandem instructor on this flight."
	MsgTandemParachute     = "A passenger must share the tandem instructor's parachute."
	MsgTandemWrongType     = "A tandem instructor must jump a parachute of type Tandem."
	MsgTandemOvercommitted = "A tandem instructor can take at most one passenger."
	MsgStudentEscort       = "A student needs an instructor (AFF/Instructor/Examiner) who is not flying a tandem."
)

// FirstFreeSlot returns the lowest unused slot number in [1,MaxSlots], or 0
// when the aircraft is full.
func FirstFreeSlot(slots []dropzone.Slot) int {
	for num := 1; num <= dropzone.MaxSlots; num++ {
		free := true
		for _, s := range slots {
			if s.SlotNumber == num {
				free = false
				break
			}
		}
		if free {
			return num
		}
	}
	return 0
}

// PersonInDraft reports whether the person already occupies a draft slot.
func PersonInDraft(slots []dropzone.Slot, kind dropzone.Kind, personID int64) bool {
	for _, s := range slots {
		if s.Kind == kind && s.PersonID == personID {
			return true
		}
	}
	return false
}

// ParachuteInDraft reports whether the parachute already equips a draft slot.
func ParachuteInDraft(slots []dropzone.Slot, parachuteID int64) bool {
	for _, s := range slots {
		if s.ParachuteID == parachuteID {
			return true
		}
	}
	return false
}

// PersonBlockReason returns a non-empty reason when the person must not be
// offered as a candidate for the open plan: manually blocked, or committed
// to a different plan.
func PersonBlockReason(p dropzone.Person, activePlanID int64) string {
	if p.ManualBlocked {
		return "Blocked manually"
	}
	if p.AssignedExitPlanID != 0 && p.AssignedExitPlanID != activePlanID {
		return fmt.Sprintf("Committed to plan #%d", p.AssignedExitPlanID)
	}
	return ""
}

// ParachuteBlockReason is the parachute counterpart of PersonBlockReason.
func ParachuteBlockReason(p dropzone.Parachute, activePlanID int64) string {
	if p.ManualBlocked {
		return "Blocked manually"
	}
	if p.AssignedExitPlanID != 0 && p.AssignedExitPlanID != activePlanID {
		return fmt.Sprintf("Committed to plan #%d", p.AssignedExitPlanID)
	}
	return ""
}

// TandemCandidate is a skydiver slot eligible to take a passenger: flagged
// tandem instructor, with a parachute of type Tandem already assigned.
type TandemCandidate struct {
	Slot      dropzone.Slot
	Person    dropzone.Person
	Parachute dropzone.Parachute
}

// TandemCandidates lists the draft's eligible tandem instructors.
func TandemCandidates(snap dropzone.Snapshot) []TandemCandidate {
	var out []TandemCandidate
	for _, s := range snap.Draft.Slots {
		if s.Kind != dropzone.KindSkydiver || s.ParachuteID == 0 {
			continue
		}
		person := snap.FindSkydiver(s.PersonID)
		if person == nil || !person.IsTandemInstructor {
			continue
		}
		chute := snap.FindParachute(s.ParachuteID)
		if chute == nil || chute.Type != dropzone.ParachuteTandem {
			continue
		}
		out = append(out, TandemCandidate{Slot: s, Person: *person, Parachute: *chute})
	}
	return out
}

// tandemPairing resolves a passenger slot's instructor linkage. It returns
// a diagnostic covering the pairing clauses short of the parachute type,
// which Diagnose checks separately at lower priority.
func tandemPairing(snap dropzone.Snapshot, ps dropzone.Slot) string {
	if ps.TandemInstructorID == 0 {
		return MsgTandemNoInstructor
	}

	var instructor *dropzone.Slot
	for i := range snap.Draft.Slots {
		s := &snap.Draft.Slots[i]
		if s.Kind == dropzone.KindSkydiver && s.PersonID == ps.TandemInstructorID {
			instructor = s
			break
		}
	}
	if instructor == nil {
		return MsgTandemNoInstructor
	}
	person := snap.FindSkydiver(instructor.PersonID)
	if person == nil || !person.IsTandemInstructor {
		return MsgTandemNoInstructor
	}

	if ps.ParachuteID == 0 || ps.ParachuteID != instructor.ParachuteID {
		return MsgTandemParachute
	}
	return ""
}

// TandemDiagnosis validates every passenger slot's pairing: a mutual link to
// a tandem-instructor skydiver slot, a shared parachute, and at most one
// passenger per instructor. The parachute type clause is not part of this
// pass; see TandemTypeDiagnosis.
func TandemDiagnosis(snap dropzone.Snapshot) string {
	usage := make(map[int64]int)
	for _, s := range snap.Draft.Slots {
		if s.Kind != dropzone.KindPassenger {
			continue
		}
		if msg := tandemPairing(snap, s); msg != "" {
			return msg
		}
		usage[s.TandemInstructorID]++
	}
	for _, count := range usage {
		if count > 1 {
			return MsgTandemOvercommitted
		}
	}
	return ""
}

// TandemTypeDiagnosis checks that every linked tandem pair rides a parachute
// of type Tandem.
func TandemTypeDiagnosis(snap dropzone.Snapshot) string {
	for _, s := range snap.Draft.Slots {
		if s.Kind != dropzone.KindPassenger || s.TandemInstructorID == 0 {
			continue
		}
		chute := snap.FindParachute(s.ParachuteID)
		if chute == nil || chute.Type != dropzone.ParachuteTandem {
			return MsgTandemWrongType
		}
	}
	return ""
}

// StudentEscortOK checks that any student-role skydiver in the draft flies
// with at least one escort-eligible skydiver who is not already consumed as
// a passenger's tandem instructor.
func StudentEscortOK(snap dropzone.Snapshot) bool {
	consumed := make(map[int64]bool)
	for _, s := range snap.Draft.Slots {
		if s.Kind == dropzone.KindPassenger && s.TandemInstructorID != 0 {
			consumed[s.TandemInstructorID] = true
		}
	}

	hasStudent := false
	hasEscort := false
	for _, s := range snap.Draft.Slots {
		if s.Kind != dropzone.KindSkydiver {
			continue
		}
		person := snap.FindSkydiver(s.PersonID)
		if person == nil {
			continue
		}
		if person.Role.IsStudent() {
			hasStudent = true
		}
		eligible := person.IsAFFInstructor ||
			person.Role == dropzone.RoleInstructor ||
			person.Role == dropzone.RoleExaminer
		if eligible && !consumed[person.ID] {
			hasEscort = true
		}
	}
	return !hasStudent || hasEscort
}

// Diagnose returns the first failing readiness reason in fixed priority
// order: parachute missing, tandem pairing, tandem parachute type, student
// escort. An empty string means the draft is flight-ready.
func Diagnose(snap dropzone.Snapshot) string {
	for _, s := range snap.Draft.Slots {
		if s.ParachuteID == 0 {
			return MsgParachuteMissing
		}
	}
	if msg := TandemDiagnosis(snap); msg != "" {
		return msg
	}
	if msg := TandemTypeDiagnosis(snap); msg != "" {
		return msg
	}
	if !StudentEscortOK(snap) {
		return MsgStudentEscort
	}
	return ""
}

// Ready reports whether the draft passes every readiness rule. Readiness
// gates save and dispatch, never further editing.
func Ready(snap dropzone.Snapshot) bool {
	return Diagnose(snap) == ""
}
