package dropzone

// Clone returns a deep copy of the snapshot. The store hands out and accepts
// only copies, so no caller ever holds a live reference into store state.
func (s Snapshot) Clone() Snapshot {
	dup := s
	dup.People.Skydivers = clonePersons(s.People.Skydivers)
	dup.People.Passengers = clonePersons(s.People.Passengers)
	dup.Parachutes = cloneParachutes(s.Parachutes)
	dup.Plans.List = clonePlans(s.Plans.List)
	dup.Draft.Slots = CloneSlots(s.Draft.Slots)
	return dup
}

// Clone returns a deep copy of the plan.
func (p ExitPlan) Clone() ExitPlan {
	dup := p
	dup.Slots = CloneSlots(p.Slots)
	return dup
}

// CloneSlots copies a slot list.
func CloneSlots(slots []Slot) []Slot {
	if len(slots) == 0 {
		return nil
	}
	dup := make([]Slot, len(slots))
	copy(dup, slots)
	return dup
}

func clonePersons(list []Person) []Person {
	if len(list) == 0 {
		return nil
	}
	dup := make([]Person, len(list))
	copy(dup, list)
	return dup
}

func cloneParachutes(list []Parachute) []Parachute {
	if len(list) == 0 {
		return nil
	}
	dup := make([]Parachute, len(list))
	copy(dup, list)
	return dup
}

func clonePlans(list []ExitPlan) []ExitPlan {
	if len(list) == 0 {
		return nil
	}
	dup := make([]ExitPlan, len(list))
	for i, p := range list {
		dup[i] = p.Clone()
	}
	return dup
}
