package dropzone

// FindSkydiver returns the skydiver with the given id, or nil.
func (s Snapshot) FindSkydiver(id int64) *Person {
	for i := range s.People.Skydivers {
		if s.People.Skydivers[i].ID == id {
			return &s.People.Skydivers[i]
		}
	}
	return nil
}

// FindPassenger returns the passenger with the given id, or nil.
func (s Snapshot) FindPassenger(id int64) *Person {
	for i := range s.People.Passengers {
		if s.People.Passengers[i].ID == id {
			return &s.People.Passengers[i]
		}
	}
	return nil
}

// FindPerson resolves a person by kind and id.
func (s Snapshot) FindPerson(kind Kind, id int64) *Person {
	if kind == KindSkydiver {
		return s.FindSkydiver(id)
	}
	return s.FindPassenger(id)
}

// FindParachute returns the parachute with the given id, or nil.
func (s Snapshot) FindParachute(id int64) *Parachute {
	for i := range s.Parachutes {
		if s.Parachutes[i].ID == id {
			return &s.Parachutes[i]
		}
	}
	return nil
}

// FindPlan returns the committed plan with the given id, or nil.
func (s Snapshot) FindPlan(id int64) *ExitPlan {
	for i := range s.Plans.List {
		if s.Plans.List[i].ID == id {
			return &s.Plans.List[i]
		}
	}
	return nil
}

// SlotByNumber returns the draft slot with the given number, or nil.
func (s Snapshot) SlotByNumber(num int) *Slot {
	for i := range s.Draft.Slots {
		if s.Draft.Slots[i].SlotNumber == num {
			return &s.Draft.Slots[i]
		}
	}
	return nil
}

// ActivePlanID returns the id of the plan the draft belongs to, or 0 when
// the draft is a detached new plan.
func (s Snapshot) ActivePlanID() int64 {
	if s.Plans.ActiveID != 0 {
		return s.Plans.ActiveID
	}
	return s.Draft.ExitPlanID
}

// Locked reports whether the open plan is dispatched and therefore rejects
// every mutation.
func (s Snapshot) Locked() bool {
	return s.Plans.ActiveStatus == StatusDispatched
}
