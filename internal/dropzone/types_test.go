package dropzone

import "testing"

func TestRoleIsStudent(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleStudent, true},
		{RoleStudentAFF, true},
		{RoleFunJumper, false},
		{RoleInstructor, false},
		{RoleExaminer, false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.role.IsStudent(); got != tt.want {
			t.Errorf("Role(%q).IsStudent() = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestPersonIsStaff(t *testing.T) {
	tests := []struct {
		name   string
		person Person
		want   bool
	}{
		{"fun jumper", Person{Kind: KindSkydiver, Role: RoleFunJumper}, false},
		{"instructor role", Person{Kind: KindSkydiver, Role: RoleInstructor}, true},
		{"examiner role", Person{Kind: KindSkydiver, Role: RoleExaminer}, true},
		{"tandem flag", Person{Kind: KindSkydiver, Role: RoleFunJumper, IsTandemInstructor: true}, true},
		{"aff flag", Person{Kind: KindSkydiver, Role: RoleFunJumper, IsAFFInstructor: true}, true},
		{"student", Person{Kind: KindSkydiver, Role: RoleStudent}, false},
		{"passenger never staff", Person{Kind: KindPassenger, Role: RoleInstructor}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.person.IsStaff(); got != tt.want {
				t.Errorf("IsStaff() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParachuteLabel(t *testing.T) {
	tests := []struct {
		name  string
		chute Parachute
		want  string
	}{
		{"custom name wins", Parachute{Model: "Sigma", Size: 370, Type: "Tandem", CustomName: "Big Red"}, "Big Red"},
		{"model and size", Parachute{Model: "Sabre", Size: 170, Type: "Sport"}, "Sabre 170 (Sport)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.chute.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSnapshotClone(t *testing.T) {
	orig := NewSnapshot("test")
	orig.People.Skydivers = []Person{{ID: 1, Kind: KindSkydiver, FirstName: "Anna"}}
	orig.Parachutes = []Parachute{{ID: 21, Model: "Sigma"}}
	orig.Plans.List = []ExitPlan{{ID: 3, Slots: []Slot{{SlotNumber: 1, PersonID: 1, Kind: KindSkydiver}}}}
	orig.Draft.Slots = []Slot{{SlotNumber: 1, PersonID: 1, Kind: KindSkydiver}}

	dup := orig.Clone()
	dup.People.Skydivers[0].FirstName = "Mangled"
	dup.Parachutes[0].Model = "Mangled"
	dup.Plans.List[0].Slots[0].PersonID = 99
	dup.Draft.Slots[0].PersonID = 99

	if orig.People.Skydivers[0].FirstName != "Anna" {
		t.Error("clone shares the skydiver slice")
	}
	if orig.Parachutes[0].Model != "Sigma" {
		t.Error("clone shares the parachute slice")
	}
	if orig.Plans.List[0].Slots[0].PersonID != 1 {
		t.Error("clone shares nested plan slots")
	}
	if orig.Draft.Slots[0].PersonID != 1 {
		t.Error("clone shares draft slots")
	}
}

func TestActivePlanID(t *testing.T) {
	snap := NewSnapshot("test")
	if got := snap.ActivePlanID(); got != 0 {
		t.Errorf("ActivePlanID() = %d, want 0", got)
	}

	snap.Draft.ExitPlanID = 5
	if got := snap.ActivePlanID(); got != 5 {
		t.Errorf("ActivePlanID() = %d, want draft's 5", got)
	}

	snap.Plans.ActiveID = 7
	if got := snap.ActivePlanID(); got != 7 {
		t.Errorf("ActivePlanID() = %d, want active 7", got)
	}
}

func TestLocked(t *testing.T) {
	snap := NewSnapshot("test")
	if snap.Locked() {
		t.Error("fresh snapshot is locked")
	}
	snap.Plans.ActiveStatus = StatusDispatched
	if !snap.Locked() {
		t.Error("dispatched snapshot not locked")
	}
}
