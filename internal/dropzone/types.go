package dropzone

import "fmt"

// Kind discriminates the two person variants sharing one identity space.
type Kind string

const (
	KindSkydiver  Kind = "skydiver"
	KindPassenger Kind = "passenger"
)

// Role classifies a skydiver for the escort rule and roster grouping.
type Role string

const (
	RoleStudent    Role = "Student"
	RoleStudentAFF Role = "StudentAFF"
	RoleFunJumper  Role = "FunJumper"
	RoleInstructor Role = "Instructor"
	RoleExaminer   Role = "Examiner"
)

// IsStudent reports whether the role is a student sub-role.
func (r Role) IsStudent() bool {
	return r == RoleStudent || r == RoleStudentAFF
}

// ParachuteTandem is the parachute type required for tandem pairs.
const ParachuteTandem = "Tandem"

// MaxSlots is the seat capacity of the aircraft.
const MaxSlots = 5

// Person is a skydiver or passenger. Kind tells which; the skydiver-only
// fields are zero for passengers. An id of 0 means "none" throughout.
type Person struct {
	ID        int64  `json:"id"`
	Kind      Kind   `json:"kind"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Weight    int    `json:"weight"`

	// Skydiver-only fields.
	LicenseLevel       string `json:"licenseLevel,omitempty"`
	Role               Role   `json:"role,omitempty"`
	IsAFFInstructor    bool   `json:"isAffInstructor,omitempty"`
	IsTandemInstructor bool   `json:"isTandemInstructor,omitempty"`

	ManualBlocked      bool  `json:"manualBlocked"`
	AssignedExitPlanID int64 `json:"assignedExitPlanId"`
}

// FullName returns the display name.
func (p Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// IsStaff reports whether a skydiver belongs in the staff roster section.
func (p Person) IsStaff() bool {
	return p.Kind == KindSkydiver &&
		(p.Role == RoleInstructor || p.Role == RoleExaminer ||
			p.IsAFFInstructor || p.IsTandemInstructor)
}

// Parachute is a rig registered at the dropzone.
type Parachute struct {
	ID                 int64  `json:"id"`
	Model              string `json:"model"`
	Size               int    `json:"size"`
	Type               string `json:"type"`
	CustomName         string `json:"customName,omitempty"`
	ManualBlocked      bool   `json:"manualBlocked"`
	AssignedExitPlanID int64  `json:"assignedExitPlanId"`
}

// Label returns the display label: the custom name when set, otherwise
// "model size (type)".
func (p Parachute) Label() string {
	if p.CustomName != "" {
		return p.CustomName
	}
	return fmt.Sprintf("%s %d (%s)", p.Model, p.Size, p.Type)
}

// Slot binds one numbered seat to a person, optionally a parachute, and for
// passengers optionally a tandem instructor.
type Slot struct {
	SlotNumber         int   `json:"slotNumber"`
	PersonID           int64 `json:"personId"`
	Kind               Kind  `json:"personType"`
	ParachuteID        int64 `json:"parachuteId"`
	TandemInstructorID int64 `json:"tandemInstructorId"`
}

// PlanStatus is the exit plan lifecycle state.
type PlanStatus string

const (
	StatusDraft      PlanStatus = "Draft"
	StatusDispatched PlanStatus = "Dispatched"
)

// ExitPlan is a committed flight manifest.
type ExitPlan struct {
	ID           int64      `json:"id"`
	Aircraft     string     `json:"aircraft"`
	Time         string     `json:"time"` // HH:MM local
	Status       PlanStatus `json:"status"`
	DispatchedAt string     `json:"dispatchedAt,omitempty"`
	Slots        []Slot     `json:"slots"`
}

// Draft is the plan currently being edited. ExitPlanID 0 means a detached
// new plan not yet committed anywhere.
type Draft struct {
	ExitPlanID int64  `json:"exitPlanId"`
	Aircraft   string `json:"aircraft"`
	Time       string `json:"time"`
	Slots      []Slot `json:"slots"`
}

// People groups the two reference collections.
type People struct {
	Skydivers  []Person `json:"skydivers"`
	Passengers []Person `json:"passengers"`
}

// Plans tracks the committed plan list and which one is open.
type Plans struct {
	List         []ExitPlan `json:"list"`
	ActiveID     int64      `json:"activeId"`
	ActiveStatus PlanStatus `json:"activeStatus"`
}

// Meta records snapshot provenance.
type Meta struct {
	Source      string `json:"source"`
	LastUpdated string `json:"lastUpdated"`
}

// Snapshot is the whole application state owned by the store.
type Snapshot struct {
	Meta       Meta        `json:"meta"`
	People     People      `json:"people"`
	Parachutes []Parachute `json:"parachutes"`
	Plans      Plans       `json:"plans"`
	Draft      Draft       `json:"draft"`
}

const defaultAircraft = "CESSNA_182"

// NewSnapshot returns the default empty snapshot.
func NewSnapshot(source string) Snapshot {
	return Snapshot{
		Meta: Meta{Source: source},
		Plans: Plans{
			ActiveStatus: StatusDraft,
		},
		Draft: Draft{
			Aircraft: defaultAircraft,
		},
	}
}
