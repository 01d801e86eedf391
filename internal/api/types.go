package api

import (
	json "github.com/goccy/go-json"
)

// Skydiver mirrors the /skydiver resource.
type Skydiver struct {
	ID                 int64  `json:"id"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Weight             int    `json:"weight"`
	LicenseLevel       string `json:"licenseLevel"`
	Role               string `json:"role"`
	IsAFFInstructor    bool   `json:"isAFFInstructor"`
	IsTandemInstructor bool   `json:"isTandemInstructor"`
	ManualBlocked      bool   `json:"manualBlocked"`
	AssignedExitPlanID *int64 `json:"assignedExitPlanId"`
}

// Passenger mirrors the /passenger resource.
type Passenger struct {
	ID                 int64  `json:"id"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Weight             int    `json:"weight"`
	ManualBlocked      bool   `json:"manualBlocked"`
	AssignedExitPlanID *int64 `json:"assignedExitPlanId"`
}

// Parachute mirrors the /parachute resource.
type Parachute struct {
	ID                 int64  `json:"id"`
	Model              string `json:"model"`
	Size               int    `json:"size"`
	Type               string `json:"type"`
	CustomName         string `json:"customName"`
	ManualBlocked      bool   `json:"manualBlocked"`
	AssignedExitPlanID *int64 `json:"assignedExitPlanId"`
}

// PlanSlot is one manifest seat on the wire. The tandem link is not carried;
// the client re-derives it from the shared parachute after every fetch.
type PlanSlot struct {
	SlotNumber  int    `json:"slotNumber"`
	PersonID    int64  `json:"personId"`
	PersonType  string `json:"personType"` // "Skydiver" | "Passenger"
	ParachuteID *int64 `json:"parachuteId"`
}

// ExitPlanRequest is the create/update payload. Slots must be sorted by
// slot number and Date is an absolute timestamp.
type ExitPlanRequest struct {
	Date     string     `json:"date"`
	Aircraft string     `json:"aircraft"`
	Slots    []PlanSlot `json:"slots"`
}

// ExitPlan mirrors the /exitplan resource. Status arrives either as an
// integer (0 draft, 1 dispatched) or a string depending on service version,
// so it stays raw until normalization.
type ExitPlan struct {
	ID           int64           `json:"id"`
	Date         string          `json:"date"`
	Aircraft     string          `json:"aircraft"`
	Status       json.RawMessage `json:"status"`
	DispatchedAt string          `json:"dispatchedAt"`
	Slots        []PlanSlot      `json:"slots"`
}

// CreatedRef is the service's answer to a create call; some endpoints name
// the id field differently.
type CreatedRef struct {
	ID         *int64 `json:"id"`
	ExitPlanID *int64 `json:"exitPlanId"`
}

// NewID returns whichever id field the service populated, or 0.
func (r CreatedRef) NewID() int64 {
	if r.ID != nil {
		return *r.ID
	}
	if r.ExitPlanID != nil {
		return *r.ExitPlanID
	}
	return 0
}
