package domain

import "time"

type Role string

const (
	RoleFieldOfficer Role = "field_officer"
	RoleSupervisor   Role = "supervisor"
	RoleHeadOfficer  Role = "head_officer"
)

// Officer is a flat snapshot of a user row. The supervisor relationship is
// an id reference only.
type Officer struct {
	ID             int64       `json:"id"`
	Username       string      `json:"username"`
	Role           Role        `json:"role"`
	SupervisorID   *int64      `json:"supervisor_id,omitempty"`
	Position       *Coordinate `json:"position,omitempty"`
	LeaveRequested bool        `json:"leave_requested"`
	IsOnLeave      bool        `json:"is_on_leave"`
	ProfilePhoto   string      `json:"profile_photo"`
	PingsEnabled   bool        `json:"pings_enabled"`
}

type StatusKind string

const (
	StatusOnLeave            StatusKind = "on_leave"
	StatusLeaveRequested     StatusKind = "leave_requested"
	StatusAwaitingDeployment StatusKind = "awaiting_deployment"
	StatusSafe               StatusKind = "safe"
	StatusRisk               StatusKind = "risk"
)

type StatusColor string

const (
	ColorBlue   StatusColor = "blue"
	ColorGreen  StatusColor = "green"
	ColorRed    StatusColor = "red"
	ColorYellow StatusColor = "yellow"
)

// OfficerState is the input to a single geofence evaluation.
type OfficerState struct {
	IsOnLeave      bool
	LeaveRequested bool
	Position       *Coordinate
	Zone           *Zone
}

func (o *Officer) State(zone *Zone) OfficerState {
	return OfficerState{
		IsOnLeave:      o.IsOnLeave,
		LeaveRequested: o.LeaveRequested,
		Position:       o.Position,
		Zone:           zone,
	}
}

type Classification struct {
	Kind           StatusKind `json:"status"`
	Message        string     `json:"message"`
	DistanceMeters *float64   `json:"distance_meters,omitempty"`
}

type OfficerDashboard struct {
	Officer        Officer
	Classification Classification
	Zone           *Zone
}

type RosterEntry struct {
	Officer Officer
	Color   StatusColor
	Zone    *Zone
}

type CheckIn struct {
	OfficerID int64
	Position  Coordinate
	Timestamp time.Time
}
