package domain

import "time"

type Zone struct {
	Target       Coordinate `json:"target"`
	RadiusMeters float64    `json:"radius_meters"`
	Active       bool       `json:"active"`
}

type DeploymentStatus string

const (
	DeploymentDeployed    DeploymentStatus = "deployed"
	DeploymentOutOfBounds DeploymentStatus = "out_of_bounds"
)

type Deployment struct {
	ID          int64
	OfficerID   int64
	Zone        Zone
	Current     *Coordinate
	LastCheckIn time.Time
	Status      DeploymentStatus
}

type BulkDeployment struct {
	OfficerIDs   []int64
	Target       Coordinate
	RadiusMeters float64
}

type PatrolEventType string

const (
	PatrolZoneViolation PatrolEventType = "zone_violation"
	PatrolZoneReturn    PatrolEventType = "zone_return"
)

type PatrolAlert struct {
	OfficerID      int64           `json:"officer_id"`
	Username       string          `json:"username"`
	Event          PatrolEventType `json:"event"`
	Position       Coordinate      `json:"position"`
	Zone           Zone            `json:"zone"`
	DistanceMeters float64         `json:"distance_meters"`
	Timestamp      int64           `json:"timestamp"`
}
