package geofence

import (
	"fmt"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
)

const (
	MessageOnLeave            = "ON LEAVE STATUS ACTIVE"
	MessageLeavePending       = "LEAVE PENDING"
	MessageSignalLost         = "GPS SIGNAL LOST"
	MessageZoneSecure         = "ZONE SECURE"
	MessageAwaitingDeployment = "AWAITING DEPLOYMENT"
)

// rule is one row of the status precedence table. match inspects the state
// and returns ok=false when the row does not apply.
type rule struct {
	name  string
	match func(domain.OfficerState) (domain.Classification, bool)
}

// precedence is evaluated top to bottom and the first matching row wins.
// A pending leave request sits above every zone row, so it hides a live
// violation from the officer's own view. RosterColor does not apply it.
var precedence = []rule{
	{name: "on_leave", match: onLeave},
	{name: "leave_requested", match: leaveRequested},
	{name: "zone", match: zoneStatus},
}

// Evaluate classifies an officer snapshot. It accepts any combination of
// flags and nil fields and always returns a classification; zone radius and
// coordinates are not validated here.
func Evaluate(s domain.OfficerState) domain.Classification {
	for _, r := range precedence {
		if c, ok := r.match(s); ok {
			return c
		}
	}
	return domain.Classification{Kind: domain.StatusAwaitingDeployment, Message: MessageAwaitingDeployment}
}

func onLeave(s domain.OfficerState) (domain.Classification, bool) {
	if !s.IsOnLeave {
		return domain.Classification{}, false
	}
	return domain.Classification{Kind: domain.StatusOnLeave, Message: MessageOnLeave}, true
}

func leaveRequested(s domain.OfficerState) (domain.Classification, bool) {
	if !s.LeaveRequested {
		return domain.Classification{}, false
	}
	return domain.Classification{Kind: domain.StatusLeaveRequested, Message: MessageLeavePending}, true
}

func zoneStatus(s domain.OfficerState) (domain.Classification, bool) {
	if !hasActiveZone(s) {
		return domain.Classification{}, false
	}
	return Contain(s.Position, *s.Zone), true
}

// Contain checks a single position against a zone, ignoring leave flags and
// the zone's active flag. The boundary is inclusive.
func Contain(position *domain.Coordinate, zone domain.Zone) domain.Classification {
	d, ok := Distance(position, &zone.Target).Meters()
	if !ok {
		return domain.Classification{Kind: domain.StatusRisk, Message: MessageSignalLost}
	}
	if d <= zone.RadiusMeters {
		return domain.Classification{Kind: domain.StatusSafe, Message: MessageZoneSecure, DistanceMeters: &d}
	}
	return domain.Classification{Kind: domain.StatusRisk, Message: violationMessage(d), DistanceMeters: &d}
}

// violationMessage truncates toward zero, so 2223.9m reads "VIOLATION (2223m)".
func violationMessage(d float64) string {
	return fmt.Sprintf("VIOLATION (%dm)", int64(d))
}

func hasActiveZone(s domain.OfficerState) bool {
	return s.Zone != nil && s.Zone.Active
}
