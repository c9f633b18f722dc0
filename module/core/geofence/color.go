package geofence

import "github.com/AppleDinger/Kartavya-Police-App/module/core/domain"

// RosterColor is the supervisor-facing colour for an officer. It follows the
// same containment rules as Evaluate but ignores pending leave requests, so a
// violating officer who has asked for leave still shows red.
func RosterColor(s domain.OfficerState) domain.StatusColor {
	if s.IsOnLeave {
		return domain.ColorBlue
	}
	if !hasActiveZone(s) {
		return domain.ColorYellow
	}
	if Contain(s.Position, *s.Zone).Kind == domain.StatusSafe {
		return domain.ColorGreen
	}
	return domain.ColorRed
}
