package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
)

func (s *PatrolService) RequestLeave(ctx context.Context, officerID int64) error {
	officer, err := s.officers.GetByID(ctx, officerID)
	if err != nil {
		return err
	}
	if officer.IsOnLeave || officer.LeaveRequested {
		return nil
	}
	if err := s.officers.SetLeave(ctx, officerID, false, true); err != nil {
		return err
	}
	record(ctx, s.notifier, domain.LogInfo, "Leave Requested", &officerID)
	return nil
}

func (s *PatrolService) ApproveLeave(ctx context.Context, officerID int64) error {
	return s.startLeave(ctx, officerID, "Leave Request APPROVED")
}

// GrantLeave puts an officer on leave without a prior request.
func (s *PatrolService) GrantLeave(ctx context.Context, officerID int64) error {
	return s.startLeave(ctx, officerID, "Leave GRANTED by Command")
}

func (s *PatrolService) startLeave(ctx context.Context, officerID int64, message string) error {
	if err := s.officers.SetLeave(ctx, officerID, true, false); err != nil {
		return err
	}
	if err := s.deployments.DeactivateAll(ctx, officerID); err != nil {
		return err
	}
	record(ctx, s.notifier, domain.LogSuccess, message, &officerID)
	s.logger.Info("officer on leave", zap.Int64("officer_id", officerID))
	return nil
}

func (s *PatrolService) DenyLeave(ctx context.Context, officerID int64) error {
	officer, err := s.officers.GetByID(ctx, officerID)
	if err != nil {
		return err
	}
	if err := s.officers.SetLeave(ctx, officerID, officer.IsOnLeave, false); err != nil {
		return err
	}
	record(ctx, s.notifier, domain.LogAlert, "Leave Request DENIED", &officerID)
	return nil
}

func (s *PatrolService) RevokeLeave(ctx context.Context, officerID int64) error {
	officer, err := s.officers.GetByID(ctx, officerID)
	if err != nil {
		return err
	}
	if err := s.officers.SetLeave(ctx, officerID, false, officer.LeaveRequested); err != nil {
		return err
	}
	record(ctx, s.notifier, domain.LogAlert, "Leave REVOKED - Return to Duty", &officerID)
	return nil
}
