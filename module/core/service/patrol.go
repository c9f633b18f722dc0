package service

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/geofence"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/internal/repository/database"
)

type PatrolService struct {
	officers    database.OfficerRepository
	deployments database.DeploymentRepository
	notifier    notifier
	logger      *zap.Logger
}

func NewPatrolService(
	officers database.OfficerRepository,
	deployments database.DeploymentRepository,
	n notifier,
	logger *zap.Logger,
) *PatrolService {
	return &PatrolService{
		officers:    officers,
		deployments: deployments,
		notifier:    n,
		logger:      logger,
	}
}

func (s *PatrolService) Officer(ctx context.Context, id int64) (*domain.Officer, error) {
	return s.officers.GetByID(ctx, id)
}

// Dashboard is the officer's own view. Deployments of officers on leave are
// not looked up.
func (s *PatrolService) Dashboard(ctx context.Context, officerID int64) (*domain.OfficerDashboard, error) {
	officer, err := s.officers.GetByID(ctx, officerID)
	if err != nil {
		return nil, err
	}

	var zone *domain.Zone
	if !officer.IsOnLeave {
		dep, err := s.deployments.GetActive(ctx, officerID)
		if err != nil {
			return nil, err
		}
		if dep != nil {
			zone = &dep.Zone
		}
	}

	return &domain.OfficerDashboard{
		Officer:        *officer,
		Classification: geofence.Evaluate(officer.State(zone)),
		Zone:           zone,
	}, nil
}

// Roster lists field officers visible to viewer with their roster colour.
// Supervisors only see their own subordinates.
func (s *PatrolService) Roster(ctx context.Context, viewer *domain.Officer) ([]domain.RosterEntry, error) {
	var supervisorID *int64
	if viewer.Role == domain.RoleSupervisor {
		supervisorID = &viewer.ID
	}

	officers, err := s.officers.ListFieldOfficers(ctx, supervisorID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(officers))
	for i, o := range officers {
		ids[i] = o.ID
	}
	active, err := s.deployments.ListActive(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.RosterEntry, len(officers))
	for i, o := range officers {
		var zone *domain.Zone
		if dep, ok := active[o.ID]; ok {
			zone = &dep.Zone
		}
		entries[i] = domain.RosterEntry{
			Officer: o,
			Color:   geofence.RosterColor(o.State(zone)),
			Zone:    zone,
		}
	}
	return entries, nil
}

// Deploy assigns every listed officer to the same zone, replacing any zone
// they were already patrolling.
func (s *PatrolService) Deploy(ctx context.Context, req *domain.BulkDeployment) error {
	if len(req.OfficerIDs) == 0 {
		return eris.Wrap(domain.ErrInvalidDeployment, "officer_ids: required")
	}
	if req.RadiusMeters <= 0 {
		return eris.Wrap(domain.ErrInvalidDeployment, "radius: must be positive")
	}
	if err := req.Target.Validate(); err != nil {
		return err
	}

	seen := make(map[int64]struct{}, len(req.OfficerIDs))
	ids := make([]int64, 0, len(req.OfficerIDs))
	for _, id := range req.OfficerIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	req = &domain.BulkDeployment{OfficerIDs: ids, Target: req.Target, RadiusMeters: req.RadiusMeters}

	if err := s.deployments.ReplaceActive(ctx, req); err != nil {
		return err
	}
	for _, id := range ids {
		record(ctx, s.notifier, domain.LogInfo, "New Deployment Assigned", &id)
	}

	s.logger.Info("officers deployed",
		zap.Int64s("officer_ids", ids),
		zap.Stringer("target", req.Target),
		zap.Float64("radius_meters", req.RadiusMeters),
	)
	return nil
}

func (s *PatrolService) StopPatrol(ctx context.Context, officerID int64) error {
	if err := s.deployments.DeactivateAll(ctx, officerID); err != nil {
		return err
	}
	record(ctx, s.notifier, domain.LogInfo, "Patrol Ended by Command", &officerID)
	return nil
}
