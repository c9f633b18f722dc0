package service

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/geofence"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/internal/repository/database"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/internal/repository/publisher"
)

// notifier appends to the notification log. Implementations log their own
// failures.
type notifier interface {
	Record(ctx context.Context, level domain.LogLevel, message string, userID *int64) error
}

// record writes a notification entry for an operation that has already
// succeeded. A failed write does not undo or fail that operation.
func record(ctx context.Context, n notifier, level domain.LogLevel, message string, userID *int64) {
	_ = n.Record(ctx, level, message, userID)
}

type LocationService struct {
	officers    database.OfficerRepository
	deployments database.DeploymentRepository
	publisher   publisher.PatrolPublisher
	notifier    notifier
	logger      *zap.Logger
	now         func() time.Time
}

func NewLocationService(
	officers database.OfficerRepository,
	deployments database.DeploymentRepository,
	pub publisher.PatrolPublisher,
	n notifier,
	logger *zap.Logger,
) *LocationService {
	return &LocationService{
		officers:    officers,
		deployments: deployments,
		publisher:   pub,
		notifier:    n,
		logger:      logger,
		now:         time.Now,
	}
}

// CheckIn stores an officer's reported position, re-evaluates their active
// deployment and returns the resulting status. Crossing the zone boundary in
// either direction publishes a patrol alert.
func (s *LocationService) CheckIn(ctx context.Context, in *domain.CheckIn) (domain.Classification, error) {
	if err := in.Position.Validate(); err != nil {
		return domain.Classification{}, err
	}
	at := in.Timestamp
	if at.IsZero() {
		at = s.now()
	}

	officer, err := s.officers.GetByID(ctx, in.OfficerID)
	if err != nil {
		return domain.Classification{}, err
	}
	if err := s.officers.UpdatePosition(ctx, in.OfficerID, in.Position); err != nil {
		return domain.Classification{}, eris.Wrap(err, "save position")
	}
	pos := in.Position
	officer.Position = &pos

	dep, err := s.deployments.GetActive(ctx, in.OfficerID)
	if err != nil {
		return domain.Classification{}, err
	}
	if dep == nil {
		return geofence.Evaluate(officer.State(nil)), nil
	}

	result := geofence.Contain(&pos, dep.Zone)
	status := domain.DeploymentDeployed
	if result.Kind != domain.StatusSafe {
		status = domain.DeploymentOutOfBounds
	}
	if err := s.deployments.RecordCheckIn(ctx, dep.ID, pos, at, status); err != nil {
		return domain.Classification{}, eris.Wrap(err, "record deployment check-in")
	}

	if status != dep.Status {
		s.announceTransition(ctx, officer, dep, result, status, at)
	}

	return geofence.Evaluate(officer.State(&dep.Zone)), nil
}

// announceTransition never fails the check-in; the position is already stored.
func (s *LocationService) announceTransition(
	ctx context.Context,
	officer *domain.Officer,
	dep *domain.Deployment,
	result domain.Classification,
	status domain.DeploymentStatus,
	at time.Time,
) {
	event, level, message := domain.PatrolZoneReturn, domain.LogInfo, officer.Username+" returned to patrol zone"
	if status == domain.DeploymentOutOfBounds {
		event, level, message = domain.PatrolZoneViolation, domain.LogAlert, officer.Username+" "+result.Message
	}

	var dist float64
	if result.DistanceMeters != nil {
		dist = *result.DistanceMeters
	}
	alert := &domain.PatrolAlert{
		OfficerID:      officer.ID,
		Username:       officer.Username,
		Event:          event,
		Position:       *officer.Position,
		Zone:           dep.Zone,
		DistanceMeters: dist,
		Timestamp:      at.Unix(),
	}
	if err := s.publisher.PublishAlert(ctx, alert); err != nil {
		s.logger.Error("publish patrol alert", zap.Int64("officer_id", officer.ID), zap.String("event", string(event)), zap.Error(err))
	}
	record(ctx, s.notifier, level, message, nil)

	s.logger.Info("patrol zone transition",
		zap.Int64("officer_id", officer.ID),
		zap.String("event", string(event)),
		zap.Float64("distance_meters", dist),
	)
}
