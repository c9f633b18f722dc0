package service

import (
	"context"
	"time"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
)

type mockOfficerRepo struct {
	createFn            func(ctx context.Context, o *domain.Officer) (int64, error)
	getByIDFn           func(ctx context.Context, id int64) (*domain.Officer, error)
	listFieldOfficersFn func(ctx context.Context, supervisorID *int64) ([]domain.Officer, error)
	updatePositionFn    func(ctx context.Context, id int64, pos domain.Coordinate) error
	setLeaveFn          func(ctx context.Context, id int64, onLeave, leaveRequested bool) error
	setPingsEnabledFn   func(ctx context.Context, id int64, enabled bool) error
}

func (m *mockOfficerRepo) Create(ctx context.Context, o *domain.Officer) (int64, error) {
	return m.createFn(ctx, o)
}

func (m *mockOfficerRepo) GetByID(ctx context.Context, id int64) (*domain.Officer, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockOfficerRepo) ListFieldOfficers(ctx context.Context, supervisorID *int64) ([]domain.Officer, error) {
	return m.listFieldOfficersFn(ctx, supervisorID)
}

func (m *mockOfficerRepo) UpdatePosition(ctx context.Context, id int64, pos domain.Coordinate) error {
	return m.updatePositionFn(ctx, id, pos)
}

func (m *mockOfficerRepo) SetLeave(ctx context.Context, id int64, onLeave, leaveRequested bool) error {
	return m.setLeaveFn(ctx, id, onLeave, leaveRequested)
}

func (m *mockOfficerRepo) SetPingsEnabled(ctx context.Context, id int64, enabled bool) error {
	return m.setPingsEnabledFn(ctx, id, enabled)
}

type mockDeploymentRepo struct {
	getActiveFn     func(ctx context.Context, officerID int64) (*domain.Deployment, error)
	listActiveFn    func(ctx context.Context, officerIDs []int64) (map[int64]domain.Deployment, error)
	replaceActiveFn func(ctx context.Context, req *domain.BulkDeployment) error
	recordCheckInFn func(ctx context.Context, id int64, pos domain.Coordinate, at time.Time, status domain.DeploymentStatus) error
	deactivateFn    func(ctx context.Context, officerID int64) error
}

func (m *mockDeploymentRepo) GetActive(ctx context.Context, officerID int64) (*domain.Deployment, error) {
	return m.getActiveFn(ctx, officerID)
}

func (m *mockDeploymentRepo) ListActive(ctx context.Context, officerIDs []int64) (map[int64]domain.Deployment, error) {
	return m.listActiveFn(ctx, officerIDs)
}

func (m *mockDeploymentRepo) ReplaceActive(ctx context.Context, req *domain.BulkDeployment) error {
	return m.replaceActiveFn(ctx, req)
}

func (m *mockDeploymentRepo) RecordCheckIn(ctx context.Context, id int64, pos domain.Coordinate, at time.Time, status domain.DeploymentStatus) error {
	return m.recordCheckInFn(ctx, id, pos, at, status)
}

func (m *mockDeploymentRepo) DeactivateAll(ctx context.Context, officerID int64) error {
	return m.deactivateFn(ctx, officerID)
}

type mockPingRepo struct {
	inserted     []*domain.Ping
	insertFn     func(ctx context.Context, p *domain.Ping) error
	listActiveFn func(ctx context.Context, receiverID int64) ([]domain.ActivePing, error)
	dismissFn    func(ctx context.Context, id, receiverID int64) error
}

func (m *mockPingRepo) Insert(ctx context.Context, p *domain.Ping) error {
	m.inserted = append(m.inserted, p)
	if m.insertFn != nil {
		return m.insertFn(ctx, p)
	}
	return nil
}

func (m *mockPingRepo) ListActive(ctx context.Context, receiverID int64) ([]domain.ActivePing, error) {
	return m.listActiveFn(ctx, receiverID)
}

func (m *mockPingRepo) Dismiss(ctx context.Context, id, receiverID int64) error {
	return m.dismissFn(ctx, id, receiverID)
}

type mockNotificationRepo struct {
	inserted      []*domain.NotificationLog
	insertFn      func(ctx context.Context, entry *domain.NotificationLog) error
	listForUserFn func(ctx context.Context, userID int64, limit int) ([]domain.NotificationLog, error)
	listGlobalFn  func(ctx context.Context, limit int) ([]domain.NotificationLog, error)
}

func (m *mockNotificationRepo) Insert(ctx context.Context, entry *domain.NotificationLog) error {
	m.inserted = append(m.inserted, entry)
	if m.insertFn != nil {
		return m.insertFn(ctx, entry)
	}
	return nil
}

func (m *mockNotificationRepo) ListForUser(ctx context.Context, userID int64, limit int) ([]domain.NotificationLog, error) {
	return m.listForUserFn(ctx, userID, limit)
}

func (m *mockNotificationRepo) ListGlobal(ctx context.Context, limit int) ([]domain.NotificationLog, error) {
	return m.listGlobalFn(ctx, limit)
}

type mockPatrolPublisher struct {
	publishAlertFn func(ctx context.Context, alert *domain.PatrolAlert) error
	calls          []*domain.PatrolAlert
}

func (m *mockPatrolPublisher) PublishAlert(ctx context.Context, alert *domain.PatrolAlert) error {
	m.calls = append(m.calls, alert)
	if m.publishAlertFn != nil {
		return m.publishAlertFn(ctx, alert)
	}
	return nil
}

type recordedNotice struct {
	level   domain.LogLevel
	message string
	userID  *int64
}

type recordingNotifier struct {
	notices []recordedNotice
	err     error
}

func (r *recordingNotifier) Record(_ context.Context, level domain.LogLevel, message string, userID *int64) error {
	r.notices = append(r.notices, recordedNotice{level: level, message: message, userID: userID})
	return r.err
}

func coord(lat, lon float64) *domain.Coordinate {
	return &domain.Coordinate{Lat: lat, Lon: lon}
}
