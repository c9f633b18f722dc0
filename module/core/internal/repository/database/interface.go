package database

import (
	"context"
	"time"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
)

type OfficerRepository interface {
	Create(ctx context.Context, o *domain.Officer) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Officer, error)
	ListFieldOfficers(ctx context.Context, supervisorID *int64) ([]domain.Officer, error)
	UpdatePosition(ctx context.Context, id int64, pos domain.Coordinate) error
	SetLeave(ctx context.Context, id int64, onLeave, leaveRequested bool) error
	SetPingsEnabled(ctx context.Context, id int64, enabled bool) error
}

type DeploymentRepository interface {
	GetActive(ctx context.Context, officerID int64) (*domain.Deployment, error)
	ListActive(ctx context.Context, officerIDs []int64) (map[int64]domain.Deployment, error)
	ReplaceActive(ctx context.Context, req *domain.BulkDeployment) error
	RecordCheckIn(ctx context.Context, id int64, pos domain.Coordinate, at time.Time, status domain.DeploymentStatus) error
	DeactivateAll(ctx context.Context, officerID int64) error
}

type PingRepository interface {
	Insert(ctx context.Context, p *domain.Ping) error
	ListActive(ctx context.Context, receiverID int64) ([]domain.ActivePing, error)
	Dismiss(ctx context.Context, id, receiverID int64) error
}

type NotificationRepository interface {
	Insert(ctx context.Context, entry *domain.NotificationLog) error
	ListForUser(ctx context.Context, userID int64, limit int) ([]domain.NotificationLog, error)
	ListGlobal(ctx context.Context, limit int) ([]domain.NotificationLog, error)
}
