package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/rotisserie/eris"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/internal/repository/database"
)

var _ database.DeploymentRepository = (*DeploymentRepo)(nil)

const deploymentColumns = `id, officer_id, target_lat, target_long, radius_meters, current_lat, current_long, last_checkin, status`

type DeploymentRepo struct {
	db *sql.DB
}

func NewDeploymentRepo(db *sql.DB) *DeploymentRepo {
	return &DeploymentRepo{db: db}
}

// GetActive returns nil without error when the officer has no active deployment.
func (r *DeploymentRepo) GetActive(ctx context.Context, officerID int64) (*domain.Deployment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+deploymentColumns+` FROM deployments WHERE officer_id = $1 AND is_active = TRUE ORDER BY id DESC LIMIT 1`,
		officerID,
	)

	d, err := scanDeployment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get active deployment")
	}
	return d, nil
}

func (r *DeploymentRepo) ListActive(ctx context.Context, officerIDs []int64) (map[int64]domain.Deployment, error) {
	results := make(map[int64]domain.Deployment, len(officerIDs))
	if len(officerIDs) == 0 {
		return results, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+deploymentColumns+` FROM deployments WHERE is_active = TRUE AND officer_id = ANY($1) ORDER BY id ASC`,
		pq.Array(officerIDs),
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list active deployments")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		d, err := scanDeployment(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan deployment")
		}
		// rows come in ascending id order; the newest active row wins
		results[d.OfficerID] = *d
	}
	return results, rows.Err()
}

// ReplaceActive deactivates every active deployment of the listed officers
// and assigns each of them the new zone, in one transaction.
func (r *DeploymentRepo) ReplaceActive(ctx context.Context, req *domain.BulkDeployment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "postgres: begin deployment tx")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE deployments SET is_active = FALSE WHERE is_active = TRUE AND officer_id = ANY($1)`,
		pq.Array(req.OfficerIDs),
	); err != nil {
		return eris.Wrap(err, "postgres: deactivate deployments")
	}

	for _, id := range req.OfficerIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO deployments (officer_id, target_lat, target_long, radius_meters, is_active, status) VALUES ($1, $2, $3, $4, TRUE, $5)`,
			id, req.Target.Lat, req.Target.Lon, req.RadiusMeters, string(domain.DeploymentDeployed),
		); err != nil {
			return eris.Wrapf(err, "postgres: insert deployment for officer %d", id)
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "postgres: commit deployment tx")
	}
	return nil
}

func (r *DeploymentRepo) RecordCheckIn(ctx context.Context, id int64, pos domain.Coordinate, at time.Time, status domain.DeploymentStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE deployments SET current_lat = $1, current_long = $2, last_checkin = $3, status = $4 WHERE id = $5`,
		pos.Lat, pos.Lon, at, string(status), id,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: record check-in")
	}
	return nil
}

func (r *DeploymentRepo) DeactivateAll(ctx context.Context, officerID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE deployments SET is_active = FALSE WHERE officer_id = $1`,
		officerID,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: deactivate deployments")
	}
	return nil
}

func scanDeployment(s scanner) (*domain.Deployment, error) {
	var (
		d              domain.Deployment
		status         string
		curLat, curLon sql.NullFloat64
		lastCheckIn    sql.NullTime
	)
	if err := s.Scan(&d.ID, &d.OfficerID, &d.Zone.Target.Lat, &d.Zone.Target.Lon, &d.Zone.RadiusMeters,
		&curLat, &curLon, &lastCheckIn, &status); err != nil {
		return nil, err
	}
	d.Zone.Active = true
	d.Current = nullCoordinate(curLat, curLon)
	if lastCheckIn.Valid {
		d.LastCheckIn = lastCheckIn.Time
	}
	d.Status = domain.DeploymentStatus(status)
	return &d, nil
}
