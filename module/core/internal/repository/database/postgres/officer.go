package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rotisserie/eris"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/internal/repository/database"
)

var _ database.OfficerRepository = (*OfficerRepo)(nil)

const officerColumns = `id, username, role, supervisor_id, last_known_lat, last_known_long, leave_requested, is_on_leave, profile_photo, pings_enabled`

type OfficerRepo struct {
	db *sql.DB
}

func NewOfficerRepo(db *sql.DB) *OfficerRepo {
	return &OfficerRepo{db: db}
}

func (r *OfficerRepo) Create(ctx context.Context, o *domain.Officer) (int64, error) {
	var lat, lon sql.NullFloat64
	if o.Position != nil {
		lat = sql.NullFloat64{Float64: o.Position.Lat, Valid: true}
		lon = sql.NullFloat64{Float64: o.Position.Lon, Valid: true}
	}
	var supervisor sql.NullInt64
	if o.SupervisorID != nil {
		supervisor = sql.NullInt64{Int64: *o.SupervisorID, Valid: true}
	}

	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, role, supervisor_id, last_known_lat, last_known_long, leave_requested, is_on_leave, profile_photo, pings_enabled) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		o.Username, string(o.Role), supervisor, lat, lon, o.LeaveRequested, o.IsOnLeave, o.ProfilePhoto, o.PingsEnabled,
	).Scan(&id)
	if err != nil {
		return 0, eris.Wrapf(err, "postgres: insert officer %q", o.Username)
	}
	return id, nil
}

func (r *OfficerRepo) GetByID(ctx context.Context, id int64) (*domain.Officer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+officerColumns+` FROM users WHERE id = $1`,
		id,
	)

	o, err := scanOfficer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(domain.ErrNotFound, "officer %d", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get officer")
	}
	return o, nil
}

// ListFieldOfficers returns every field officer, or only the subordinates of
// supervisorID when it is set.
func (r *OfficerRepo) ListFieldOfficers(ctx context.Context, supervisorID *int64) ([]domain.Officer, error) {
	query := `SELECT ` + officerColumns + ` FROM users WHERE role = $1`
	args := []any{string(domain.RoleFieldOfficer)}
	if supervisorID != nil {
		query += ` AND supervisor_id = $2`
		args = append(args, *supervisorID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list field officers")
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Officer
	for rows.Next() {
		o, err := scanOfficer(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan officer")
		}
		results = append(results, *o)
	}
	return results, rows.Err()
}

func (r *OfficerRepo) UpdatePosition(ctx context.Context, id int64, pos domain.Coordinate) error {
	return r.exec(ctx, "update position",
		`UPDATE users SET last_known_lat = $1, last_known_long = $2 WHERE id = $3`,
		pos.Lat, pos.Lon, id,
	)
}

func (r *OfficerRepo) SetLeave(ctx context.Context, id int64, onLeave, leaveRequested bool) error {
	return r.exec(ctx, "set leave",
		`UPDATE users SET is_on_leave = $1, leave_requested = $2 WHERE id = $3`,
		onLeave, leaveRequested, id,
	)
}

func (r *OfficerRepo) SetPingsEnabled(ctx context.Context, id int64, enabled bool) error {
	return r.exec(ctx, "set pings enabled",
		`UPDATE users SET pings_enabled = $1 WHERE id = $2`,
		enabled, id,
	)
}

func (r *OfficerRepo) exec(ctx context.Context, op, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return eris.Wrapf(err, "postgres: %s", op)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrapf(err, "postgres: %s", op)
	}
	if n == 0 {
		return eris.Wrapf(domain.ErrNotFound, "postgres: %s", op)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOfficer(s scanner) (*domain.Officer, error) {
	var (
		o          domain.Officer
		role       string
		supervisor sql.NullInt64
		lat, lon   sql.NullFloat64
	)
	if err := s.Scan(&o.ID, &o.Username, &role, &supervisor, &lat, &lon,
		&o.LeaveRequested, &o.IsOnLeave, &o.ProfilePhoto, &o.PingsEnabled); err != nil {
		return nil, err
	}
	o.Role = domain.Role(role)
	if supervisor.Valid {
		o.SupervisorID = &supervisor.Int64
	}
	o.Position = nullCoordinate(lat, lon)
	return &o, nil
}

// nullCoordinate collapses a half-populated pair to nil.
func nullCoordinate(lat, lon sql.NullFloat64) *domain.Coordinate {
	if !lat.Valid || !lon.Valid {
		return nil
	}
	return &domain.Coordinate{Lat: lat.Float64, Lon: lon.Float64}
}
