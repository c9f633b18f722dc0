package postgres

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/internal/repository/database"
)

var _ database.PingRepository = (*PingRepo)(nil)

type PingRepo struct {
	db *sql.DB
}

func NewPingRepo(db *sql.DB) *PingRepo {
	return &PingRepo{db: db}
}

func (r *PingRepo) Insert(ctx context.Context, p *domain.Ping) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO pings (sender_id, receiver_id, message, lat, long, timestamp, is_active) VALUES ($1, $2, $3, $4, $5, $6, TRUE) RETURNING id`,
		p.SenderID, p.ReceiverID, p.Message, p.Origin.Lat, p.Origin.Lon, p.Timestamp,
	).Scan(&p.ID)
	if err != nil {
		return eris.Wrap(err, "postgres: insert ping")
	}
	p.Active = true
	return nil
}

func (r *PingRepo) ListActive(ctx context.Context, receiverID int64) ([]domain.ActivePing, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, u.username, p.message, p.lat, p.long, p.timestamp FROM pings p JOIN users u ON u.id = p.sender_id WHERE p.receiver_id = $1 AND p.is_active = TRUE ORDER BY p.timestamp DESC`,
		receiverID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list active pings")
	}
	defer func() { _ = rows.Close() }()

	results := []domain.ActivePing{}
	for rows.Next() {
		var p domain.ActivePing
		if err := rows.Scan(&p.ID, &p.Sender, &p.Message, &p.Origin.Lat, &p.Origin.Lon, &p.Timestamp); err != nil {
			return nil, eris.Wrap(err, "postgres: scan ping")
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// Dismiss only touches pings addressed to receiverID.
func (r *PingRepo) Dismiss(ctx context.Context, id, receiverID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE pings SET is_active = FALSE WHERE id = $1 AND receiver_id = $2`,
		id, receiverID,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: dismiss ping")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "postgres: dismiss ping")
	}
	if n == 0 {
		return eris.Wrapf(domain.ErrNotFound, "ping %d", id)
	}
	return nil
}
