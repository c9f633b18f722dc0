package postgres

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/internal/repository/database"
)

var _ database.NotificationRepository = (*NotificationRepo)(nil)

type NotificationRepo struct {
	db *sql.DB
}

func NewNotificationRepo(db *sql.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func (r *NotificationRepo) Insert(ctx context.Context, entry *domain.NotificationLog) error {
	var userID sql.NullInt64
	if entry.UserID != nil {
		userID = sql.NullInt64{Int64: *entry.UserID, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notification_logs (timestamp, level, message, user_id) VALUES ($1, $2, $3, $4)`,
		entry.Timestamp, string(entry.Level), entry.Message, userID,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: insert notification")
	}
	return nil
}

// ListForUser returns the user's own entries interleaved with global ones.
func (r *NotificationRepo) ListForUser(ctx context.Context, userID int64, limit int) ([]domain.NotificationLog, error) {
	return r.list(ctx,
		`SELECT id, timestamp, level, message, user_id FROM notification_logs WHERE user_id = $1 OR user_id IS NULL ORDER BY timestamp DESC LIMIT $2`,
		userID, limit,
	)
}

func (r *NotificationRepo) ListGlobal(ctx context.Context, limit int) ([]domain.NotificationLog, error) {
	return r.list(ctx,
		`SELECT id, timestamp, level, message, user_id FROM notification_logs WHERE user_id IS NULL ORDER BY timestamp DESC LIMIT $1`,
		limit,
	)
}

func (r *NotificationRepo) list(ctx context.Context, query string, args ...any) ([]domain.NotificationLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list notifications")
	}
	defer func() { _ = rows.Close() }()

	results := []domain.NotificationLog{}
	for rows.Next() {
		var (
			n      domain.NotificationLog
			level  string
			userID sql.NullInt64
		)
		if err := rows.Scan(&n.ID, &n.Timestamp, &level, &n.Message, &userID); err != nil {
			return nil, eris.Wrap(err, "postgres: scan notification")
		}
		n.Level = domain.LogLevel(level)
		if userID.Valid {
			n.UserID = &userID.Int64
		}
		results = append(results, n)
	}
	return results, rows.Err()
}
