package postgres

import (
	"context"
	"database/sql"
	_ "embed"

	"github.com/rotisserie/eris"
)

//go:embed schema.sql
var schemaSQL string

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return eris.Wrap(err, "postgres: ensure schema")
	}
	return nil
}

// Reset drops every table owned by the service. Seeding only.
func Reset(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx,
		`DROP TABLE IF EXISTS notification_logs, pings, deployments, users CASCADE`,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: reset")
	}
	return nil
}
