package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
)

func TestPingInsert_Success(t *testing.T) {
	db, mock := newMock(t)

	ts := time.Unix(1715003456, 0)
	mock.ExpectQuery(`INSERT INTO pings`).
		WithArgs(int64(4), int64(5), "backup needed", 15.4909, 73.8278, ts).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	repo := NewPingRepo(db)
	p := &domain.Ping{
		SenderID:   4,
		ReceiverID: 5,
		Message:    "backup needed",
		Origin:     domain.Coordinate{Lat: 15.4909, Lon: 73.8278},
		Timestamp:  ts,
	}
	require.NoError(t, repo.Insert(context.Background(), p))
	assert.Equal(t, int64(11), p.ID)
	assert.True(t, p.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPingListActive(t *testing.T) {
	db, mock := newMock(t)

	ts := time.Unix(1715003456, 0)
	rows := sqlmock.NewRows([]string{"id", "username", "message", "lat", "long", "timestamp"}).
		AddRow(11, "Amit_Verma", "backup needed", 15.4909, 73.8278, ts)
	mock.ExpectQuery(`SELECT (.+) FROM pings p JOIN users u ON u.id = p.sender_id WHERE p.receiver_id = (.+) AND p.is_active = TRUE`).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	repo := NewPingRepo(db)
	pings, err := repo.ListActive(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, pings, 1)
	assert.Equal(t, "Amit_Verma", pings[0].Sender)
	assert.Equal(t, 73.8278, pings[0].Origin.Lon)
}

func TestPingListActive_Empty(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`SELECT (.+) FROM pings`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "message", "lat", "long", "timestamp"}))

	repo := NewPingRepo(db)
	pings, err := repo.ListActive(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, pings)
	assert.Empty(t, pings)
}

func TestPingDismiss(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(`UPDATE pings SET is_active = FALSE WHERE id = (.+) AND receiver_id = (.+)`).
		WithArgs(int64(11), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPingRepo(db)
	require.NoError(t, repo.Dismiss(context.Background(), 11, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPingDismiss_NotOwned(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(`UPDATE pings SET is_active = FALSE`).
		WithArgs(int64(11), int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPingRepo(db)
	err := repo.Dismiss(context.Background(), 11, 6)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
