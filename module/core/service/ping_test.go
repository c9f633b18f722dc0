package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
)

const testPingRange = 5000

func newPingService(officers *mockOfficerRepo, pings *mockPingRepo) *PingService {
	svc := NewPingService(officers, pings, testPingRange, zap.NewNop())
	svc.now = func() time.Time { return time.Unix(1715003456, 0) }
	return svc
}

func receiverRepo(receiver *domain.Officer) *mockOfficerRepo {
	return &mockOfficerRepo{
		getByIDFn: func(_ context.Context, id int64) (*domain.Officer, error) {
			if id != receiver.ID {
				return nil, domain.ErrNotFound
			}
			return receiver, nil
		},
	}
}

func TestSend_FieldOfficerInRange(t *testing.T) {
	pings := &mockPingRepo{}
	receiver := &domain.Officer{ID: 5, Role: domain.RoleFieldOfficer, Position: coord(15.4950, 73.8200), PingsEnabled: true}
	svc := newPingService(receiverRepo(receiver), pings)

	sender := &domain.Officer{ID: 4, Role: domain.RoleFieldOfficer, Position: coord(15.4909, 73.8278)}
	require.NoError(t, svc.Send(context.Background(), sender, 5, "need backup"))

	require.Len(t, pings.inserted, 1)
	p := pings.inserted[0]
	assert.Equal(t, int64(4), p.SenderID)
	assert.Equal(t, int64(5), p.ReceiverID)
	assert.Equal(t, "need backup", p.Message)
	assert.Equal(t, 15.4909, p.Origin.Lat)
	assert.Equal(t, time.Unix(1715003456, 0).UTC(), p.Timestamp)
}

func TestSend_FieldOfficerOutOfRange(t *testing.T) {
	pings := &mockPingRepo{}
	receiver := &domain.Officer{ID: 5, Position: coord(15.2736, 73.9581), PingsEnabled: true}
	svc := newPingService(receiverRepo(receiver), pings)

	sender := &domain.Officer{ID: 4, Role: domain.RoleFieldOfficer, Position: coord(15.4909, 73.8278)}
	err := svc.Send(context.Background(), sender, 5, "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOutOfRange))
	assert.Regexp(t, `\d+m`, err.Error())
	assert.Empty(t, pings.inserted)
}

func TestSend_FieldOfficerRefusals(t *testing.T) {
	tests := []struct {
		name     string
		sender   *domain.Coordinate
		receiver *domain.Officer
		want     error
	}{
		{"pings disabled", coord(15.4909, 73.8278), &domain.Officer{ID: 5, Position: coord(15.4909, 73.8278)}, domain.ErrPingsDisabled},
		{"sender no fix", nil, &domain.Officer{ID: 5, Position: coord(15.4909, 73.8278), PingsEnabled: true}, domain.ErrLocationUnknown},
		{"receiver no fix", coord(15.4909, 73.8278), &domain.Officer{ID: 5, PingsEnabled: true}, domain.ErrLocationUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pings := &mockPingRepo{}
			svc := newPingService(receiverRepo(tt.receiver), pings)
			sender := &domain.Officer{ID: 4, Role: domain.RoleFieldOfficer, Position: tt.sender}

			err := svc.Send(context.Background(), sender, 5, "hello")
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Empty(t, pings.inserted)
		})
	}
}

func TestSend_SupervisorUnrestricted(t *testing.T) {
	pings := &mockPingRepo{}
	receiver := &domain.Officer{ID: 5, Position: coord(15.2736, 73.9581)}
	svc := newPingService(receiverRepo(receiver), pings)

	sender := &domain.Officer{ID: 2, Role: domain.RoleSupervisor}
	require.NoError(t, svc.Send(context.Background(), sender, 5, "report in"))
	require.Len(t, pings.inserted, 1)
	assert.Equal(t, domain.Coordinate{}, pings.inserted[0].Origin)
}

func TestSend_UnknownReceiver(t *testing.T) {
	svc := newPingService(receiverRepo(&domain.Officer{ID: 5}), &mockPingRepo{})

	err := svc.Send(context.Background(), &domain.Officer{ID: 2, Role: domain.RoleSupervisor}, 99, "x")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestBroadcast(t *testing.T) {
	pings := &mockPingRepo{}
	officers := &mockOfficerRepo{
		listFieldOfficersFn: func(_ context.Context, supervisorID *int64) ([]domain.Officer, error) {
			assert.Nil(t, supervisorID)
			return []domain.Officer{
				{ID: 4, Position: coord(15.4909, 73.8278), PingsEnabled: true},  // sender
				{ID: 5, Position: coord(15.4950, 73.8200), PingsEnabled: true},  // near
				{ID: 6, Position: coord(15.5000, 73.8300), PingsEnabled: false}, // near, muted
				{ID: 7, Position: coord(15.2736, 73.9581), PingsEnabled: true},  // far
				{ID: 8, PingsEnabled: true},                                     // no fix
				{ID: 9, Position: coord(15.5109, 73.8278), PingsEnabled: true},  // near
			}, nil
		},
	}
	svc := newPingService(officers, pings)

	sender := &domain.Officer{ID: 4, Role: domain.RoleFieldOfficer, Position: coord(15.4909, 73.8278)}
	n, err := svc.Broadcast(context.Background(), sender, "suspect heading north")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, pings.inserted, 2)
	assert.Equal(t, int64(5), pings.inserted[0].ReceiverID)
	assert.Equal(t, int64(9), pings.inserted[1].ReceiverID)
	assert.Equal(t, "suspect heading north [BROADCAST]", pings.inserted[0].Message)
}

func TestBroadcast_NoFix(t *testing.T) {
	officers := &mockOfficerRepo{
		listFieldOfficersFn: func(_ context.Context, _ *int64) ([]domain.Officer, error) {
			t.Fatal("roster should not be loaded without a sender fix")
			return nil, nil
		},
	}
	svc := newPingService(officers, &mockPingRepo{})

	_, err := svc.Broadcast(context.Background(), &domain.Officer{ID: 4}, "x")
	assert.True(t, errors.Is(err, domain.ErrLocationUnknown))
}

func TestBroadcast_InsertError(t *testing.T) {
	pings := &mockPingRepo{
		insertFn: func(_ context.Context, _ *domain.Ping) error { return errors.New("db error") },
	}
	officers := &mockOfficerRepo{
		listFieldOfficersFn: func(_ context.Context, _ *int64) ([]domain.Officer, error) {
			return []domain.Officer{{ID: 5, Position: coord(15.4950, 73.8200), PingsEnabled: true}}, nil
		},
	}
	svc := newPingService(officers, pings)

	n, err := svc.Broadcast(context.Background(), &domain.Officer{ID: 4, Position: coord(15.4909, 73.8278)}, "x")
	assert.Error(t, err)
	assert.Equal(t, 0, n)
}

func TestToggle(t *testing.T) {
	var stored *bool
	officers := &mockOfficerRepo{
		setPingsEnabledFn: func(_ context.Context, _ int64, enabled bool) error {
			stored = &enabled
			return nil
		},
	}
	svc := newPingService(officers, &mockPingRepo{})

	enabled, err := svc.Toggle(context.Background(), &domain.Officer{ID: 4, PingsEnabled: true})
	require.NoError(t, err)
	assert.False(t, enabled)
	require.NotNil(t, stored)
	assert.False(t, *stored)
}

func TestActive_MutedReturnsEmpty(t *testing.T) {
	pings := &mockPingRepo{
		listActiveFn: func(_ context.Context, _ int64) ([]domain.ActivePing, error) {
			t.Fatal("ListActive should not be called while muted")
			return nil, nil
		},
	}
	svc := newPingService(&mockOfficerRepo{}, pings)

	got, err := svc.Active(context.Background(), &domain.Officer{ID: 4})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDismiss_PassesReceiver(t *testing.T) {
	var gotID, gotReceiver int64
	pings := &mockPingRepo{
		dismissFn: func(_ context.Context, id, receiverID int64) error {
			gotID, gotReceiver = id, receiverID
			return nil
		},
	}
	svc := newPingService(&mockOfficerRepo{}, pings)

	require.NoError(t, svc.Dismiss(context.Background(), &domain.Officer{ID: 5}, 11))
	assert.Equal(t, int64(11), gotID)
	assert.Equal(t, int64(5), gotReceiver)
}
