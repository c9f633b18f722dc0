package service

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/geofence"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/internal/repository/database"
)

const broadcastSuffix = " [BROADCAST]"

type PingService struct {
	officers    database.OfficerRepository
	pings       database.PingRepository
	rangeMeters float64
	logger      *zap.Logger
	now         func() time.Time
}

func NewPingService(officers database.OfficerRepository, pings database.PingRepository, rangeMeters float64, logger *zap.Logger) *PingService {
	return &PingService{
		officers:    officers,
		pings:       pings,
		rangeMeters: rangeMeters,
		logger:      logger,
		now:         time.Now,
	}
}

// Send delivers a ping to a single receiver. Field officers may only ping
// officers who accept pings and are inside the ping range; command staff
// are not restricted.
func (s *PingService) Send(ctx context.Context, sender *domain.Officer, receiverID int64, message string) error {
	receiver, err := s.officers.GetByID(ctx, receiverID)
	if err != nil {
		return err
	}

	if sender.Role == domain.RoleFieldOfficer {
		if !receiver.PingsEnabled {
			return domain.ErrPingsDisabled
		}
		if sender.Position == nil || receiver.Position == nil {
			return domain.ErrLocationUnknown
		}
		if !geofence.InRange(sender.Position, receiver.Position, s.rangeMeters) {
			d, _ := geofence.Distance(sender.Position, receiver.Position).Meters()
			return eris.Wrapf(domain.ErrOutOfRange, "%dm", int64(d))
		}
	}

	return s.pings.Insert(ctx, s.newPing(sender, receiver.ID, message))
}

// Broadcast pings every other field officer inside the ping range who
// accepts pings, and returns how many were reached.
func (s *PingService) Broadcast(ctx context.Context, sender *domain.Officer, message string) (int, error) {
	if sender.Position == nil {
		return 0, domain.ErrLocationUnknown
	}

	officers, err := s.officers.ListFieldOfficers(ctx, nil)
	if err != nil {
		return 0, err
	}

	candidates := make([]geofence.Candidate[int64], 0, len(officers))
	for _, o := range officers {
		if o.ID == sender.ID || !o.PingsEnabled {
			continue
		}
		candidates = append(candidates, geofence.Candidate[int64]{ID: o.ID, Position: o.Position})
	}
	nearby := geofence.WithinRange(sender.Position, candidates, s.rangeMeters)

	count := 0
	for _, c := range candidates {
		if _, ok := nearby[c.ID]; !ok {
			continue
		}
		if err := s.pings.Insert(ctx, s.newPing(sender, c.ID, message+broadcastSuffix)); err != nil {
			return count, err
		}
		count++
	}

	s.logger.Info("broadcast ping", zap.Int64("sender_id", sender.ID), zap.Int("recipients", count))
	return count, nil
}

// Toggle flips whether officer accepts pings and returns the new setting.
func (s *PingService) Toggle(ctx context.Context, officer *domain.Officer) (bool, error) {
	enabled := !officer.PingsEnabled
	if err := s.officers.SetPingsEnabled(ctx, officer.ID, enabled); err != nil {
		return officer.PingsEnabled, err
	}
	return enabled, nil
}

func (s *PingService) Dismiss(ctx context.Context, officer *domain.Officer, pingID int64) error {
	return s.pings.Dismiss(ctx, pingID, officer.ID)
}

// Active is empty while the officer has pings turned off.
func (s *PingService) Active(ctx context.Context, officer *domain.Officer) ([]domain.ActivePing, error) {
	if !officer.PingsEnabled {
		return []domain.ActivePing{}, nil
	}
	return s.pings.ListActive(ctx, officer.ID)
}

func (s *PingService) newPing(sender *domain.Officer, receiverID int64, message string) *domain.Ping {
	// command staff may ping without a fix; the origin then defaults to 0,0
	var origin domain.Coordinate
	if sender.Position != nil {
		origin = *sender.Position
	}
	return &domain.Ping{
		SenderID:   sender.ID,
		ReceiverID: receiverID,
		Message:    message,
		Origin:     origin,
		Timestamp:  s.now().UTC(),
	}
}
