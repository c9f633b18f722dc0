package subscriber

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
)

const (
	topicPattern   = "/kartavya/officer/+/location"
	handlerTimeout = 10 * time.Second
)

type checkInService interface {
	CheckIn(ctx context.Context, in *domain.CheckIn) (domain.Classification, error)
}

type locationMessage struct {
	OfficerID int64   `json:"officer_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
}

// LocationSubscriber ingests GPS check-ins published by officer devices.
type LocationSubscriber struct {
	client      mqtt.Client
	locationSvc checkInService
	logger      *zap.Logger
	limiters    *officerLimiter
}

// NewLocationSubscriber accepts at most perMinute check-ins per officer;
// perMinute <= 0 disables throttling.
func NewLocationSubscriber(client mqtt.Client, locationSvc checkInService, perMinute int, logger *zap.Logger) *LocationSubscriber {
	return &LocationSubscriber{
		client:      client,
		locationSvc: locationSvc,
		logger:      logger,
		limiters:    newOfficerLimiter(perMinute),
	}
}

func (s *LocationSubscriber) Start() error {
	token := s.client.Subscribe(topicPattern, 1, s.handleMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		return eris.Wrapf(err, "subscribe %s", topicPattern)
	}
	s.logger.Info("subscribed", zap.String("topic", topicPattern))
	return nil
}

func (s *LocationSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw locationMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		s.logger.Warn("invalid location message", zap.String("topic", msg.Topic()), zap.Error(err))
		return
	}

	if err := validateLocationMessage(msg.Topic(), &raw); err != nil {
		s.logger.Warn("location validation failed", zap.String("topic", msg.Topic()), zap.Error(err))
		return
	}

	if !s.limiters.allow(raw.OfficerID) {
		s.logger.Debug("check-in throttled", zap.Int64("officer_id", raw.OfficerID))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	result, err := s.locationSvc.CheckIn(ctx, &domain.CheckIn{
		OfficerID: raw.OfficerID,
		Position:  domain.Coordinate{Lat: raw.Latitude, Lon: raw.Longitude},
		Timestamp: time.Unix(raw.Timestamp, 0),
	})
	if err != nil {
		s.logger.Error("check-in failed", zap.Int64("officer_id", raw.OfficerID), zap.Error(err))
		return
	}

	s.logger.Debug("check-in",
		zap.Int64("officer_id", raw.OfficerID),
		zap.String("status", string(result.Kind)),
		zap.String("message", result.Message),
	)
}

func validateLocationMessage(topic string, msg *locationMessage) error {
	if msg.OfficerID <= 0 {
		return eris.New("officer_id: required")
	}
	if id, ok := topicOfficerID(topic); ok && id != msg.OfficerID {
		return eris.Errorf("officer_id: %d does not match topic %s", msg.OfficerID, topic)
	}
	if err := (domain.Coordinate{Lat: msg.Latitude, Lon: msg.Longitude}).Validate(); err != nil {
		return err
	}
	if msg.Timestamp <= 0 {
		return eris.New("timestamp: must be positive")
	}
	return nil
}

// topicOfficerID extracts the wildcard segment of topicPattern.
func topicOfficerID(topic string) (int64, bool) {
	parts := strings.Split(topic, "/")
	if len(parts) != 5 || parts[1] != "kartavya" || parts[2] != "officer" || parts[4] != "location" {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

type officerLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	limiters map[int64]*rate.Limiter
}

func newOfficerLimiter(perMinute int) *officerLimiter {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &officerLimiter{limit: limit, limiters: make(map[int64]*rate.Limiter)}
}

func (l *officerLimiter) allow(officerID int64) bool {
	if l.limit == rate.Inf {
		return true
	}

	l.mu.Lock()
	lim, ok := l.limiters[officerID]
	if !ok {
		lim = rate.NewLimiter(l.limit, 1)
		l.limiters[officerID] = lim
	}
	l.mu.Unlock()

	return lim.Allow()
}
