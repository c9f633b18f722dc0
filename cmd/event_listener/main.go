package main

import (
	"context"
	"encoding/json"
	"log"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/AppleDinger/Kartavya-Police-App/config"
	"github.com/AppleDinger/Kartavya-Police-App/module/core"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
)

// patrolAlert is the subset of the published alert the listener prints.
type patrolAlert struct {
	AlertID        string                 `json:"alert_id"`
	OfficerID      int64                  `json:"officer_id"`
	Username       string                 `json:"username"`
	Event          domain.PatrolEventType `json:"event"`
	DistanceMeters float64                `json:"distance_meters"`
	Timestamp      int64                  `json:"timestamp"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := listen(ctx, cfg, logger); err != nil {
		logger.Fatal("listener exited", zap.Error(err))
	}
	logger.Info("shutting down")
}

func listen(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	conn, err := config.NewRabbitMQ(cfg, "kartavya-event-listener", logger)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return eris.Wrap(err, "rabbitmq channel")
	}
	defer func() { _ = ch.Close() }()

	if err := core.DeclareAlertTopology(ch); err != nil {
		return err
	}

	msgs, err := ch.Consume(core.AlertQueue, "", true, false, false, false, nil)
	if err != nil {
		return eris.Wrap(err, "consume")
	}

	logger.Info("waiting for patrol alerts", zap.String("queue", core.AlertQueue))

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return eris.New("delivery channel closed")
			}
			handle(logger, msg)
		}
	}
}

func handle(logger *zap.Logger, msg amqp.Delivery) {
	var alert patrolAlert
	if err := json.Unmarshal(msg.Body, &alert); err != nil {
		logger.Warn("undecodable alert", zap.String("message_id", msg.MessageId), zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.String("alert_id", alert.AlertID),
		zap.Int64("officer_id", alert.OfficerID),
		zap.String("username", alert.Username),
		zap.Float64("distance_meters", alert.DistanceMeters),
		zap.Int64("timestamp", alert.Timestamp),
	}
	if alert.Event == domain.PatrolZoneViolation {
		logger.Warn("zone violation", fields...)
		return
	}
	logger.Info(string(alert.Event), fields...)
}
