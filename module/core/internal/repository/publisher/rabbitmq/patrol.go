package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rotisserie/eris"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/internal/repository/publisher"
)

var _ publisher.PatrolPublisher = (*PatrolPublisher)(nil)

const (
	ExchangeName = "kartavya.events"
	QueueName    = "patrol_alerts"
)

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type PatrolPublisher struct {
	ch channel
}

// Declare sets up the fanout exchange and the durable alert queue bound to it.
func Declare(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(ExchangeName, "fanout", true, false, false, false, nil); err != nil {
		return eris.Wrap(err, "declare exchange")
	}
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return eris.Wrap(err, "declare queue")
	}
	if err := ch.QueueBind(QueueName, "", ExchangeName, false, nil); err != nil {
		return eris.Wrap(err, "bind queue")
	}
	return nil
}

func NewPatrolPublisher(conn *amqp.Connection) (*PatrolPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, eris.Wrap(err, "rabbitmq channel")
	}
	if err := Declare(ch); err != nil {
		return nil, err
	}
	return &PatrolPublisher{ch: ch}, nil
}

type alertMessage struct {
	AlertID        string                 `json:"alert_id"`
	OfficerID      int64                  `json:"officer_id"`
	Username       string                 `json:"username"`
	Event          domain.PatrolEventType `json:"event"`
	Position       alertLocation          `json:"position"`
	Zone           alertZone              `json:"zone"`
	DistanceMeters float64                `json:"distance_meters"`
	Timestamp      int64                  `json:"timestamp"`
}

type alertLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type alertZone struct {
	Target       alertLocation `json:"target"`
	RadiusMeters float64       `json:"radius_meters"`
}

func (p *PatrolPublisher) PublishAlert(ctx context.Context, alert *domain.PatrolAlert) error {
	msg := alertMessage{
		AlertID:   uuid.NewString(),
		OfficerID: alert.OfficerID,
		Username:  alert.Username,
		Event:     alert.Event,
		Position: alertLocation{
			Latitude:  alert.Position.Lat,
			Longitude: alert.Position.Lon,
		},
		Zone: alertZone{
			Target: alertLocation{
				Latitude:  alert.Zone.Target.Lat,
				Longitude: alert.Zone.Target.Lon,
			},
			RadiusMeters: alert.Zone.RadiusMeters,
		},
		DistanceMeters: alert.DistanceMeters,
		Timestamp:      alert.Timestamp,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return eris.Wrap(err, "marshal alert")
	}

	err = p.ch.PublishWithContext(ctx, ExchangeName, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.AlertID,
		Type:         string(alert.Event),
		Body:         body,
	})
	if err != nil {
		return eris.Wrap(err, "publish alert")
	}
	return nil
}
