package config

import (
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const rabbitHeartbeat = 10 * time.Second

// NewRabbitMQ dials the broker and logs when the connection drops. amqp091
// does not reconnect; callers that outlive the connection must redial.
func NewRabbitMQ(cfg *Config, name string, logger *zap.Logger) (*amqp.Connection, error) {
	props := amqp.NewConnectionProperties()
	props.SetClientConnectionName(name)

	conn, err := amqp.DialConfig(cfg.RabbitMQURL, amqp.Config{
		Heartbeat:  rabbitHeartbeat,
		Locale:     "en_US",
		Properties: props,
	})
	if err != nil {
		return nil, eris.Wrap(err, "rabbitmq connect")
	}
	logger.Info("rabbitmq connected", zap.String("connection_name", name))

	go watchRabbitClose(conn.NotifyClose(make(chan *amqp.Error, 1)), logger)
	return conn, nil
}

// watchRabbitClose logs the close reason. The channel is closed without a
// value on a clean Close.
func watchRabbitClose(closed <-chan *amqp.Error, logger *zap.Logger) {
	amqpErr, ok := <-closed
	if !ok || amqpErr == nil {
		logger.Info("rabbitmq connection closed")
		return
	}
	logger.Warn("rabbitmq connection lost",
		zap.Int("code", amqpErr.Code),
		zap.String("reason", amqpErr.Reason),
		zap.Bool("server", amqpErr.Server),
		zap.Bool("recoverable", amqpErr.Recover),
	)
}
