package core

import (
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/internal/repository/publisher/rabbitmq"
)

// AlertQueue receives every patrol alert published by the server.
const AlertQueue = rabbitmq.QueueName

// DeclareAlertTopology declares the alert exchange and AlertQueue so
// consumers can start before the server.
func DeclareAlertTopology(ch *amqp.Channel) error {
	return rabbitmq.Declare(ch)
}
