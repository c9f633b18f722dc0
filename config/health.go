package config

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
)

const probeTimeout = 2 * time.Second

type probe struct {
	name  string
	check func(ctx context.Context) error
}

// HealthChecker reports liveness of postgres, rabbitmq and the mqtt broker.
type HealthChecker struct {
	probes []probe
}

func NewHealthChecker(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client) *HealthChecker {
	return &HealthChecker{probes: []probe{
		{name: "postgres", check: db.PingContext},
		{name: "rabbitmq", check: func(context.Context) error {
			if amqpConn == nil || amqpConn.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		}},
		{name: "mqtt", check: func(context.Context) error {
			if mqttClient == nil || !mqttClient.IsConnectionOpen() {
				return errors.New("not connected")
			}
			return nil
		}},
	}}
}

func (h *HealthChecker) Register(r *gin.Engine) {
	r.GET("/healthz", h.Handle)
}

func (h *HealthChecker) Handle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	status, overall := http.StatusOK, "healthy"
	deps := gin.H{}
	for _, p := range h.probes {
		if err := p.check(ctx); err != nil {
			deps[p.name] = gin.H{"status": "down", "error": err.Error()}
			status, overall = http.StatusServiceUnavailable, "unhealthy"
			continue
		}
		deps[p.name] = gin.H{"status": "up"}
	}

	c.JSON(status, gin.H{
		"status":       overall,
		"dependencies": deps,
	})
}
