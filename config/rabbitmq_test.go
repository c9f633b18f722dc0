package config

import (
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWatchRabbitClose_Lost(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	closed := make(chan *amqp.Error, 1)
	closed <- &amqp.Error{Code: amqp.ConnectionForced, Reason: "broker shutdown", Server: true}

	watchRabbitClose(closed, zap.New(core))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "rabbitmq connection lost", entries[0].Message)
	assert.Equal(t, "broker shutdown", entries[0].ContextMap()["reason"])
}

func TestWatchRabbitClose_Clean(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	closed := make(chan *amqp.Error, 1)
	close(closed)

	watchRabbitClose(closed, zap.New(core))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "rabbitmq connection closed", entries[0].Message)
}
