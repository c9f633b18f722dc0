package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/AppleDinger/Kartavya-Police-App/config"
)

type locationMessage struct {
	OfficerID int64   `json:"officer_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
}

// Panaji police HQ; simulated patrols start here.
const (
	baseLat = 15.4909
	baseLon = 73.8278
)

type patrol struct {
	officerID int64
	lat, lon  float64
}

// step walks the patrol ~50m, and occasionally ~2km, from where it was.
func (p *patrol) step() {
	drift := 0.0005
	if rand.Float64() < 0.1 {
		drift = 0.02
	}
	p.lat += (rand.Float64() - 0.5) * drift
	p.lon += (rand.Float64() - 0.5) * drift

	// pull runaways back toward base
	if p.lat-baseLat > 0.05 || baseLat-p.lat > 0.05 {
		p.lat = baseLat
	}
	if p.lon-baseLon > 0.05 || baseLon-p.lon > 0.05 {
		p.lon = baseLon
	}
}

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds> <officer_id>...\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	patrols := make([]*patrol, 0, len(os.Args)-2)
	for _, arg := range os.Args[2:] {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			fmt.Fprintf(os.Stderr, "error: invalid officer id %q\n", arg)
			os.Exit(1)
		}
		patrols = append(patrols, &patrol{officerID: id, lat: baseLat, lon: baseLon})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := config.NewMQTT(cfg, "kartavya-mock-publisher", logger)
	if err != nil {
		logger.Fatal("mqtt", zap.Error(err))
	}
	defer client.Disconnect(250)

	logger.Info("publishing",
		zap.String("broker", cfg.MQTTBroker),
		zap.Int("interval_seconds", intervalSec),
		zap.Int("patrols", len(patrols)),
	)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		p := patrols[rand.Intn(len(patrols))]
		p.step()

		payload, _ := json.Marshal(locationMessage{
			OfficerID: p.officerID,
			Latitude:  p.lat,
			Longitude: p.lon,
			Timestamp: time.Now().Unix(),
		})
		topic := fmt.Sprintf("/kartavya/officer/%d/location", p.officerID)

		token := client.Publish(topic, 1, false, payload)
		token.Wait()
		if err := token.Error(); err != nil {
			logger.Error("publish", zap.String("topic", topic), zap.Error(err))
			continue
		}

		logger.Debug("published", zap.String("topic", topic), zap.ByteString("payload", payload))
	}
}
