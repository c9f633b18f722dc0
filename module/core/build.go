package core

import (
	"database/sql"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
	handler "github.com/AppleDinger/Kartavya-Police-App/module/core/internal/handler/http"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/internal/handler/subscriber"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/internal/repository/database/postgres"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/internal/repository/publisher/rabbitmq"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/service"
)

type Options struct {
	PingRangeMeters      float64
	CheckinRatePerMinute int
}

type Module struct {
	LocationSvc     *service.LocationService
	PatrolSvc       *service.PatrolService
	PingSvc         *service.PingService
	NotificationSvc *service.NotificationService

	officerHandler *handler.OfficerHandler
	commandHandler *handler.CommandHandler
	pingHandler    *handler.PingHandler
	subscriber     *subscriber.LocationSubscriber
	logger         *zap.Logger
}

func Build(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, opts Options, logger *zap.Logger) (*Module, error) {
	officerRepo := postgres.NewOfficerRepo(db)
	deploymentRepo := postgres.NewDeploymentRepo(db)
	pingRepo := postgres.NewPingRepo(db)
	notificationRepo := postgres.NewNotificationRepo(db)

	patrolPub, err := rabbitmq.NewPatrolPublisher(amqpConn)
	if err != nil {
		return nil, eris.Wrap(err, "patrol publisher")
	}

	notificationSvc := service.NewNotificationService(notificationRepo, logger.Named("notification"))
	locationSvc := service.NewLocationService(officerRepo, deploymentRepo, patrolPub, notificationSvc, logger.Named("location"))
	patrolSvc := service.NewPatrolService(officerRepo, deploymentRepo, notificationSvc, logger.Named("patrol"))
	pingSvc := service.NewPingService(officerRepo, pingRepo, opts.PingRangeMeters, logger.Named("ping"))

	return &Module{
		LocationSvc:     locationSvc,
		PatrolSvc:       patrolSvc,
		PingSvc:         pingSvc,
		NotificationSvc: notificationSvc,
		officerHandler:  handler.NewOfficerHandler(locationSvc, patrolSvc, notificationSvc),
		commandHandler:  handler.NewCommandHandler(patrolSvc),
		pingHandler:     handler.NewPingHandler(pingSvc),
		subscriber:      subscriber.NewLocationSubscriber(mqttClient, locationSvc, opts.CheckinRatePerMinute, logger.Named("mqtt")),
		logger:          logger,
	}, nil
}

// RegisterRoutes mounts every route behind the actor middleware. Mutating
// command routes additionally require a supervisor or head officer.
func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	authed := r.Group("", handler.RequestLogger(m.logger.Named("http")), handler.Actor(m.PatrolSvc))
	m.officerHandler.Register(authed)
	m.pingHandler.Register(authed)

	command := authed.Group("", handler.RequireRole(domain.RoleSupervisor, domain.RoleHeadOfficer))
	m.commandHandler.Register(authed, command)
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}
