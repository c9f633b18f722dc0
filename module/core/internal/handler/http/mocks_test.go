package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
)

type mockOfficerLookup struct {
	officers map[int64]*domain.Officer
}

func (m *mockOfficerLookup) Officer(_ context.Context, id int64) (*domain.Officer, error) {
	o, ok := m.officers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

type mockCheckInService struct {
	checkInFn func(ctx context.Context, in *domain.CheckIn) (domain.Classification, error)
}

func (m *mockCheckInService) CheckIn(ctx context.Context, in *domain.CheckIn) (domain.Classification, error) {
	return m.checkInFn(ctx, in)
}

type mockDashboardService struct {
	dashboardFn    func(ctx context.Context, officerID int64) (*domain.OfficerDashboard, error)
	requestLeaveFn func(ctx context.Context, officerID int64) error
}

func (m *mockDashboardService) Dashboard(ctx context.Context, officerID int64) (*domain.OfficerDashboard, error) {
	return m.dashboardFn(ctx, officerID)
}

func (m *mockDashboardService) RequestLeave(ctx context.Context, officerID int64) error {
	return m.requestLeaveFn(ctx, officerID)
}

type mockLogService struct {
	forOfficerFn func(ctx context.Context, officerID int64) ([]domain.NotificationLog, error)
	globalFn     func(ctx context.Context) ([]domain.NotificationLog, error)
}

func (m *mockLogService) ForOfficer(ctx context.Context, officerID int64) ([]domain.NotificationLog, error) {
	return m.forOfficerFn(ctx, officerID)
}

func (m *mockLogService) Global(ctx context.Context) ([]domain.NotificationLog, error) {
	return m.globalFn(ctx)
}

type mockCommandService struct {
	rosterFn  func(ctx context.Context, viewer *domain.Officer) ([]domain.RosterEntry, error)
	deployFn  func(ctx context.Context, req *domain.BulkDeployment) error
	actionFn  func(action string, officerID int64) error
	lastActed string
}

func (m *mockCommandService) Roster(ctx context.Context, viewer *domain.Officer) ([]domain.RosterEntry, error) {
	return m.rosterFn(ctx, viewer)
}

func (m *mockCommandService) Deploy(ctx context.Context, req *domain.BulkDeployment) error {
	return m.deployFn(ctx, req)
}

func (m *mockCommandService) act(action string, id int64) error {
	m.lastActed = action
	if m.actionFn != nil {
		return m.actionFn(action, id)
	}
	return nil
}

func (m *mockCommandService) StopPatrol(_ context.Context, id int64) error {
	return m.act("stop", id)
}

func (m *mockCommandService) ApproveLeave(_ context.Context, id int64) error {
	return m.act("approve", id)
}

func (m *mockCommandService) DenyLeave(_ context.Context, id int64) error {
	return m.act("deny", id)
}

func (m *mockCommandService) GrantLeave(_ context.Context, id int64) error {
	return m.act("grant", id)
}

func (m *mockCommandService) RevokeLeave(_ context.Context, id int64) error {
	return m.act("revoke", id)
}

type mockPingService struct {
	sendFn      func(ctx context.Context, sender *domain.Officer, receiverID int64, message string) error
	broadcastFn func(ctx context.Context, sender *domain.Officer, message string) (int, error)
	toggleFn    func(ctx context.Context, officer *domain.Officer) (bool, error)
	dismissFn   func(ctx context.Context, officer *domain.Officer, pingID int64) error
	activeFn    func(ctx context.Context, officer *domain.Officer) ([]domain.ActivePing, error)
}

func (m *mockPingService) Send(ctx context.Context, sender *domain.Officer, receiverID int64, message string) error {
	return m.sendFn(ctx, sender, receiverID, message)
}

func (m *mockPingService) Broadcast(ctx context.Context, sender *domain.Officer, message string) (int, error) {
	return m.broadcastFn(ctx, sender, message)
}

func (m *mockPingService) Toggle(ctx context.Context, officer *domain.Officer) (bool, error) {
	return m.toggleFn(ctx, officer)
}

func (m *mockPingService) Dismiss(ctx context.Context, officer *domain.Officer, pingID int64) error {
	return m.dismissFn(ctx, officer, pingID)
}

func (m *mockPingService) Active(ctx context.Context, officer *domain.Officer) ([]domain.ActivePing, error) {
	return m.activeFn(ctx, officer)
}

// Officer 4 is a field officer, 2 a supervisor.
func testOfficers() *mockOfficerLookup {
	return &mockOfficerLookup{officers: map[int64]*domain.Officer{
		2: {ID: 2, Username: "sup_north", Role: domain.RoleSupervisor},
		4: {ID: 4, Username: "officer_raj", Role: domain.RoleFieldOfficer, PingsEnabled: true},
	}}
}

type routes struct {
	officer *OfficerHandler
	command *CommandHandler
	ping    *PingHandler
}

func setupRouter(h routes) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))

	authed := r.Group("", Actor(testOfficers()))
	if h.officer != nil {
		h.officer.Register(authed)
	}
	if h.ping != nil {
		h.ping.Register(authed)
	}
	if h.command != nil {
		h.command.Register(authed, authed.Group("", RequireRole(domain.RoleSupervisor, domain.RoleHeadOfficer)))
	}
	return r
}
