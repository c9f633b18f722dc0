package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
)

type checkInService interface {
	CheckIn(ctx context.Context, in *domain.CheckIn) (domain.Classification, error)
}

type dashboardService interface {
	Dashboard(ctx context.Context, officerID int64) (*domain.OfficerDashboard, error)
	RequestLeave(ctx context.Context, officerID int64) error
}

type logService interface {
	ForOfficer(ctx context.Context, officerID int64) ([]domain.NotificationLog, error)
	Global(ctx context.Context) ([]domain.NotificationLog, error)
}

type checkInRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type dashboardResponse struct {
	Status         domain.StatusKind `json:"status"`
	Message        string            `json:"message"`
	DistanceMeters *float64          `json:"distance_meters"`
	TargetLat      *float64          `json:"target_lat"`
	TargetLong     *float64          `json:"target_long"`
	Radius         *float64          `json:"radius"`
	CurrentLat     *float64          `json:"current_lat"`
	CurrentLong    *float64          `json:"current_long"`
	ProfilePhoto   string            `json:"profile_photo"`
	PingsEnabled   bool              `json:"pings_enabled"`
}

// OfficerHandler serves the field officer's own endpoints.
type OfficerHandler struct {
	locationSvc  checkInService
	dashboardSvc dashboardService
	logSvc       logService
}

func NewOfficerHandler(locationSvc checkInService, dashboardSvc dashboardService, logSvc logService) *OfficerHandler {
	return &OfficerHandler{locationSvc: locationSvc, dashboardSvc: dashboardSvc, logSvc: logSvc}
}

func (h *OfficerHandler) Register(r *gin.RouterGroup) {
	r.GET("/officer/me", h.GetDashboard)
	r.GET("/officer/logs", h.GetOfficerLogs)
	r.GET("/logs", h.GetGlobalLogs)
	r.POST("/checkin", h.CheckIn)
	r.POST("/leave/request", h.RequestLeave)
}

func (h *OfficerHandler) GetDashboard(c *gin.Context) {
	d, err := h.dashboardSvc.Dashboard(c.Request.Context(), actorFrom(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDashboardResponse(d))
}

func (h *OfficerHandler) CheckIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
		return
	}

	result, err := h.locationSvc.CheckIn(c.Request.Context(), &domain.CheckIn{
		OfficerID: actorFrom(c).ID,
		Position:  domain.Coordinate{Lat: *req.Latitude, Lon: *req.Longitude},
		Timestamp: time.Now(),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *OfficerHandler) RequestLeave(c *gin.Context) {
	if err := h.dashboardSvc.RequestLeave(c.Request.Context(), actorFrom(c).ID); err != nil {
		writeError(c, err)
		return
	}
	ok(c)
}

func (h *OfficerHandler) GetOfficerLogs(c *gin.Context) {
	logs, err := h.logSvc.ForOfficer(c.Request.Context(), actorFrom(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(logs))
}

func (h *OfficerHandler) GetGlobalLogs(c *gin.Context) {
	logs, err := h.logSvc.Global(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(logs))
}

func toDashboardResponse(d *domain.OfficerDashboard) dashboardResponse {
	resp := dashboardResponse{
		Status:         d.Classification.Kind,
		Message:        d.Classification.Message,
		DistanceMeters: d.Classification.DistanceMeters,
		ProfilePhoto:   d.Officer.ProfilePhoto,
		PingsEnabled:   d.Officer.PingsEnabled,
	}
	if d.Zone != nil {
		lat, lon, radius := d.Zone.Target.Lat, d.Zone.Target.Lon, d.Zone.RadiusMeters
		resp.TargetLat, resp.TargetLong, resp.Radius = &lat, &lon, &radius
	}
	if p := d.Officer.Position; p != nil {
		lat, lon := p.Lat, p.Lon
		resp.CurrentLat, resp.CurrentLong = &lat, &lon
	}
	return resp
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
