package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
)

type commandService interface {
	Roster(ctx context.Context, viewer *domain.Officer) ([]domain.RosterEntry, error)
	Deploy(ctx context.Context, req *domain.BulkDeployment) error
	StopPatrol(ctx context.Context, officerID int64) error
	ApproveLeave(ctx context.Context, officerID int64) error
	DenyLeave(ctx context.Context, officerID int64) error
	GrantLeave(ctx context.Context, officerID int64) error
	RevokeLeave(ctx context.Context, officerID int64) error
}

type bulkDeployRequest struct {
	OfficerIDs []int64  `json:"officer_ids" binding:"required,min=1"`
	Latitude   *float64 `json:"latitude" binding:"required"`
	Longitude  *float64 `json:"longitude" binding:"required"`
	Radius     float64  `json:"radius" binding:"required,gt=0"`
}

type rosterResponse struct {
	ID             int64              `json:"id"`
	Username       string             `json:"username"`
	CurrentLat     *float64           `json:"current_lat"`
	CurrentLong    *float64           `json:"current_long"`
	StatusColor    domain.StatusColor `json:"status_color"`
	LeaveRequested bool               `json:"leave_requested"`
	ProfilePhoto   string             `json:"profile_photo"`
	PingsEnabled   bool               `json:"pings_enabled"`
}

// CommandHandler serves the roster views to every officer and the mutating
// command endpoints to supervisors and head officers.
type CommandHandler struct {
	commandSvc commandService
}

func NewCommandHandler(commandSvc commandService) *CommandHandler {
	return &CommandHandler{commandSvc: commandSvc}
}

// Register mounts the roster on authed and the mutating routes on command,
// which must sit behind RequireRole. Field officers use the roster to pick
// ping targets.
func (h *CommandHandler) Register(authed, command *gin.RouterGroup) {
	authed.GET("/status/all", h.GetRoster)
	authed.GET("/status/geojson", h.GetRosterGeoJSON)

	command.POST("/deploy/bulk", h.BulkDeploy)
	command.POST("/deploy/stop/:id", h.officerAction(commandService.StopPatrol))
	command.POST("/leave/approve/:id", h.officerAction(commandService.ApproveLeave))
	command.POST("/leave/deny/:id", h.officerAction(commandService.DenyLeave))
	command.POST("/leave/grant/:id", h.officerAction(commandService.GrantLeave))
	command.POST("/leave/revoke/:id", h.officerAction(commandService.RevokeLeave))
}

func (h *CommandHandler) GetRoster(c *gin.Context) {
	entries, err := h.commandSvc.Roster(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	results := make([]rosterResponse, len(entries))
	for i, e := range entries {
		results[i] = toRosterResponse(e)
	}
	c.JSON(http.StatusOK, results)
}

func (h *CommandHandler) GetRosterGeoJSON(c *gin.Context) {
	entries, err := h.commandSvc.Roster(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	body, err := rosterFeatureCollection(entries).MarshalJSON()
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", body)
}

func (h *CommandHandler) BulkDeploy(c *gin.Context) {
	var req bulkDeployRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "officer_ids, latitude, longitude and a positive radius are required"})
		return
	}

	err := h.commandSvc.Deploy(c.Request.Context(), &domain.BulkDeployment{
		OfficerIDs:   req.OfficerIDs,
		Target:       domain.Coordinate{Lat: *req.Latitude, Lon: *req.Longitude},
		RadiusMeters: req.Radius,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c)
}

func (h *CommandHandler) officerAction(action func(commandService, context.Context, int64) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c)
		if !valid {
			return
		}
		if err := action(h.commandSvc, c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		ok(c)
	}
}

func toRosterResponse(e domain.RosterEntry) rosterResponse {
	resp := rosterResponse{
		ID:             e.Officer.ID,
		Username:       e.Officer.Username,
		StatusColor:    e.Color,
		LeaveRequested: e.Officer.LeaveRequested,
		ProfilePhoto:   e.Officer.ProfilePhoto,
		PingsEnabled:   e.Officer.PingsEnabled,
	}
	if p := e.Officer.Position; p != nil {
		lat, lon := p.Lat, p.Lon
		resp.CurrentLat, resp.CurrentLong = &lat, &lon
	}
	return resp
}
