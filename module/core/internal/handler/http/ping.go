package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
)

type pingService interface {
	Send(ctx context.Context, sender *domain.Officer, receiverID int64, message string) error
	Broadcast(ctx context.Context, sender *domain.Officer, message string) (int, error)
	Toggle(ctx context.Context, officer *domain.Officer) (bool, error)
	Dismiss(ctx context.Context, officer *domain.Officer, pingID int64) error
	Active(ctx context.Context, officer *domain.Officer) ([]domain.ActivePing, error)
}

type sendPingRequest struct {
	ReceiverID int64  `json:"receiver_id" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

type broadcastRequest struct {
	Message string `json:"message" binding:"required"`
}

type pingResponse struct {
	ID        int64   `json:"id"`
	Sender    string  `json:"sender"`
	Message   string  `json:"message"`
	Lat       float64 `json:"lat"`
	Long      float64 `json:"long"`
	Timestamp int64   `json:"timestamp"`
}

type PingHandler struct {
	pingSvc pingService
}

func NewPingHandler(pingSvc pingService) *PingHandler {
	return &PingHandler{pingSvc: pingSvc}
}

func (h *PingHandler) Register(r *gin.RouterGroup) {
	r.GET("/pings/active", h.GetActive)
	r.POST("/ping/send", h.Send)
	r.POST("/ping/broadcast", h.Broadcast)
	r.POST("/ping/toggle", h.Toggle)
	r.POST("/ping/dismiss/:id", h.Dismiss)
}

func (h *PingHandler) GetActive(c *gin.Context) {
	pings, err := h.pingSvc.Active(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	results := make([]pingResponse, len(pings))
	for i, p := range pings {
		results[i] = pingResponse{
			ID:        p.ID,
			Sender:    p.Sender,
			Message:   p.Message,
			Lat:       p.Origin.Lat,
			Long:      p.Origin.Lon,
			Timestamp: p.Timestamp.Unix(),
		}
	}
	c.JSON(http.StatusOK, results)
}

func (h *PingHandler) Send(c *gin.Context) {
	var req sendPingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receiver_id and message are required"})
		return
	}

	if err := h.pingSvc.Send(c.Request.Context(), actorFrom(c), req.ReceiverID, req.Message); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Ping Sent"})
}

func (h *PingHandler) Broadcast(c *gin.Context) {
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	n, err := h.pingSvc.Broadcast(c.Request.Context(), actorFrom(c), req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": fmt.Sprintf("Pinged %d units.", n), "count": n})
}

func (h *PingHandler) Toggle(c *gin.Context) {
	enabled, err := h.pingSvc.Toggle(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": enabled})
}

func (h *PingHandler) Dismiss(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := h.pingSvc.Dismiss(c.Request.Context(), actorFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	ok(c)
}
