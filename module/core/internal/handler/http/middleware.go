package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
)

// ActorHeader carries the acting officer's id. It is set by the gateway in
// front of this service after authentication.
const ActorHeader = "X-Officer-ID"

const actorKey = "actor"

type officerLookup interface {
	Officer(ctx context.Context, id int64) (*domain.Officer, error)
}

// Actor resolves the officer named by ActorHeader and stores it on the
// request context. Missing or unknown ids are rejected with 401.
func Actor(officers officerLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.GetHeader(ActorHeader), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid " + ActorHeader})
			return
		}

		officer, err := officers.Officer(c.Request.Context(), id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown officer"})
			return
		}

		c.Set(actorKey, officer)
		c.Next()
	}
}

// RequireRole rejects actors whose role is not listed with 403.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFrom(c)
		for _, r := range roles {
			if actor != nil && actor.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "command access required"})
	}
}

func actorFrom(c *gin.Context) *domain.Officer {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	officer, _ := v.(*domain.Officer)
	return officer
}

// RequestLogger logs one line per request, including any errors attached
// with c.Error.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if actor := actorFrom(c); actor != nil {
			fields = append(fields, zap.Int64("officer_id", actor.ID))
		}

		switch {
		case len(c.Errors) > 0:
			logger.Error("request", append(fields, zap.String("errors", c.Errors.String()))...)
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
