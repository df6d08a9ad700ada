package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"instala_control/internal/adapter/http/middleware"
	"instala_control/internal/domain/entities"
	"instala_control/internal/store"
	"instala_control/pkg"

	"github.com/gin-gonic/gin"
)

const streamHeartbeat = 25 * time.Second

// StoreFactory builds the live record store for one user.
type StoreFactory func(userID string) *store.RecordStore

// StreamHandler pushes a user's collections over server-sent events: one
// "snapshot" event on connect, then the whole replaced collection each time
// it changes. The subscription ends with the request.
type StreamHandler struct {
	newStore  StoreFactory
	heartbeat time.Duration
}

func NewStreamHandler(factory StoreFactory) *StreamHandler {
	return &StreamHandler{newStore: factory, heartbeat: streamHeartbeat}
}

// Stream godoc
// @Summary  Live collections (text/event-stream)
// @Tags     stream
// @Produce  text/event-stream
// @Router   /stream [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	userID := middleware.UserID(c)
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	rs := h.newStore(userID)
	if err := rs.Start(ctx); err != nil {
		abortWith(c, pkg.NewDomainError("STREAM_UNAVAILABLE", "Could not load records", err, http.StatusInternalServerError))
		return
	}
	snap, err := rs.Snapshot()
	if err != nil {
		abortWith(c, mapCommonError(err))
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	c.SSEvent("snapshot", snap)
	c.Writer.Flush()
	log.Printf("[stream][handler] subscribed user_id=%s", userID)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("[stream][handler] closed user_id=%s", userID)
			return
		case col, ok := <-rs.Updates():
			if !ok {
				return
			}
			snap, err := rs.Snapshot()
			if err != nil {
				return
			}
			c.SSEvent(string(col), collection(snap, col))
			c.Writer.Flush()
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			c.Writer.Flush()
		}
	}
}

func collection(snap store.Snapshot, col entities.Collection) any {
	switch col {
	case entities.CollectionServices:
		return snap.Services
	case entities.CollectionAppointments:
		return snap.Appointments
	case entities.CollectionBudgets:
		return snap.Budgets
	default:
		return snap.Settings
	}
}
