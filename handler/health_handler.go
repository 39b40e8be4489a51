package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/ai-service/consumer"
	"github.com/coursehub/ai-service/database"
	"github.com/coursehub/ai-service/types"
)

type HealthHandler struct {
	consumers []*consumer.Consumer
	store     database.VectorStore
}

func NewHealthHandler(store database.VectorStore, consumers ...*consumer.Consumer) *HealthHandler {
	return &HealthHandler{
		consumers: consumers,
		store:     store,
	}
}

// HandleHealth reports overall status: healthy only when every consumer
// is running and connected.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	statuses := make([]types.ConsumerStatus, 0, len(h.consumers))
	healthy := true
	for _, cons := range h.consumers {
		status := cons.Status()
		if !status.IsRunning || !status.IsConnected {
			healthy = false
		}
		statuses = append(statuses, status)
	}

	resp := types.HealthResponse{
		Status:        "healthy",
		RedisConsumer: statuses,
		VectorIndex:   h.store.Status(),
	}
	code := http.StatusOK
	if !healthy {
		resp.Status = "degraded"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}

// HandleRedisHealth pings the live consumer connections.
func (h *HealthHandler) HandleRedisHealth(c *gin.Context) {
	for _, cons := range h.consumers {
		if err := cons.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, types.DataResponse{
				Status:  false,
				Message: err.Error(),
			})
			return
		}
	}
	respondOK(c, gin.H{"redis": "connected"})
}

// HandleIndexHealth reports the on-disk index state.
func (h *HealthHandler) HandleIndexHealth(c *gin.Context) {
	respondOK(c, h.store.Status())
}
