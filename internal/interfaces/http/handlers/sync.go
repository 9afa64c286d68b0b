// internal/interfaces/http/handlers/sync.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/syncer"
	"github.com/your-org/pos-backend/internal/pkg/connectivity"
)

// SyncHandler exposes manual sync and terminal status endpoints
type SyncHandler struct {
	agent   *syncer.Agent
	monitor *connectivity.Monitor
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(agent *syncer.Agent, monitor *connectivity.Monitor) *SyncHandler {
	return &SyncHandler{
		agent:   agent,
		monitor: monitor,
	}
}

// TriggerSync handles POST /sync. A drain already in progress answers 409
// and does not start a second one.
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	if !h.monitor.Online() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Terminal is offline, cannot sync",
		})
		return
	}

	result, err := h.agent.Sync(c.Request.Context())
	if err != nil {
		if errors.Is(err, syncer.ErrSyncInProgress) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Sync already in progress",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to sync offline transactions",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": result.Message,
		"data":    result,
	})
}

// GetPending handles GET /sync/pending, the count behind the offline badge
func (h *SyncHandler) GetPending(c *gin.Context) {
	pending, err := h.agent.PendingCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to count pending transactions",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pending transactions counted successfully",
		"data": gin.H{
			"pending": pending,
		},
	})
}

// GetStatus handles GET /sync/status, the source for the UI's offline badge
func (h *SyncHandler) GetStatus(c *gin.Context) {
	pending, err := h.agent.PendingCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to count pending transactions",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sync status retrieved successfully",
		"data": gin.H{
			"online":  h.monitor.Online(),
			"pending": pending,
		},
	})
}
