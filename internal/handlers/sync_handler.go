package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ci-research/learninghub-service/internal/cloudsync"
	"github.com/ci-research/learninghub-service/internal/store"
	"github.com/ci-research/learninghub-service/internal/utils"
)

// SyncHandler exposes manual sync controls. Pushes normally happen in the
// background after every mutation; these endpoints exist for operators.
type SyncHandler struct {
	BaseHandler
	syncer *cloudsync.Syncer
	store  *store.Store
}

func NewSyncHandler(syncer *cloudsync.Syncer, st *store.Store, logger utils.Logger) *SyncHandler {
	return &SyncHandler{
		BaseHandler: NewBaseHandler(logger),
		syncer:      syncer,
		store:       st,
	}
}

func (h *SyncHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.syncer.Status())
}

// TriggerPush pushes the current state to the cloud in the background and
// returns immediately. The outcome lands in the sync status.
func (h *SyncHandler) TriggerPush(c *gin.Context) {
	if !h.syncer.Enabled() {
		c.JSON(http.StatusConflict, ErrorResponse{Message: "Cloud sync is not configured"})
		return
	}

	h.LogRequest(c, "Manual sync push requested")

	// The request context dies with this request; the push outlives it.
	payload := h.store.Snapshot().Payload()
	go h.syncer.Push(context.Background(), payload)

	c.JSON(http.StatusAccepted, SuccessResponse{Message: "Push started"})
}

// TriggerPull fetches the cloud state and merges it into the local state.
func (h *SyncHandler) TriggerPull(c *gin.Context) {
	if !h.syncer.Enabled() {
		c.JSON(http.StatusConflict, ErrorResponse{Message: "Cloud sync is not configured"})
		return
	}

	h.LogRequest(c, "Manual sync pull requested")

	if err := h.syncer.Pull(c.Request.Context(), h.store); err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Message: "Pull failed, local state kept",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Pull completed"})
}
