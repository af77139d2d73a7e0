package handler

import (
	"context"
	"net/http"

	"github.com/drewk/recruiting-copilot/internal/domain"
	"github.com/gin-gonic/gin"
)

// DigestSender renders and delivers the daily digest.
type DigestSender interface {
	SendDaily(ctx context.Context, snapshot *domain.PipelineSnapshot) (string, error)
}

// DigestHandler handles the manual digest trigger.
type DigestHandler struct {
	pipeline PipelineSource
	digest   DigestSender
}

// NewDigestHandler creates a new digest handler.
// Parameters:
//   - pipeline: source of the current funnel snapshot.
//   - digest: digest delivery service.
// Returns:
//   - *DigestHandler: initialized handler.
func NewDigestHandler(pipeline PipelineSource, digest DigestSender) *DigestHandler {
	return &DigestHandler{
		pipeline: pipeline,
		digest:   digest,
	}
}

// Send handles POST /api/digest/send.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *DigestHandler) Send(c *gin.Context) {
	ctx := c.Request.Context()

	snapshot, err := h.pipeline.Analyze(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to send digest: " + err.Error(),
		})
		return
	}

	emailID, err := h.digest.SendDaily(ctx, snapshot)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to send digest: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"message":  "Digest email sent",
		"email_id": emailID,
	})
}
