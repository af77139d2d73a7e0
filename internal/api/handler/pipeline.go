package handler

import (
	"context"
	"net/http"

	"github.com/drewk/recruiting-copilot/internal/domain"
	"github.com/gin-gonic/gin"
)

// PipelineSource produces the current funnel snapshot.
type PipelineSource interface {
	Analyze(ctx context.Context) (*domain.PipelineSnapshot, error)
}

// ActivitySource builds the per-operator activity lists.
type ActivitySource interface {
	DailyActivities(ctx context.Context, pipeline *domain.PipelineSnapshot, forWhom string) (*domain.DailyActivities, error)
}

// PipelineHandler handles funnel analysis endpoints.
type PipelineHandler struct {
	pipeline   PipelineSource
	activities ActivitySource
}

// NewPipelineHandler creates a new pipeline handler.
// Parameters:
//   - pipeline: source of the current funnel snapshot.
//   - activities: source of per-operator activity lists.
// Returns:
//   - *PipelineHandler: initialized handler.
func NewPipelineHandler(pipeline PipelineSource, activities ActivitySource) *PipelineHandler {
	return &PipelineHandler{
		pipeline:   pipeline,
		activities: activities,
	}
}

// GetPipeline handles GET /api/pipeline. Every call recomputes the snapshot
// from the ATS; nothing is cached.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *PipelineHandler) GetPipeline(c *gin.Context) {
	snapshot, err := h.pipeline.Analyze(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch pipeline: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   snapshot,
	})
}

// Refresh handles POST /api/refresh.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *PipelineHandler) Refresh(c *gin.Context) {
	snapshot, err := h.pipeline.Analyze(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to refresh: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"message":      "Data refreshed",
		"generated_at": snapshot.GeneratedAt,
	})
}

// GetActivities handles GET /api/activities with an optional for_whom filter.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *PipelineHandler) GetActivities(c *gin.Context) {
	ctx := c.Request.Context()

	snapshot, err := h.pipeline.Analyze(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get activities: " + err.Error(),
		})
		return
	}

	activities, err := h.activities.DailyActivities(ctx, snapshot, c.Query("for_whom"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get activities: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   activities,
	})
}
