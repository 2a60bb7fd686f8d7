package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gtd/internal/services"
)

type createTimeEntryRequest struct {
	TaskID    *string    `json:"taskId"`
	ProjectID *string    `json:"projectId"`
	StartTime time.Time  `json:"startTime" binding:"required"`
	EndTime   *time.Time `json:"endTime"`
	Duration  *int64     `json:"duration"`
	Notes     *string    `json:"notes"`
}

func (h *handlerImpl) HandleListTimeEntries(c *gin.Context) {
	filter := services.TimeEntryFilter{}
	if taskID := c.Query("taskId"); taskID != "" {
		filter.TaskID = &taskID
	}
	if projectID := c.Query("projectId"); projectID != "" {
		filter.ProjectID = &projectID
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			abort(c, newBadRequestError("limit must be an integer"))
			return
		}
		filter.Limit = n
	}

	entries, err := h.entries.ListEntries(c, filter)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *handlerImpl) HandleCreateTimeEntry(c *gin.Context) {
	var req createTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	entry, err := h.entries.CreateEntry(c, services.CreateTimeEntryParams{
		TaskID:    req.TaskID,
		ProjectID: req.ProjectID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Duration:  req.Duration,
		Notes:     req.Notes,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}
