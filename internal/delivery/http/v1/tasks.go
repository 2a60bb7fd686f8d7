package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gtd/internal/models"
	"gtd/internal/services"
)

type createTaskRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   *string  `json:"description"`
	ProjectID     *string  `json:"projectId"`
	ColumnID      *string  `json:"columnId"`
	DueDate       *string  `json:"dueDate"`
	ScheduledDate *string  `json:"scheduledDate"`
	EnergyLevel   *string  `json:"energyLevel"`
	ContextTags   []string `json:"contextTags"`
	TimeEstimate  *int     `json:"timeEstimate"`
	InToday       bool     `json:"inToday"`
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	filter := services.TaskFilter{
		InToday:         c.Query("inToday") == "true",
		IncludeArchived: c.Query("includeArchived") == "true",
	}
	if projectID, ok := c.GetQuery("projectId"); ok {
		if projectID == "" || projectID == "null" {
			filter.InboxOnly = true
		} else {
			filter.ProjectID = &projectID
		}
	}

	tasks, err := h.tasks.ListTasks(c, filter)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		Title:         req.Title,
		Description:   req.Description,
		ProjectID:     req.ProjectID,
		ColumnID:      req.ColumnID,
		DueDate:       req.DueDate,
		ScheduledDate: req.ScheduledDate,
		EnergyLevel:   req.EnergyLevel,
		ContextTags:   req.ContextTags,
		TimeEstimate:  req.TimeEstimate,
		InToday:       req.InToday,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	task, err := h.tasks.GetTask(c, c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	var patch models.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.UpdateTask(c, c.Param("id"), patch)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	if err := h.tasks.DeleteTask(c, c.Param("id")); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleCompleteTask(c *gin.Context) {
	task, err := h.tasks.CompleteTask(c, c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}
