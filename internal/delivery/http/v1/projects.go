package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gtd/internal/models"
	"gtd/internal/services"
)

type createProjectRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description *string         `json:"description"`
	Color       string          `json:"color"`
	Icon        *string         `json:"icon"`
	Columns     []models.Column `json:"columns"`
	DefaultView string          `json:"defaultView"`
}

func (h *handlerImpl) HandleListProjects(c *gin.Context) {
	includeArchived := c.Query("includeArchived") == "true"

	projects, err := h.projects.ListProjects(c, includeArchived)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *handlerImpl) HandleCreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	project, err := h.projects.CreateProject(c, services.CreateProjectParams{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		Columns:     req.Columns,
		DefaultView: req.DefaultView,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *handlerImpl) HandleGetProject(c *gin.Context) {
	project, err := h.projects.GetProject(c, c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *handlerImpl) HandleUpdateProject(c *gin.Context) {
	var patch models.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	project, err := h.projects.UpdateProject(c, c.Param("id"), patch)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *handlerImpl) HandleDeleteProject(c *gin.Context) {
	if err := h.projects.DeleteProject(c, c.Param("id")); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleListProjectTasks(c *gin.Context) {
	projectID := c.Param("id")

	// 404 for an unknown project rather than an empty list.
	if _, err := h.projects.GetProject(c, projectID); err != nil {
		abortWithServiceError(c, err)
		return
	}

	tasks, err := h.tasks.ListTasks(c, services.TaskFilter{
		ProjectID:       &projectID,
		IncludeArchived: c.Query("includeArchived") == "true",
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}
