package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"gtd/internal/services"
)

type Handler interface {
	HandleListProjects(c *gin.Context)
	HandleCreateProject(c *gin.Context)
	HandleGetProject(c *gin.Context)
	HandleUpdateProject(c *gin.Context)
	HandleDeleteProject(c *gin.Context)
	HandleListProjectTasks(c *gin.Context)

	HandleListTasks(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleCompleteTask(c *gin.Context)

	HandleStartTimer(c *gin.Context)
	HandleStopTimer(c *gin.Context)
	HandleGetTimer(c *gin.Context)

	HandleListTimeEntries(c *gin.Context)
	HandleCreateTimeEntry(c *gin.Context)

	HandleGetSettings(c *gin.Context)
	HandleUpdateSettings(c *gin.Context)

	HandleHealth(c *gin.Context)
}

type handlerImpl struct {
	logger   zerolog.Logger
	projects services.ProjectService
	tasks    services.TaskService
	timer    services.TimerService
	entries  services.TimeEntryService
	settings services.SettingsService
}

func New(
	logger zerolog.Logger,
	projectService services.ProjectService,
	taskService services.TaskService,
	timerService services.TimerService,
	timeEntryService services.TimeEntryService,
	settingsService services.SettingsService,
) Handler {
	return &handlerImpl{
		logger:   logger,
		projects: projectService,
		tasks:    taskService,
		timer:    timerService,
		entries:  timeEntryService,
		settings: settingsService,
	}
}

func (h *handlerImpl) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
