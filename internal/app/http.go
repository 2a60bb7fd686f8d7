package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"gtd/internal/config"
	v1 "gtd/internal/delivery/http/v1"
	"gtd/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	projectService := services.NewProjectService(globalLogger, globalDB)
	taskService := services.NewTaskService(globalLogger, globalDB, projectService)
	timerService := services.NewTimerService(globalLogger, globalDB)
	timeEntryService := services.NewTimeEntryService(globalLogger, globalDB)
	settingsService := services.NewSettingsService(globalLogger, globalDB)

	handler := v1.New(
		globalLogger,
		projectService,
		taskService,
		timerService,
		timeEntryService,
		settingsService,
	)

	api := router.Group("/api")

	api.GET("/projects", handler.HandleListProjects)
	api.POST("/projects", handler.HandleCreateProject)
	api.GET("/projects/:id", handler.HandleGetProject)
	api.PATCH("/projects/:id", handler.HandleUpdateProject)
	api.DELETE("/projects/:id", handler.HandleDeleteProject)
	api.GET("/projects/:id/tasks", handler.HandleListProjectTasks)

	api.GET("/tasks", handler.HandleListTasks)
	api.POST("/tasks", handler.HandleCreateTask)
	api.GET("/tasks/:id", handler.HandleGetTask)
	api.PATCH("/tasks/:id", handler.HandleUpdateTask)
	api.DELETE("/tasks/:id", handler.HandleDeleteTask)
	api.POST("/tasks/:id/complete", handler.HandleCompleteTask)

	api.POST("/tasks/:id/timer/start", handler.HandleStartTimer)
	api.POST("/tasks/:id/timer/stop", handler.HandleStopTimer)
	api.GET("/timer", handler.HandleGetTimer)

	api.GET("/time-entries", handler.HandleListTimeEntries)
	api.POST("/time-entries", handler.HandleCreateTimeEntry)

	api.GET("/settings", handler.HandleGetSettings)
	api.PATCH("/settings", handler.HandleUpdateSettings)

	api.GET("/health", handler.HandleHealth)
}
