package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlerImpl) HandleStartTimer(c *gin.Context) {
	timer, err := h.timer.Start(c, c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Timer started",
		"timer":   timer,
	})
}

func (h *handlerImpl) HandleStopTimer(c *gin.Context) {
	entry, err := h.timer.Stop(c)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *handlerImpl) HandleGetTimer(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"timer": h.timer.Active()})
}
