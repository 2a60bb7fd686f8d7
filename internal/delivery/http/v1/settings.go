package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gtd/internal/models"
)

func (h *handlerImpl) HandleGetSettings(c *gin.Context) {
	settings, err := h.settings.GetSettings(c)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *handlerImpl) HandleUpdateSettings(c *gin.Context) {
	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	settings, err := h.settings.UpdateSettings(c, patch)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
