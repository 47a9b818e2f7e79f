package controllers

import (
	"net/http"

	"optimasfibre-web/models"
	"optimasfibre-web/services"
	"optimasfibre-web/utils"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	AdminBase
	API *services.APIClient
}

func (sc *SettingsController) GetSettings(c *gin.Context) {
	settings, err := sc.API.GetSettings(c.Request.Context(), token(c))
	if err != nil {
		sc.handleError(c, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var input models.Settings
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings, err := sc.API.UpdateSettings(c.Request.Context(), token(c), input)
	if err != nil {
		sc.handleError(c, err, "Failed to save settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}
