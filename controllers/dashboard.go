package controllers

import (
	"net/http"

	"optimasfibre-web/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	AdminBase
	Loader *services.DashboardLoader
}

// GetDashboard loads every collection the dashboard shell shows.
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	data, err := dc.Loader.Load(c.Request.Context(), token(c))
	if err != nil {
		dc.handleError(c, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, data)
}
