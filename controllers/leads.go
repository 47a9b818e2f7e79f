package controllers

import (
	"context"
	"net/http"
	"strconv"

	"optimasfibre-web/models"
	"optimasfibre-web/utils"

	"github.com/gin-gonic/gin"
)

// LeadLister is implemented by store.LeadStore.
type LeadLister interface {
	RecentLeads(ctx context.Context, limit int) ([]models.BookingLead, error)
}

type LeadController struct {
	Leads LeadLister
}

// GetLeads lists recent bookings, newest first. ?limit= caps the count.
func (lc *LeadController) GetLeads(c *gin.Context) {
	if lc.Leads == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Booking history is not enabled")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	leads, err := lc.Leads.RecentLeads(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}
	c.JSON(http.StatusOK, leads)
}
