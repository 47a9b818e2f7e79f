package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"optimasfibre-web/models"
	"optimasfibre-web/services"
	"optimasfibre-web/utils"

	"github.com/gin-gonic/gin"
)

// SiteController serves the public marketing site.
type SiteController struct {
	Catalog *models.Catalog
	Booking *services.BookingService
	Content *services.PublicContent
}

func (sc *SiteController) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, sc.Catalog)
}

func (sc *SiteController) GetPlans(c *gin.Context) {
	c.JSON(http.StatusOK, services.PlansByCategory(sc.Catalog, c.Query("category")))
}

func (sc *SiteController) GetPlan(c *gin.Context) {
	plan, ok := services.PlanByID(sc.Catalog, c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "Plan not found")
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (sc *SiteController) GetServices(c *gin.Context) {
	c.JSON(http.StatusOK, sc.Catalog.Services)
}

func (sc *SiteController) GetFAQs(c *gin.Context) {
	category := c.Query("category")
	faqs := make([]models.FAQ, 0, len(sc.Catalog.FAQs))
	for _, f := range sc.Catalog.FAQs {
		if category == "" || strings.EqualFold(f.Category, category) {
			faqs = append(faqs, f)
		}
	}
	c.JSON(http.StatusOK, faqs)
}

func (sc *SiteController) GetAbout(c *gin.Context) {
	c.JSON(http.StatusOK, sc.Catalog.About)
}

// GetCoverage lists every area, or answers for one area with ?area=.
func (sc *SiteController) GetCoverage(c *gin.Context) {
	area := c.Query("area")
	if area == "" {
		c.JSON(http.StatusOK, sc.Catalog.Coverage)
		return
	}
	found, ok := services.FindCoverage(sc.Catalog, area)
	c.JSON(http.StatusOK, gin.H{
		"area":    area,
		"covered": ok && found.Status == "live",
		"details": found,
	})
}

func (sc *SiteController) GetBlog(c *gin.Context) {
	posts, err := sc.Content.Blog(c.Request.Context())
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to load blog", "error", err)
		utils.RespondWithError(c, http.StatusBadGateway, "Blog is unavailable right now")
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (sc *SiteController) GetPortfolio(c *gin.Context) {
	items, err := sc.Content.Portfolio(c.Request.Context())
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to load portfolio", "error", err)
		utils.RespondWithError(c, http.StatusBadGateway, "Portfolio is unavailable right now")
		return
	}
	c.JSON(http.StatusOK, items)
}

// Book validates the booking form and hands off to WhatsApp. HTML form
// posts are redirected straight to the deep link; API callers get it as JSON.
func (sc *SiteController) Book(c *gin.Context) {
	var req services.BookingRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Please check the booking form and try again")
		return
	}

	result, err := sc.Booking.Book(c.Request.Context(), req)
	if err != nil {
		var valErr *services.ValidationError
		if errors.As(err, &valErr) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": valErr.Message, "field": valErr.Field})
			return
		}
		slog.ErrorContext(c.Request.Context(), "Booking failed", "error", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	if c.ContentType() == "application/x-www-form-urlencoded" {
		c.Redirect(http.StatusSeeOther, result.WhatsAppURL)
		return
	}
	c.JSON(http.StatusOK, result)
}
