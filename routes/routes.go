package routes

import (
	"net/http"
	"time"

	"optimasfibre-web/config"
	"optimasfibre-web/controllers"
	"optimasfibre-web/models"
	"optimasfibre-web/services"
	"optimasfibre-web/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps is everything the router needs. Leads may be nil when no database is
// configured.
type Deps struct {
	Catalog        *models.Catalog
	API            *services.APIClient
	Booking        *services.BookingService
	Content        *services.PublicContent
	Uploader       *services.ImageUploader
	Sessions       *store.SessionStore
	Leads          controllers.LeadLister
	SessionKey     *[32]byte
	SessionTTL     time.Duration
	AllowedOrigins []string
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
			AllowCredentials: true,
		}))
	}

	r.Use(config.PerformanceLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	base := controllers.AdminBase{Sessions: d.Sessions}
	site := &controllers.SiteController{Catalog: d.Catalog, Booking: d.Booking, Content: d.Content}
	auth := &controllers.AuthController{AdminBase: base, API: d.API, Key: d.SessionKey, SessionTTL: d.SessionTTL}
	dashboard := &controllers.DashboardController{AdminBase: base, Loader: services.NewDashboardLoader(d.API)}
	invoices := &controllers.InvoiceController{AdminBase: base, API: d.API}
	receipts := &controllers.ReceiptController{AdminBase: base, API: d.API}
	content := &controllers.ContentController{AdminBase: base, API: d.API, Uploader: d.Uploader, Public: d.Content}
	settings := &controllers.SettingsController{AdminBase: base, API: d.API}
	leads := &controllers.LeadController{Leads: d.Leads}

	public := r.Group("/api/site")
	{
		public.GET("/catalog", site.GetCatalog)
		public.GET("/plans", site.GetPlans)
		public.GET("/plans/:id", site.GetPlan)
		public.GET("/services", site.GetServices)
		public.GET("/faqs", site.GetFAQs)
		public.GET("/coverage", site.GetCoverage)
		public.GET("/about", site.GetAbout)
		public.GET("/blog", site.GetBlog)
		public.GET("/portfolio", site.GetPortfolio)
		public.POST("/bookings", site.Book)
	}

	r.POST("/admin/login", auth.Login)
	r.POST("/admin/logout", auth.Logout)

	admin := r.Group("/admin/api")
	admin.Use(auth.RequireSession())
	{
		admin.GET("/me", auth.Me)
		admin.PUT("/theme", auth.UpdateTheme)

		admin.GET("/dashboard", dashboard.GetDashboard)
		admin.GET("/bookings", leads.GetLeads)
		admin.POST("/totals", invoices.PreviewTotals)
		admin.POST("/uploads", content.UploadImage)

		blog := admin.Group("/blog")
		{
			blog.GET("", content.GetBlogPosts)
			blog.POST("", content.CreateBlogPost)
			blog.PUT("/:id", content.UpdateBlogPost)
			blog.DELETE("/:id", content.DeleteBlogPost)
		}

		portfolio := admin.Group("/portfolio")
		{
			portfolio.GET("", content.GetPortfolioItems)
			portfolio.POST("", content.CreatePortfolioItem)
			portfolio.PUT("/:id", content.UpdatePortfolioItem)
			portfolio.DELETE("/:id", content.DeletePortfolioItem)
		}

		inv := admin.Group("/invoices")
		{
			inv.GET("", invoices.GetInvoices)
			inv.POST("", invoices.CreateInvoice)
			inv.GET("/:id", invoices.GetInvoice)
			inv.PUT("/:id", invoices.UpdateInvoice)
			inv.DELETE("/:id", invoices.DeleteInvoice)
			inv.PATCH("/:id/status", invoices.UpdateInvoiceStatus)
			inv.POST("/:id/send", invoices.SendInvoice)
			inv.GET("/:id/export/:format", invoices.ExportInvoice)
			inv.GET("/:id/whatsapp", invoices.ContactCustomer)
		}

		rec := admin.Group("/receipts")
		{
			rec.GET("", receipts.GetReceipts)
			rec.POST("", receipts.CreateReceipt)
			rec.GET("/:id", receipts.GetReceipt)
			rec.PUT("/:id", receipts.UpdateReceipt)
			rec.DELETE("/:id", receipts.DeleteReceipt)
			rec.POST("/:id/send", receipts.SendReceipt)
			rec.GET("/:id/export/pdf", receipts.ExportReceipt)
		}

		admin.GET("/exports/invoices.xlsx", invoices.ExportInvoiceList)
		admin.GET("/exports/receipts.xlsx", receipts.ExportReceiptList)

		admin.GET("/settings", settings.GetSettings)
		admin.PUT("/settings", settings.UpdateSettings)
	}

	return r
}
