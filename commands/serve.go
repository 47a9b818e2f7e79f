package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"optimasfibre-web/config"
	"optimasfibre-web/controllers"
	"optimasfibre-web/routes"
	"optimasfibre-web/services"
	"optimasfibre-web/store"
	"optimasfibre-web/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				config.LoadEnv(envFile)
			} else {
				config.LoadEnv()
			}
			cfg := config.Load()
			config.SetupLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", "", "path to a .env file")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	if cfg.SessionSecret == "" {
		return errors.New("SESSION_SECRET is not set (generate one with `optimas secret`)")
	}
	if cfg.WhatsAppNumber == "" {
		slog.Warn("WHATSAPP_NUMBER is not set, bookings will fail")
	}

	catalog, err := services.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	sessions, err := store.OpenSessions(cfg.SessionDBPath)
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer sessions.Close()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		return err
	}
	var leads *store.LeadStore
	var leadRecorder services.LeadRecorder
	var leadLister controllers.LeadLister
	if db != nil {
		leads = store.NewLeadStore(db)
		leadRecorder, leadLister = leads, leads
	}

	var notifier services.Notifier
	if n := services.NewWhatsAppNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber, cfg.StaffWhatsAppNumber); n != nil {
		notifier = n
	}

	rdb := config.ConnectRedis(ctx, cfg)
	if rdb != nil {
		defer rdb.Close()
	}

	api := services.NewAPIClient(cfg.BackendURL(), cfg.APITimeout)
	content := services.NewPublicContent(api, rdb, cfg.CacheTTL)

	scheduler, err := services.StartScheduler(ctx, sessions, content)
	if err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer scheduler.Stop()

	booking := services.NewBookingService(catalog, cfg.WhatsAppNumber, leadRecorder, notifier)

	gin.SetMode(cfg.GinMode)
	r := routes.SetupRouter(routes.Deps{
		Catalog:        catalog,
		API:            api,
		Booking:        booking,
		Content:        content,
		Uploader:       services.NewImageUploader(cfg.CloudinaryCloudName, cfg.CloudinaryUploadPreset),
		Sessions:       sessions,
		Leads:          leadLister,
		SessionKey:     utils.SessionKey(cfg.SessionSecret),
		SessionTTL:     cfg.SessionTTL,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	printRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", srv.Addr, "backend", cfg.BackendURL())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)
	booking.Wait()
	return err
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		slog.Debug("route", "method", route.Method, "path", route.Path)
	}
}
