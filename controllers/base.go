package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"optimasfibre-web/services"
	"optimasfibre-web/store"
	"optimasfibre-web/utils"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "optimas_session"
	LoginRoute    = "/admin/login"

	ctxToken   = "token"
	ctxSession = "session"
)

// AdminBase is embedded by every admin controller. It owns the error
// mapping so an expired backend token always ends the session the same way.
type AdminBase struct {
	Sessions *store.SessionStore
}

func token(c *gin.Context) string {
	return c.GetString(ctxToken)
}

func (b *AdminBase) handleError(c *gin.Context, err error, fallback string) {
	var valErr *services.ValidationError
	var apiErr *services.APIError

	switch {
	case services.IsAuthError(err):
		b.endSession(c)
		utils.RespondWithRedirect(c, http.StatusUnauthorized, "Your session has expired, please log in again", LoginRoute)
	case errors.As(err, &valErr):
		utils.RespondWithError(c, http.StatusBadRequest, valErr.Message)
	case errors.As(err, &apiErr):
		status := apiErr.Status
		if status >= http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		utils.RespondWithError(c, status, apiErr.Message)
	default:
		slog.ErrorContext(c.Request.Context(), fallback, "path", c.Request.URL.Path, "error", err)
		utils.RespondWithError(c, http.StatusBadGateway, fallback)
	}
}

// endSession forgets the current session server-side and in the browser.
func (b *AdminBase) endSession(c *gin.Context) {
	if id, err := c.Cookie(SessionCookie); err == nil && id != "" && b.Sessions != nil {
		if err := b.Sessions.Delete(id); err != nil {
			slog.WarnContext(c.Request.Context(), "Failed to delete session", "error", err)
		}
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", secureRequest(c), true)
}

func secureRequest(c *gin.Context) bool {
	return c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
}
