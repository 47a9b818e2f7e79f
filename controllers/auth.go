package controllers

import (
	"errors"
	"net/http"
	"time"

	"optimasfibre-web/models"
	"optimasfibre-web/services"
	"optimasfibre-web/store"
	"optimasfibre-web/utils"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type ThemeInput struct {
	Theme models.Theme `json:"theme" binding:"required,oneof=light dark"`
}

type AuthController struct {
	AdminBase
	API        *services.APIClient
	Key        *[32]byte
	SessionTTL time.Duration
}

// Login checks the credentials against the backend and opens a session
// holding the returned token.
func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBind(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tok, err := ac.API.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		var apiErr *services.APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusBadRequest) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		ac.handleError(c, err, "Login failed, please try again")
		return
	}

	sealed, err := utils.SealToken(ac.Key, tok)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Could not start session")
		return
	}

	sess := &models.Session{Email: input.Email, SealedToken: sealed}
	if exp, ok := utils.TokenExpiry(tok); ok {
		sess.ExpiresAt = exp
	}
	if err := ac.Sessions.Create(sess, ac.SessionTTL); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Could not start session")
		return
	}

	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, sess.ID, maxAge, "/", "", secureRequest(c), true)
	c.JSON(http.StatusOK, gin.H{
		"email":     sess.Email,
		"theme":     sess.Theme,
		"expiresAt": sess.ExpiresAt,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	ac.endSession(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out", "redirect": LoginRoute})
}

// RequireSession resolves the session cookie to a live backend token. Any
// failure sends the dashboard back to the login page.
func (ac *AuthController) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || id == "" {
			utils.RespondWithRedirect(c, http.StatusUnauthorized, "Please log in to continue", LoginRoute)
			return
		}

		sess, err := ac.Sessions.Get(id)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				c.Error(err)
			}
			ac.endSession(c)
			utils.RespondWithRedirect(c, http.StatusUnauthorized, "Please log in to continue", LoginRoute)
			return
		}

		tok, err := utils.OpenToken(ac.Key, sess.SealedToken)
		if err != nil || utils.TokenExpired(tok, time.Now()) {
			ac.endSession(c)
			utils.RespondWithRedirect(c, http.StatusUnauthorized, "Your session has expired, please log in again", LoginRoute)
			return
		}

		c.Set(ctxToken, tok)
		c.Set(ctxSession, sess)
		c.Next()
	}
}

func (ac *AuthController) Me(c *gin.Context) {
	sess := c.MustGet(ctxSession).(*models.Session)
	c.JSON(http.StatusOK, gin.H{
		"email":     sess.Email,
		"theme":     sess.Theme,
		"expiresAt": sess.ExpiresAt,
	})
}

func (ac *AuthController) UpdateTheme(c *gin.Context) {
	var input ThemeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	sess := c.MustGet(ctxSession).(*models.Session)
	updated, err := ac.Sessions.SetTheme(sess.ID, input.Theme)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save theme")
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": updated.Theme})
}
