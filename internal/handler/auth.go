package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/NOTIVEAPP/notive-backend/internal/config"
	"github.com/NOTIVEAPP/notive-backend/internal/middleware"
	"github.com/NOTIVEAPP/notive-backend/internal/models"
	"github.com/NOTIVEAPP/notive-backend/internal/service"
	"github.com/NOTIVEAPP/notive-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves registration, login/logout and password updates.
type AuthHandler struct {
	auth       *service.AuthService
	sessions   *service.SessionService
	cookieName string
	secure     bool
	foursquare config.FoursquareConfig
	logger     *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, sessions *service.SessionService, authCfg config.AuthConfig, fsq config.FoursquareConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		sessions:   sessions,
		cookieName: authCfg.CookieName,
		secure:     authCfg.CookieSecure,
		foursquare: fsq,
		logger:     logger,
	}
}

type registerReq struct {
	Name     *string `json:"name" binding:"required"`
	Email    *string `json:"email" binding:"required"`
	Password *string `json:"password" binding:"required"`
}

type credentialsReq struct {
	Email    *string `json:"email" binding:"required"`
	Password *string `json:"password" binding:"required"`
}

func userView(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if !util.BindJSON(c, &req) {
		return
	}

	if _, err := h.auth.Register(c.Request.Context(), *req.Name, *req.Email, *req.Password); err != nil {
		respondError(c, h.logger, err)
		return
	}
	util.Success(c, http.StatusOK, "You have registered successfully!", nil)
}

// Login checks the credentials and starts a new session, replacing any
// session the request already carried.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsReq
	if !util.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	user, err := h.auth.Login(ctx, *req.Email, *req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if sid := middleware.SessionID(c); sid != "" {
		if err := h.sessions.End(ctx, sid); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	token, expires, err := h.sessions.Start(ctx, user.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.setCookie(c, token, int(time.Until(expires).Seconds()))

	util.Success(c, http.StatusOK, "You have been logged in successfully!", util.Response{
		"user": userView(user),
	})
}

// Logout ends the current session, if any. It needs neither a key nor a login.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.End(c.Request.Context(), middleware.SessionID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.setCookie(c, "", -1)
	util.Success(c, http.StatusOK, "Successfully logged out!", nil)
}

// UpdatePassword sets a new password for the logged-in user. The email in
// the body must be the user's own.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	uid, ok := userID(c, h.logger)
	if !ok {
		return
	}

	var req credentialsReq
	if !util.BindJSON(c, &req) {
		return
	}

	err := h.auth.UpdatePassword(c.Request.Context(), uid, *req.Email, *req.Password)
	var forbidden *service.ForbiddenError
	if errors.As(err, &forbidden) {
		util.Error(c, http.StatusForbidden, "Error: This e-mail address does not belong to you!")
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	util.Success(c, http.StatusOK, "Success! User password is updated.", nil)
}

// FoursquareAccess hands the venue search credentials to the client.
func (h *AuthHandler) FoursquareAccess(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"FSQ_CLIENT_ID":     h.foursquare.ClientID,
		"FSQ_CLIENT_SECRET": h.foursquare.ClientSecret,
	})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, value, maxAge, "/", "", h.secure, true)
}
