package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/NOTIVEAPP/notive-backend/internal/service"
	"github.com/NOTIVEAPP/notive-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// HeaderAPIKey carries the pre-shared client key.
	HeaderAPIKey = "X-API-Key"

	// MsgLoginRequired is answered with 400, as the mobile client expects.
	MsgLoginRequired = "Error: Login is required!"

	ctxUserID    = "currentUserID"
	ctxSessionID = "currentSessionID"
)

// APIKey rejects requests whose X-API-Key header does not match key with an
// empty 401. An empty configured key rejects everything.
func APIKey(key string) gin.HandlerFunc {
	want := []byte(key)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader(HeaderAPIKey))
		if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

// Session loads the login session named by the cookie (or a Bearer token)
// into the context. It never aborts; LoginRequired does.
func Session(sessions *service.SessionService, cookieName string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cookieName)
		if token == "" {
			c.Next()
			return
		}

		userID, sid, err := sessions.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(ctxUserID, userID)
			c.Set(ctxSessionID, sid)
		case errors.Is(err, service.ErrSessionInvalid):
		default:
			logger.Error("resolve session", zap.Error(err))
		}
		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// LoginRequired aborts with 400 when no session was loaded.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			util.Error(c, http.StatusBadRequest, MsgLoginRequired)
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the id of the logged-in user.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// SessionID returns the id of the current session, or "".
func SessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}
