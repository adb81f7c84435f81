package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/NOTIVEAPP/notive-backend/internal/models"
	"github.com/NOTIVEAPP/notive-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxAuditBody = 2000

type replayBody struct {
	io.Reader
	io.Closer
}

// Audit records mutating requests of logged-in users. Path and action are
// stored encrypted; password fields never reach the log.
func Audit(db *gorm.DB, encryptKey string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		// only the head of the body is buffered; the rest streams through
		var body []byte
		if c.Request.Body != nil {
			orig := c.Request.Body
			body, _ = io.ReadAll(io.LimitReader(orig, maxAuditBody))
			c.Request.Body = replayBody{
				Reader: io.MultiReader(bytes.NewReader(body), orig),
				Closer: orig,
			}
		}

		c.Next()

		userID, ok := CurrentUserID(c)
		if !ok {
			return
		}

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path
		if redacted := redactBody(body); redacted != "" {
			action += " " + redacted
		}

		encPath, err := util.EncryptField(encryptKey, path)
		if err != nil {
			logger.Error("encrypt audit path", zap.Error(err))
			return
		}
		encAction, err := util.EncryptField(encryptKey, action)
		if err != nil {
			logger.Error("encrypt audit action", zap.Error(err))
			return
		}

		entry := models.AuditLog{
			UserID:    &userID,
			PathEnc:   encPath,
			Method:    c.Request.Method,
			ActionEnc: encAction,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		if err := db.WithContext(c.Request.Context()).Create(&entry).Error; err != nil {
			logger.Error("write audit log", zap.Error(err))
		}
	}
}

// redactBody returns the JSON body without password keys, or "" when the
// body is empty, too large or not a JSON object.
func redactBody(body []byte) string {
	if len(body) == 0 || len(body) >= maxAuditBody {
		return ""
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	delete(fields, "password")
	out, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(out)
}

// RequestLogger logs one line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if id, ok := CurrentUserID(c); ok {
			fields = append(fields, zap.Uint("user_id", id))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// Recovery turns a panic into a logged 500.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
		)
		util.Error(c, http.StatusInternalServerError, util.MsgServerError)
	})
}
