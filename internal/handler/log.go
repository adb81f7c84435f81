package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/NOTIVEAPP/notive-backend/internal/models"
	"github.com/NOTIVEAPP/notive-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LogHandler lists the audit log of the current user.
type LogHandler struct {
	db         *gorm.DB
	encryptKey string
	logger     *zap.Logger
}

func NewLogHandler(db *gorm.DB, encryptKey string, logger *zap.Logger) *LogHandler {
	return &LogHandler{db: db, encryptKey: encryptKey, logger: logger}
}

type logResp struct {
	ID        uint      `json:"id"`
	Action    string    `json:"action"`
	Path      string    `json:"path"`
	Method    string    `json:"method"`
	Status    int       `json:"status"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

// ListLogs pages through the user's log, newest first.
// Query: page, page_size (max 100), start and end as YYYY-MM-DD.
func (h *LogHandler) ListLogs(c *gin.Context) {
	uid, ok := userID(c, h.logger)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if size <= 0 || size > 100 {
		size = 20
	}

	base := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{}).Where("user_id = ?", uid)

	if s := c.Query("start"); s != "" {
		start, err := time.Parse("2006-01-02", s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.MsgInvalidParams)
			return
		}
		base = base.Where("created_at >= ?", start)
	}
	if s := c.Query("end"); s != "" {
		end, err := time.Parse("2006-01-02", s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.MsgInvalidParams)
			return
		}
		base = base.Where("created_at < ?", end.Add(24*time.Hour))
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		respondError(c, h.logger, err)
		return
	}

	var logs []models.AuditLog
	if err := base.
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&logs).Error; err != nil {
		respondError(c, h.logger, err)
		return
	}

	items := make([]logResp, 0, len(logs))
	for _, l := range logs {
		items = append(items, logResp{
			ID:        l.ID,
			Action:    util.DecryptField(h.encryptKey, l.ActionEnc),
			Path:      util.DecryptField(h.encryptKey, l.PathEnc),
			Method:    l.Method,
			Status:    l.Status,
			IP:        l.IP,
			UserAgent: l.UserAgent,
			CreatedAt: l.CreatedAt,
		})
	}

	util.Success(c, http.StatusOK, msgSuccess, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}
