package handler

import (
	"fmt"
	"net/http"

	"github.com/NOTIVEAPP/notive-backend/internal/models"
	"github.com/NOTIVEAPP/notive-backend/internal/service"
	"github.com/NOTIVEAPP/notive-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BackupHandler serves /backups.
type BackupHandler struct {
	backups *service.BackupService
	logger  *zap.Logger
}

func NewBackupHandler(backups *service.BackupService, logger *zap.Logger) *BackupHandler {
	return &BackupHandler{backups: backups, logger: logger}
}

func backupView(b *models.Backup) gin.H {
	return gin.H{
		"id":         b.ID,
		"file_name":  b.FileName,
		"size":       b.Size,
		"lists":      b.Lists,
		"items":      b.Items,
		"created_at": b.CreatedAt,
	}
}

func (h *BackupHandler) Create(c *gin.Context) {
	uid, ok := userID(c, h.logger)
	if !ok {
		return
	}

	b, err := h.backups.Create(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	util.Success(c, http.StatusOK, "Backup is created.", util.Response{"backup": backupView(b)})
}

func (h *BackupHandler) List(c *gin.Context) {
	uid, ok := userID(c, h.logger)
	if !ok {
		return
	}

	list, err := h.backups.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	views := make([]gin.H, 0, len(list))
	for i := range list {
		views = append(views, backupView(&list[i]))
	}
	util.Success(c, http.StatusOK, msgSuccess, util.Response{
		"backups":           views,
		"number_of_backups": len(views),
	})
}

// Download sends the encrypted file, or the decrypted snapshot as JSON with
// ?format=json.
func (h *BackupHandler) Download(c *gin.Context) {
	uid, ok := userID(c, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", service.ResourceBackup)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if c.Query("format") == "json" {
		snap, err := h.backups.Read(ctx, uid, id)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		util.Success(c, http.StatusOK, "", snap)
		return
	}

	b, err := h.backups.Get(ctx, uid, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", b.FileName))
	c.Header("Content-Type", "application/octet-stream")
	c.File(b.FilePath)
}

func (h *BackupHandler) Delete(c *gin.Context) {
	uid, ok := userID(c, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", service.ResourceBackup)
	if !ok {
		return
	}

	if err := h.backups.Delete(c.Request.Context(), uid, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	util.Success(c, http.StatusOK, "Backup is deleted.", nil)
}
