package handler

import (
	"context"
	"net/http"

	"github.com/NOTIVEAPP/notive-backend/internal/service"
	"github.com/NOTIVEAPP/notive-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListHandler serves /list.
type ListHandler struct {
	lists  *service.ListService
	logger *zap.Logger
}

func NewListHandler(lists *service.ListService, logger *zap.Logger) *ListHandler {
	return &ListHandler{lists: lists, logger: logger}
}

type listNameReq struct {
	Name *string `json:"name" binding:"required"`
}

func (h *ListHandler) ListAll(c *gin.Context) {
	uid, ok := userID(c, h.logger)
	if !ok {
		return
	}

	lists, err := h.lists.ListAll(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	util.Success(c, http.StatusOK, msgSuccess, util.Response{
		"lists":           lists,
		"number_of_lists": len(lists),
	})
}

func (h *ListHandler) Create(c *gin.Context) {
	uid, ok := userID(c, h.logger)
	if !ok {
		return
	}

	var req listNameReq
	if !util.BindJSON(c, &req) {
		return
	}

	created, err := h.lists.Create(c.Request.Context(), uid, *req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	util.Success(c, http.StatusOK, "New list is created successfully!", util.Response{
		"list_id":    created.ID,
		"created_at": created.CreatedAt,
	})
}

func (h *ListHandler) Get(c *gin.Context) {
	uid, ok := userID(c, h.logger)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id", service.ResourceList)
	if !ok {
		return
	}

	l, err := h.lists.Get(c.Request.Context(), uid, listID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	util.Success(c, http.StatusOK, "", l)
}

// Rename checks the list before it reads the body, so a foreign or missing
// list is reported even when the body is malformed.
func (h *ListHandler) Rename(c *gin.Context) {
	uid, ok := userID(c, h.logger)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id", service.ResourceList)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.lists.Get(ctx, uid, listID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req listNameReq
	if !util.BindJSON(c, &req) {
		return
	}

	if err := h.lists.Rename(ctx, uid, listID, *req.Name); err != nil {
		respondError(c, h.logger, err)
		return
	}
	util.Success(c, http.StatusOK, "Success! List name is updated.", nil)
}

func (h *ListHandler) Delete(c *gin.Context) {
	uid, ok := userID(c, h.logger)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id", service.ResourceList)
	if !ok {
		return
	}

	if err := h.lists.Delete(c.Request.Context(), uid, listID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	util.Success(c, http.StatusOK, "List is deleted successfully.", nil)
}

func (h *ListHandler) ToggleMute(c *gin.Context) {
	h.toggle(c, h.lists.ToggleMute, "List is muted.", "List is unmuted.")
}

func (h *ListHandler) ToggleArchive(c *gin.Context) {
	h.toggle(c, h.lists.ToggleArchive, "List is archived.", "List is active.")
}

func (h *ListHandler) toggle(c *gin.Context, flip func(context.Context, uint, uint) (bool, error), onMsg, offMsg string) {
	uid, ok := userID(c, h.logger)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id", service.ResourceList)
	if !ok {
		return
	}

	on, err := flip(c.Request.Context(), uid, listID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	msg := offMsg
	if on {
		msg = onMsg
	}
	util.Success(c, http.StatusOK, msg, nil)
}
