package handler

import (
	"fmt"
	"net/http"

	"github.com/NOTIVEAPP/notive-backend/internal/service"
	"github.com/NOTIVEAPP/notive-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ItemHandler serves /item. Items are addressed as /item/:list_id/:item_id.
type ItemHandler struct {
	items  *service.ItemService
	logger *zap.Logger
}

func NewItemHandler(items *service.ItemService, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{items: items, logger: logger}
}

type createItemReq struct {
	Name      *string `json:"name" binding:"required"`
	ListID    *uint   `json:"list_id" binding:"required"`
	Distance  *int    `json:"distance"`
	Frequency *int    `json:"frequency"`
}

type updateItemReq struct {
	Name      *string `json:"name"`
	Distance  *int    `json:"distance"`
	Frequency *int    `json:"frequency"`
}

// ListAll returns every item of the user grouped by list id.
func (h *ItemHandler) ListAll(c *gin.Context) {
	uid, ok := userID(c, h.logger)
	if !ok {
		return
	}

	grouped, err := h.items.ListAllForUser(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	util.Success(c, http.StatusOK, msgSuccess, grouped)
}

func (h *ItemHandler) ListForList(c *gin.Context) {
	uid, ok := userID(c, h.logger)
	if !ok {
		return
	}
	listID, ok := pathID(c, "list_id", service.ResourceList)
	if !ok {
		return
	}

	items, err := h.items.ListForList(c.Request.Context(), uid, listID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	util.Success(c, http.StatusOK, msgSuccess, util.Response{
		"items":           items,
		"number_of_items": len(items),
	})
}

func (h *ItemHandler) Get(c *gin.Context) {
	uid, listID, itemID, ok := h.address(c)
	if !ok {
		return
	}

	item, err := h.items.Get(c.Request.Context(), uid, listID, itemID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	util.Success(c, http.StatusOK, "", util.Response{"item": item})
}

func (h *ItemHandler) Create(c *gin.Context) {
	uid, ok := userID(c, h.logger)
	if !ok {
		return
	}

	var req createItemReq
	if !util.BindJSON(c, &req) {
		return
	}

	created, list, err := h.items.Create(c.Request.Context(), uid, *req.ListID, service.NewItem{
		Name:      *req.Name,
		Distance:  req.Distance,
		Frequency: req.Frequency,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	util.Success(c, http.StatusOK,
		fmt.Sprintf("An item has been successfully added to list named '%s'.", list.Name),
		util.Response{
			"item_id":    created.ID,
			"created_at": created.CreatedAt,
		})
}

// Update changes any of name, distance and frequency; absent keys are kept.
func (h *ItemHandler) Update(c *gin.Context) {
	uid, listID, itemID, ok := h.address(c)
	if !ok {
		return
	}

	var req updateItemReq
	if !util.BindJSON(c, &req) {
		return
	}

	patch := service.ItemPatch{Name: req.Name, Distance: req.Distance, Frequency: req.Frequency}
	if err := h.items.Update(c.Request.Context(), uid, listID, itemID, patch); err != nil {
		respondError(c, h.logger, err)
		return
	}
	util.Success(c, http.StatusOK, "Success! Item is updated.", nil)
}

func (h *ItemHandler) ToggleDone(c *gin.Context) {
	uid, listID, itemID, ok := h.address(c)
	if !ok {
		return
	}

	done, err := h.items.ToggleDone(c.Request.Context(), uid, listID, itemID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	msg := "Item is marked as not completed!"
	if done {
		msg = "Item is marked as complete!"
	}
	util.Success(c, http.StatusOK, msg, nil)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	uid, listID, itemID, ok := h.address(c)
	if !ok {
		return
	}

	if err := h.items.Delete(c.Request.Context(), uid, listID, itemID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	util.Success(c, http.StatusOK, "Item is deleted succesfully!", nil)
}

// address reads the session user and both path ids. A bad id of either kind
// is an item that does not exist.
func (h *ItemHandler) address(c *gin.Context) (uid, listID, itemID uint, ok bool) {
	if uid, ok = userID(c, h.logger); !ok {
		return
	}
	if listID, ok = pathID(c, "list_id", service.ResourceItem); !ok {
		return
	}
	itemID, ok = pathID(c, "item_id", service.ResourceItem)
	return
}
