package handler

import (
	"net/http"

	"github.com/NOTIVEAPP/notive-backend/internal/util"

	"github.com/gin-gonic/gin"
)

type updateProfileReq struct {
	Name *string `json:"name" binding:"required"`
}

// UpdateProfile renames the current user.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid, ok := userID(c, h.logger)
	if !ok {
		return
	}

	var req updateProfileReq
	if !util.BindJSON(c, &req) {
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), uid, *req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	util.Success(c, http.StatusOK, "Success! Profile is updated.", util.Response{"user": userView(user)})
}
