package handler

import (
	"net/http"

	"github.com/NOTIVEAPP/notive-backend/internal/service"
	"github.com/NOTIVEAPP/notive-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves the logged-in user's own record.
type UserHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

func NewUserHandler(auth *service.AuthService, logger *zap.Logger) *UserHandler {
	return &UserHandler{auth: auth, logger: logger}
}

// Me returns the current user.
func (h *UserHandler) Me(c *gin.Context) {
	uid, ok := userID(c, h.logger)
	if !ok {
		return
	}

	user, err := h.auth.User(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	view := userView(user)
	view["created_at"] = user.CreatedAt
	util.Success(c, http.StatusOK, msgSuccess, util.Response{"user": view})
}
