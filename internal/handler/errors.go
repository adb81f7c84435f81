package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/NOTIVEAPP/notive-backend/internal/middleware"
	"github.com/NOTIVEAPP/notive-backend/internal/service"
	"github.com/NOTIVEAPP/notive-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgSuccess        = "Success!"
	msgDuplicateEmail = "There is an existing user with this e-mail address!"
	msgUnknownEmail   = "Error: Invalid e-mail."
	msgBadCredentials = "Error: Invalid e-mail or password!"
)

func notFoundMessage(resource string) string  { return resource + " does not exist!" }
func forbiddenMessage(resource string) string { return resource + " is not yours!" }

// respondError maps a service error to its status and envelope. Anything
// unrecognised is logged and answered with a bare 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		validation *service.ValidationError
		badEmail   *service.InvalidEmailError
		notFound   *service.NotFoundError
		forbidden  *service.ForbiddenError
	)

	switch {
	case errors.As(err, &validation):
		util.Error(c, http.StatusBadRequest, validation.Message)
	case errors.As(err, &badEmail):
		util.Error(c, http.StatusBadRequest, badEmail.Error())
	case errors.Is(err, service.ErrDuplicateEmail):
		util.Error(c, http.StatusBadRequest, msgDuplicateEmail)
	case errors.Is(err, service.ErrUnknownEmail):
		util.Error(c, http.StatusBadRequest, msgUnknownEmail)
	case errors.Is(err, service.ErrInvalidCredentials):
		util.Error(c, http.StatusBadRequest, msgBadCredentials)
	case errors.As(err, &notFound):
		util.Error(c, http.StatusNotFound, notFoundMessage(notFound.Resource))
	case errors.As(err, &forbidden):
		util.Error(c, http.StatusForbidden, forbiddenMessage(forbidden.Resource))
	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		util.Error(c, http.StatusInternalServerError, util.MsgServerError)
	}
}

// pathID parses a positive integer path parameter. Anything else is answered
// with the resource's 404, the same as an id that matches no row.
func pathID(c *gin.Context, param, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		util.Error(c, http.StatusNotFound, notFoundMessage(resource))
		return 0, false
	}
	return uint(id), true
}

// userID returns the session user. The route group guarantees one exists,
// so a missing id is an internal error.
func userID(c *gin.Context, logger *zap.Logger) (uint, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, logger, errors.New("handler reached without a session user"))
		return 0, false
	}
	return id, true
}
