package util

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	MsgBodyNotJSON   = "Request body must be JSON."
	MsgInvalidParams = "Invalid parameters."
)

// BindJSON decodes the request body into req and runs its binding tags.
// A non-JSON or malformed body and a body missing required keys are answered
// with 400 and distinct messages; false means the response was written.
func BindJSON(c *gin.Context, req interface{}) bool {
	if c.ContentType() != binding.MIMEJSON {
		Error(c, http.StatusBadRequest, MsgBodyNotJSON)
		return false
	}

	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var (
		validationErrs validator.ValidationErrors
		typeErr        *json.UnmarshalTypeError
	)
	if errors.As(err, &validationErrs) || errors.As(err, &typeErr) {
		Error(c, http.StatusBadRequest, MsgInvalidParams)
		return false
	}
	// empty body (io.EOF), syntax errors and the like
	Error(c, http.StatusBadRequest, MsgBodyNotJSON)
	return false
}
