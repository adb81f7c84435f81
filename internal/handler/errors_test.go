package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NOTIVEAPP/notive-backend/internal/service"
	"github.com/NOTIVEAPP/notive-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
		wantLogged bool
	}{
		{"validation", &service.ValidationError{Message: "Please provide a name!"}, http.StatusBadRequest, `{"message":"Please provide a name!"}`, false},
		{"duplicate email", fmt.Errorf("register: %w", service.ErrDuplicateEmail), http.StatusBadRequest, `{"message":"There is an existing user with this e-mail address!"}`, false},
		{"unknown email", service.ErrUnknownEmail, http.StatusBadRequest, `{"message":"Error: Invalid e-mail."}`, false},
		{"bad password", service.ErrInvalidCredentials, http.StatusBadRequest, `{"message":"Error: Invalid e-mail or password!"}`, false},
		{"invalid email", &service.InvalidEmailError{Err: errors.New("invalid format")}, http.StatusBadRequest, `{"message":"invalid format"}`, false},
		{"list not found", &service.NotFoundError{Resource: service.ResourceList}, http.StatusNotFound, `{"message":"List does not exist!"}`, false},
		{"item forbidden", &service.ForbiddenError{Resource: service.ResourceItem}, http.StatusForbidden, `{"message":"Item is not yours!"}`, false},
		{"storage", &service.StorageError{Op: "list lists", Err: errors.New("no such table: lists")}, http.StatusInternalServerError, `{"message":"` + util.MsgServerError + `"}`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.ErrorLevel)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/list", nil)

			respondError(c, zap.New(core), tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
			assert.NotContains(t, w.Body.String(), "no such table")
			assert.Equal(t, tc.wantLogged, logs.Len() == 1)
		})
	}
}

func TestPathID(t *testing.T) {
	r := gin.New()
	r.GET("/list/:id", func(c *gin.Context) {
		id, ok := pathID(c, "id", service.ResourceList)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	for p, want := range map[string]int{
		"/list/7":                    http.StatusOK,
		"/list/0":                    http.StatusNotFound,
		"/list/abc":                  http.StatusNotFound,
		"/list/-3":                   http.StatusNotFound,
		"/list/99999999999999999999": http.StatusNotFound,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
		assert.Equal(t, want, w.Code, p)
		if want == http.StatusNotFound {
			assert.JSONEq(t, `{"message":"List does not exist!"}`, w.Body.String(), p)
		}
	}
}
