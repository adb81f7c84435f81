package util

import (
	"github.com/gin-gonic/gin"
)

// MsgServerError is the only body a storage or internal failure produces.
const MsgServerError = "A server error has been occurred. Please try again later and contact us if the error persists."

// Envelope is the body every JSON endpoint answers with.
type Envelope struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Response is the loose object used for the data part of an envelope.
type Response map[string]interface{}

// Success writes status with {message, data}; data is omitted when nil.
func Success(c *gin.Context, status int, msg string, data interface{}) {
	c.JSON(status, Envelope{Message: msg, Data: data})
}

// Error writes status with {message} and stops the handler chain.
func Error(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Envelope{Message: msg})
}
