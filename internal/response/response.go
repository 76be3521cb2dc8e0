package response

import (
	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope:
// {"success": bool, "message"?: string, ...payload}.

// OK sends a successful response, merging payload keys into the envelope.
func OK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(200, body)
}

// OKWithMessage sends a successful response carrying an informational
// message (e.g. the fallback diagnostic attached to degraded AI responses).
func OKWithMessage(c *gin.Context, message string, payload gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(200, body)
}

// Fail sends an error response with the given HTTP status and message.
func Fail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"success": false, "message": message})
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, message string, fields map[string]string) {
	c.JSON(statusCode, gin.H{"success": false, "message": message, "fields": fields})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"success": false, "message": message})
}
