package utils

import "github.com/gin-gonic/gin"

// ErrorResponse writes a JSON error body. The "detail" key matches the wire
// format clients of the previous deployment already parse.
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"detail": message})
}
