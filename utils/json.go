package utils

import "github.com/gin-gonic/gin"

// Fail aborts the request with an {"error": msg} body.
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
