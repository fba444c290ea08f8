package utils

import "github.com/gin-gonic/gin"

// JSONError writes the error body every failing endpoint returns.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// AbortJSONError is JSONError for middleware: later handlers do not run.
func AbortJSONError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// JSONMessage writes a human-readable message next to a named payload.
func JSONMessage(c *gin.Context, code int, message, key string, data interface{}) {
	c.JSON(code, gin.H{"message": message, key: data})
}
