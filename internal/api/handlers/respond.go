package handlers

import "github.com/gin-gonic/gin"

// respondError writes the uniform failure envelope. The underlying error
// detail is exposed only in development mode.
func respondError(c *gin.Context, status int, message string, err error, dev bool) {
	payload := gin.H{
		"success": false,
		"message": message,
	}
	if err != nil && dev {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}
