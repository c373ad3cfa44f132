package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Security Plus Admin API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Index documents the API surface at the root path.
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "Security Plus Admin Backend API",
		"version":     "1.0.0",
		"description": "Automatic JSON to MongoDB converter for the Security Plus frontend",
		"endpoints": gin.H{
			"health": "/api/health",
			"autoImport": gin.H{
				"import":      "POST /api/auto-import/import",
				"status":      "GET /api/auto-import/status",
				"sync":        "POST /api/auto-import/sync",
				"collections": "GET /api/auto-import/collections",
				"data":        "GET /api/auto-import/data/:collection",
			},
			"products": gin.H{
				"list":   "GET /api/products",
				"create": "POST /api/products",
				"detail": "GET /api/products/:id",
				"update": "PUT /api/products/:id",
				"delete": "DELETE /api/products/:id",
			},
		},
	})
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"message": "Route not found",
		"path":    c.Request.URL.Path,
		"method":  c.Request.Method,
	})
}
