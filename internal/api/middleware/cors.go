package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// Origins always allowed to call the API.
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8000",
	"http://localhost:5173",
	"http://localhost:5174",
	"https://localhost:5173",
	"https://localhost:5174",
	"https://securityplusuniform.com",
}

// Any localhost port is allowed for development.
var localhostOrigin = regexp.MustCompile(`^https?://localhost:\d+$`)

// CORS wires rs/cors into gin: the fixed frontend origins, any localhost
// port, and any extra configured origins are allowed with credentials.
func CORS(extraOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(defaultOrigins)+len(extraOrigins))
	for _, origin := range defaultOrigins {
		allowed[strings.TrimSuffix(origin, "/")] = true
	}
	for _, origin := range extraOrigins {
		allowed[strings.TrimSuffix(origin, "/")] = true
	}

	handler := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			normalized := strings.TrimSuffix(origin, "/")
			return allowed[normalized] || localhostOrigin.MatchString(normalized)
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
	})

	return func(c *gin.Context) {
		handler.HandlerFunc(c.Writer, c.Request)
		if c.Request.Method == http.MethodOptions &&
			c.GetHeader("Access-Control-Request-Method") != "" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
