package middleware

import (
	"net/http"
	"strings"

	"easein-studio-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware adds CORS headers for cross-origin requests from the site.
// allowed holds exact origins; "*" allows any origin, which is what the
// static site has always relied on.
//
// Preflight is answered here with 200 and a success envelope whatever the
// origin or body. Browsers still refuse disallowed origins because no
// Allow-Origin header is sent for them.
func CORSMiddleware(allowed []string) gin.HandlerFunc {
	anyOrigin := false
	origins := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			anyOrigin = true
			continue
		}
		origins[strings.TrimRight(o, "/")] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		switch {
		case anyOrigin:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && origins[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			// Vary header to ensure caches differentiate by Origin
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, X-Requested-With, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400") // 24 hours

		if c.Request.Method == http.MethodOptions {
			response.Success(c, http.StatusOK, "CORS preflight OK", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
