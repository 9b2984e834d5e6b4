package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// The relay only answers JSON, so nothing it returns should load content
// or be framed.
const apiCSP = "default-src 'none'; frame-ancestors 'none'"

// The swagger UI page ships an inline bootstrap script and inline styles.
const swaggerCSP = "default-src 'self'; script-src 'self' 'unsafe-inline'; " +
	"style-src 'self' 'unsafe-inline'; img-src 'self' data:; frame-ancestors 'none'"

const hstsValue = "max-age=63072000; includeSubDomains"

// SecurityHeadersMiddleware sets the headers shared by every relay response.
// HSTS is only sent when the request reached us over HTTPS, directly or
// through the proxy in front of the service.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", apiCSP)

		if isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hstsValue)
		}

		// Submissions carry personal details
		if c.Request.Method == http.MethodPost {
			h.Set("Cache-Control", "no-store")
		}

		c.Next()
	}
}

// SwaggerUIHeaders relaxes the CSP for the API docs, the only HTML served.
func SwaggerUIHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", swaggerCSP)
		c.Header("X-Frame-Options", "DENY")
		c.Next()
	}
}

func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
