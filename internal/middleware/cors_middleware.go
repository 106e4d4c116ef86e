package middleware

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// The panel frontend and local dev hosts. CORS_ALLOWED_HOSTS (comma list)
// extends the set per deployment.
var defaultAllowedHosts = []string{
	"localhost:3000",
	"127.0.0.1:3000",
	"admin.netindo.co.id",
	"netindo.co.id",
	"www.netindo.co.id",
}

func allowedHostSet() map[string]bool {
	hosts := make(map[string]bool, len(defaultAllowedHosts))
	for _, h := range defaultAllowedHosts {
		hosts[h] = true
	}
	for _, h := range strings.Split(os.Getenv("CORS_ALLOWED_HOSTS"), ",") {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			hosts[h] = true
		}
	}
	return hosts
}

// originHost extracts the host from an Origin value, dropping the default
// https/http ports so "admin.netindo.co.id:443" matches the bare host.
func originHost(raw string) string {
	u, err := url.Parse(strings.TrimSpace(strings.TrimSuffix(raw, "/")))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Host)
	if h, port, ok := strings.Cut(host, ":"); ok && (port == "443" || port == "80") {
		return h
	}
	return host
}

// CORSMiddleware allows the panel frontend origins and answers preflight
// requests.
func CORSMiddleware() gin.HandlerFunc {
	allowed := allowedHostSet()

	return func(c *gin.Context) {
		origin := strings.TrimSpace(strings.TrimSuffix(c.GetHeader("Origin"), "/"))
		if origin != "" && allowed[originHost(origin)] {
			c.Header("Access-Control-Allow-Origin", origin)
		}

		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
