package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SameOrigin rejects state-changing requests whose Origin, or Referer when
// Origin is absent, names a host other than the one being served. Requests
// with neither header pass, since browsers send Origin on cross-site posts.
func SameOrigin() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		source := c.GetHeader("Origin")
		if source == "" {
			source = c.GetHeader("Referer")
		}
		if source == "" || sameHost(source, c.Request.Host) {
			c.Next()
			return
		}

		log.Ctx(c.Request.Context()).Warn().
			Str("source", source).
			Str("path", c.Request.URL.Path).
			Msg("cross-site request refused")
		c.String(http.StatusForbidden, "Cross-site request refused")
		c.Abort()
	}
}

func sameHost(rawURL, host string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	return strings.EqualFold(parsed.Host, host)
}
