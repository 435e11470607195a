package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"nearby/internal/services"
)

// Context keys for the IP-derived fallback position. Absent when the
// lookup fails; a failed lookup is not an error by itself.
const (
	GeoLatitudeKey  = "geo_latitude"
	GeoLongitudeKey = "geo_longitude"
)

// LocationMiddleware attaches an approximate position derived from the
// client address. Handlers use it only when the request carries no
// explicit coordinates.
func LocationMiddleware(resolver services.LocationResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := clientIP(c)
		if ip != "" {
			if lat, lon, err := resolver.ResolveIP(c.Request.Context(), ip); err == nil {
				c.Set(GeoLatitudeKey, lat)
				c.Set(GeoLongitudeKey, lon)
			}
		}
		c.Next()
	}
}

func clientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	return c.ClientIP()
}
