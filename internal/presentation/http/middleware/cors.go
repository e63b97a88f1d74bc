// Package middleware provides shared gin middleware for the HTTP layer.
package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appconfig "github.com/PixelcraftStudio/pixelcraft-go/pkg/config"
)

// CORSMiddleware applies the configured origin allow-list.
func CORSMiddleware() gin.HandlerFunc {
	config := cors.Config{
		AllowOrigins: appconfig.CORSAllowedOrigins,
		AllowMethods: []string{
			"GET", "POST", "PUT", "DELETE", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization",
			"X-Requested-With", "Cache-Control",
		},
		AllowCredentials: true,
		ExposeHeaders: []string{
			"Content-Type", "Cache-Control", "Connection",
		},
	}

	return cors.New(config)
}
