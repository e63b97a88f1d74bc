// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/application/container"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/presentation/http/handlers"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/presentation/http/middleware"
	"github.com/PixelcraftStudio/pixelcraft-go/pkg/config"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(c *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Uploaded article assets are served straight off disk.
	r.Static("/media", config.MediaRoot)

	analyticsHandlers := handlers.NewAnalyticsHandlers(c.EventService, c.DashboardService, c.HeatmapService, c.Logger)
	articleHandlers := handlers.NewArticleHandlers(c.ArticleService, c.Logger)
	directoryHandlers := handlers.NewDirectoryHandlers(c.DirectoryService, c.Logger)
	chatHandlers := handlers.NewChatHandlers(c.ChatService, c.Logger)
	contactHandlers := handlers.NewContactHandlers(c.ContactService, c.Logger)
	authHandlers := handlers.NewAuthHandlers(c.AuthService, c.Logger)

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authHandlers.Login)
		auth.GET("/status", authHandlers.Status)
	}

	analytics := r.Group("/api/analytics")
	{
		analytics.POST("/pageview", analyticsHandlers.PostPageView)
		analytics.POST("/click", analyticsHandlers.PostClick)
		analytics.POST("/hover", analyticsHandlers.PostHover)
		analytics.POST("/like", analyticsHandlers.PostLike)
		analytics.GET("/likes", analyticsHandlers.GetLikes)
		analytics.GET("/heatmap", analyticsHandlers.GetHeatmap)

		analytics.GET("/dashboard", middleware.AdminAuth(c.AuthService), analyticsHandlers.GetDashboard)
	}

	admin := middleware.AdminAuth(c.AuthService)

	articles := r.Group("/api/articles")
	{
		articles.GET("", articleHandlers.List)
		articles.GET("/:id", articleHandlers.Get)
		articles.POST("", admin, articleHandlers.Create)
		articles.PUT("/order", admin, articleHandlers.Reorder)
		articles.PUT("/featured", admin, articleHandlers.SetFeatured)
		articles.PUT("/:id", admin, articleHandlers.Update)
		articles.DELETE("/:id", admin, articleHandlers.Delete)
		articles.POST("/:id/media", admin, articleHandlers.AttachMedia)
	}

	tags := r.Group("/api/tags")
	{
		tags.GET("", directoryHandlers.ListTags)
		tags.POST("", admin, directoryHandlers.CreateTag)
		tags.PUT("/order", admin, directoryHandlers.ReorderTags)
		tags.PUT("/:id", admin, directoryHandlers.UpdateTag)
		tags.DELETE("/:id", admin, directoryHandlers.DeleteTag)
	}

	partners := r.Group("/api/partners")
	{
		partners.GET("", directoryHandlers.ListPartners)
		partners.POST("", admin, directoryHandlers.CreatePartner)
		partners.PUT("/order", admin, directoryHandlers.ReorderPartners)
		partners.PUT("/:id", admin, directoryHandlers.UpdatePartner)
		partners.DELETE("/:id", admin, directoryHandlers.DeletePartner)
	}

	team := r.Group("/api/team")
	{
		team.GET("", directoryHandlers.ListTeamMembers)
		team.POST("", admin, directoryHandlers.CreateTeamMember)
		team.PUT("/order", admin, directoryHandlers.ReorderTeamMembers)
		team.PUT("/:id", admin, directoryHandlers.UpdateTeamMember)
		team.DELETE("/:id", admin, directoryHandlers.DeleteTeamMember)
	}

	servicesGroup := r.Group("/api/services")
	{
		servicesGroup.GET("", directoryHandlers.ListServices)
		servicesGroup.POST("", admin, directoryHandlers.CreateService)
		servicesGroup.PUT("/order", admin, directoryHandlers.ReorderServices)
		servicesGroup.PUT("/:id", admin, directoryHandlers.UpdateService)
		servicesGroup.DELETE("/:id", admin, directoryHandlers.DeleteService)
	}

	technologies := r.Group("/api/technologies")
	{
		technologies.GET("", directoryHandlers.ListTechnologies)
		technologies.POST("", admin, directoryHandlers.CreateTechnology)
		technologies.PUT("/order", admin, directoryHandlers.ReorderTechnologies)
		technologies.PUT("/:id", admin, directoryHandlers.UpdateTechnology)
		technologies.DELETE("/:id", admin, directoryHandlers.DeleteTechnology)
	}

	faqs := r.Group("/api/faqs")
	{
		faqs.GET("", directoryHandlers.ListFAQs)
		faqs.POST("", admin, directoryHandlers.CreateFAQ)
		faqs.PUT("/order", admin, directoryHandlers.ReorderFAQs)
		faqs.PUT("/:id", admin, directoryHandlers.UpdateFAQ)
		faqs.DELETE("/:id", admin, directoryHandlers.DeleteFAQ)
	}

	r.POST("/api/chat", chatHandlers.PostMessage)
	r.POST("/api/contact", contactHandlers.PostMessage)

	return r
}
