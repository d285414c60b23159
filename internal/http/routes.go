package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Praveenkumarspk1/blog-wise/internal/ws"
)

// SetupRoutes configures all application routes and middleware.
func SetupRoutes(router *gin.Engine, env *Env, corsOrigin string) {

	// --- Middleware ---

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	// CORS Middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// --- Rate Limiter Setup ---
	limiter := NewIPRateLimiter(rate.Limit(rateLimitRPS), rateLimitBurst)
	go func() {
		for {
			time.Sleep(10 * time.Minute)
			limiter.mu.Lock()
			for ip, v := range limiter.visitors {
				if v.Allow() {
					// Idle limiter; drop it so the map doesn't grow forever.
					delete(limiter.visitors, ip)
				}
			}
			limiter.mu.Unlock()
		}
	}()

	authRequired := AuthRequired(env.DB)
	optionalAuth := OptionalAuth(env.DB)
	rateLimited := RateLimitMiddleware(limiter)

	// --- API Routes ---

	api := router.Group("/api")
	{
		api.POST("/auth/signup", env.Signup)
		api.POST("/auth/login", env.Login)
		api.GET("/auth/me", authRequired, env.GetMe)
		api.PATCH("/profile", authRequired, env.UpdateProfile)

		api.GET("/posts", env.ListPublicPosts)
		api.GET("/posts/slug/:slug", optionalAuth, env.GetPostBySlug)
		api.POST("/posts", authRequired, rateLimited, env.CreatePost)
		api.PATCH("/posts/:id", authRequired, env.UpdatePost)
		api.DELETE("/posts/:id", authRequired, env.DeletePost)
		api.GET("/users/:id/posts", optionalAuth, env.ListPostsByAuthor)

		api.POST("/users/:id/follow", authRequired, env.RequestFollow)
		api.DELETE("/users/:id/follow", authRequired, env.Unfollow)
		api.POST("/follow-requests/:id", authRequired, env.RespondToFollow)
		api.GET("/follow-requests", authRequired, env.ListPendingRequests)
		api.GET("/following", authRequired, env.ListFollowing)
		api.GET("/followers", authRequired, env.ListFollowers)

		api.GET("/notifications", authRequired, env.ListNotifications)
		api.POST("/notifications/:id/read", authRequired, env.MarkNotificationRead)
		api.POST("/notifications/read-all", authRequired, env.MarkAllNotificationsRead)

		ai := api.Group("/assistant", authRequired, rateLimited)
		{
			ai.POST("/summarize", env.Summarize)
			ai.POST("/ideas", env.GenerateIdeas)
			ai.POST("/improve", env.ImproveContent)
			ai.POST("/keywords", env.GenerateKeywords)
			ai.POST("/seo", env.OptimizeSEO)
			ai.POST("/chat", env.Chat)
		}
	}

	// --- WebSocket Route ---

	router.GET("/ws", func(c *gin.Context) {
		ws.ServeWs(env.Hub, c.Writer, c.Request)
	})
}
