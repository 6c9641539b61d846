package api

import (
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"busbackend/internal/config"
	"busbackend/internal/domain"
	h "busbackend/internal/http/handlers"
	"busbackend/internal/http/middleware"
	"busbackend/internal/logger"
	"busbackend/internal/repositories"
)

// NewRouter wires middleware, auth and the API surface around the handlers.
func NewRouter(env config.Env, log logger.Logger, handlers *h.Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn("failed to set trusted proxies", "error", err.Error())
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	userRepo := repositories.UserRepository{DB: handlers.DB}
	authed := middleware.AuthRequired([]byte(env.JWTSecret), userRepo)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health)
		api.GET("/db-check", handlers.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", handlers.Login)

		routes := api.Group("/routes", authed)
		routes.GET("", handlers.ListRoutes)
		routes.GET("/:id", handlers.GetRoute)
		routes.GET("/:id/seats", handlers.GetBookedSeats)
		routes.POST("", adminOnly, handlers.CreateRoute)
		routes.PUT("/:id", adminOnly, handlers.UpdateRoute)
		routes.DELETE("/:id", adminOnly, handlers.DeleteRoute)

		bookings := api.Group("/bookings", authed)
		bookings.POST("", middleware.RequireRoles(domain.RoleCounter), handlers.CreateBooking)
		bookings.GET("", handlers.MyBookings)
		bookings.GET("/search", adminOnly, handlers.SearchBookings)
		bookings.GET("/:id", handlers.GetBooking)
		bookings.GET("/:id/ticket", handlers.GetBookingTicket)
		bookings.PUT("/:id/cancel", handlers.CancelBooking)
		bookings.DELETE("/:id", adminOnly, handlers.DeleteBooking)

		users := api.Group("/users", authed)
		users.GET("/profile", handlers.Profile)
		users.PUT("/profile", handlers.UpdateProfile)
		users.PUT("/change-password", handlers.ChangePassword)
		users.GET("/counters", adminOnly, handlers.ListCounters)
		users.POST("/counters", adminOnly, handlers.CreateCounter)
		users.PUT("/counters/:id", adminOnly, handlers.EditCounter)
		users.PUT("/counters/:id/toggle-block", adminOnly, handlers.ToggleCounterBlock)
		users.DELETE("/counters/:id", adminOnly, handlers.DeleteCounter)
	}

	return r
}
