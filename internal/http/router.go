package api

import (
	"log"
	stdhttp "net/http"

	intconfig "busyatra/internal/config"
	h "busyatra/internal/http/handlers"
	"busyatra/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env, a *h.API) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"code":   "not_found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", a.Health)
		api.GET("/routes", a.Routes)
		api.GET("/metrics", gin.WrapH(promhttp.Handler()))

		buses := api.Group("/buses")
		buses.GET("", a.SearchBuses)
		buses.GET("/:id", a.GetBus)

		selections := api.Group("/selections")
		selections.POST("", a.OpenSelection)
		selections.GET("/:id", a.GetSelection)
		selections.POST("/:id/seats/:index/toggle", a.ToggleSeat)
		selections.DELETE("/:id", a.CloseSelection)

		bookings := api.Group("/bookings")
		bookings.POST("", a.CreateBooking)
		bookings.GET("", a.ListBookings)
		bookings.GET("/stats", a.BookingStats)
		bookings.GET("/:id", a.GetBooking)
		bookings.GET("/:id/cancellation", a.CancellationQuote)
		bookings.POST("/:id/cancel", a.CancelBooking)

		api.GET("/search-history", a.ListSearchHistory)
		api.POST("/search-history", a.SaveSearch)
		api.GET("/preferences", a.GetPreferences)
		api.PUT("/preferences", a.UpdatePreferences)
		api.GET("/passenger-draft", a.GetPassengerDraft)
		api.PUT("/passenger-draft", a.SavePassengerDraft)
		api.DELETE("/data", a.ClearData)
	}

	a.SetRouter(r)
	return r
}
