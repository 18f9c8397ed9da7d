package server

import (
	auction "auction-house/internal/auctionService"
	handler "auction-house/services/status/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures the gin routes for the read-only status API.
func SetupRouter(engine *auction.Engine) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	statusHandler := handler.NewStatusHandler(engine)

	router.GET("/healthz", statusHandler.HealthHandler)

	auctions := router.Group("/auctions")
	{
		auctions.GET("", statusHandler.ListAuctionsHandler)
		auctions.GET("/:auction_id", statusHandler.GetAuctionHandler)
	}

	users := router.Group("/users")
	{
		users.GET("", statusHandler.ListUsersHandler)
	}

	return router
}
