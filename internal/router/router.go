package router

import (
	"mekanlist/internal/handlers"
	"mekanlist/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	collectionHandler := handlers.NewCollectionHandler()
	placeHandler := handlers.NewPlaceHandler()
	voteHandler := handlers.NewVoteHandler()
	leaderboardHandler := handlers.NewLeaderboardHandler()
	taxonomyHandler := handlers.NewTaxonomyHandler()

	// Public Routes
	r.GET("/", leaderboardHandler.Places)                    // places leaderboard
	r.GET("/collections", leaderboardHandler.Collections)    // collections leaderboard
	r.GET("/collections/:slug", collectionHandler.Detail)    // collection detail with ordered places
	r.GET("/places/search", placeHandler.Search)             // lookup autocomplete proxy
	r.GET("/places/details", placeHandler.Details)           // lookup metadata proxy
	r.GET("/places/:slug", placeHandler.Detail)              // place detail
	r.GET("/categories", taxonomyHandler.Categories)         // category taxonomy
	r.GET("/locations", taxonomyHandler.Locations)           // city taxonomy

	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.GET("/me", authHandler.Me)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/collections", collectionHandler.Create)        // create collection
		authorized.PUT("/collections/:slug", collectionHandler.Update)   // edit (creator only)
		authorized.DELETE("/collections/:slug", collectionHandler.Delete)
		authorized.GET("/my/collections", collectionHandler.Mine)

		authorized.POST("/vote/:type/:id", voteHandler.Vote)          // upvote place/collection
		authorized.POST("/vote/:type/:id/down", voteHandler.Downvote) // downvote
	}
}
