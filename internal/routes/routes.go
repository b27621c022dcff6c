package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/readcircle/readcircle-server/internal/config"
	"github.com/readcircle/readcircle-server/internal/handlers"
	"github.com/readcircle/readcircle-server/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	friendshipHandler *handlers.FriendshipHandler,
	readingHandler *handlers.ReadingHandler,
	libraryHandler *handlers.LibraryHandler,
	profileHandler *handlers.ProfileHandler,
	reportHandler *handlers.ReportHandler,
) {
	api := app.Group("/api")

	// Health (public)
	api.Get("/health", healthHandler.Check)

	// Auth — public
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected auth routes
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Everything below requires a verified actor
	protected := api.Group("", middleware.JWTProtected(cfg))

	// Friendships: one action endpoint plus the paginated lists
	protected.Post("/friends", friendshipHandler.Dispatch)
	protected.Get("/friends", friendshipHandler.ListFriends)
	protected.Get("/friends/requests/received", friendshipHandler.ListReceived)
	protected.Get("/friends/requests/sent", friendshipHandler.ListSent)

	// Reading records
	protected.Get("/readings", readingHandler.List)
	protected.Get("/readings/:id", readingHandler.GetOne)
	protected.Post("/readings", libraryHandler.Upsert)
	protected.Delete("/readings/:id", libraryHandler.Delete)

	// Quotes and reviews scoped to a reading log
	protected.Post("/readings/:id/quotes", libraryHandler.CreateQuote)
	protected.Put("/quotes/:id", libraryHandler.UpdateQuote)
	protected.Delete("/quotes/:id", libraryHandler.DeleteQuote)
	protected.Post("/readings/:id/reviews", libraryHandler.CreateReview)
	protected.Put("/reviews/:id", libraryHandler.UpdateReview)
	protected.Delete("/reviews/:id", libraryHandler.DeleteReview)

	// Profiles
	protected.Get("/profiles/me", profileHandler.GetOwn)
	protected.Put("/profiles/me", profileHandler.UpdateOwn)
	protected.Get("/profiles/:id", profileHandler.Get)

	// Reports
	protected.Post("/reports", reportHandler.Create)

	// Admin moderation panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/reports", reportHandler.List)
	admin.Put("/reports/:id", reportHandler.Action)
}
