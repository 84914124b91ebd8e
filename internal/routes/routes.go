package routes

import (
	"streamhub-backend/internal/handlers"
	"streamhub-backend/internal/middleware"
	"streamhub-backend/internal/models"
	"streamhub-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Accounts   *handlers.AccountHandler
	Categories *handlers.CategoryHandler
	Movies     *handlers.MovieHandler
	Series     *handlers.SeriesHandler
	Profiles   *handlers.ProfileHandler
	Activity   *handlers.ActivityHandler
	Uploads    *handlers.UploadHandler
}

func Setup(app *fiber.App, h Handlers, tokens *services.TokenService) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	auth := middleware.RequireAuth(tokens)
	admin := middleware.RequireRole(models.RoleAdmin)

	accounts := v1.Group("/accounts")
	{
		accounts.Post("/register", h.Accounts.Register)
		accounts.Post("/authenticate", h.Accounts.Authenticate)
		accounts.Post("/profiles/select", auth, h.Accounts.SelectProfile)
	}

	// Catalog reads are public; mutations require the admin role.
	categories := v1.Group("/categories")
	{
		categories.Get("/", h.Categories.List)
		categories.Get("/:id", h.Categories.GetByID)
		categories.Post("/", auth, admin, h.Categories.Create)
		categories.Put("/:id", auth, admin, h.Categories.Update)
		categories.Delete("/:id", auth, admin, h.Categories.Delete)
	}

	movies := v1.Group("/movies")
	{
		movies.Get("/", h.Movies.List)
		movies.Get("/:id", h.Movies.GetByID)
		movies.Post("/", auth, admin, h.Movies.Create)
		movies.Put("/:id", auth, admin, h.Movies.Update)
		movies.Delete("/:id", auth, admin, h.Movies.Delete)
	}

	series := v1.Group("/series")
	{
		series.Get("/", h.Series.List)
		series.Get("/:id", h.Series.GetByID)
		series.Post("/", auth, admin, h.Series.Create)
		series.Put("/:id", auth, admin, h.Series.Update)
		series.Delete("/:id", auth, admin, h.Series.Delete)
		series.Get("/:id/episodes", h.Series.ListEpisodes)
		series.Post("/:id/episodes", auth, admin, h.Series.CreateEpisode)
	}
	v1.Delete("/episodes/:id", auth, admin, h.Series.DeleteEpisode)

	profiles := v1.Group("/profiles", auth)
	{
		profiles.Get("/", h.Profiles.List)
		profiles.Get("/:id", h.Profiles.GetByID)
		profiles.Post("/", h.Profiles.Create)
		profiles.Put("/:id", h.Profiles.Update)
		profiles.Delete("/:id", h.Profiles.Delete)

		profiles.Get("/:id/bookmarks", h.Activity.ListBookmarks)
		profiles.Post("/:id/bookmarks", h.Activity.AddBookmark)
		profiles.Delete("/:id/bookmarks/:movieId", h.Activity.RemoveBookmark)
		profiles.Get("/:id/watched", h.Activity.ListWatched)
		profiles.Post("/:id/watched", h.Activity.MarkWatched)
	}

	uploads := v1.Group("/uploads", auth, admin)
	{
		uploads.Post("/", h.Uploads.Upload)
		uploads.Get("/presign", h.Uploads.Presign)
	}
}
