package routes

import (
	"catalog-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Category   *handlers.CategoryHandler
	Genre      *handlers.GenreHandler
	CastMember *handlers.CastMemberHandler
	Video      *handlers.VideoHandler
	Upload     *handlers.UploadHandler
}

func Setup(app *fiber.App, h Handlers) {
	// API versioning
	api := app.Group("/api")
	v1 := api.Group("/v1")

	categories := v1.Group("/categories")
	{
		categories.Get("/", h.Category.ListCategories)
		categories.Get("/:id", h.Category.GetCategory)
		categories.Post("/", h.Category.CreateCategory)
		categories.Put("/:id", h.Category.UpdateCategory)
		categories.Delete("/:id", h.Category.DeleteCategory)
	}

	genres := v1.Group("/genres")
	{
		genres.Get("/", h.Genre.ListGenres)
		genres.Get("/:id", h.Genre.GetGenre)
		genres.Post("/", h.Genre.CreateGenre)
		genres.Put("/:id", h.Genre.UpdateGenre)
		genres.Delete("/:id", h.Genre.DeleteGenre)
	}

	castMembers := v1.Group("/cast-members")
	{
		castMembers.Get("/", h.CastMember.ListCastMembers)
		castMembers.Get("/:id", h.CastMember.GetCastMember)
		castMembers.Post("/", h.CastMember.CreateCastMember)
		castMembers.Put("/:id", h.CastMember.UpdateCastMember)
		castMembers.Delete("/:id", h.CastMember.DeleteCastMember)
	}

	videos := v1.Group("/videos")
	{
		videos.Get("/", h.Video.ListVideos)
		videos.Get("/:id", h.Video.GetVideo)
		videos.Post("/", h.Video.CreateVideo)
		videos.Put("/:id", h.Video.UpdateVideo)
		videos.Delete("/:id", h.Video.DeleteVideo)
	}

	if h.Upload != nil {
		upload := v1.Group("/upload")
		{
			upload.Get("/presign", h.Upload.GetPresignedURL)
		}
	}
}
