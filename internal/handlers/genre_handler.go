package handlers

import (
	"catalog-backend/internal/services"
	"catalog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type GenreHandler struct {
	service services.GenreService
	logger  *logrus.Logger
}

func NewGenreHandler(service services.GenreService, logger *logrus.Logger) *GenreHandler {
	return &GenreHandler{
		service: service,
		logger:  logger,
	}
}

// ListGenres godoc
// @Summary List genres
// @Description List genres with search, sorting and pagination
// @Tags genres
// @Produce json
// @Param search query string false "Search by name"
// @Param sort query string false "Sort column (name, is_active, created_at)"
// @Param dir query string false "Sort direction, descending unless asc" default(desc)
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Param all query bool false "Return every row without paging"
// @Success 200 {object} utils.StandardResponse{data=[]GenreResource}
// @Failure 500 {object} utils.StandardResponse
// @Router /genres [get]
func (h *GenreHandler) ListGenres(c *fiber.Ctx) error {
	params := listParams(c)

	genres, total, err := h.service.List(c.Context(), params)
	if err != nil {
		return respondError(c, h.logger, err, "genre")
	}

	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Genres retrieved successfully",
		NewGenreResources(genres), listMeta(params, total))
}

// GetGenre godoc
// @Summary Get genre by ID
// @Tags genres
// @Produce json
// @Param id path string true "Genre ID"
// @Success 200 {object} utils.StandardResponse{data=GenreResource}
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /genres/{id} [get]
func (h *GenreHandler) GetGenre(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid genre ID")
	}

	genre, err := h.service.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "genre")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Genre retrieved successfully", NewGenreResource(*genre))
}

// CreateGenre godoc
// @Summary Create a genre
// @Tags genres
// @Accept json
// @Produce json
// @Param genre body GenreRequest true "Genre"
// @Success 201 {object} utils.StandardResponse{data=GenreResource}
// @Failure 400 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /genres [post]
func (h *GenreHandler) CreateGenre(c *fiber.Ctx) error {
	var req GenreRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	genre, err := h.service.Create(c.Context(), req.toInput())
	if err != nil {
		return respondError(c, h.logger, err, "genre")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Genre created successfully", NewGenreResource(*genre))
}

// UpdateGenre godoc
// @Summary Update a genre
// @Tags genres
// @Accept json
// @Produce json
// @Param id path string true "Genre ID"
// @Param genre body GenreRequest true "Genre"
// @Success 200 {object} utils.StandardResponse{data=GenreResource}
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /genres/{id} [put]
func (h *GenreHandler) UpdateGenre(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid genre ID")
	}

	var req GenreRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	genre, err := h.service.Update(c.Context(), id, req.toInput())
	if err != nil {
		return respondError(c, h.logger, err, "genre")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Genre updated successfully", NewGenreResource(*genre))
}

// DeleteGenre godoc
// @Summary Delete a genre
// @Description Soft-deletes the genre; existing associations keep referencing it
// @Tags genres
// @Param id path string true "Genre ID"
// @Success 204
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /genres/{id} [delete]
func (h *GenreHandler) DeleteGenre(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid genre ID")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return respondError(c, h.logger, err, "genre")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
