package handlers

import (
	"catalog-backend/internal/services"
	"catalog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	service services.CategoryService
	logger  *logrus.Logger
}

func NewCategoryHandler(service services.CategoryService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger,
	}
}

// ListCategories godoc
// @Summary List categories
// @Description List categories with search, sorting and pagination
// @Tags categories
// @Produce json
// @Param search query string false "Search by name"
// @Param sort query string false "Sort column (name, is_active, created_at)"
// @Param dir query string false "Sort direction, descending unless asc" default(desc)
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Param all query bool false "Return every row without paging"
// @Success 200 {object} utils.StandardResponse{data=[]CategoryResource}
// @Failure 500 {object} utils.StandardResponse
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	params := listParams(c)

	categories, total, err := h.service.List(c.Context(), params)
	if err != nil {
		return respondError(c, h.logger, err, "category")
	}

	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Categories retrieved successfully",
		NewCategoryResources(categories), listMeta(params, total))
}

// GetCategory godoc
// @Summary Get category by ID
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} utils.StandardResponse{data=CategoryResource}
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	category, err := h.service.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "category")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Category retrieved successfully", NewCategoryResource(*category))
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body CategoryRequest true "Category"
// @Success 201 {object} utils.StandardResponse{data=CategoryResource}
// @Failure 400 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	category, err := h.service.Create(c.Context(), req.toInput())
	if err != nil {
		return respondError(c, h.logger, err, "category")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Category created successfully", NewCategoryResource(*category))
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body CategoryRequest true "Category"
// @Success 200 {object} utils.StandardResponse{data=CategoryResource}
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	category, err := h.service.Update(c.Context(), id, req.toInput())
	if err != nil {
		return respondError(c, h.logger, err, "category")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Category updated successfully", NewCategoryResource(*category))
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Soft-deletes the category; existing associations keep referencing it
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return respondError(c, h.logger, err, "category")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
