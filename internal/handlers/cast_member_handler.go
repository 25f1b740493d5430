package handlers

import (
	"catalog-backend/internal/services"
	"catalog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CastMemberHandler struct {
	service services.CastMemberService
	logger  *logrus.Logger
}

func NewCastMemberHandler(service services.CastMemberService, logger *logrus.Logger) *CastMemberHandler {
	return &CastMemberHandler{
		service: service,
		logger:  logger,
	}
}

// ListCastMembers godoc
// @Summary List cast members
// @Description List cast members with search, sorting and pagination
// @Tags cast-members
// @Produce json
// @Param search query string false "Search by name"
// @Param sort query string false "Sort column (name, role, created_at)"
// @Param dir query string false "Sort direction, descending unless asc" default(desc)
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Param all query bool false "Return every row without paging"
// @Success 200 {object} utils.StandardResponse{data=[]CastMemberResource}
// @Failure 500 {object} utils.StandardResponse
// @Router /cast-members [get]
func (h *CastMemberHandler) ListCastMembers(c *fiber.Ctx) error {
	params := listParams(c)

	members, total, err := h.service.List(c.Context(), params)
	if err != nil {
		return respondError(c, h.logger, err, "cast member")
	}

	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Cast members retrieved successfully",
		NewCastMemberResources(members), listMeta(params, total))
}

// GetCastMember godoc
// @Summary Get cast member by ID
// @Tags cast-members
// @Produce json
// @Param id path string true "Cast member ID"
// @Success 200 {object} utils.StandardResponse{data=CastMemberResource}
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /cast-members/{id} [get]
func (h *CastMemberHandler) GetCastMember(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid cast member ID")
	}

	member, err := h.service.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "cast member")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Cast member retrieved successfully", NewCastMemberResource(*member))
}

// CreateCastMember godoc
// @Summary Create a cast member
// @Tags cast-members
// @Accept json
// @Produce json
// @Param cast_member body CastMemberRequest true "Cast member"
// @Success 201 {object} utils.StandardResponse{data=CastMemberResource}
// @Failure 400 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /cast-members [post]
func (h *CastMemberHandler) CreateCastMember(c *fiber.Ctx) error {
	var req CastMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	member, err := h.service.Create(c.Context(), req.toInput())
	if err != nil {
		return respondError(c, h.logger, err, "cast member")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Cast member created successfully", NewCastMemberResource(*member))
}

// UpdateCastMember godoc
// @Summary Update a cast member
// @Tags cast-members
// @Accept json
// @Produce json
// @Param id path string true "Cast member ID"
// @Param cast_member body CastMemberRequest true "Cast member"
// @Success 200 {object} utils.StandardResponse{data=CastMemberResource}
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /cast-members/{id} [put]
func (h *CastMemberHandler) UpdateCastMember(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid cast member ID")
	}

	var req CastMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	member, err := h.service.Update(c.Context(), id, req.toInput())
	if err != nil {
		return respondError(c, h.logger, err, "cast member")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Cast member updated successfully", NewCastMemberResource(*member))
}

// DeleteCastMember godoc
// @Summary Delete a cast member
// @Description Soft-deletes the cast member; existing associations keep referencing it
// @Tags cast-members
// @Param id path string true "Cast member ID"
// @Success 204
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /cast-members/{id} [delete]
func (h *CastMemberHandler) DeleteCastMember(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid cast member ID")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return respondError(c, h.logger, err, "cast member")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
