package handlers

import (
	"strings"

	"catalog-backend/internal/models"
	"catalog-backend/internal/services"
	"catalog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type VideoHandler struct {
	service services.VideoService
	logger  *logrus.Logger
}

func NewVideoHandler(service services.VideoService, logger *logrus.Logger) *VideoHandler {
	return &VideoHandler{
		service: service,
		logger:  logger,
	}
}

func (h *VideoHandler) resource(video *models.Video) VideoResource {
	return NewVideoResource(video, h.service.FileURL)
}

// ListVideos godoc
// @Summary List videos
// @Description List videos with search, sorting and pagination
// @Tags videos
// @Produce json
// @Param search query string false "Search by title"
// @Param sort query string false "Sort column (title, release_at, classification, updated_at)"
// @Param dir query string false "Sort direction, descending unless asc" default(desc)
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Param all query bool false "Return every row without paging"
// @Success 200 {object} utils.StandardResponse{data=[]VideoResource}
// @Failure 500 {object} utils.StandardResponse
// @Router /videos [get]
func (h *VideoHandler) ListVideos(c *fiber.Ctx) error {
	params := listParams(c)

	videos, total, err := h.service.List(c.Context(), params)
	if err != nil {
		return respondError(c, h.logger, err, "video")
	}

	data := make([]VideoResource, 0, len(videos))
	for i := range videos {
		data = append(data, h.resource(&videos[i]))
	}

	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Videos retrieved successfully", data, listMeta(params, total))
}

// GetVideo godoc
// @Summary Get video by ID
// @Description Returns the video with its categories, genres and cast members, soft-deleted ones included
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} utils.StandardResponse{data=VideoResource}
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /videos/{id} [get]
func (h *VideoHandler) GetVideo(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid video ID")
	}

	video, err := h.service.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "video")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Video retrieved successfully", h.resource(video))
}

// CreateVideo godoc
// @Summary Create a video
// @Description Accepts JSON or multipart/form-data; multipart requests may carry video, banner, trailer and thumbnail files
// @Tags videos
// @Accept json,mpfd
// @Produce json
// @Param video body VideoRequest true "Video"
// @Success 201 {object} utils.StandardResponse{data=VideoResource}
// @Failure 400 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /videos [post]
func (h *VideoHandler) CreateVideo(c *fiber.Ctx) error {
	input, err := h.parseInput(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	video, err := h.service.Create(c.Context(), input)
	if err != nil {
		return respondError(c, h.logger, err, "video")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Video created successfully", h.resource(video))
}

// UpdateVideo godoc
// @Summary Update a video
// @Description Replaces scalar fields and relation sets; uploaded files supersede the stored ones
// @Tags videos
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Video ID"
// @Param video body VideoRequest true "Video"
// @Success 200 {object} utils.StandardResponse{data=VideoResource}
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /videos/{id} [put]
func (h *VideoHandler) UpdateVideo(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid video ID")
	}

	input, err := h.parseInput(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	video, err := h.service.Update(c.Context(), id, input)
	if err != nil {
		return respondError(c, h.logger, err, "video")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Video updated successfully", h.resource(video))
}

// DeleteVideo godoc
// @Summary Delete a video
// @Tags videos
// @Param id path string true "Video ID"
// @Success 204
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /videos/{id} [delete]
func (h *VideoHandler) DeleteVideo(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid video ID")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return respondError(c, h.logger, err, "video")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *VideoHandler) parseInput(c *fiber.Ctx) (services.VideoInput, error) {
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return services.VideoInput{}, err
		}
		req, files := videoRequestFromForm(form)
		input := req.toInput()
		input.Files = files
		return input, nil
	}

	var req VideoRequest
	if err := c.BodyParser(&req); err != nil {
		return services.VideoInput{}, err
	}
	return req.toInput(), nil
}
