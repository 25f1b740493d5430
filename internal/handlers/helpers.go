package handlers

import (
	"errors"
	"strconv"
	"strings"

	"catalog-backend/internal/apperrors"
	"catalog-backend/internal/repository"
	"catalog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

func listParams(c *fiber.Ctx) repository.ListParams {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	perPage, _ := strconv.Atoi(c.Query("per_page", strconv.Itoa(repository.DefaultPerPage)))
	all, _ := strconv.ParseBool(c.Query("all", "false"))

	return repository.ListParams{
		Page:    page,
		PerPage: perPage,
		Search:  c.Query("search", ""),
		Sort:    c.Query("sort", ""),
		Dir:     c.Query("dir"),
		All:     all,
	}
}

func listMeta(params repository.ListParams, total int64) utils.PaginationMeta {
	if params.All {
		return utils.CreatePaginationMeta(1, int(total), total)
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 {
		params.PerPage = repository.DefaultPerPage
	}
	if params.PerPage > 100 {
		params.PerPage = 100
	}
	return utils.CreatePaginationMeta(params.Page, params.PerPage, total)
}

// respondError renders err with the status of its kind.
func respondError(c *fiber.Ctx, logger *logrus.Logger, err error, resource string) error {
	var (
		verr *apperrors.ValidationError
		cerr *apperrors.ConstraintViolationError
	)
	switch {
	case errors.As(err, &verr):
		return utils.ValidationErrorResponse(c, verr.Fields)
	case errors.Is(err, apperrors.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, strings.ToUpper(resource[:1])+resource[1:]+" not found")
	case errors.As(err, &cerr):
		logger.WithError(err).WithField("resource", resource).Warn("Constraint violation")
		return utils.ErrorWithDataResponse(c, fiber.StatusConflict, "The request conflicts with stored "+resource+" data", fiber.Map{
			"table":  cerr.Table,
			"detail": cerr.Detail,
		})
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"resource": resource,
		"method":   c.Method(),
		"path":     c.Path(),
	}).Error("Request failed")
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process "+resource)
}
