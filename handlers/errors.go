package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/sms-relay/internal/domain"
	"github.com/onurcolak/sms-relay/pkg/logger"
	"github.com/onurcolak/sms-relay/pkg/response"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrAlreadyShared), errors.Is(err, domain.ErrSelfShare):
		return response.Conflict(c, err)
	case errors.Is(err, domain.ErrInvalidFormat):
		return response.UnprocessableEntity(c, err)
	case errors.Is(err, domain.ErrExternalService):
		// Carrier details stay in the log.
		logger.Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
		return response.BadGateway(c, domain.ErrExternalService)
	default:
		logger.Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
		return response.InternalServerError(c, err)
	}
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

func parsePaginationParams(c echo.Context) (int, int, error) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)

	page := defaultPage
	if pageStr := c.QueryParam("page"); pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p <= 0 {
			return 0, 0, fmt.Errorf("page must be a positive integer")
		}
		page = p
	}

	pageSize := defaultPageSize
	if pageSizeStr := c.QueryParam("pageSize"); pageSizeStr != "" {
		ps, err := strconv.Atoi(pageSizeStr)
		if err != nil || ps <= 0 || ps > maxPageSize {
			return 0, 0, fmt.Errorf("pageSize must be between 1 and %d", maxPageSize)
		}
		pageSize = ps
	}

	return page, pageSize, nil
}
