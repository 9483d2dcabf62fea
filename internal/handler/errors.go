package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/myrsple/rezervace-sub000/internal/service"
)

// toHTTPError maps service sentinels onto status codes. Anything unknown is
// a 500.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrSpotNotFound),
		errors.Is(err, service.ErrReservationNotFound),
		errors.Is(err, service.ErrCompetitionNotFound),
		errors.Is(err, service.ErrRegistrationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrCapabilityViolation),
		errors.Is(err, service.ErrPastDay):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrSpotInactive),
		errors.Is(err, service.ErrNotCancellable),
		errors.Is(err, service.ErrCompetitionClosed),
		errors.Is(err, service.ErrCompetitionFull):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
	}
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

func parseSpotNumber(c echo.Context) (int, error) {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil || n <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid spot number")
	}
	return n, nil
}

// bind decodes and validates the request body.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}
