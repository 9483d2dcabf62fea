package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/myrsple/rezervace-sub000/internal/availability"
	"github.com/myrsple/rezervace-sub000/internal/dto"
	"github.com/myrsple/rezervace-sub000/internal/service"
)

const defaultCalendarDays = 28

type SpotHandler struct {
	spots    service.SpotService
	calendar service.CalendarService
	now      func() time.Time
}

func NewSpotHandler(spots service.SpotService, calendar service.CalendarService) *SpotHandler {
	return &SpotHandler{spots: spots, calendar: calendar, now: time.Now}
}

func (h *SpotHandler) RegisterRoutes(api, admin *echo.Group) {
	api.GET("/spots", h.ListSpots)
	api.GET("/spots/:number/calendar", h.Calendar)
	api.GET("/spots/:number/select", h.SelectDay)

	admin.GET("/spots", h.ListSpots)
	admin.PATCH("/spots/:number", h.SetActive)
}

func (h *SpotHandler) ListSpots(c echo.Context) error {
	spots, err := h.spots.ListSpots(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]dto.SpotResponse, len(spots))
	for i := range spots {
		resp[i] = dto.ToSpotResponse(&spots[i])
	}
	return c.JSON(http.StatusOK, resp)
}

// Calendar returns day states for ?from=&to= (inclusive), four weeks from
// today by default.
func (h *SpotHandler) Calendar(c echo.Context) error {
	number, err := parseSpotNumber(c)
	if err != nil {
		return err
	}

	from := availability.DateOf(h.now())
	if v := c.QueryParam("from"); v != "" {
		if from, err = availability.ParseDate(v); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid from date")
		}
	}
	to := from.AddDays(defaultCalendarDays - 1)
	if v := c.QueryParam("to"); v != "" {
		if to, err = availability.ParseDate(v); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid to date")
		}
	}

	cal, err := h.calendar.SpotCalendar(c.Request().Context(), number, from, to)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.CalendarResponse{
		Spot: dto.ToSpotResponse(cal.Spot),
		Days: cal.Days,
	})
}

// SelectDay resolves a calendar click: ?day=YYYY-MM-DD&duration=<code>.
func (h *SpotHandler) SelectDay(c echo.Context) error {
	number, err := parseSpotNumber(c)
	if err != nil {
		return err
	}
	day, err := availability.ParseDate(c.QueryParam("day"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid day")
	}
	preferred := c.QueryParam("duration")
	if preferred == "" {
		preferred = string(availability.DurationDay)
	}

	sel, ok, err := h.calendar.SelectDay(c.Request().Context(), number, day, preferred)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToSelectionResponse(sel, ok))
}

func (h *SpotHandler) SetActive(c echo.Context) error {
	number, err := parseSpotNumber(c)
	if err != nil {
		return err
	}
	var req dto.SetSpotActiveRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	spot, err := h.spots.SetActive(c.Request().Context(), number, *req.Active)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToSpotResponse(spot))
}
