package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/myrsple/rezervace-sub000/internal/dto"
	"github.com/myrsple/rezervace-sub000/internal/payment"
	"github.com/myrsple/rezervace-sub000/internal/service"
)

type CompetitionHandler struct {
	svc     service.CompetitionService
	account string
	now     func() time.Time
}

func NewCompetitionHandler(svc service.CompetitionService, account string) *CompetitionHandler {
	return &CompetitionHandler{svc: svc, account: account, now: time.Now}
}

func (h *CompetitionHandler) RegisterRoutes(api, admin *echo.Group, limit echo.MiddlewareFunc) {
	api.GET("/competitions", h.ListActive)
	api.GET("/competitions/:id", h.GetCompetition)
	api.POST("/competitions/:id/registrations", h.Register, limit)
	api.GET("/registrations/:id/payment-qr", h.RegistrationQR)

	admin.GET("/competitions", h.ListAll)
	admin.POST("/competitions", h.CreateCompetition)
	admin.PUT("/competitions/:id", h.UpdateCompetition)
	admin.DELETE("/competitions/:id", h.DeleteCompetition)
	admin.POST("/competitions/:id/complete", h.CompleteCompetition)
	admin.GET("/competitions/:id/registrations", h.ListRegistrations)
	admin.POST("/registrations/:id/paid", h.MarkRegistrationPaid)
	admin.DELETE("/registrations/:id", h.DeleteRegistration)
}

func (h *CompetitionHandler) ListActive(c echo.Context) error {
	return h.list(c, true)
}

func (h *CompetitionHandler) ListAll(c echo.Context) error {
	return h.list(c, c.QueryParam("active") == "true")
}

func (h *CompetitionHandler) list(c echo.Context, activeOnly bool) error {
	competitions, err := h.svc.ListCompetitions(c.Request().Context(), activeOnly)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToCompetitionResponses(competitions, h.now()))
}

func (h *CompetitionHandler) GetCompetition(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	competition, err := h.svc.GetCompetition(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToCompetitionResponse(competition, h.now()))
}

func (h *CompetitionHandler) Register(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.RegistrationRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	registration, err := h.svc.Register(c.Request().Context(), id, service.RegistrationInput{
		CustomerName: strings.TrimSpace(req.CustomerName),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		RentedGear:   req.RentedGear,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToRegistrationResponse(registration))
}

func (h *CompetitionHandler) RegistrationQR(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	registration, err := h.svc.GetRegistration(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	if registration.Paid {
		return echo.NewHTTPError(http.StatusConflict, "registration is already paid")
	}

	msg := "Zavod"
	if registration.Competition != nil {
		msg = fmt.Sprintf("Zavod %s", registration.Competition.Name)
	}
	return qrResponse(c, payment.Request{
		IBAN:           h.account,
		Amount:         registration.Price,
		VariableSymbol: registration.VariableSymbol,
		Message:        msg,
	})
}

func (h *CompetitionHandler) CreateCompetition(c echo.Context) error {
	var req dto.CompetitionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	competition, err := h.svc.CreateCompetition(c.Request().Context(), competitionInput(req))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToCompetitionResponse(competition, h.now()))
}

func (h *CompetitionHandler) UpdateCompetition(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CompetitionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	competition, err := h.svc.UpdateCompetition(c.Request().Context(), id, competitionInput(req))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToCompetitionResponse(competition, h.now()))
}

func (h *CompetitionHandler) DeleteCompetition(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteCompetition(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CompetitionHandler) CompleteCompetition(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	competition, err := h.svc.CompleteCompetition(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToCompetitionResponse(competition, h.now()))
}

func (h *CompetitionHandler) ListRegistrations(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	registrations, err := h.svc.ListRegistrations(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRegistrationResponses(registrations))
}

func (h *CompetitionHandler) MarkRegistrationPaid(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	registration, err := h.svc.MarkRegistrationPaid(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRegistrationResponse(registration))
}

func (h *CompetitionHandler) DeleteRegistration(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteRegistration(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func competitionInput(req dto.CompetitionRequest) service.CompetitionInput {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return service.CompetitionInput{
		Name:         strings.TrimSpace(req.Name),
		Date:         req.Date.UTC(),
		EndDate:      utcPtr(req.EndDate),
		Capacity:     req.Capacity,
		EntryFee:     req.EntryFee,
		Active:       active,
		BlockedSpots: req.BlockedSpots,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
