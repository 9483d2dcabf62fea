package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/myrsple/rezervace-sub000/internal/availability"
	"github.com/myrsple/rezervace-sub000/internal/dto"
	"github.com/myrsple/rezervace-sub000/internal/models"
	"github.com/myrsple/rezervace-sub000/internal/payment"
	"github.com/myrsple/rezervace-sub000/internal/repository"
	"github.com/myrsple/rezervace-sub000/internal/service"
)

type ReservationHandler struct {
	svc     service.ReservationService
	account string
}

func NewReservationHandler(svc service.ReservationService, account string) *ReservationHandler {
	return &ReservationHandler{svc: svc, account: account}
}

func (h *ReservationHandler) RegisterRoutes(api, admin *echo.Group, limit echo.MiddlewareFunc) {
	api.POST("/reservations", h.CreateReservation, limit)
	api.GET("/reservations/:id", h.GetReservation)
	api.GET("/reservations/:id/payment-qr", h.PaymentQR)

	admin.GET("/reservations", h.ListReservations)
	admin.GET("/reservations/export", h.ExportReservations)
	admin.GET("/reservations/:id", h.GetReservationDetail)
	admin.POST("/reservations/:id/paid", h.MarkPaid)
	admin.POST("/reservations/:id/cancel", h.CancelReservation)
}

func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req dto.CreateReservationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	day, err := availability.ParseDate(req.Day)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid day")
	}

	reservation, err := h.svc.CreateReservation(c.Request().Context(), service.CreateReservationInput{
		SpotNumber:   req.SpotNumber,
		Day:          day,
		Duration:     req.Duration,
		CustomerName: strings.TrimSpace(req.CustomerName),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		RentedGear:   req.RentedGear,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) GetReservation(c echo.Context) error {
	reservation, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToPublicReservationResponse(reservation))
}

// GetReservationDetail is the admin view, including contact details.
func (h *ReservationHandler) GetReservationDetail(c echo.Context) error {
	reservation, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) lookup(c echo.Context) (*models.Reservation, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return nil, err
	}
	reservation, err := h.svc.GetReservation(c.Request().Context(), id)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return reservation, nil
}

func (h *ReservationHandler) PaymentQR(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	reservation, err := h.svc.GetReservation(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	if reservation.Status == models.StatusCancelled {
		return echo.NewHTTPError(http.StatusConflict, "reservation is cancelled")
	}
	if reservation.Paid {
		return echo.NewHTTPError(http.StatusConflict, "reservation is already paid")
	}

	msg := "Rezervace"
	if reservation.Spot != nil {
		msg += " " + reservation.Spot.Name
	}
	return qrResponse(c, payment.Request{
		IBAN:           h.account,
		Amount:         reservation.Price,
		VariableSymbol: reservation.VariableSymbol,
		Message:        msg,
	})
}

func (h *ReservationHandler) ListReservations(c echo.Context) error {
	filter, err := reservationFilter(c)
	if err != nil {
		return err
	}
	reservations, err := h.svc.ListReservations(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponses(reservations))
}

var exportHeader = []string{
	"id", "spot", "customer_name", "email", "phone", "start", "end",
	"duration", "status", "paid", "price", "variable_symbol", "rented_gear",
}

// ExportReservations streams the filtered reservations as CSV.
func (h *ReservationHandler) ExportReservations(c echo.Context) error {
	filter, err := reservationFilter(c)
	if err != nil {
		return err
	}
	reservations, err := h.svc.ListReservations(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="rezervace-%s.csv"`, time.Now().UTC().Format("20060102")))
	res.WriteHeader(http.StatusOK)

	w := csv.NewWriter(res)
	if err := w.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range reservations {
		spot := ""
		if r.Spot != nil {
			spot = r.Spot.Name
		}
		if err := w.Write([]string{
			strconv.FormatUint(uint64(r.ID), 10),
			spot,
			r.CustomerName,
			r.Email,
			r.Phone,
			r.StartDate.UTC().Format(time.RFC3339),
			r.EndDate.UTC().Format(time.RFC3339),
			string(r.Duration),
			string(r.Status),
			strconv.FormatBool(r.Paid),
			strconv.Itoa(r.Price),
			r.VariableSymbol,
			strings.Join(r.RentedGear, "|"),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (h *ReservationHandler) MarkPaid(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	reservation, err := h.svc.MarkPaid(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	reservation, err := h.svc.CancelReservation(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func reservationFilter(c echo.Context) (repository.ReservationFilter, error) {
	var f repository.ReservationFilter

	if v := c.QueryParam("spot_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid spot_id")
		}
		spotID := uint(id)
		f.SpotID = &spotID
	}
	if v := c.QueryParam("status"); v != "" {
		status := models.ReservationStatus(strings.ToUpper(v))
		if status != models.StatusConfirmed && status != models.StatusCancelled {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		f.Status = &status
	}
	if v := c.QueryParam("paid"); v != "" {
		paid, err := strconv.ParseBool(v)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid paid")
		}
		f.Paid = &paid
	}
	if v := c.QueryParam("from"); v != "" {
		d, err := availability.ParseDate(v)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid from date")
		}
		from := d.Midnight()
		f.From = &from
	}
	if v := c.QueryParam("to"); v != "" {
		d, err := availability.ParseDate(v)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid to date")
		}
		to := d.AddDays(1).Midnight()
		f.To = &to
	}
	return f, nil
}

func qrResponse(c echo.Context, req payment.Request) error {
	png, err := payment.PNG(req)
	if err != nil {
		if errors.Is(err, payment.ErrNoAccount) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "payment QR is not available")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
	}
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Blob(http.StatusOK, "image/png", png)
}
