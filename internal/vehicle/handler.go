package vehicle

import (
	"errors"
	"net/http"

	"kentekencheck/validation"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	InterfaceService InterfaceService
}

func NewVehicleHandler(InterfaceService InterfaceService) *Handler {
	return &Handler{InterfaceService}
}

func (h *Handler) GetVehicle(e echo.Context) error {
	var request LookupRequest
	if err := e.Bind(&request); err != nil {
		return e.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	if err := validation.Validate(request); err != nil {
		return e.JSON(http.StatusBadRequest, ErrorResponse{Error: "kenteken query parameter is required"})
	}

	plate, err := validation.NormalizePlate(request.Kenteken)
	if err != nil {
		return e.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	includeRaw := request.Raw == "1" || request.Raw == "true"

	result, err := h.InterfaceService.Lookup(e.Request().Context(), plate, includeRaw)
	if err != nil {
		var upstreamErr *UpstreamError
		var parseErr *ParseError
		switch {
		case errors.Is(err, ErrNotFound):
			return e.JSON(http.StatusNotFound, ErrorResponse{Error: "no vehicle found for plate " + plate})
		case errors.As(err, &upstreamErr), errors.As(err, &parseErr):
			return e.JSON(http.StatusBadGateway, ErrorResponse{
				Error:  "vehicle lookup failed for plate " + plate,
				Detail: truncate(err.Error(), maxWarningLen),
			})
		default:
			return e.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:  "vehicle lookup failed for plate " + plate,
				Detail: truncate(err.Error(), maxWarningLen),
			})
		}
	}

	return e.JSON(http.StatusOK, result)
}
