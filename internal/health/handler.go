package health

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	integrations Integrations
}

func NewHealthHandler(integrations Integrations) *Handler {
	return &Handler{integrations: integrations}
}

func (h *Handler) GetHealth(e echo.Context) error {
	return e.JSON(http.StatusOK, Response{
		Status:       "ok",
		Integrations: h.integrations,
	})
}
