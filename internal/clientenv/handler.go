package clientenv

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler serves the browser-safe configuration script. It is constructed
// with only the two public values, so the service-role key can never leak
// through this surface.
type Handler struct {
	supabaseUrl     string
	supabaseAnonKey string
}

func NewClientEnvHandler(supabaseUrl, supabaseAnonKey string) *Handler {
	return &Handler{supabaseUrl: supabaseUrl, supabaseAnonKey: supabaseAnonKey}
}

func (h *Handler) GetEnvScript(e echo.Context) error {
	script := fmt.Sprintf("window.ENV = {\n  SUPABASE_URL: %q,\n  SUPABASE_ANON_KEY: %q\n};\n",
		h.supabaseUrl, h.supabaseAnonKey)
	return e.Blob(http.StatusOK, "application/javascript; charset=utf-8", []byte(script))
}
