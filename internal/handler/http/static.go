package httphandler

import (
	"embed"
	"io/fs"

	"github.com/labstack/echo/v4"
)

// SetupStaticRoutes serves the embedded frontend at the site root. API
// routes are registered under /api/v1 and take precedence.
func SetupStaticRoutes(e *echo.Echo, staticFS embed.FS) error {
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return err
	}

	e.StaticFS("/", staticSub)

	return nil
}
