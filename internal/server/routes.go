package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/classmeta/internal/view"
)

// RegisterRoutes sets up the introspection routes.
func (s *Server) RegisterRoutes() {
	s.E.GET("/", s.catalogPage)
	s.E.GET(view.FragmentPath, s.catalogFragment)

	api := s.E.Group("/api")
	api.GET("/types", s.listTypes)
	api.GET("/types/:alias", s.getType)
	api.GET("/types/:alias/ids/:oid", s.parseObjectID)

	s.E.GET("/ws/registrations", s.streamRegistrations)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}

// ModuleGroup returns the route group a module boots under.
func (s *Server) ModuleGroup(name string) *echo.Group {
	return s.E.Group("/modules/" + name)
}
