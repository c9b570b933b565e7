package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/classmeta/internal/typeregistry"
	"github.com/nfrund/classmeta/internal/view"
)

const pageTitle = "Registered classes"

// ObjectIDResponse is the parsed form of an identity string.
type ObjectIDResponse struct {
	Alias string         `json:"alias"`
	ID    string         `json:"id"`
	Keys  map[string]any `json:"keys"`
}

func (s *Server) listTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, s.registry.Catalog())
}

func (s *Server) resolve(c echo.Context) (*typeregistry.Class, error) {
	alias := c.Param("alias")
	class, ok := s.registry.ClassForAlias(alias)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("no class registered as %q", alias))
	}
	return class, nil
}

func (s *Server) getType(c echo.Context) error {
	class, err := s.resolve(c)
	if err != nil {
		return err
	}
	d, err := s.registry.Describe(class)
	if err != nil {
		return registryHTTPError(err)
	}
	return c.JSON(http.StatusOK, d)
}

// keyCollector records the key fields an identity object hands out.
type keyCollector map[int]any

func (k keyCollector) StoreField(index int, value any) { k[index] = value }

func (s *Server) parseObjectID(c echo.Context) error {
	class, err := s.resolve(c)
	if err != nil {
		return err
	}
	oid, err := s.registry.NewObjectIDFromString(class, c.Param("oid"))
	if err != nil {
		if errors.Is(err, typeregistry.ErrNotRegistered) {
			return registryHTTPError(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if oid == nil {
		return echo.NewHTTPError(http.StatusConflict, fmt.Sprintf("%s is abstract", class))
	}

	keys := keyCollector{}
	if err := s.registry.CopyKeyFieldsFromObjectID(class, keys, oid); err != nil {
		return registryHTTPError(err)
	}
	names, err := s.registry.FieldNames(class)
	if err != nil {
		return registryHTTPError(err)
	}

	resp := ObjectIDResponse{Alias: c.Param("alias"), ID: fmt.Sprint(oid), Keys: make(map[string]any, len(keys))}
	for i, v := range keys {
		name := fmt.Sprintf("field_%d", i)
		if i >= 0 && i < len(names) {
			name = names[i]
		}
		resp.Keys[name] = v
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) catalogPage(c echo.Context) error {
	return c.Render(http.StatusOK, "", view.CatalogPage(pageTitle, s.registry.Catalog()))
}

func (s *Server) catalogFragment(c echo.Context) error {
	return c.Render(http.StatusOK, "", view.CatalogTable(s.registry.Catalog()))
}

// registryHTTPError maps registry errors to HTTP status codes.
func registryHTTPError(err error) error {
	switch {
	case errors.Is(err, typeregistry.ErrNotRegistered):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, typeregistry.ErrAbstractClass):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, typeregistry.ErrInvalidArgument):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
}
