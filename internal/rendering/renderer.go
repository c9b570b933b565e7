package rendering

import (
	"bytes"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"
)

// Component is anything that renders itself as HTML, such as a
// gomponents.Node.
type Component interface {
	Render(w io.Writer) error
}

// Renderer implements echo.Renderer for components. The component is passed
// as the data argument of c.Render; the template name is ignored.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	component, ok := data.(Component)
	if !ok {
		return fmt.Errorf("unsupported component type %T", data)
	}
	if c.Response().Header().Get(echo.HeaderContentType) == "" {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	}
	return component.Render(w)
}

// RenderComponent renders a component to bytes, for fragments sent outside
// an HTTP response.
func RenderComponent(component Component) ([]byte, error) {
	var buf bytes.Buffer
	if err := component.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render component: %w", err)
	}
	return buf.Bytes(), nil
}
