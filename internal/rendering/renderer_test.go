package rendering

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

func TestUniversalRenderer_RenderComponent(t *testing.T) {
	r := NewUniversalRenderer()
	ctx := context.Background()

	b, err := r.RenderComponent(ctx, h.Span(g.Text("gomponents")))
	require.NoError(t, err)
	assert.Equal(t, "<span>gomponents</span>", string(b))

	tc := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<b>templ</b>")
		return err
	})
	b, err = r.RenderComponent(ctx, tc)
	require.NoError(t, err)
	assert.Equal(t, "<b>templ</b>", string(b))

	_, err = r.RenderComponent(ctx, 42)
	assert.Error(t, err)
}

func TestUniversalRenderer_EchoRender(t *testing.T) {
	e := echo.New()
	e.Renderer = NewUniversalRenderer()
	e.GET("/", func(c echo.Context) error {
		return c.Render(http.StatusOK, "", h.Div(g.Text("ok")))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<div>ok</div>", rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
}
