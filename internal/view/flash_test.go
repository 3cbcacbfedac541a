package view_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/aprovados/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

func setupTestContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	store := sessions.NewCookieStore([]byte(testSessionSecret))
	sessionMiddleware := session.Middleware(store)

	// Run a no-op handler through the middleware so the session is initialized.
	var c echo.Context
	handler := func(ctx echo.Context) error { c = ctx; return nil }
	_ = sessionMiddleware(handler)(e.NewContext(req, rec))

	return c
}

func TestFlashMessages(t *testing.T) {
	t.Run("success flash is read once", func(t *testing.T) {
		c := setupTestContext()

		view.SetFlashSuccess(c, view.T(view.MsgSubmitSucceeded))

		flashes := view.GetFlashData(c)
		require.Len(t, flashes.Success, 1)
		assert.Equal(t, "Cadastro realizado com sucesso!", flashes.Success[0])
		assert.Empty(t, flashes.Error)

		assert.Empty(t, view.GetFlashData(c).Success, "flashes should be cleared after being read")
	})

	t.Run("error flash", func(t *testing.T) {
		c := setupTestContext()

		view.SetFlashError(c, "A imagem deve ter no máximo 5MB")

		flashes := view.GetFlashData(c)
		assert.Equal(t, []string{"A imagem deve ter no máximo 5MB"}, flashes.Error)
		assert.Equal(t, []string{"A imagem deve ter no máximo 5MB"}, flashes.Messages())
	})

	t.Run("no flashes set", func(t *testing.T) {
		c := setupTestContext()

		flashes := view.GetFlashData(c)
		assert.Empty(t, flashes.Messages())
	})
}

func TestComponent_RendersGomponentNode(t *testing.T) {
	var buf bytes.Buffer
	err := view.Component(h.P(g.Text("olá"))).Render(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, "<p>olá</p>", buf.String())
}
