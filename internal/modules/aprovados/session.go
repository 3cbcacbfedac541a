package aprovados

import (
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/aprovados/internal/form"
)

const (
	draftSessionName = "aprovados-draft"
	draftIDKey       = "draft_id"
)

// state returns the visitor's draft, opening one and remembering its ID in
// the session cookie on the first request. A cookie that cannot be decoded is
// replaced by a fresh session.
func (h *Handler) state(c echo.Context) (*form.State, error) {
	sess, err := session.Get(draftSessionName, c)
	if sess == nil {
		c.Logger().Error("draft session unavailable: ", err)
		return nil, echo.NewHTTPError(http.StatusInternalServerError)
	}
	if err != nil {
		c.Logger().Warn("discarding unreadable draft session: ", err)
	}

	id, _ := sess.Values[draftIDKey].(string)
	st := h.forms.GetOrNew(id)
	if st.ID() != id {
		sess.Values[draftIDKey] = st.ID()
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			c.Logger().Warn("failed to save draft session: ", err)
		}
	}
	return st, nil
}
