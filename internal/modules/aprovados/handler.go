package aprovados

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/aprovados/internal/domain"
	"github.com/nfrund/aprovados/internal/form"
	"github.com/nfrund/aprovados/internal/handlers"
	"github.com/nfrund/aprovados/internal/middleware"
	"github.com/nfrund/aprovados/internal/modules/aprovados/view"
	gview "github.com/nfrund/aprovados/internal/view"
	"github.com/nfrund/aprovados/web/src/templates/layouts"
	g "maragu.dev/gomponents"
)

const (
	headerHXRequest = "HX-Request"
	headerHXTrigger = "HX-Trigger"
)

// Handler serves the registration form and its htmx endpoints.
type Handler struct {
	forms         *form.Registry
	policy        domain.PhotoPolicy
	allowedTypes  []string
	submitTimeout time.Duration
}

// NewHandler creates a new Handler.
func NewHandler(forms *form.Registry, maxPhotoBytes int64, allowedTypes []string, submitTimeout time.Duration) *Handler {
	return &Handler{
		forms:         forms,
		policy:        domain.NewPhotoPolicy(maxPhotoBytes, allowedTypes),
		allowedTypes:  allowedTypes,
		submitTimeout: submitTimeout,
	}
}

func (h *Handler) props(s form.Snapshot) view.Props {
	return view.Props{
		Snapshot:      s,
		MaxPhotoBytes: h.policy.MaxBytes,
		AllowedTypes:  h.allowedTypes,
	}
}

func (h *Handler) photoTooLargeMessage() string {
	return gview.T(gview.MsgPhotoTooLarge, gview.SizeLabel(h.policy.MaxBytes))
}

// Page renders the full form page.
func (h *Handler) Page(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	flash := gview.GetFlashData(c)
	page := layouts.Base(gview.T(gview.MsgTitle), flash.Messages(), h.photoTooLargeMessage(), view.Form(h.props(st.Snapshot())))
	return c.Render(http.StatusOK, "", gview.Component(page))
}

// SetField syncs the nome or email input and answers with the submit area.
func (h *Handler) SetField(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	field := form.Field(c.Param("field"))
	if field != form.FieldNome && field != form.FieldEmail {
		return echo.NewHTTPError(http.StatusNotFound, "Unknown field.")
	}
	if err := st.SetField(field, c.FormValue(string(field))); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.Render(http.StatusOK, "", view.SubmitArea(st.Snapshot(), false))
}

// SetTelefone masks the phone input and re-renders it with the submit area.
func (h *Handler) SetTelefone(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	formatted := st.SetTelefone(c.FormValue(string(form.FieldTelefone)))
	return c.Render(http.StatusOK, "", g.Group{
		view.TelefoneField(formatted),
		view.SubmitArea(st.Snapshot(), true),
	})
}

// AddConcurso appends an empty exam slot.
func (h *Handler) AddConcurso(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	st.AddConcurso()
	return h.renderExamList(c, st)
}

// UpdateConcurso edits the exam at :index.
func (h *Handler) UpdateConcurso(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	req, err := bindConcurso(c)
	if err != nil {
		return err
	}
	if err := st.SetConcurso(req.Index, req.Value); err != nil {
		return examError(err)
	}
	return c.Render(http.StatusOK, "", view.SubmitArea(st.Snapshot(), false))
}

// RemoveConcurso drops the exam at :index; the last slot is never removed.
func (h *Handler) RemoveConcurso(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	req, err := bindConcurso(c)
	if err != nil {
		return err
	}
	if _, err := st.RemoveConcurso(req.Index); err != nil {
		return examError(err)
	}
	return h.renderExamList(c, st)
}

func bindConcurso(c echo.Context) (handlers.ConcursoRequest, error) {
	var req handlers.ConcursoRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "Invalid exam index.")
	}
	if err := c.Validate(req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "Invalid exam index.")
	}
	return req, nil
}

func examError(err error) error {
	if errors.Is(err, domain.ErrExamIndexOutOfRange) {
		return echo.NewHTTPError(http.StatusNotFound, "Exam not found.")
	}
	return err
}

func (h *Handler) renderExamList(c echo.Context, st *form.State) error {
	snap := st.Snapshot()
	return c.Render(http.StatusOK, "", g.Group{
		view.ExamList(snap.Draft.Concursos),
		view.SubmitArea(snap, true),
	})
}

// UploadPhoto attaches the "imagem" file. A rejected file is not attached and
// the user is alerted.
func (h *Handler) UploadPhoto(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)
	st, err := h.state(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("imagem")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing image file.")
	}

	if msg, err := h.attach(ctx, st, fileHeader.Filename, fileHeader.Header.Get(echo.HeaderContentType), fileHeader.Size, fileHeader.Open); err != nil {
		logger.Warn("photo rejected", slog.String("draft_id", st.ID()), slog.String("error", err.Error()))
		return h.renderWithAlert(c, msg, view.PhotoField(h.props(st.Snapshot())))
	}
	return h.renderPhotoField(c, st)
}

// RemovePhoto detaches the photo.
func (h *Handler) RemovePhoto(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	st.RemovePhoto(c.Request().Context())
	return h.renderPhotoField(c, st)
}

// PreviewPhoto streams the staged photo.
func (h *Handler) PreviewPhoto(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	photo, content, err := st.OpenPhoto(c.Request().Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "No photo attached.")
		}
		return err
	}
	defer content.Close()

	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Stream(http.StatusOK, photo.ContentType, content)
}

func (h *Handler) renderPhotoField(c echo.Context, st *form.State) error {
	return c.Render(http.StatusOK, "", view.PhotoField(h.props(st.Snapshot())))
}

// Submit sends the draft. Fields posted with the request are applied first so
// the latest input wins over a pending debounced sync, unless the draft is
// already in flight or submitted.
func (h *Handler) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)
	st, err := h.state(c)
	if err != nil {
		return err
	}

	// A draft that is being sent or waiting to reset keeps its contents.
	if snap := st.Snapshot(); !snap.Submitting && !snap.Submitted {
		if msg, err := h.applyPosted(c, st); err != nil {
			logger.Warn("photo rejected", slog.String("draft_id", st.ID()), slog.String("error", err.Error()))
			return h.respondSubmit(c, st, msg)
		}
	}

	submitCtx, cancel := context.WithTimeout(ctx, h.submitTimeout)
	defer cancel()

	_, err = st.Submit(submitCtx)
	switch {
	case err == nil:
		return h.respondSubmit(c, st, "")
	case errors.Is(err, domain.ErrSubmissionInFlight), errors.Is(err, domain.ErrAlreadySubmitted):
		return h.respondSubmit(c, st, "")
	case errors.Is(err, domain.ErrDraftInvalid):
		return h.respondSubmit(c, st, gview.T(gview.MsgIncomplete))
	default:
		return h.respondSubmit(c, st, gview.T(gview.MsgSubmitFailed))
	}
}

// applyPosted copies any submitted fields into the draft.
func (h *Handler) applyPosted(c echo.Context, st *form.State) (string, error) {
	values, err := c.FormParams()
	if err != nil {
		return "", nil
	}
	for _, field := range []form.Field{form.FieldNome, form.FieldEmail, form.FieldTelefone} {
		if vs, ok := values[string(field)]; ok && len(vs) > 0 {
			_ = st.SetField(field, vs[0])
		}
	}
	if exams, ok := values["concurso"]; ok {
		st.SetConcursos(exams)
	}

	fileHeader, err := c.FormFile("imagem")
	if err != nil || fileHeader.Size == 0 {
		return "", nil
	}
	return h.attach(c.Request().Context(), st, fileHeader.Filename, fileHeader.Header.Get(echo.HeaderContentType), fileHeader.Size, fileHeader.Open)
}

func (h *Handler) respondSubmit(c echo.Context, st *form.State, alert string) error {
	if c.Request().Header.Get(headerHXRequest) == "" {
		if alert != "" {
			gview.SetFlashError(c, alert)
		} else if st.Snapshot().Submitted {
			gview.SetFlashSuccess(c, gview.T(gview.MsgSubmitSucceeded))
		}
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return h.renderWithAlert(c, alert, view.Form(h.props(st.Snapshot())))
}

// Status is polled while the success indicator is shown. It answers 204 until
// the draft has been reset, then the fresh form.
func (h *Handler) Status(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	snap := st.Snapshot()
	if snap.Submitted {
		return c.NoContent(http.StatusNoContent)
	}
	return c.Render(http.StatusOK, "", view.Form(h.props(snap)))
}

// renderWithAlert renders node and, when alert is set, an inline alert plus
// an HX-Trigger that makes the page show a blocking alert.
func (h *Handler) renderWithAlert(c echo.Context, alert string, node g.Node) error {
	if alert == "" {
		return c.Render(http.StatusOK, "", node)
	}
	c.Response().Header().Set(headerHXTrigger, hxTrigger("showAlert", alert))
	return c.Render(http.StatusOK, "", g.Group{node, view.Alert(alert)})
}

// hxTrigger encodes a single event for the HX-Trigger header. Non-ASCII runes
// are escaped because browsers read header values as Latin-1.
func hxTrigger(event, detail string) string {
	b, _ := json.Marshal(map[string]string{event: detail})
	var sb strings.Builder
	for _, r := range string(b) {
		if r < utf8.RuneSelf {
			sb.WriteRune(r)
			continue
		}
		for _, u := range utf16.Encode([]rune{r}) {
			fmt.Fprintf(&sb, `\u%04x`, u)
		}
	}
	return sb.String()
}

// attach runs the photo through the draft and maps failures to the message
// shown to the user.
func (h *Handler) attach(ctx context.Context, st *form.State, filename, contentType string, size int64, open func() (multipart.File, error)) (string, error) {
	if err := h.policy.Check(size, contentType); err != nil {
		return h.photoMessage(err), err
	}
	if err := h.policy.CheckName(filename); err != nil {
		return h.photoMessage(err), err
	}
	src, err := open()
	if err != nil {
		return gview.T(gview.MsgSubmitFailed), err
	}
	defer src.Close()

	if _, err := st.AttachPhoto(ctx, filename, contentType, size, src); err != nil {
		return h.photoMessage(err), err
	}
	return "", nil
}

func (h *Handler) photoMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrPhotoTooLarge):
		return h.photoTooLargeMessage()
	case errors.Is(err, domain.ErrPhotoTypeNotAllowed):
		return gview.T(gview.MsgPhotoType)
	case errors.Is(err, domain.ErrPhotoNameTooLong):
		return gview.T(gview.MsgPhotoName, domain.MaxPhotoNameLength)
	default:
		return gview.T(gview.MsgSubmitFailed)
	}
}
