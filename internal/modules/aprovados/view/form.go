// Package view renders the registration form and its htmx fragments.
package view

import (
	"fmt"
	"strings"

	"github.com/nfrund/aprovados/internal/form"
	"github.com/nfrund/aprovados/internal/phone"
	gview "github.com/nfrund/aprovados/internal/view"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// Element IDs targeted by htmx swaps.
const (
	FormID       = "aprovados-form"
	SubmitAreaID = "submit-area"
	TelefoneID   = "telefone-field"
	ExamListID   = "concursos"
	PhotoID      = "imagem-field"
	AlertID      = "alert"
)

const inputClass = "block w-full px-4 py-3 border border-gray-300 rounded-lg focus:ring-2 focus:ring-[#111184] focus:border-transparent placeholder:text-gray-500 text-gray-900"

// Props is everything the form needs to render.
type Props struct {
	Snapshot      form.Snapshot
	MaxPhotoBytes int64
	AllowedTypes  []string
}

// MaxPhotoLabel is the photo limit for display.
func (p Props) MaxPhotoLabel() string {
	return gview.SizeLabel(p.MaxPhotoBytes)
}

// Form is the whole card: header, fields, submit area and footer. It is also
// the fragment returned after a submission and by the status poll.
func Form(p Props) g.Node {
	d := p.Snapshot.Draft
	return h.Div(
		h.ID(FormID),
		h.Class("max-w-2xl mx-auto bg-white rounded-2xl shadow-xl overflow-hidden"),
		h.Div(
			h.Class("bg-gradient-to-r from-black to-[#111184] px-8 py-10"),
			h.H1(h.Class("text-3xl font-bold text-white text-center"), g.Text(gview.T(gview.MsgTitle))),
			h.P(h.Class("text-gray-200 text-center mt-2"), g.Text(gview.T(gview.MsgSubtitle))),
		),
		h.Form(
			h.Class("px-8 py-10 space-y-6"),
			h.Method("post"),
			h.Action("/form/submit"),
			h.EncType("multipart/form-data"),
			hx.Post("/form/submit"),
			hx.Target("#"+FormID),
			hx.Swap("outerHTML"),
			hx.Encoding("multipart/form-data"),
			g.Attr("hx-disabled-elt", "find button[type=submit]"),
			textField("nome", "Nome Completo", "text", "Digite seu nome completo", d.Nome),
			textField("email", "E-mail", "email", "seu.email@exemplo.com", d.Email),
			TelefoneField(d.Telefone),
			h.Div(
				h.Label(h.Class("block text-sm font-semibold text-gray-700 mb-2"), g.Text("Concursos Aprovados")),
				ExamList(d.Concursos),
			),
			PhotoField(p),
			SubmitArea(p.Snapshot, false),
		),
		h.Div(h.ID(AlertID)),
		h.Div(
			h.Class("bg-gray-50 px-8 py-4 border-t border-gray-200"),
			h.P(h.Class("text-center text-sm text-gray-600"), g.Text(gview.T(gview.MsgFooter))),
		),
	)
}

func textField(name, label, typ, placeholder, value string) g.Node {
	return h.Div(
		h.Label(h.For(name), h.Class("block text-sm font-semibold text-gray-700 mb-2"), g.Text(label)),
		h.Input(
			h.Type(typ), h.ID(name), h.Name(name), h.Value(value),
			h.Placeholder(placeholder), h.Class(inputClass),
			hx.Post("/form/"+name),
			hx.Trigger("input changed delay:200ms"),
			hx.Target("#"+SubmitAreaID),
			hx.Swap("outerHTML"),
		),
	)
}

// TelefoneField re-renders the phone input with its masked value.
func TelefoneField(value string) g.Node {
	return h.Div(
		h.ID(TelefoneID),
		h.Label(h.For("telefone"), h.Class("block text-sm font-semibold text-gray-700 mb-2"), g.Text("Telefone")),
		h.Input(
			h.Type("tel"), h.ID("telefone"), h.Name("telefone"), h.Value(value),
			h.MaxLength(fmt.Sprint(phone.MaxLength)),
			h.Placeholder("(00) 00000-0000"), h.Class(inputClass),
			hx.Post("/form/telefone"),
			hx.Trigger("input changed delay:150ms"),
			hx.Target("#"+TelefoneID),
			hx.Swap("outerHTML"),
		),
	)
}

// ExamList renders one input per exam. The remove button only appears when
// more than one slot exists.
func ExamList(concursos []string) g.Node {
	canRemove := len(concursos) > 1
	items := make([]g.Node, 0, len(concursos))
	for i, c := range concursos {
		items = append(items, h.Div(
			h.Class("flex gap-2"),
			h.Input(
				h.Type("text"), h.Name("concurso"), h.Value(c),
				h.Placeholder("Nome do concurso e cargo"), h.Class(inputClass),
				hx.Put(fmt.Sprintf("/form/concursos/%d", i)),
				hx.Trigger("input changed delay:200ms"),
				hx.Target("#"+SubmitAreaID),
				hx.Swap("outerHTML"),
			),
			g.If(canRemove, h.Button(
				h.Type("button"),
				h.Class("px-3 py-3 bg-red-50 text-red-600 rounded-lg hover:bg-red-100"),
				g.Attr("aria-label", "Remover concurso"),
				hx.Delete(fmt.Sprintf("/form/concursos/%d", i)),
				hx.Target("#"+ExamListID),
				hx.Swap("outerHTML"),
				g.Text("×"),
			)),
		))
	}

	return h.Div(
		h.ID(ExamListID),
		h.Class("space-y-3"),
		g.Group(items),
		h.Button(
			h.Type("button"),
			h.Class("w-full py-3 px-4 border-2 border-dashed border-gray-300 rounded-lg text-gray-600 font-medium"),
			hx.Post("/form/concursos"),
			hx.Target("#"+ExamListID),
			hx.Swap("outerHTML"),
			g.Text("+ Adicionar outro concurso"),
		),
	)
}

// PhotoField shows the upload picker, or the preview with a remove button.
func PhotoField(p Props) g.Node {
	photo := p.Snapshot.Draft.Imagem
	label := h.Label(h.Class("block text-sm font-semibold text-gray-700 mb-2"), g.Text("Foto (opcional)"))

	if photo == nil {
		return h.Div(
			h.ID(PhotoID),
			label,
			h.Label(
				h.Class("flex flex-col items-center justify-center w-full h-48 border-2 border-dashed border-gray-300 rounded-lg cursor-pointer"),
				h.P(h.Class("text-sm font-medium text-gray-600 mb-1"), g.Text(gview.T(gview.MsgPhotoUpload))),
				h.P(h.Class("text-xs text-gray-500"), g.Text(gview.T(gview.MsgPhotoHint, p.MaxPhotoLabel()))),
				h.Input(
					h.Type("file"), h.Name("imagem"), h.Class("hidden"),
					h.Accept(strings.Join(p.AllowedTypes, ",")),
					g.Attr("data-max-bytes", fmt.Sprint(p.MaxPhotoBytes)),
					hx.Post("/form/imagem"),
					hx.Encoding("multipart/form-data"),
					hx.Trigger("change"),
					hx.Target("#"+PhotoID),
					hx.Swap("outerHTML"),
				),
			),
		)
	}

	return h.Div(
		h.ID(PhotoID),
		label,
		h.Div(
			h.Class("relative w-full h-48 border-2 border-gray-300 rounded-lg overflow-hidden"),
			h.Img(
				h.Src("/form/imagem/preview?k="+lastSegment(photo.StorageKey)),
				h.Alt("Preview"),
				h.Class("w-full h-full object-cover"),
			),
			h.Button(
				h.Type("button"),
				h.Class("absolute top-2 right-2 p-2 bg-red-600 text-white rounded-full"),
				g.Attr("aria-label", "Remover foto"),
				hx.Delete("/form/imagem"),
				hx.Target("#"+PhotoID),
				hx.Swap("outerHTML"),
				g.Text("×"),
			),
		),
	)
}

// SubmitArea holds the submit button. While the success indicator is up it
// polls /form/status so the form resets itself.
func SubmitArea(s form.Snapshot, oob bool) g.Node {
	var text string
	switch {
	case s.Submitting:
		text = gview.T(gview.MsgSubmitting)
	case s.Submitted:
		text = "✓ " + gview.T(gview.MsgSubmitSucceeded)
	default:
		text = gview.T(gview.MsgSubmit)
	}

	btnClass := "w-full py-4 px-6 rounded-lg text-white font-semibold text-lg disabled:opacity-70 disabled:cursor-not-allowed "
	if s.Submitted {
		btnClass += "bg-green-600"
	} else {
		btnClass += "bg-gradient-to-r from-black to-[#111184]"
	}

	return h.Div(
		h.ID(SubmitAreaID),
		h.Class("pt-4"),
		g.If(oob, hx.SwapOOB("true")),
		g.If(s.Submitted, g.Group{
			hx.Get("/form/status"),
			hx.Trigger("every 1s"),
			hx.Target("#" + FormID),
			hx.Swap("outerHTML"),
		}),
		h.Button(
			h.Type("submit"),
			h.Class(btnClass),
			g.If(!s.CanSubmit(), h.Disabled()),
			g.Text(text),
		),
	)
}

// Alert is the inline message shown next to the form. It is swapped out of
// band so any fragment response can carry it.
func Alert(message string) g.Node {
	return h.Div(
		h.ID(AlertID),
		hx.SwapOOB("true"),
		h.Role("alert"),
		h.Class("mx-8 mb-6 p-4 rounded-lg bg-red-50 text-red-700"),
		g.Text(message),
	)
}

func lastSegment(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[i+1:]
	}
	return key
}
