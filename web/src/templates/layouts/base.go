package layouts

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// clientScript turns server "showAlert" triggers into blocking alerts and
// rejects oversized photos before they are uploaded.
const clientScript = `
document.body.addEventListener("showAlert", function (e) { alert(e.detail.value || e.detail.message); });
document.body.addEventListener("htmx:responseError", function (e) {
  if (e.detail.xhr.status === 413) { alert(document.body.dataset.photoTooLarge); }
});
document.body.addEventListener("change", function (e) {
  var input = e.target, max = Number(input.dataset.maxBytes || 0);
  if (input.type === "file" && max > 0 && input.files.length && input.files[0].size > max) {
    alert(document.body.dataset.photoTooLarge);
    input.value = "";
    e.stopImmediatePropagation();
  }
}, true);
`

// Base wraps page content in the HTML document. flashes are shown above the
// content; photoTooLarge is the text of the client-side size alert.
func Base(title string, flashes []string, photoTooLarge string, content g.Node) g.Node {
	return h.Doctype(
		h.HTML(
			h.Lang("pt-BR"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(CalculateTitle(title))),
				h.Script(h.Src("https://cdn.tailwindcss.com")),
				h.Script(h.Src(htmxSrc)),
			),
			h.Body(
				h.Class("min-h-screen bg-gradient-to-br from-gray-50 to-gray-100 py-12 px-4"),
				g.Attr("data-photo-too-large", photoTooLarge),
				g.If(len(flashes) > 0, h.Div(
					h.ID("flash"),
					h.Class("max-w-2xl mx-auto mb-4"),
					g.Map(flashes, func(msg string) g.Node {
						return h.P(h.Class("p-3 rounded-lg bg-yellow-50 text-gray-800"), g.Text(msg))
					}),
				)),
				content,
				h.Script(g.Raw(clientScript)),
			),
		),
	)
}
