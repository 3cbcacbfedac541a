// Package submission sends aprovado registrations to the remote backend as
// multipart form data.
package submission

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/nfrund/aprovados/internal/domain"
)

// Multipart field names expected by the backend.
const (
	FieldData   = "data"
	FieldImagem = "imagem"
)

// Aprovado is the JSON metadata sent in the "data" part.
type Aprovado struct {
	Nome      string   `json:"nome"`
	Email     string   `json:"email"`
	Telefone  string   `json:"telefone"`
	Concursos []string `json:"concursos"`
}

// FromDraft maps a draft to its outbound metadata, dropping blank exams.
func FromDraft(d domain.Draft) Aprovado {
	return Aprovado{
		Nome:      d.Nome,
		Email:     d.Email,
		Telefone:  d.Telefone,
		Concursos: d.FilledConcursos(),
	}
}

// Photo is the optional "imagem" part. Content is read once while the
// payload is built.
type Photo struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// BuildPayload encodes the metadata and optional photo as multipart form
// data and returns the body together with its Content-Type header value.
func BuildPayload(a Aprovado, photo *Photo) (io.Reader, string, error) {
	if a.Concursos == nil {
		a.Concursos = []string{}
	}
	meta, err := json.Marshal(a)
	if err != nil {
		return nil, "", fmt.Errorf("encode aprovado: %w", err)
	}

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	if err := w.WriteField(FieldData, string(meta)); err != nil {
		return nil, "", fmt.Errorf("write %s part: %w", FieldData, err)
	}

	if photo != nil && photo.Content != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FieldImagem, escapeQuotes(photo.Filename)))
		ct := photo.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create %s part: %w", FieldImagem, err)
		}
		if _, err := io.Copy(part, photo.Content); err != nil {
			return nil, "", fmt.Errorf("copy %s part: %w", FieldImagem, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return body, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
