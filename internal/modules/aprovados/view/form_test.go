package view

import (
	"bytes"
	"testing"

	"github.com/nfrund/aprovados/internal/domain"
	"github.com/nfrund/aprovados/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, n.Render(&buf))
	return buf.String()
}

func props(d domain.Draft) Props {
	return Props{
		Snapshot:      form.Snapshot{ID: "d-1", Draft: d},
		MaxPhotoBytes: domain.DefaultMaxPhotoBytes,
		AllowedTypes:  domain.DefaultPhotoTypes,
	}
}

func TestForm_EmptyDraft(t *testing.T) {
	out := render(t, Form(props(domain.NewDraft())))

	assert.Contains(t, out, `id="aprovados-form"`)
	assert.Contains(t, out, "Cadastro de Aprovados")
	assert.Contains(t, out, `accept="image/png,image/jpeg,image/jpg"`)
	assert.Contains(t, out, `data-max-bytes="5242880"`)
	assert.Contains(t, out, "PNG, JPG ou JPEG (máx. 5MB)")
	assert.Contains(t, out, `maxlength="15"`)
	assert.Contains(t, out, "disabled>", "an empty draft cannot be submitted")
	assert.NotContains(t, out, "Remover concurso", "a single exam slot has no remove button")
}

func TestExamList_RemoveButtons(t *testing.T) {
	out := render(t, ExamList([]string{"A", "B"}))

	assert.Contains(t, out, `hx-delete="/form/concursos/0"`)
	assert.Contains(t, out, `hx-delete="/form/concursos/1"`)
	assert.Contains(t, out, `hx-put="/form/concursos/1"`)
	assert.Contains(t, out, `value="B"`)
}

func TestSubmitArea(t *testing.T) {
	complete := domain.Draft{Nome: "Ana", Email: "a@b.c", Telefone: "(11) 2", Concursos: []string{"INSS"}}

	t.Run("enabled when complete", func(t *testing.T) {
		out := render(t, SubmitArea(form.Snapshot{Draft: complete}, false))
		assert.NotContains(t, out, "disabled>")
		assert.Contains(t, out, "Cadastrar Aprovação")
	})

	t.Run("submitted polls for reset", func(t *testing.T) {
		out := render(t, SubmitArea(form.Snapshot{Draft: complete, Submitted: true}, true))
		assert.Contains(t, out, `hx-get="/form/status"`)
		assert.Contains(t, out, `hx-trigger="every 1s"`)
		assert.Contains(t, out, `hx-swap-oob="true"`)
		assert.Contains(t, out, "Cadastro realizado com sucesso!")
		assert.Contains(t, out, "disabled>")
	})
}

func TestPhotoField_WithPhoto(t *testing.T) {
	d := domain.NewDraft()
	d.Imagem = &domain.Photo{Filename: "me.png", ContentType: "image/png", StorageKey: "drafts/d-1/abc.png"}

	out := render(t, PhotoField(props(d)))

	assert.Contains(t, out, `src="/form/imagem/preview?k=abc.png"`)
	assert.Contains(t, out, `hx-delete="/form/imagem"`)
	assert.NotContains(t, out, `type="file"`)
}

func TestAlert(t *testing.T) {
	out := render(t, Alert("Erro ao cadastrar."))
	assert.Contains(t, out, `role="alert"`)
	assert.Contains(t, out, `hx-swap-oob="true"`)
	assert.Contains(t, out, "Erro ao cadastrar.")
}
