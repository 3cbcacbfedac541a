package layouts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

func TestCalculateTitle(t *testing.T) {
	assert.Equal(t, "Cadastro - Aprovados", CalculateTitle("Cadastro"))
	assert.Equal(t, "Aprovados", CalculateTitle(""))
}

func TestBase(t *testing.T) {
	var buf bytes.Buffer
	err := Base("Cadastro", []string{"Erro ao cadastrar."}, "A imagem deve ter no máximo 5MB", h.Main(g.Text("conteúdo"))).Render(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<!doctype html>")
	assert.Contains(t, out, "<title>Cadastro - Aprovados</title>")
	assert.Contains(t, out, "Erro ao cadastrar.")
	assert.Contains(t, out, "<main>conteúdo</main>")
	assert.Contains(t, out, `data-photo-too-large="A imagem deve ter no máximo 5MB"`)
}
