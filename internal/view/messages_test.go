package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT(t *testing.T) {
	assert.Equal(t, "Erro ao cadastrar. Verifique o console para mais detalhes.", T(MsgSubmitFailed))
	assert.Equal(t, "A imagem deve ter no máximo 5MB", T(MsgPhotoTooLarge, "5MB"))
}

func TestSizeLabel(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{5 * 1024 * 1024, "5MB"},
		{3 * 1024 * 1024 / 2, "1,5MB"},
		{1024, "1KB"},
		{512 * 1024, "512KB"},
		{1536, "1,5KB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SizeLabel(tt.bytes))
	}
}
