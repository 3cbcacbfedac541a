package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledDraft() Draft {
	return Draft{
		Nome:      "Maria Silva",
		Email:     "maria@example.com",
		Telefone:  "(11) 22233-4455",
		Concursos: []string{"TRF3 - Analista"},
	}
}

func TestNewDraft_HasOneEmptyExamSlot(t *testing.T) {
	d := NewDraft()
	assert.Equal(t, []string{""}, d.Concursos)
	assert.Nil(t, d.Imagem)
	assert.False(t, d.Complete())
}

func TestDraft_Complete(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Draft)
		want   bool
	}{
		{"all fields filled", func(d *Draft) {}, true},
		{"blank nome", func(d *Draft) { d.Nome = "   " }, false},
		{"empty email", func(d *Draft) { d.Email = "" }, false},
		{"email format is not checked", func(d *Draft) { d.Email = "not-an-email" }, true},
		{"empty telefone", func(d *Draft) { d.Telefone = "" }, false},
		{"one blank exam among many", func(d *Draft) { d.Concursos = []string{"A", " ", "B"} }, false},
		{"no exams at all", func(d *Draft) { d.Concursos = nil }, false},
		{"several exams", func(d *Draft) { d.Concursos = []string{"A", "B"} }, true},
		{"with photo", func(d *Draft) {
			d.Imagem = &Photo{Filename: "me.png", ContentType: "image/png", Size: 10, StorageKey: "drafts/x/y.png"}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := filledDraft()
			tt.mutate(&d)
			assert.Equal(t, tt.want, d.Complete())
		})
	}
}

func TestDraft_ValidateWrapsSentinel(t *testing.T) {
	d := filledDraft()
	d.Nome = ""
	err := d.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDraftInvalid))
}

func TestDraft_PhotoDoesNotAffectCompleteness(t *testing.T) {
	d := filledDraft()
	d.Imagem = &Photo{Filename: strings.Repeat("a", 300) + ".png", ContentType: "image/png", StorageKey: "drafts/x/~y"}
	assert.True(t, d.Complete())
}

func TestDraft_AddConcursoAppendsOneEmptyEntry(t *testing.T) {
	d := NewDraft()
	d.Concursos = []string{"A", "B"}

	d.AddConcurso()

	assert.Equal(t, []string{"A", "B", ""}, d.Concursos)
}

func TestDraft_RemoveConcurso(t *testing.T) {
	t.Run("removes the given index preserving order", func(t *testing.T) {
		d := NewDraft()
		d.Concursos = []string{"A", "B", "C"}
		removed, err := d.RemoveConcurso(1)
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Equal(t, []string{"A", "C"}, d.Concursos)
	})

	t.Run("sole remaining entry is kept", func(t *testing.T) {
		d := NewDraft()
		d.Concursos = []string{"A"}
		removed, err := d.RemoveConcurso(0)
		require.NoError(t, err)
		assert.False(t, removed)
		assert.Equal(t, []string{"A"}, d.Concursos)
	})

	t.Run("out of range", func(t *testing.T) {
		d := NewDraft()
		_, err := d.RemoveConcurso(3)
		assert.ErrorIs(t, err, ErrExamIndexOutOfRange)
	})
}

func TestDraft_RemoveConcursoDoesNotAliasClones(t *testing.T) {
	d := NewDraft()
	d.Concursos = []string{"A", "B", "C"}
	snapshot := d.Clone()

	_, err := d.RemoveConcurso(0)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, snapshot.Concursos)
}

func TestDraft_SetConcurso(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.SetConcurso(0, "INSS"))
	assert.Equal(t, []string{"INSS"}, d.Concursos)
	assert.ErrorIs(t, d.SetConcurso(-1, "x"), ErrExamIndexOutOfRange)
}

func TestDraft_SetConcursosKeepsOneSlot(t *testing.T) {
	d := NewDraft()
	in := []string{"INSS", "TRF3"}
	d.SetConcursos(in)
	in[0] = "changed"
	assert.Equal(t, []string{"INSS", "TRF3"}, d.Concursos)

	d.SetConcursos(nil)
	assert.Equal(t, []string{""}, d.Concursos)
}

func TestDraft_FilledConcursos(t *testing.T) {
	d := Draft{Concursos: []string{"A", "", "  ", "B", "\t"}}
	assert.Equal(t, []string{"A", "B"}, d.FilledConcursos())
}

func TestDraft_CloneIsDeep(t *testing.T) {
	d := filledDraft()
	d.Imagem = &Photo{Filename: "a.png"}
	c := d.Clone()

	c.Concursos[0] = "changed"
	c.Imagem.Filename = "b.png"

	assert.Equal(t, "TRF3 - Analista", d.Concursos[0])
	assert.Equal(t, "a.png", d.Imagem.Filename)
}
