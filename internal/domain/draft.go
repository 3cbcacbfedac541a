package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validatorInstance is a package-level validator instance.
// Using a single instance is more efficient as it caches struct information.
var validatorInstance = validator.New()

func init() {
	_ = validatorInstance.RegisterValidation("notblank", validateNotBlank)
	// safepath keeps staged photo keys inside the staging root.
	_ = validatorInstance.RegisterValidation("safepath", validateSafePath)
}

// validateNotBlank rejects strings that are empty once whitespace is trimmed.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateSafePath ensures the path doesn't contain any directory traversal attempts.
func validateSafePath(fl validator.FieldLevel) bool {
	path := fl.Field().String()

	if strings.Contains(path, "..") ||
		strings.Contains(path, "~") ||
		strings.HasPrefix(path, "/") ||
		strings.Contains(path, "\\") {
		return false
	}

	// Catches more subtle issues like "drafts/./../file".
	return path == filepath.Clean(path)
}

// Draft is the in-memory, not-yet-submitted registration of an aprovado.
// Concursos always holds at least one slot while the draft is being edited.
type Draft struct {
	Nome      string   `json:"nome" validate:"notblank"`
	Email     string   `json:"email" validate:"notblank"`
	Telefone  string   `json:"telefone" validate:"notblank"`
	Concursos []string `json:"concursos" validate:"min=1,dive,notblank"`
	Imagem    *Photo   `json:"-" validate:"-"`
}

// NewDraft returns the empty default draft: blank fields, one blank exam slot
// and no photo.
func NewDraft() Draft {
	return Draft{Concursos: []string{""}}
}

// Clone returns a deep copy of the draft.
func (d Draft) Clone() Draft {
	out := d
	out.Concursos = append([]string(nil), d.Concursos...)
	if d.Imagem != nil {
		p := *d.Imagem
		out.Imagem = &p
	}
	return out
}

// SetConcurso replaces the exam at index.
func (d *Draft) SetConcurso(index int, value string) error {
	if index < 0 || index >= len(d.Concursos) {
		return fmt.Errorf("set exam %d of %d: %w", index, len(d.Concursos), ErrExamIndexOutOfRange)
	}
	d.Concursos[index] = value
	return nil
}

// SetConcursos replaces the exam list. An empty list leaves one empty slot.
func (d *Draft) SetConcursos(values []string) {
	if len(values) == 0 {
		d.Concursos = []string{""}
		return
	}
	d.Concursos = append([]string(nil), values...)
}

// AddConcurso appends one empty exam slot.
func (d *Draft) AddConcurso() {
	d.Concursos = append(d.Concursos, "")
}

// RemoveConcurso drops the exam at index. Removing the last remaining slot is
// a no-op and reports false.
func (d *Draft) RemoveConcurso(index int) (bool, error) {
	if index < 0 || index >= len(d.Concursos) {
		return false, fmt.Errorf("remove exam %d of %d: %w", index, len(d.Concursos), ErrExamIndexOutOfRange)
	}
	if len(d.Concursos) <= 1 {
		return false, nil
	}
	d.Concursos = append(d.Concursos[:index:index], d.Concursos[index+1:]...)
	return true, nil
}

// Validate runs the struct-tag rules. Field errors are wrapped with
// ErrDraftInvalid so callers can match either.
func (d Draft) Validate() error {
	if err := validatorInstance.Struct(d); err != nil {
		return fmt.Errorf("%w: %w", ErrDraftInvalid, err)
	}
	return nil
}

// Complete reports whether every required field is filled. It is the enable
// rule of the submit button; the optional photo never affects it.
func (d Draft) Complete() bool {
	return d.Validate() == nil
}

// FilledConcursos returns the exams with blank entries removed, in order.
func (d Draft) FilledConcursos() []string {
	out := make([]string, 0, len(d.Concursos))
	for _, c := range d.Concursos {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	return out
}
