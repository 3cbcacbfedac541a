// Package handlers holds the request DTOs and validation shared by the HTTP
// handlers.
package handlers

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// ConcursoRequest addresses one exam slot. Value is only sent on updates.
type ConcursoRequest struct {
	Index int    `param:"index" validate:"gte=0"`
	Value string `form:"concurso"`
}
