package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for the form's business rules.
var (
	ErrDraftInvalid        = errors.New("draft is missing required fields")
	ErrExamIndexOutOfRange = errors.New("exam index out of range")
	ErrPhotoTooLarge       = errors.New("photo exceeds the maximum size")
	ErrPhotoTypeNotAllowed = errors.New("photo content type is not allowed")
	ErrPhotoNameTooLong    = errors.New("photo filename is too long")
	ErrPhotoInvalid        = errors.New("photo metadata is invalid")
	ErrSubmissionInFlight  = errors.New("a submission is already in progress")
	ErrAlreadySubmitted    = errors.New("draft was already submitted and is waiting to reset")
	ErrUnknownField        = errors.New("unknown form field")
	ErrNotFound            = errors.New("requested resource not found")
)
