package services

import (
	"errors"
	"strings"
)

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrComplaintNotFound  = errors.New("complaint not found")
	ErrNotComplaintOwner  = errors.New("unauthorized to delete this complaint")
	ErrUnsupportedImage   = errors.New("unsupported image format, please upload a JPEG or PNG image")
)

// ValidationError lists the request fields that were missing or empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
