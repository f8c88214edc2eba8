// Package server provides the HTTP REST API for the resume studio.
package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-studio/internal/backend"
	"github.com/jonathan/resume-studio/internal/orchestrate"
	"github.com/jonathan/resume-studio/internal/session"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		emptyResume   *orchestrate.ErrEmptyResume
		missingInput  *orchestrate.ErrMissingInput
		badFormat     *orchestrate.ErrUnsupportedFormat
		notFound      *session.ErrNotFound
		statusErr     *backend.StatusError
		requestErr    *backend.RequestError
		validationErr validator.ValidationErrors
	)

	switch {
	case errors.As(err, &emptyResume),
		errors.As(err, &missingInput),
		errors.As(err, &badFormat),
		errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, orchestrate.ErrNoUsableData):
		return http.StatusUnprocessableEntity
	case errors.As(err, &statusErr), errors.As(err, &requestErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
