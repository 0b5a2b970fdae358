package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/protomem/bizcard-pass/internal/ctxstore"
	"github.com/protomem/bizcard-pass/internal/i18n"
	"github.com/protomem/bizcard-pass/internal/model"
	"github.com/protomem/bizcard-pass/internal/response"
	"github.com/protomem/bizcard-pass/internal/validator"
)

type responseError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (app *application) requestLogger(r *http.Request) *slog.Logger {
	return app.logger.With(
		ctxstore.TraceIDKey.String(), ctxstore.FromOr(r.Context(), ctxstore.TraceIDKey, ""),
	)
}

func (app *application) errorMessage(w http.ResponseWriter, r *http.Request, status int, message string, headers http.Header) {
	err := response.JSONWithHeaders(w, status, responseError{Error: message}, headers)
	if err != nil {
		app.requestLogger(r).Error("failed to write error response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.requestLogger(r).Error(err.Error(), "method", r.Method, "url", r.URL.String())

	msgs := app.headerMessages(r)
	app.errorMessage(w, r, http.StatusInternalServerError, msgs.API.ServerError, nil)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.errorMessage(w, r, http.StatusNotFound, app.headerMessages(r).API.NotFound, nil)
}

func (app *application) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	app.errorMessage(w, r, http.StatusMethodNotAllowed, app.headerMessages(r).API.MethodNotAllowed, nil)
}

func (app *application) badRequest(w http.ResponseWriter, r *http.Request, message string) {
	app.errorMessage(w, r, http.StatusBadRequest, message, nil)
}

func (app *application) failedValidation(w http.ResponseWriter, r *http.Request, message string, v validator.Validator) {
	app.requestLogger(r).Debug("failed validation", "fields", v.FieldErrors, "errors", v.Errors)

	err := response.JSON(w, http.StatusBadRequest, responseError{Error: message, Fields: v.FieldErrors})
	if err != nil {
		app.serverError(w, r, err)
	}
}

// serviceError answers with the status matching err's category and the
// localized message attached to it.
func (app *application) serviceError(w http.ResponseWriter, r *http.Request, msgs i18n.Messages, err error) {
	logger := app.requestLogger(r)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
	}

	message := msgs.API.ServerError
	if key, ok := model.MessageKey(err); ok {
		message = msgs.Text(key)
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err, "status", status)
	} else {
		logger.Debug("request rejected", "error", err, "status", status)
	}

	app.errorMessage(w, r, status, message, nil)
}
