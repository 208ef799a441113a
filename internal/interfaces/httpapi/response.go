package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/football-scout/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "football-scout"
	internalMessage  = "internal server error"
)

// googleResponseEnvelope follows the Google JSON style guide. ID echoes the
// request id so clients can quote it.
type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	ID         string           `json:"id,omitempty"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

// errorMappings is checked in order; ErrInvalidScope wraps no other
// sentinel, so its position only decides the reason string.
var errorMappings = []struct {
	target error
	mapped mappedError
}{
	{usecase.ErrInvalidScope, mappedError{http.StatusBadRequest, "invalidScope", "INVALID_ARGUMENT"}},
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrInsufficientData, mappedError{http.StatusUnprocessableEntity, "insufficientData", "FAILED_PRECONDITION"}},
	{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

var internalMapping = mappedError{http.StatusInternalServerError, "internalError", "INTERNAL"}

func mapError(err error) mappedError {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.mapped
		}
	}
	return internalMapping
}

// publicMessage hides everything that maps to a 500.
func publicMessage(err error, mapped mappedError) string {
	if mapped.HTTPStatus == http.StatusInternalServerError {
		return internalMessage
	}
	return err.Error()
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, env googleResponseEnvelope) {
	env.APIVersion = googleAPIVersion
	env.ID = RequestIDFromContext(ctx)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(env)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(err)
	if mapped.HTTPStatus >= http.StatusInternalServerError {
		span.RecordError(err)
	}
	writeErrorBody(ctx, w, mapped, publicMessage(err, mapped))
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeErrorBody(ctx, w, internalMapping, internalMessage)
}

func writeErrorBody(ctx context.Context, w http.ResponseWriter, mapped mappedError, msg string) {
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: msg,
			Status:  mapped.Status,
			Errors:  []googleErrorItem{errorItem(mapped, msg)},
		},
	})
}

func errorItem(mapped mappedError, msg string) googleErrorItem {
	return googleErrorItem{Domain: errorDomain, Reason: mapped.Reason, Message: msg}
}
