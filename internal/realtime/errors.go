// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/validators"
	"github.com/MKhiriev/go-notes-sync/models"
)

var (
	// ErrMalformedFrame is reported for a frame that is not a JSON event.
	ErrMalformedFrame = errors.New("malformed frame")

	// ErrUnknownEvent is reported for an event name the channel does not
	// handle.
	ErrUnknownEvent = errors.New("unknown event")

	// ErrSessionExpired is reported when the credential of a connected
	// device runs out.
	ErrSessionExpired = errors.New("token is expired")
)

// Kind is the error taxonomy of the channel.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindValidation
	KindNotFound
	KindBadFrame
)

// Failure is an error normalized for a device: only the status code and a
// human-readable message cross the boundary.
type Failure struct {
	Kind       Kind
	StatusCode int
	Message    string
}

// ConnectionScoped reports whether the failure concerns the connection as a
// whole (globalError) rather than the action in flight (localError).
func (f Failure) ConnectionScoped() bool {
	return f.Kind == KindUnauthenticated || f.Kind == KindBadFrame
}

type failureRule struct {
	err     error
	failure Failure
}

// failureRules are checked in order; the first match wins. Specific
// validator errors come before the generic ErrInvalidDataProvided.
var failureRules = []failureRule{
	{validators.ErrEmptyNote, Failure{KindValidation, http.StatusBadRequest, "At least one field is required."}},
	{validators.ErrNoDataSubmitted, Failure{KindValidation, http.StatusBadRequest, "No data submitted."}},
	{validators.ErrInvalidNoteID, Failure{KindValidation, http.StatusBadRequest, "noteId must be a UUID."}},
	{service.ErrInvalidDataProvided, Failure{KindValidation, http.StatusBadRequest, "Invalid data provided."}},
	{service.ErrNoteDoesNotExist, Failure{KindNotFound, http.StatusNotFound, "Note does not exist."}},
	{ErrSessionExpired, Failure{KindUnauthenticated, http.StatusUnauthorized, "token is expired"}},
	{service.ErrUnauthenticated, Failure{KindUnauthenticated, http.StatusUnauthorized, "Unauthorized"}},
	{service.ErrTokenIsExpiredOrInvalid, Failure{KindUnauthenticated, http.StatusUnauthorized, "Unauthorized"}},
	{ErrMalformedFrame, Failure{KindBadFrame, http.StatusBadRequest, "Malformed event."}},
	{ErrUnknownEvent, Failure{KindBadFrame, http.StatusBadRequest, "Unknown event."}},
}

var internalFailure = Failure{KindInternal, http.StatusInternalServerError, "Internal server error."}

// Normalize maps err to the failure a device is told about. Unrecognised
// errors become a sanitized internal error.
func Normalize(err error) Failure {
	for _, rule := range failureRules {
		if errors.Is(err, rule.err) {
			return rule.failure
		}
	}
	return internalFailure
}

// LocalErrorEvent builds the "localError" event for a failed action.
// payload is the request the device sent, echoed back for context.
func LocalErrorEvent(status models.NoteStatus, payload any, err error) models.Event {
	f := Normalize(err)
	return models.Event{
		Name: models.EventLocalError,
		Data: models.LocalError{
			Status:  f.StatusCode,
			Data:    models.LocalErrorData{Status: status, Note: payload},
			Message: f.Message,
		},
	}
}

// GlobalErrorEvent builds the "globalError" event for a connection-level
// failure.
func GlobalErrorEvent(err error) models.Event {
	f := Normalize(err)
	return models.Event{
		Name: models.EventGlobalError,
		Data: models.GlobalError{Status: f.StatusCode, Message: f.Message},
	}
}
