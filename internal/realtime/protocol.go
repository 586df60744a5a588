// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/validators"
	"github.com/MKhiriev/go-notes-sync/models"
)

// Protocol handles note mutations and page requests of one owner's
// devices and fans the results out through the Router.
//
// Mutations of one owner are serialized: apply and fan-out of one request
// finish before the next request of the same owner starts applying. Page
// requests are not serialized.
//
// sender is the connection the request came from. It may be nil for
// requests arriving over REST: then every device is treated as "another
// device" and errors are only returned, not emitted.
type Protocol struct {
	notes  service.NoteService
	router *Router
	locks  *OwnerLocks

	logger *logger.Logger
}

func NewProtocol(notes service.NoteService, router *Router, logger *logger.Logger) *Protocol {
	return &Protocol{
		notes:  notes,
		router: router,
		locks:  NewOwnerLocks(),
		logger: logger,
	}
}

// Create stores a new note. Other devices get "global", the sender gets
// "local".
func (p *Protocol) Create(ctx context.Context, ownerID string, sender Member, input models.NoteInput) (models.Note, error) {
	ctx = context.WithoutCancel(ctx)
	unlock := p.locks.Lock(ownerID)
	defer unlock()

	note, err := p.notes.CreateNote(ctx, ownerID, input)
	if err != nil {
		p.reportFailure(ctx, sender, models.NoteCreated, input, err)
		return models.Note{}, err
	}

	p.router.EmitExceptSender(ownerID, sender, globalEvent(models.NoteCreated, note))
	p.router.EmitToSender(sender, localEvent(models.NoteCreated, note))

	return note, nil
}

// Update replaces title and content of a note. Fan-out is the same as for
// Create.
func (p *Protocol) Update(ctx context.Context, ownerID string, sender Member, input models.NoteInput) (models.Note, error) {
	ctx = context.WithoutCancel(ctx)
	unlock := p.locks.Lock(ownerID)
	defer unlock()

	note, err := p.notes.UpdateNote(ctx, ownerID, input)
	if err != nil {
		p.reportFailure(ctx, sender, models.NoteUpdated, input, err)
		return models.Note{}, err
	}

	p.router.EmitExceptSender(ownerID, sender, globalEvent(models.NoteUpdated, note))
	p.router.EmitToSender(sender, localEvent(models.NoteUpdated, note))

	return note, nil
}

// Delete removes a note. Every device gets "global"; then the other
// devices get "local" with isDeleteOrigin false and the sender gets "local"
// with isDeleteOrigin true.
func (p *Protocol) Delete(ctx context.Context, ownerID string, sender Member, request models.DeleteNoteRequest) (models.Note, error) {
	ctx = context.WithoutCancel(ctx)
	unlock := p.locks.Lock(ownerID)
	defer unlock()

	note, err := p.notes.DeleteNote(ctx, ownerID, request.NoteID)
	if err != nil {
		p.reportFailure(ctx, sender, models.NoteDeleted, request, err)
		return models.Note{}, err
	}

	p.router.EmitToAll(ownerID, globalEvent(models.NoteDeleted, note))
	p.router.EmitExceptSender(ownerID, sender, localDeleteEvent(note, false))
	p.router.EmitToSender(sender, localDeleteEvent(note, true))

	return note, nil
}

// List serves one page to the sender as a "notes" event.
func (p *Protocol) List(ctx context.Context, ownerID string, sender Member, request models.ListRequest) (models.Page, error) {
	page, err := p.notes.ListNotes(ctx, ownerID, request)
	if err != nil {
		p.reportFailure(ctx, sender, models.NotesListed, request, err)
		return models.Page{}, err
	}

	p.router.EmitToSender(sender, notesEvent(page))

	return page, nil
}

// Dispatch decodes one inbound frame of sender and runs the matching
// operation. Failures are reported to the sender; none of them ends the
// connection.
func (p *Protocol) Dispatch(ctx context.Context, sender Member, frame []byte) {
	log := logger.FromContext(ctx)

	var event models.InboundEvent
	if err := json.Unmarshal(frame, &event); err != nil || event.Name == "" {
		log.Debug().Err(err).Msg("malformed frame")
		p.router.EmitToSender(sender, GlobalErrorEvent(ErrMalformedFrame))
		return
	}

	ownerID := sender.OwnerID()
	var err error
	switch event.Name {
	case models.EventCreateNote:
		var input models.NoteInput
		if err = decodePayload(event.Data, &input); err != nil {
			p.reportFailure(ctx, sender, models.NoteCreated, event.Data, err)
			return
		}
		_, err = p.Create(ctx, ownerID, sender, input)

	case models.EventUpdateNote:
		var input models.NoteInput
		if err = decodePayload(event.Data, &input); err != nil {
			p.reportFailure(ctx, sender, models.NoteUpdated, event.Data, err)
			return
		}
		_, err = p.Update(ctx, ownerID, sender, input)

	case models.EventDeleteNote:
		var request models.DeleteNoteRequest
		if err = decodePayload(event.Data, &request); err != nil {
			p.reportFailure(ctx, sender, models.NoteDeleted, event.Data, err)
			return
		}
		_, err = p.Delete(ctx, ownerID, sender, request)

	case models.EventGetNotes:
		var request models.ListRequest
		if len(event.Data) > 0 && string(event.Data) != "null" {
			if err = json.Unmarshal(event.Data, &request); err != nil {
				p.reportFailure(ctx, sender, models.NotesListed, event.Data, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
				return
			}
		}
		_, err = p.List(ctx, ownerID, sender, request)

	default:
		log.Debug().Str("event", event.Name).Msg("unknown event")
		p.router.EmitToSender(sender, GlobalErrorEvent(ErrUnknownEvent))
		return
	}

	if err != nil {
		log.Debug().Err(err).Str("event", event.Name).Msg("event handling failed")
		return
	}
	log.Debug().Str("event", event.Name).Msg("event handled")
}

// reportFailure sends the normalized failure to the sender on the channel
// matching its scope.
func (p *Protocol) reportFailure(ctx context.Context, sender Member, status models.NoteStatus, payload any, err error) {
	f := Normalize(err)
	if f.Kind == KindInternal {
		logger.FromContext(ctx).Err(err).Str("func", "*Protocol.reportFailure").Str("status", string(status)).Msg("action failed")
	}
	if sender == nil {
		return
	}

	if f.ConnectionScoped() {
		p.router.EmitToSender(sender, GlobalErrorEvent(err))
		return
	}
	p.router.EmitToSender(sender, LocalErrorEvent(status, payload, err))
}

// decodePayload decodes a mutation payload. A missing or null payload is
// ErrNoDataSubmitted; a payload of the wrong shape is invalid data.
func decodePayload(data json.RawMessage, v any) error {
	if len(data) == 0 || string(data) == "null" {
		return fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrNoDataSubmitted)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err)
	}
	return nil
}
