// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/realtime"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/models"
)

// The REST surface drives the same protocol as the websocket channel with
// no sender: mutations are fanned out to every live device of the owner,
// failures only come back in the response.

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, errNoOwnerInContext)
		return
	}

	request := models.ListRequest{
		Cursor:  r.URL.Query().Get("cursor"),
		Pattern: r.URL.Query().Get("pattern"),
	}

	page, err := h.protocol.List(r.Context(), ownerID, nil, request)
	if err != nil {
		writeNoteError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, errNoOwnerInContext)
		return
	}

	note, err := h.services.NoteService.GetNote(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("note lookup failed")
		writeNoteError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, errNoOwnerInContext)
		return
	}

	var input models.NoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeNoteError(w, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	note, err := h.protocol.Create(r.Context(), ownerID, nil, input)
	if err != nil {
		writeNoteError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, note, http.StatusCreated)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, errNoOwnerInContext)
		return
	}

	var input models.NoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeNoteError(w, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}
	input.ID = chi.URLParam(r, "id")

	note, err := h.protocol.Update(r.Context(), ownerID, nil, input)
	if err != nil {
		writeNoteError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, errNoOwnerInContext)
		return
	}

	note, err := h.protocol.Delete(r.Context(), ownerID, nil, models.DeleteNoteRequest{NoteID: chi.URLParam(r, "id")})
	if err != nil {
		writeNoteError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, note, http.StatusOK)
}

// writeNoteError answers with the same status and message a device gets
// on the channel.
func writeNoteError(w http.ResponseWriter, err error) {
	f := realtime.Normalize(err)
	utils.WriteError(w, f.Message, f.StatusCode)
}
