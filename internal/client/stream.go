// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-notes-sync/internal/adapter"
	"github.com/MKhiriev/go-notes-sync/models"
)

func nextEvent(ctx context.Context, stream adapter.NoteStream) (models.InboundEvent, error) {
	select {
	case <-ctx.Done():
		return models.InboundEvent{}, ctx.Err()
	case event, ok := <-stream.Events():
		if !ok {
			if err := stream.Err(); err != nil {
				return models.InboundEvent{}, fmt.Errorf("%w: %w", ErrSessionLost, err)
			}
			return models.InboundEvent{}, fmt.Errorf("%w: %w", ErrSessionLost, adapter.ErrStreamClosed)
		}
		return event, nil
	}
}

// awaitJoin waits for the room membership ack.
func awaitJoin(ctx context.Context, stream adapter.NoteStream) error {
	for {
		event, err := nextEvent(ctx, stream)
		if err != nil {
			return err
		}

		switch event.Name {
		case models.EventJoinRoom:
			return nil
		case models.EventGlobalError:
			return sessionError(event)
		}
	}
}

// awaitEcho skips changes made by other devices until the "local" echo with
// status want or a failure arrives.
func awaitEcho(ctx context.Context, stream adapter.NoteStream, want models.NoteStatus) (models.Note, error) {
	for {
		event, err := nextEvent(ctx, stream)
		if err != nil {
			return models.Note{}, err
		}

		switch event.Name {
		case models.EventLocal:
			var change models.NoteEvent
			if err = json.Unmarshal(event.Data, &change); err != nil {
				return models.Note{}, fmt.Errorf("decode %s event: %w", event.Name, err)
			}
			if change.Status == want {
				return change.Note, nil
			}

		case models.EventLocalError:
			var localErr models.LocalError
			if err = json.Unmarshal(event.Data, &localErr); err != nil {
				return models.Note{}, fmt.Errorf("decode %s event: %w", event.Name, err)
			}
			return models.Note{}, fmt.Errorf("%w: %s (%d)", ErrRejected, localErr.Message, localErr.Status)

		case models.EventGlobalError:
			return models.Note{}, sessionError(event)
		}
	}
}

func sessionError(event models.InboundEvent) error {
	var globalErr models.GlobalError
	if err := json.Unmarshal(event.Data, &globalErr); err != nil {
		return fmt.Errorf("%w: undecodable %s event", ErrSessionLost, event.Name)
	}
	return fmt.Errorf("%w: %s (%d)", ErrSessionLost, globalErr.Message, globalErr.Status)
}
