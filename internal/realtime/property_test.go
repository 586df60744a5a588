// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"context"
	"testing"

	"pgregory.net/rapid"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/models"
)

// For any interleaving of two owners' operations, a device only ever hears
// about notes of its own owner, and every successful mutation reaches each
// device of the owner exactly once on the channel it is meant for.
func TestProtocol_OwnerIsolationProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		noteRepo, _ := store.NewMemoryRepositories()
		notes := service.NewNoteValidationService().Wrap(service.NewNoteService(noteRepo, logger.Nop()))
		router := NewRouter(logger.Nop())
		p := NewProtocol(notes, router, logger.Nop())

		devices := map[string][]*fakeMember{
			alice: {newMember("a1", alice), newMember("a2", alice)},
			bob:   {newMember("b1", bob), newMember("b2", bob)},
		}
		for _, ds := range devices {
			for _, d := range ds {
				router.Join(d)
			}
		}

		ownerOf := map[string]string{}
		var ids []string
		ctx := context.Background()

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			owner := rapid.SampledFrom([]string{alice, bob}).Draw(t, "owner")
			sender := devices[owner][rapid.IntRange(0, 1).Draw(t, "device")]
			for _, ds := range devices {
				for _, d := range ds {
					d.Reset()
				}
			}

			op := rapid.IntRange(0, 2).Draw(t, "op")
			if op == 0 || len(ids) == 0 {
				note, err := p.Create(ctx, owner, sender, models.NoteInput{Title: strPtr("t")})
				if err != nil {
					t.Fatalf("create: %v", err)
				}
				ownerOf[note.ID] = owner
				ids = append(ids, note.ID)
				checkFanOut(t, devices, owner, sender, []string{models.EventGlobal}, []string{models.EventLocal})
				continue
			}

			target := rapid.SampledFrom(ids).Draw(t, "target")
			var err error
			if op == 1 {
				_, err = p.Update(ctx, owner, sender, models.NoteInput{ID: target, Content: strPtr("c")})
			} else {
				_, err = p.Delete(ctx, owner, sender, models.DeleteNoteRequest{NoteID: target})
			}

			owned := ownerOf[target] == owner
			if owned != (err == nil) {
				t.Fatalf("op %d on note of %s by %s: err = %v", op, ownerOf[target], owner, err)
			}
			switch {
			case !owned:
				checkFanOut(t, devices, owner, sender, nil, []string{models.EventLocalError})
			case op == 1:
				checkFanOut(t, devices, owner, sender, []string{models.EventGlobal}, []string{models.EventLocal})
			default:
				delete(ownerOf, target)
				checkFanOut(t, devices, owner, sender,
					[]string{models.EventGlobal, models.EventLocal},
					[]string{models.EventGlobal, models.EventLocal})
			}

			for o, ds := range devices {
				for _, d := range ds {
					for _, e := range d.Events() {
						ne, ok := e.Data.(models.NoteEvent)
						if ok && ownerOf[ne.Note.ID] != "" && ownerOf[ne.Note.ID] != o {
							t.Fatalf("%s received a note of another owner", d.ID())
						}
					}
				}
			}
		}
	})
}

func checkFanOut(t *rapid.T, devices map[string][]*fakeMember, owner string, sender *fakeMember, others, self []string) {
	for o, ds := range devices {
		for _, d := range ds {
			var want []string
			switch {
			case o != owner:
				want = nil
			case d == sender:
				want = self
			default:
				want = others
			}

			got := d.Names()
			if len(got) != len(want) {
				t.Fatalf("%s got %v, want %v", d.ID(), got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("%s got %v, want %v", d.ID(), got, want)
				}
			}
		}
	}
}
