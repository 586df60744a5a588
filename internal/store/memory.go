// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/MKhiriev/go-notes-sync/models"
)

// memoryStorage keeps users and notes in process memory. It backs both
// repositories when no database DSN is configured.
type memoryStorage struct {
	mu    sync.RWMutex
	users map[string]models.User
	notes map[string]models.Note
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{
		users: make(map[string]models.User),
		notes: make(map[string]models.Note),
	}
}

// NewMemoryRepositories returns repositories sharing one in-memory storage.
func NewMemoryRepositories() (NoteRepository, UserRepository) {
	s := newMemoryStorage()
	return &memoryNoteRepository{s}, &memoryUserRepository{s}
}

type memoryNoteRepository struct {
	s *memoryStorage
}

func (r *memoryNoteRepository) FindByOwnerAndID(_ context.Context, ownerID, id string) (models.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	note, ok := r.s.notes[id]
	if !ok || note.OwnerID != ownerID {
		return models.Note{}, ErrNoteNotFound
	}

	return cloneNote(note), nil
}

func (r *memoryNoteRepository) FindPage(_ context.Context, q models.PageQuery) ([]models.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	pattern := strings.ToLower(q.Pattern)
	matched := make([]models.Note, 0, models.PageSize+1)
	for _, note := range r.s.notes {
		if note.OwnerID != q.OwnerID {
			continue
		}
		if q.Cursor != nil && !note.Timestamp.Before(*q.Cursor) {
			continue
		}
		if pattern != "" && !containsFold(note.Title, pattern) && !containsFold(note.Content, pattern) {
			continue
		}
		matched = append(matched, cloneNote(note))
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	limit := int(q.Limit)
	if limit == 0 {
		limit = models.PageSize + 1
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

func (r *memoryNoteRepository) Save(_ context.Context, note models.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if stored, ok := r.s.notes[note.ID]; ok && stored.OwnerID != note.OwnerID {
		return ErrNoteNotFound
	}
	r.s.notes[note.ID] = cloneNote(note)

	return nil
}

func (r *memoryNoteRepository) Remove(_ context.Context, ownerID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	note, ok := r.s.notes[id]
	if !ok || note.OwnerID != ownerID {
		return ErrNoteNotFound
	}
	delete(r.s.notes, id)

	return nil
}

type memoryUserRepository struct {
	s *memoryStorage
}

func (r *memoryUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Nickname == user.Nickname {
			return models.User{}, ErrNicknameAlreadyExists
		}
	}
	r.s.users[user.ID] = user

	return user, nil
}

func (r *memoryUserRepository) FindUserByNickname(_ context.Context, nickname string) (models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Nickname == nickname {
			return u, nil
		}
	}

	return models.User{}, ErrNoUserWasFound
}

func (r *memoryUserRepository) FindUserByID(_ context.Context, id string) (models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}

	return u, nil
}

func cloneNote(n models.Note) models.Note {
	if n.Title != nil {
		t := *n.Title
		n.Title = &t
	}
	if n.Content != nil {
		c := *n.Content
		n.Content = &c
	}
	return n
}

func containsFold(s *string, lowerPattern string) bool {
	return s != nil && strings.Contains(strings.ToLower(*s), lowerPattern)
}
