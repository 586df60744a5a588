// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// PageSize is the fixed number of notes returned per page.
const PageSize = 10

// PageQuery selects one keyset page of an owner's notes.
type PageQuery struct {
	// OwnerID restricts the scan to the owner's notes.
	OwnerID string

	// Cursor, when set, restricts the page to notes strictly older than it.
	Cursor *time.Time

	// Pattern is a case-insensitive substring matched against title or
	// content. An empty pattern matches every note.
	Pattern string

	// Limit is the number of rows to fetch. Stores receive PageSize+1 so the
	// caller can tell whether an older page exists.
	Limit uint64
}

// Page is one page of notes, newest first.
type Page struct {
	Notes []Note `json:"page"`
	IsEnd bool   `json:"isEnd"`
}

// ListRequest is the client-supplied part of a page request. Cursor is kept as
// text: an unparsable cursor is ignored rather than rejected.
type ListRequest struct {
	Cursor  string `json:"cursor,omitempty"`
	Pattern string `json:"pattern,omitempty"`
}
