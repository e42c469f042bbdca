// SPDX-License-Identifier: Apache-2.0

package models

import (
	"encoding/json"
	"time"
)

// RemoteNote is the wire representation of a note held by the remote
// document store: the note itself plus the server-side modification stamp
// the pull watermark is measured against.
type RemoteNote struct {
	Note

	// ServerUpdatedAt is stamped by the server on every upsert. It is a
	// server-clock value and intentionally distinct from UpdatedAt, which
	// belongs to the writing device.
	ServerUpdatedAt time.Time `json:"server_updated_at"`
}

// ChangesResponse is the page returned by the changed-since query, ordered
// by ServerUpdatedAt ascending so the client can advance its watermark after
// every page without skipping records.
//
// Notes are kept as raw JSON so the client can decode records one by one:
// a single malformed record is skipped and logged without aborting the
// whole pull.
type ChangesResponse struct {
	Notes []json.RawMessage `json:"notes"`

	// Count is the number of entries in Notes.
	Count int `json:"count"`
}

// NewChangesResponse marshals each remote note individually into a
// [ChangesResponse]. Marshaling a RemoteNote cannot realistically fail, but
// any record that does fail is dropped rather than poisoning the page.
func NewChangesResponse(notes []RemoteNote) ChangesResponse {
	resp := ChangesResponse{Notes: make([]json.RawMessage, 0, len(notes))}
	for i := range notes {
		raw, err := json.Marshal(notes[i])
		if err != nil {
			continue
		}
		resp.Notes = append(resp.Notes, raw)
	}
	resp.Count = len(resp.Notes)
	return resp
}
