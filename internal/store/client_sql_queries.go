// SPDX-License-Identifier: Apache-2.0

package store

const noteColumns = `
			id,
			device_id,
			sync_id,
			title,
			content,
			segments,
			checklist,
			tags,
			due_at,
			reminder_at,
			priority,
			starred,
			pinned,
			archived,
			completed,
			deleted,
			created_at,
			updated_at,
			last_sync_at,
			conflict_version`

const (
	saveSingleNote = `
		INSERT INTO notes (` + noteColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);`

	getSingleNote = `
		SELECT` + noteColumns + `
		FROM notes
		WHERE id = $1;`

	getAllNotes = `
		SELECT` + noteColumns + `
		FROM notes
		WHERE deleted = FALSE
		ORDER BY updated_at DESC;`

	getDirtyNotes = `
		SELECT` + noteColumns + `
		FROM notes
		WHERE last_sync_at IS NULL OR updated_at > last_sync_at
		ORDER BY updated_at ASC;`

	countDirtyNotes = `
		SELECT COUNT(*)
		FROM notes
		WHERE last_sync_at IS NULL OR updated_at > last_sync_at;`

	updateNote = `
		UPDATE notes SET
			device_id        = $1,
			sync_id          = $2,
			title            = $3,
			content          = $4,
			segments         = $5,
			checklist        = $6,
			tags             = $7,
			due_at           = $8,
			reminder_at      = $9,
			priority         = $10,
			starred          = $11,
			pinned           = $12,
			archived         = $13,
			completed        = $14,
			deleted          = $15,
			updated_at       = $16,
			last_sync_at     = $17,
			conflict_version = $18
		WHERE id = $19;`

	softDeleteNote = `
		UPDATE notes SET
			deleted    = TRUE,
			updated_at = $1
		WHERE id = $2;`

	markNoteSynced = `
		UPDATE notes SET
			last_sync_at = $1,
			sync_id      = id
		WHERE id = $2 AND updated_at = $3;`

	upsertNoteFromRemote = `
		INSERT INTO notes (` + noteColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (id) DO UPDATE SET
			device_id        = excluded.device_id,
			sync_id          = excluded.sync_id,
			title            = excluded.title,
			content          = excluded.content,
			segments         = excluded.segments,
			checklist        = excluded.checklist,
			tags             = excluded.tags,
			due_at           = excluded.due_at,
			reminder_at      = excluded.reminder_at,
			priority         = excluded.priority,
			starred          = excluded.starred,
			pinned           = excluded.pinned,
			archived         = excluded.archived,
			completed        = excluded.completed,
			deleted          = excluded.deleted,
			created_at       = excluded.created_at,
			updated_at       = excluded.updated_at,
			last_sync_at     = excluded.last_sync_at,
			conflict_version = excluded.conflict_version;`

	getMetadataValue = `
		SELECT value
		FROM sync_metadata
		WHERE key = $1;`

	setMetadataValue = `
		INSERT INTO sync_metadata (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			value      = excluded.value,
			updated_at = CURRENT_TIMESTAMP;`
)
