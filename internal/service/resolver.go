package service

import (
	"sort"

	"github.com/oyugijr/EchoTask/models"
)

// ResolutionAction is the outcome of comparing a local and a remote revision
// of the same note.
type ResolutionAction int

const (
	// ActionNone means the revisions are the same: identical update stamp
	// and identical content. Nothing to do.
	ActionNone ResolutionAction = iota

	// ActionTakeRemote means the remote revision is strictly newer and
	// overwrites the local one.
	ActionTakeRemote

	// ActionTakeLocal means the local revision is strictly newer; the remote
	// copy will be overwritten on the next push.
	ActionTakeLocal

	// ActionFlagConflict means the revisions carry the same update stamp but
	// differ in content. No automatic ordering exists; a human decides.
	ActionFlagConflict
)

// Resolution is the resolver's verdict. Fields is populated only for
// ActionFlagConflict and lists exactly the differing content field names.
type Resolution struct {
	Action ResolutionAction
	Fields []string
}

// conflictResolver is the concrete implementation of ConflictResolver.
// It performs a purely in-memory comparison of two note revisions; no
// storage layer or logger is required because the operation is stateless and
// produces no side effects.
type conflictResolver struct{}

// NewConflictResolver constructs a ConflictResolver ready for use.
func NewConflictResolver() ConflictResolver {
	return &conflictResolver{}
}

// Resolve implements ConflictResolver.
//
// Last write wins by update stamp. A true stamp tie with differing content
// is the only ambiguous case: no causal clock exists to order the two
// writes, so the pair is surfaced as a conflict instead of guessing.
func (r *conflictResolver) Resolve(local, remote models.Note) Resolution {
	switch {
	case remote.UpdatedAt.After(local.UpdatedAt):
		return Resolution{Action: ActionTakeRemote}

	case local.UpdatedAt.After(remote.UpdatedAt):
		return Resolution{Action: ActionTakeLocal}
	}

	fields := r.ConflictFields(local, remote)
	if len(fields) == 0 {
		// Identical revision arrived twice.
		return Resolution{Action: ActionNone}
	}

	return Resolution{Action: ActionFlagConflict, Fields: fields}
}

// ConflictFields implements ConflictResolver. It compares the content fields
// by deep value equality and returns the names of those that differ, in a
// fixed order.
func (r *conflictResolver) ConflictFields(local, remote models.Note) []string {
	var fields []string

	if local.Title != remote.Title {
		fields = append(fields, models.ConflictFieldTitle)
	}
	if local.Content != remote.Content {
		fields = append(fields, models.ConflictFieldContent)
	}
	if local.Completed != remote.Completed {
		fields = append(fields, models.ConflictFieldCompleted)
	}
	if !equalTags(local.Tags, remote.Tags) {
		fields = append(fields, models.ConflictFieldTags)
	}
	if !equalChecklists(local.Checklist, remote.Checklist) {
		fields = append(fields, models.ConflictFieldChecklist)
	}

	return fields
}

// equalTags compares tags as a set: order does not matter, and a nil set
// equals an empty one.
func equalTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)

	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func equalChecklists(a, b []models.ChecklistItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID ||
			a[i].Text != b[i].Text ||
			a[i].Completed != b[i].Completed ||
			!a[i].CreatedAt.Equal(b[i].CreatedAt) {
			return false
		}
	}
	return true
}
