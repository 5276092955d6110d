package domain

import "errors"

// PatchKind discriminates the three accepted partial-update shapes.
type PatchKind int

const (
	PatchTextOnly PatchKind = iota
	PatchDoneOnly
	PatchBoth
)

// ErrEmptyPatch is returned when a patch names none of the updatable fields.
var ErrEmptyPatch = errors.New("patch must set text, done, or both")

// TodoPatch is a discriminated partial update. Only the fields named by
// Kind are meaningful.
type TodoPatch struct {
	Kind PatchKind
	Text string
	Done bool
}

// NewTodoPatch classifies a decoded request body by field presence.
// Exactly three combinations are accepted; a body setting neither field
// fails with ErrEmptyPatch.
func NewTodoPatch(text *string, done *bool) (TodoPatch, error) {
	switch {
	case text != nil && done != nil:
		return TodoPatch{Kind: PatchBoth, Text: *text, Done: *done}, nil
	case text != nil:
		return TodoPatch{Kind: PatchTextOnly, Text: *text}, nil
	case done != nil:
		return TodoPatch{Kind: PatchDoneOnly, Done: *done}, nil
	default:
		return TodoPatch{}, ErrEmptyPatch
	}
}
