package models

import "fmt"

// TargetKind names the entity kind a like, comment or bookmark attaches to.
type TargetKind string

const (
	TargetPost       TargetKind = "post"
	TargetDuaRequest TargetKind = "dua_request"
)

// Target is a reference to exactly one post or exactly one dua request.
// The zero value refers to nothing and is rejected by every store operation.
type Target struct {
	kind TargetKind
	id   string
}

// PostTarget refers to the post with the given id.
func PostTarget(id string) Target {
	return Target{kind: TargetPost, id: id}
}

// DuaRequestTarget refers to the dua request with the given id.
func DuaRequestTarget(id string) Target {
	return Target{kind: TargetDuaRequest, id: id}
}

// ParseTarget builds a Target from the two optional foreign keys used on the
// wire. Exactly one of them must be set.
func ParseTarget(postID, duaRequestID *string) (Target, error) {
	hasPost := postID != nil && *postID != ""
	hasDua := duaRequestID != nil && *duaRequestID != ""
	switch {
	case hasPost && hasDua:
		return Target{}, NewValidationError("only one of post_id or dua_request_id may be set")
	case hasPost:
		return PostTarget(*postID), nil
	case hasDua:
		return DuaRequestTarget(*duaRequestID), nil
	default:
		return Target{}, NewValidationError("one of post_id or dua_request_id is required")
	}
}

// Kind returns the target kind, empty for the zero Target.
func (t Target) Kind() TargetKind { return t.kind }

// ID returns the referenced entity id.
func (t Target) ID() string { return t.id }

// IsZero reports whether t refers to nothing.
func (t Target) IsZero() bool { return t.kind == "" || t.id == "" }

// Validate rejects the zero Target.
func (t Target) Validate() error {
	if t.IsZero() {
		return NewValidationError("one of post_id or dua_request_id is required")
	}
	return nil
}

// PostID returns the id when t refers to a post, nil otherwise.
func (t Target) PostID() *string {
	if t.kind != TargetPost {
		return nil
	}
	id := t.id
	return &id
}

// DuaRequestID returns the id when t refers to a dua request, nil otherwise.
func (t Target) DuaRequestID() *string {
	if t.kind != TargetDuaRequest {
		return nil
	}
	id := t.id
	return &id
}

// Column is the foreign key column holding the target id.
func (t Target) Column() string {
	if t.kind == TargetDuaRequest {
		return "dua_request_id"
	}
	return "post_id"
}

// Key is a composite identity for (userID, t), used by the memory store.
func (t Target) Key(userID string) string {
	return fmt.Sprintf("%s:%s:%s", userID, t.kind, t.id)
}

func (t Target) String() string {
	return fmt.Sprintf("%s(%s)", t.kind, t.id)
}

func targetOf(postID, duaRequestID *string) Target {
	if postID != nil {
		return PostTarget(*postID)
	}
	if duaRequestID != nil {
		return DuaRequestTarget(*duaRequestID)
	}
	return Target{}
}
