// domain/gate.go
package domain

import "crypto/subtle"

// Operation is a kind of access attempted against a note.
type Operation int

const (
	OpRead Operation = iota
	OpWrite
	OpDelete
)

func (op Operation) String() string {
	switch op {
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

// ToggleOp enumerates the flag mutations that go through the single
// gate-mediated mutation path.
type ToggleOp string

const (
	TogglePin     ToggleOp = "pin"
	ToggleArchive ToggleOp = "archive"
	ToggleShare   ToggleOp = "share"
)

// Valid reports whether t names a known toggle.
func (t ToggleOp) Valid() bool {
	switch t {
	case TogglePin, ToggleArchive, ToggleShare:
		return true
	}
	return false
}

// CanAccess is the access gate: the single decision point consulted before
// any read or write of note data. shareToken is the capability presented by
// an anonymous reader and is ignored for authenticated actors.
//
// The rules:
//   - the owner may do anything to their own note, shared or not;
//   - an anonymous reader gets read access iff sharing is currently enabled
//     and the presented token matches, evaluated at call time (revoking a
//     link denies the very next read);
//   - everything else is denied.
//
// Denied reads must be surfaced to callers as not-found, never forbidden.
func CanAccess(actor Actor, note *Note, op Operation, shareToken string) bool {
	if note == nil {
		return false
	}

	if !actor.Anonymous && actor.UserID == note.OwnerID {
		return true
	}

	if op != OpRead {
		return false
	}

	if actor.Anonymous && note.IsShared && note.ShareID != "" {
		return subtle.ConstantTimeCompare([]byte(shareToken), []byte(note.ShareID)) == 1
	}

	return false
}
