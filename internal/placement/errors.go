package placement

import (
	"errors"

	"road-editor/internal/piece"
)

var (
	// ErrInvalidSpec: the piece has no geometry or malformed connection data. Start aborts.
	ErrInvalidSpec = piece.ErrInvalidSpec
	// ErrInvalidSessionState: the transition is not valid in the current state. Nothing changes.
	ErrInvalidSessionState = errors.New("invalid session state")
	// ErrOverlapRejected: Finish found the preview overlapping committed geometry. The
	// preview is discarded and the registry is untouched.
	ErrOverlapRejected = errors.New("placement overlaps committed geometry")
	// ErrMissingCollaborator: a ground or collision collaborator is unavailable. Signalled
	// as a warning; placement carries on with fallbacks.
	ErrMissingCollaborator = errors.New("collaborator unavailable")
)
