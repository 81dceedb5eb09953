package domain

import (
	"fmt"

	"github.com/haierkeys/note-storage-engine/pkg/code"
)

// ErrSnapshotVersion reports an unsupported export version.
func ErrSnapshotVersion(got int) error {
	return code.ErrInvalidSnapshot.WithDetails(
		fmt.Sprintf("unsupported export version %d, want %d", got, SnapshotVersion))
}

// ErrSnapshotNote reports a note entry that fails validation.
func ErrSnapshotNote(noteID string, reason string) error {
	return code.ErrInvalidSnapshot.WithDetails(
		fmt.Sprintf("note %q: %s", noteID, reason))
}
