package code

import "errors"

// Storage engine business errors. Not-found is deliberately absent:
// lookups on a missing id return an empty result, not an error.
var (
	ErrDuplicateName   = NewError(20101, "name already exists")
	ErrProtectedEntity = NewError(20102, "entity is protected and can not be deleted")
	ErrInvalidSnapshot = NewError(20103, "import snapshot is invalid")
	ErrNameRequired    = NewError(20104, "name is required")
	ErrUnknownRef      = NewError(20105, "referenced entity does not exist")
)

// IsDuplicateName reports whether err is a duplicate-name failure.
func IsDuplicateName(err error) bool {
	return errors.Is(err, ErrDuplicateName)
}

// IsProtectedEntity reports whether err is a protected-entity failure.
func IsProtectedEntity(err error) bool {
	return errors.Is(err, ErrProtectedEntity)
}

// IsInvalidSnapshot reports whether err is an invalid-snapshot failure.
func IsInvalidSnapshot(err error) bool {
	return errors.Is(err, ErrInvalidSnapshot)
}
