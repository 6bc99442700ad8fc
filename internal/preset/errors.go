package preset

import "errors"

var (
	// ErrCorruptStore: the backing file exists but is not a well-formed
	// preset list. The file is left untouched; the caller decides whether
	// to fix it by hand or reset it.
	ErrCorruptStore = errors.New("preset store file is corrupt")

	// ErrWriteStore: persisting a mutation failed. The in-memory
	// collection returned alongside it is the pre-mutation state.
	ErrWriteStore = errors.New("failed to write preset store")

	ErrInvalidName   = errors.New("preset name must not be empty")
	ErrDuplicateName = errors.New("preset name already exists")
	ErrNotFound      = errors.New("preset not found")
)
