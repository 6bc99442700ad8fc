//go:build !windows && !linux && !darwin

package envctl

// No writable persistent scope on this platform; applies still reach the
// process scope and the Applier reports the limitation.
func newPersistentScope() (Scope, error) { return nil, ErrUnsupported }
