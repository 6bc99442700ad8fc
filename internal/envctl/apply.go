package envctl

import (
	errs "errors"
	"os"

	"github.com/pkg/errors"

	"github.com/DaanHessen/envdeck/internal/preset"
)

var (
	// ErrApply: the preset could not be written to either scope.
	ErrApply = errs.New("failed to apply preset in both scopes")

	// ErrUnsupported: this platform has no writable persistent scope.
	ErrUnsupported = errs.New("persistent environment scope is not supported on this platform")
)

// Scope writes environment variables at one visibility level. Implementations
// exist for the current process and for the OS persistent store; tests
// substitute fakes.
type Scope interface {
	// Label names the scope for messages shown to the user.
	Label() string
	Set(key, value string) error
}

type processScope struct{}

func (processScope) Label() string               { return "process" }
func (processScope) Set(key, value string) error { return os.Setenv(key, value) }

// ProcessScope returns the scope covering the current process and the
// children it spawns afterward.
func ProcessScope() Scope { return processScope{} }

// Result reports the outcome of one apply, per scope. The scopes are
// written independently; one failing never rolls back the other.
type Result struct {
	ProcessOK     bool
	PersistentOK  bool
	ProcessErr    error
	PersistentErr error
}

// Partial reports whether exactly one scope succeeded.
func (r Result) Partial() bool { return r.ProcessOK != r.PersistentOK }

// Applier writes presets into the process scope and, where the platform
// supports one, the OS persistent scope. The persistent strategy is chosen
// once at construction, never branched inside Apply.
type Applier struct {
	process       Scope
	persistent    Scope // nil when no persistent scope is available
	persistentErr error // why, when persistent is nil
}

// NewApplier selects the persistent-scope strategy for the current platform.
func NewApplier() *Applier {
	scope, err := newPersistentScope()
	return &Applier{process: ProcessScope(), persistent: scope, persistentErr: err}
}

// NewApplierWithScopes builds an Applier over explicit scopes. persistent
// may be nil to model an unsupported platform.
func NewApplierWithScopes(process, persistent Scope) *Applier {
	a := &Applier{process: process, persistent: persistent}
	if persistent == nil {
		a.persistentErr = ErrUnsupported
	}
	return a
}

// SupportsPersistentScope reports whether applying can also reach future
// process launches. Callers should gray out that promise when false.
func (a *Applier) SupportsPersistentScope() bool { return a.persistent != nil }

// PersistentScopeError returns why no persistent scope is available: the
// platform has none (ErrUnsupported) or setting one up failed (for example
// the home directory could not be located). Nil when the scope exists.
func (a *Applier) PersistentScopeError() error { return a.persistentErr }

// Apply writes all four recognized keys from rec into the process scope and
// then the persistent scope. Empty fields are written as empty values, not
// skipped. An error is returned only when both scopes fail; a single-scope
// failure comes back in the Result so the caller can warn about the partial
// apply. Persistent-scope changes reach future logins only after the OS
// propagates them; nothing here forces that.
func (a *Applier) Apply(rec preset.Record) (Result, error) {
	var res Result

	res.ProcessErr = setAll(a.process, rec)
	res.ProcessOK = res.ProcessErr == nil

	if a.persistent == nil {
		res.PersistentErr = a.persistentErr
	} else {
		res.PersistentErr = setAll(a.persistent, rec)
	}
	res.PersistentOK = res.PersistentErr == nil

	if !res.ProcessOK && !res.PersistentOK {
		return res, errors.Wrapf(ErrApply, "process: %v; persistent: %v", res.ProcessErr, res.PersistentErr)
	}
	return res, nil
}

func setAll(scope Scope, rec preset.Record) error {
	for _, kv := range pairs(rec) {
		if err := scope.Set(kv.key, kv.value); err != nil {
			return errors.Wrapf(err, "set %s in %s scope", kv.key, scope.Label())
		}
	}
	return nil
}

type pair struct{ key, value string }

// pairs maps a record onto the recognized keys, in Keys order.
func pairs(rec preset.Record) []pair {
	return []pair{
		{EnvAuthToken, rec.AuthToken},
		{EnvBaseURL, rec.BaseURL},
		{EnvModel, rec.Model},
		{EnvSmallFastModel, rec.SmallFastModel},
	}
}
