//go:build linux || darwin

package envctl

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
)

// newPersistentScope writes a managed block into the login-shell profile:
// ~/.zprofile on macOS (zsh is the default login shell there), ~/.profile
// elsewhere. Changes reach future login sessions only.
func newPersistentScope() (Scope, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, "locate home directory for the shell profile")
	}
	name := ".profile"
	if runtime.GOOS == "darwin" {
		name = ".zprofile"
	}
	return NewProfileScope(filepath.Join(home, name)), nil
}
