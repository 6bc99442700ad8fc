//go:build windows

package envctl

import (
	"golang.org/x/sys/windows/registry"

	"github.com/pkg/errors"
)

// registryScope persists variables as REG_SZ values under the per-user
// HKCU\Environment key. Running processes pick the change up only after a
// new login session (or an explicit WM_SETTINGCHANGE broadcast, which this
// tool does not send).
type registryScope struct{}

func (registryScope) Label() string { return "persistent" }

func (registryScope) Set(key, value string) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, `Environment`, registry.SET_VALUE)
	if err != nil {
		return errors.Wrap(err, "open HKCU\\Environment")
	}
	defer k.Close()
	return k.SetStringValue(key, value)
}

func newPersistentScope() (Scope, error) { return registryScope{}, nil }
