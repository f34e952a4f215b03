//go:build windows

package osenv

import (
	"fmt"
	"strings"

	"golang.org/x/sys/windows/registry"

	"github.com/mesh-intelligence/envgod/pkg/types"
)

// userEnvKey is the per-user environment read by new login sessions.
const userEnvKey = `Environment`

// registryPersister writes HKEY_CURRENT_USER\Environment.
type registryPersister struct{}

func newPlatformPersister() types.Persister {
	return registryPersister{}
}

// SetPersistent stores name=value for future sessions. Values containing
// '%' are written as REG_EXPAND_SZ so references like %USERPROFILE% expand.
func (registryPersister) SetPersistent(name, value string) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, userEnvKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open HKCU\\%s: %w", userEnvKey, err)
	}
	defer k.Close()

	if strings.ContainsRune(value, '%') {
		err = k.SetExpandStringValue(name, value)
	} else {
		err = k.SetStringValue(name, value)
	}
	if err != nil {
		return fmt.Errorf("set HKCU\\%s\\%s: %w", userEnvKey, name, err)
	}
	return nil
}

// DeletePersistent removes name from the per-user environment.
func (registryPersister) DeletePersistent(name string) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, userEnvKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open HKCU\\%s: %w", userEnvKey, err)
	}
	defer k.Close()

	if err := k.DeleteValue(name); err != nil {
		return fmt.Errorf("delete HKCU\\%s\\%s: %w", userEnvKey, name, err)
	}
	return nil
}
