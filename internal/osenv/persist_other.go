//go:build !windows

package osenv

import "github.com/mesh-intelligence/envgod/pkg/types"

// Unix-like systems have no per-user environment registry; login shells read
// their own rc files, which this tool does not edit.
func newPlatformPersister() types.Persister {
	return Nop{}
}
