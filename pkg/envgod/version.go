// Package envgod holds build identity shared by the envgod binaries.
package envgod

// ModulePath is the Go module path of envgod.
const ModulePath = "github.com/mesh-intelligence/envgod"

// Version is the release version, overridden at link time with
// -ldflags "-X github.com/mesh-intelligence/envgod/pkg/envgod.Version=...".
var Version = "0.1.0"
