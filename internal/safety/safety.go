// Package safety classifies environment variable names as protected,
// sensitive, or normal. Classification is a pure lookup on the upper-cased
// name and is recomputed on every call.
package safety

import (
	"strings"

	"github.com/mesh-intelligence/envgod/pkg/types"
)

// Recommendation texts, one per outcome.
const (
	RecommendProtected = "PROTECTED: This is a critical system variable. Deletion not recommended."
	RecommendSensitive = "SENSITIVE: This variable affects system functionality. Use caution."
	RecommendCaution   = "CAUTION: This appears to be a system variable."
	RecommendSafe      = "SAFE: This appears to be a user-defined variable."
)

// systemPrefixes mark names that look system-owned even when neither table
// lists them. Matched case-sensitively against the name as given.
var systemPrefixes = []string{"SYSTEM", "PROCESSOR", "COMPUTER"}

// Info is the safety summary a front-end renders before a deletion.
type Info struct {
	Name           string            `json:"name"`
	Class          types.SafetyClass `json:"-"`
	IsProtected    bool              `json:"is_protected"`
	IsSensitive    bool              `json:"is_sensitive"`
	Recommendation string            `json:"recommendation"`
}

// Classify returns the safety class of name.
func Classify(name string) types.SafetyClass {
	upper := strings.ToUpper(name)
	if protectedNames[upper] {
		return types.Protected
	}
	if sensitiveNames[upper] {
		return types.Sensitive
	}
	return types.Normal
}

// Recommendation returns the advisory text for name.
func Recommendation(name string) string {
	switch Classify(name) {
	case types.Protected:
		return RecommendProtected
	case types.Sensitive:
		return RecommendSensitive
	}
	for _, p := range systemPrefixes {
		if strings.HasPrefix(name, p) {
			return RecommendCaution
		}
	}
	return RecommendSafe
}

// Describe returns the full safety summary for name.
func Describe(name string) Info {
	class := Classify(name)
	return Info{
		Name:           name,
		Class:          class,
		IsProtected:    class == types.Protected,
		IsSensitive:    class == types.Sensitive,
		Recommendation: Recommendation(name),
	}
}

// ProtectedNames returns the protected table, upper-cased, in no particular order.
func ProtectedNames() []string {
	return keys(protectedNames)
}

// SensitiveNames returns the sensitive table, upper-cased, in no particular order.
func SensitiveNames() []string {
	return keys(sensitiveNames)
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
