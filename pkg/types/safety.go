package types

import (
	"errors"
	"fmt"
)

// SafetyClass grades how dangerous it is to delete a variable.
type SafetyClass int

const (
	// Normal variables are unrestricted.
	Normal SafetyClass = iota
	// Sensitive variables affect functionality; deletion needs confirmation.
	Sensitive
	// Protected variables are critical; deletion needs an explicit override.
	Protected
)

// String returns the lower-case class name.
func (c SafetyClass) String() string {
	switch c {
	case Protected:
		return "protected"
	case Sensitive:
		return "sensitive"
	default:
		return "normal"
	}
}

// Safety violation errors. A SafetyError wraps exactly one of them.
var (
	ErrProtectedVariable = errors.New("variable is protected")
	ErrSensitiveVariable = errors.New("variable is sensitive")
)

// SafetyError reports a deletion refused because of the variable's class.
// No state is changed when it is returned.
type SafetyError struct {
	Name           string
	Class          SafetyClass
	Recommendation string
}

func (e *SafetyError) Error() string {
	switch e.Class {
	case Protected:
		return fmt.Sprintf("variable %q is protected and cannot be deleted without force", e.Name)
	default:
		return fmt.Sprintf("variable %q is sensitive; deletion could affect system functionality and needs force", e.Name)
	}
}

// Unwrap returns the sentinel matching the class so callers can use errors.Is.
func (e *SafetyError) Unwrap() error {
	if e.Class == Protected {
		return ErrProtectedVariable
	}
	return ErrSensitiveVariable
}
