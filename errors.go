package neuroflow

import (
	"fmt"
)

// Error is a wrapper for specific types of errors for which there is no additional information
// necessary. These errors are defined as global variables, and can be compared against the result
// of errors.Cause().
type Error struct{ string }

func (err Error) Error() string {
	return err.string
}

// These are the global errors that may be returned or panicked.
var (
	ErrRegisterNilReturn    = Error{"Function return is nil"}
	ErrRegisterDuplicate    = Error{"Type string is already registered"}
	ErrUnknownType          = Error{"Type is not recognized"}
	ErrNoOptimizer          = Error{"No Optimizer given and no default Optimizer set"}
	ErrNoInitializer        = Error{"No WeightProvider given and no default Initializer set"}
	ErrNotRecurrent         = Error{"Network has no recurrent layers"}
	ErrNumericalInstability = Error{"Error became NaN or infinite"}
	ErrEmptyData            = Error{"No training samples given"}
)

// NilArgError documents errors resulting from certain arguments provided to a function being nil.
type NilArgError struct{ string }

func (err NilArgError) Error() string {
	return err.string + " is nil"
}

// ConfigurationError is returned when a Network cannot be constructed from what it was given:
// an invalid sequence of Layers, a WeightProvider returning the wrong shapes, or Settings that
// the chosen Optimizer does not support. It is always fatal; no training takes place.
type ConfigurationError struct {
	// Optimizer is the TypeString of the Optimizer that rejected the Settings, if any.
	Optimizer string
	Reason    string
}

func (err *ConfigurationError) Error() string {
	if err.Optimizer != "" {
		return fmt.Sprintf("Settings not supported by %q: %s", err.Optimizer, err.Reason)
	}

	return "Invalid configuration: " + err.Reason
}

// SettingsNotSupported returns a *ConfigurationError attributed to the named Optimizer.
func SettingsNotSupported(optimizer, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{optimizer, fmt.Sprintf(format, args...)}
}

func configErrorf(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// SizeMismatchError is returned when the number of values given doesn't match what the Network
// expects.
type SizeMismatchError struct {
	Expected, Given int
	Name            string
}

func (err SizeMismatchError) Error() string {
	return fmt.Sprintf("Size mismatch for %s: expected %d, got %d", err.Name, err.Expected, err.Given)
}
