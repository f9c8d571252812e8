package config

import (
	"errors"
	"fmt"
)

// ErrMissingConfiguration is matched by every LookupError.
var ErrMissingConfiguration = errors.New("missing accounting configuration")

// LookupKind names what a failed lookup was looking for.
type LookupKind string

const (
	KindChannel         LookupKind = "channel"
	KindClientAccount   LookupKind = "client account"
	KindSupplierAccount LookupKind = "supplier account"
	KindPSP             LookupKind = "psp"
)

// LookupError reports a configuration gap such as a channel without client account.
type LookupError struct {
	Kind LookupKind
	Key  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s not configured for %q", e.Kind, e.Key)
}

// Unwrap lets errors.Is match ErrMissingConfiguration.
func (e *LookupError) Unwrap() error {
	return ErrMissingConfiguration
}
