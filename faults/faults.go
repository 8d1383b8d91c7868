package faults

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so handlers can pick the right presentation.
type Kind int

const (
	// UserInput is shown as an empty/ready state, never as an error.
	UserInput Kind = iota
	// Network covers non-2xx responses and transport failures.
	Network
	// Permission means the user denied a device capability.
	Permission
	// Capability means the device lacks the capability entirely.
	Capability
	// UpstreamPartial marks a swallowed enrichment failure; the primary
	// action still succeeded.
	UpstreamPartial
)

type Fault struct {
	Kind    Kind
	Msg     string
	Context string // safe-to-display context, e.g. a truncated query
	Err     error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Msg, f.Err)
	}
	return f.Msg
}

func (f *Fault) Unwrap() error { return f.Err }

func New(kind Kind, msg string) *Fault {
	return &Fault{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Fault {
	return &Fault{Kind: kind, Msg: msg, Err: err}
}

// KindOf reports the Kind of err when it is (or wraps) a Fault.
func KindOf(err error) (Kind, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return 0, false
}

// Status maps a failure to an HTTP status for the adapter layer.
func Status(err error) int {
	kind, ok := KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case UserInput:
		return http.StatusOK
	case Permission:
		return http.StatusForbidden
	case Capability:
		return http.StatusUnprocessableEntity
	case Network:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
