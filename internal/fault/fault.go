// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package fault defines the closed error taxonomy shared by the sync,
// upload, AI and backup boundaries. Vendor and transport errors are
// normalized into a Fault before they reach application logic, so no
// caller ever branches on a provider-specific error shape.
package fault

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies a failure into the fixed taxonomy.
type Kind string

const (
	// KindConfigurationMissing means no backend credentials are present.
	// Callers handle it by falling back to defaults, never as a user-facing
	// failure.
	KindConfigurationMissing Kind = "configuration_missing"

	// KindUnreachable means a remote call timed out or the network is down.
	KindUnreachable Kind = "unreachable"

	// KindAuthorizationDenied means an expired or missing credential, or a
	// disabled API. Surfaced to the admin with remediation text.
	KindAuthorizationDenied Kind = "authorization_denied"

	// KindQuotaOrSizeExceeded means a single document or collection write
	// exceeded the store's size limit.
	KindQuotaOrSizeExceeded Kind = "quota_or_size_exceeded"

	// KindValidationFailure means a required field is missing or invalid.
	// Rejected locally, before any network call.
	KindValidationFailure Kind = "validation_failure"

	// KindUnknown covers everything the taxonomy cannot name.
	KindUnknown Kind = "unknown"
)

// Fault is a classified error with a user-presentable message.
type Fault struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Unwrap returns the underlying cause.
func (f *Fault) Unwrap() error { return f.Err }

// New creates a Fault with the given kind and message.
func New(kind Kind, message string) *Fault {
	return &Fault{Kind: kind, Message: message}
}

// Wrap creates a Fault wrapping an underlying error.
func Wrap(kind Kind, message string, err error) *Fault {
	return &Fault{Kind: kind, Message: message, Err: err}
}

// KindOf returns the classified kind of err, or KindUnknown if err is not
// a Fault.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindUnknown
}

// Is reports whether err is a Fault of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// FromTransport classifies a raw transport error. Context deadline and
// network errors map to Unreachable; anything else stays Unknown.
func FromTransport(message string, err error) *Fault {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return Wrap(KindUnreachable, message, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Wrap(KindUnreachable, message, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return Wrap(KindUnreachable, message, err)
	}
	return Wrap(KindUnknown, message, err)
}
