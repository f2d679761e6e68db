package entity

import (
	"errors"
	"fmt"
)

// Standard domain errors
var (
	ErrInvalidRequest   = errors.New("invalid request parameters")
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrEmptyCompletion  = errors.New("completion service returned no content")
	ErrProviderNotReady = errors.New("completion provider is not configured")
	ErrGatewayNotReady  = errors.New("payment gateway is not configured")
	ErrInternalServer   = errors.New("an internal error occurred")
)

// Kind classifies a failure so the delivery layer can pick a status code
// and the resilience layer can decide whether to retry.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUpstreamUnavailable // network, timeout, 429, 5xx: safe to retry
	KindUpstreamRejected    // any other 4xx from a vendor: terminal
	KindSignatureInvalid
	KindNotConfigured
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindUpstreamRejected:
		return "upstream_rejected"
	case KindSignatureInvalid:
		return "signature_invalid"
	case KindNotConfigured:
		return "not_configured"
	default:
		return "internal"
	}
}

// Error carries a Kind alongside the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// E wraps err with a kind. A nil err yields nil.
func E(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the outermost *Error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsRetryable reports whether err is a transient upstream failure.
func IsRetryable(err error) bool {
	return KindOf(err) == KindUpstreamUnavailable
}
