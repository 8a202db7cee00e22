// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package drbg

import "errors"

// Kind classifies the errors this package can return, per SP 800-90A's
// error model (§7): the caller needs to distinguish a bad argument from
// a broken entropy source from a condition that demands the process
// abort.
type Kind int

const (
	// KindInvalidArgument covers a nil buffer where one is required, a
	// length exceeding a documented bound, or a malformed chain.
	KindInvalidArgument Kind = iota
	// KindOutOfMemory covers a secure allocation failure.
	KindOutOfMemory
	// KindEntropySourceFailure covers the gatherer returning an error or
	// fewer bytes than requested.
	KindEntropySourceFailure
	// KindPrimitiveFailure covers the underlying hash/cipher adapter
	// reporting an error, propagated unchanged.
	KindPrimitiveFailure
	// KindConfiguration covers a mismatch between a block cipher's actual
	// block length and the mechanism's documented block length. The
	// original C implementation this package is derived from returns this
	// case as a negative "no error" sentinel; that is a configuration
	// defect, not success, so it is surfaced here as its own Kind rather
	// than reproduced as a silent success.
	KindConfiguration
	// KindFatal covers fork-reseed failure, selftest failure, or any
	// other integrity issue after which the caller is expected to abort
	// the process.
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindOutOfMemory:
		return "out of memory"
	case KindEntropySourceFailure:
		return "entropy source failure"
	case KindPrimitiveFailure:
		return "primitive failure"
	case KindConfiguration:
		return "configuration error"
	case KindFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every exported operation in this
// package. It carries a Kind so callers can switch on the failure class
// without string matching, per spec.md §7's error propagation contract.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.String()
	}
	return e.Op + ": " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func newError(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// ErrReseedRequired is returned by DRBG.Generate when the DRBG is
// unseeded and was constructed without an entropy source, so Generate
// has no way to reseed itself. Reseed the DRBG explicitly with
// ReseedWithExternalEntropy and call Generate again. A seeded,
// prediction-resistant DRBG without an entropy source does not return
// this error; its failed reseed comes back as a KindFatal *Error.
var ErrReseedRequired = errors.New("the DRBG must be reseeded")

// IsKind reports whether err is an *Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
