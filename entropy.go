// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package drbg

import (
	"crypto/rand"
	"io"

	"golang.org/x/xerrors"
)

// EntropySource is the external collaborator spec.md §6 calls "the
// entropy source": a single-reader producer of raw entropy. A DRBG holds
// at most one EntropySource and pulls from it only while its own mutex
// is held, satisfying the "single-reader discipline" spec.md §4.5
// requires.
type EntropySource interface {
	// Gather fills dest entirely with entropy, or returns an error. It
	// must not return a short read without an error.
	Gather(dest []byte) error
}

// readerEntropySource adapts an io.Reader (typically crypto/rand.Reader)
// to EntropySource.
type readerEntropySource struct {
	r io.Reader
}

func (s readerEntropySource) Gather(dest []byte) error {
	if _, err := io.ReadFull(s.r, dest); err != nil {
		return xerrors.Errorf("cannot read entropy: %w", err)
	}
	return nil
}

// NewEntropySourceFromReader wraps an io.Reader (for example
// crypto/rand.Reader, or a file handle opened on a hardware RNG device)
// as an EntropySource.
func NewEntropySourceFromReader(r io.Reader) EntropySource {
	return readerEntropySource{r: r}
}

// DefaultEntropySource is crypto/rand.Reader, wrapped as an
// EntropySource. It is the source instantiate() falls back to when the
// caller doesn't supply one.
var DefaultEntropySource = NewEntropySourceFromReader(rand.Reader)

// testHook short-circuits the entropy gateway to inject deterministic
// entropy for known-answer testing (spec.md §4.6/§6). Each successful
// Gather call consumes from injected until it is exhausted; after that,
// or if failSeedSource is set, Gather fails.
type testHook struct {
	injected       []byte
	failSeedSource bool
}

func (h *testHook) Gather(dest []byte) error {
	if h.failSeedSource {
		return newError("Gather", KindEntropySourceFailure, errForcedEntropyFailure)
	}
	if len(h.injected) < len(dest) {
		return newError("Gather", KindEntropySourceFailure, errInsufficientInjectedEntropy)
	}
	n := copy(dest, h.injected)
	h.injected = h.injected[n:]
	return nil
}

var (
	errForcedEntropyFailure       = errConst("entropy source forced to fail for testing")
	errInsufficientInjectedEntropy = errConst("not enough injected entropy for this request")
)
