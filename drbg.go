// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

/*
Package drbg implements the three DRBG mechanisms recommended by NIST
SP-800-90A (http://csrc.nist.gov/publications/nistpubs/800-90A/SP800-90A.pdf):
Hash-DRBG, HMAC-DRBG, and CTR-DRBG with a derivation function.

DRBG instances are automatically reseeded once the current seed period
expires, or when prediction resistance is enabled and a generate call is
made, or when the instance detects it has been carried across a fork().

DRBGs are instantiated by default using the platform's entropy source (via
the crypto/rand package). This entropy source can be overridden, but it
must provide truly random data to achieve the mechanism's security
strength.

Every exported method on DRBG is internally serialized by a mutex and is
therefore safe to call from multiple goroutines; there is no internal
parallelism and no cancellation — calls run to completion or return an
error.
*/
package drbg

import (
	"math/bits"
	"os"
	"sync"

	"golang.org/x/xerrors"
)

const (
	// maxRequestBytes is the largest single Generate request this
	// package will honor, per Table 3's max_number_of_bits_per_request
	// bound.
	maxRequestBytes = 1 << 16

	reseedCounterLimit = 1 << 48
)

// maxAddtlLen is SP 800-90A's max_additional_input_length bound,
// specialized per spec.md §4.4 step 3: 2^35 bytes on a 64-bit platform,
// or the largest representable length minus one elsewhere.
var maxAddtlLen = func() int {
	if bits.UintSize == 64 {
		return 1 << 35
	}
	return int(^uint(0)>>1) - 1
}()

// checkAddtlLen reports whether n exceeds maxAddtlLen, without requiring
// the caller to actually hold a buffer of that length: the bound itself
// is the thing under test in the self-test harness, not an allocation of
// it, since maxAddtlLen is gigabytes on a 64-bit platform.
func checkAddtlLen(n int) bool {
	return n > maxAddtlLen
}

// mechanismEngine is the shared (update, generate) contract implemented
// by hashEngine, hmacEngine and ctrEngine (spec.md §4.3/C4). The DRBG
// instance (C5) owns reseed_counter centrally and passes it to generate
// only because Hash-DRBG's generate procedure folds it into V; HMAC- and
// CTR-DRBG ignore the parameter.
type mechanismEngine interface {
	seedLen() int
	update(seedChain *chain, reseed bool) error
	generate(additionalInput *chain, out []byte, reseedCounter uint64) error
	wipe()
}

func newEngine(d descriptor) mechanismEngine {
	switch d.family {
	case FamilyHash:
		return newHashEngine(d)
	case FamilyHMAC:
		return newHMACEngine(d)
	case FamilyCTR:
		return newCTREngine(d)
	default:
		panic("drbg: unknown mechanism family")
	}
}

// DRBG is an instantiated DRBG based on one of the mechanisms specified
// in SP-800-90A. The zero value is not usable; construct one with New or
// NewWithExternalEntropy.
type DRBG struct {
	mu sync.Mutex

	mechanism descriptor
	engine    mechanismEngine

	entropySource        EntropySource
	predictionResistance bool

	reseedCounter uint64
	seeded        bool
	seedOwnerPID  int
}

// New instantiates a DRBG using mechanism id, optionally differentiated
// by personalization, and seeded from entropySource (DefaultEntropySource
// if nil). If predictionResistance is true, every Generate call reseeds
// before producing output.
func New(id MechanismID, personalization []byte, predictionResistance bool, entropySource EntropySource) (*DRBG, error) {
	desc, err := lookupDescriptor(id)
	if err != nil {
		return nil, xerrors.Errorf("cannot look up mechanism: %w", err)
	}

	if entropySource == nil {
		entropySource = DefaultEntropySource
	}

	d := &DRBG{
		mechanism:            desc,
		engine:               newEngine(desc),
		entropySource:        entropySource,
		predictionResistance: predictionResistance,
	}

	if err := d.instantiate(personalization); err != nil {
		return nil, xerrors.Errorf("cannot instantiate: %w", err)
	}

	return d, nil
}

// NewWithExternalEntropy instantiates a DRBG using mechanism id with
// caller-supplied entropyInput and nonce for the initial seed.
// entropySource, if non-nil, is retained for future reseeds; if nil, the
// DRBG can only be reseeded with externally supplied entropy via
// ReseedWithExternalEntropy.
func NewWithExternalEntropy(id MechanismID, entropyInput, nonce, personalization []byte, predictionResistance bool, entropySource EntropySource) (*DRBG, error) {
	desc, err := lookupDescriptor(id)
	if err != nil {
		return nil, xerrors.Errorf("cannot look up mechanism: %w", err)
	}

	if len(entropyInput) < desc.secStrBytes {
		return nil, newError("NewWithExternalEntropy", KindInvalidArgument, errConst("entropyInput too small"))
	}

	d := &DRBG{
		mechanism:            desc,
		engine:               newEngine(desc),
		entropySource:        entropySource,
		predictionResistance: predictionResistance,
	}

	if err := d.instantiateWithExternalEntropy(entropyInput, nonce, personalization); err != nil {
		return nil, xerrors.Errorf("cannot instantiate: %w", err)
	}

	return d, nil
}

func (d *DRBG) pid() int { return os.Getpid() }

func (d *DRBG) instantiate(personalization []byte) error {
	if checkAddtlLen(len(personalization)) {
		return newError("instantiate", KindInvalidArgument, errConst("personalization too large"))
	}

	entropyInput := make([]byte, d.mechanism.secStrBytes)
	nonce := make([]byte, d.mechanism.secStrBytes/2)
	defer wipeAll(entropyInput, nonce)

	if err := d.entropySource.Gather(entropyInput); err != nil {
		return newError("instantiate", KindEntropySourceFailure, err)
	}
	if err := d.entropySource.Gather(nonce); err != nil {
		return newError("instantiate", KindEntropySourceFailure, err)
	}

	if err := d.engine.update(newChain(entropyInput, nonce, personalization), false); err != nil {
		return err
	}

	d.reseedCounter = 1
	d.seeded = true
	d.seedOwnerPID = d.pid()

	return nil
}

func (d *DRBG) instantiateWithExternalEntropy(entropyInput, nonce, personalization []byte) error {
	if len(entropyInput) < d.mechanism.secStrBytes {
		return newError("instantiateWithExternalEntropy", KindInvalidArgument, errConst("entropyInput too small"))
	}
	if checkAddtlLen(len(entropyInput)) || checkAddtlLen(len(personalization)) {
		return newError("instantiateWithExternalEntropy", KindInvalidArgument, errConst("input too large"))
	}

	if err := d.engine.update(newChain(entropyInput, nonce, personalization), false); err != nil {
		return err
	}

	d.reseedCounter = 1
	d.seeded = true
	d.seedOwnerPID = d.pid()

	return nil
}

// Reseed reseeds the DRBG with additional entropy pulled from the
// entropy source it was instantiated with, mixed with additionalInput.
func (d *DRBG) Reseed(additionalInput []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.reseed(additionalInput)
}

func (d *DRBG) reseed(additionalInput []byte) error {
	if checkAddtlLen(len(additionalInput)) {
		return newError("reseed", KindInvalidArgument, errConst("additionalInput too large"))
	}
	if d.entropySource == nil {
		return newError("reseed", KindInvalidArgument, errConst("cannot reseed without an entropy source"))
	}

	entropyInput := make([]byte, d.mechanism.secStrBytes)
	defer wipe(entropyInput)

	if err := d.entropySource.Gather(entropyInput); err != nil {
		return newError("reseed", KindEntropySourceFailure, err)
	}

	if err := d.engine.update(newChain(entropyInput, additionalInput), true); err != nil {
		return err
	}

	d.reseedCounter = 1
	d.seeded = true
	d.seedOwnerPID = d.pid()

	return nil
}

// ReseedWithExternalEntropy reseeds the DRBG with caller-supplied
// entropy, mixed with additionalInput.
func (d *DRBG) ReseedWithExternalEntropy(entropyInput, additionalInput []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(entropyInput) < d.mechanism.secStrBytes {
		return newError("ReseedWithExternalEntropy", KindInvalidArgument, errConst("entropyInput too small"))
	}
	if checkAddtlLen(len(entropyInput)) || checkAddtlLen(len(additionalInput)) {
		return newError("ReseedWithExternalEntropy", KindInvalidArgument, errConst("input too large"))
	}

	if err := d.engine.update(newChain(entropyInput, additionalInput), true); err != nil {
		return err
	}

	d.reseedCounter = 1
	d.seeded = true
	d.seedOwnerPID = d.pid()

	return nil
}

// Generate fills data with random bytes, mixing in additionalInput.
//
// If the DRBG needs to be reseeded before it can generate random bytes
// and was instantiated with an entropy source, the reseed happens
// automatically. If it is unseeded and has no entropy source,
// ErrReseedRequired is returned; a failed prediction-resistance or
// fork-safety reseed is returned as a KindFatal error.
//
// len(data) must not exceed 65536 bytes; use Read for longer requests.
func (d *DRBG) Generate(additionalInput, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(data) == 0 {
		return newError("Generate", KindInvalidArgument, errConst("no output requested"))
	}
	if len(data) > maxRequestBytes {
		return newError("Generate", KindInvalidArgument, errConst("too many bytes requested"))
	}
	if checkAddtlLen(len(additionalInput)) {
		return newError("Generate", KindInvalidArgument, errConst("additionalInput too large"))
	}

	// I2: reseed_counter bound. Exceeding it doesn't fail the call; it
	// just forces the reseed-before-generate path below.
	if d.reseedCounter > reseedCounterLimit {
		d.seeded = false
	}

	// Fork safety (spec.md §5): a seed produced by the parent process
	// must never be used to generate output in a child. Detecting this
	// forces an unconditional reseed with no additional input; failure
	// here is fatal.
	if d.seeded && d.seedOwnerPID != d.pid() {
		if err := d.reseed(nil); err != nil {
			return newError("Generate", KindFatal, xerrors.Errorf("fork-safety reseed failed: %w", err))
		}
	}

	if d.predictionResistance || !d.seeded {
		if !d.seeded && d.entropySource == nil {
			return ErrReseedRequired
		}
		if err := d.reseed(additionalInput); err != nil {
			if d.predictionResistance {
				return newError("Generate", KindFatal, xerrors.Errorf("prediction-resistance reseed failed: %w", err))
			}
			return err
		}
		additionalInput = nil
	}

	if err := d.engine.generate(newChain(additionalInput), data, d.reseedCounter); err != nil {
		return xerrors.Errorf("cannot generate random data: %w", err)
	}

	d.reseedCounter++

	return nil
}

// Read fills data with random bytes, chunked to respect the
// maxRequestBytes limit. It implements io.Reader.
func (d *DRBG) Read(data []byte) (int, error) {
	total := 0

	for len(data) > 0 {
		b := data
		if len(b) > maxRequestBytes {
			b = data[:maxRequestBytes]
		}

		if err := d.Generate(nil, b); err != nil {
			return total, err
		}

		total += len(b)
		data = data[len(b):]
	}

	return total, nil
}

// Uninstantiate zeroizes all internal state and marks the DRBG as no
// longer seeded. Calling any other method afterwards without first
// re-instantiating will attempt to reseed (or fail, if there is no
// entropy source) rather than produce output from stale state.
func (d *DRBG) Uninstantiate() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.engine.wipe()
	d.reseedCounter = 0
	d.seeded = false
	d.seedOwnerPID = 0
}

// SecurityStrengthBytes reports the mechanism's security strength.
func (d *DRBG) SecurityStrengthBytes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mechanism.secStrBytes
}
