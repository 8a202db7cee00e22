// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package drbg

import (
	"crypto/hmac"
)

// hmacEngine implements HMAC-DRBG as specified in §10.1.2 of SP-800-90A.
//
// State: v and k are both outlen bytes. No scratchpad is required; the
// underlying crypto/hmac primitive streams its input.
type hmacEngine struct {
	desc descriptor
	v, k []byte
}

func newHMACEngine(d descriptor) *hmacEngine {
	return &hmacEngine{
		desc: d,
		v:    make([]byte, d.outLen),
		k:    make([]byte, d.outLen),
	}
}

func (e *hmacEngine) seedLen() int { return e.desc.outLen }

// hmacOnce computes HMAC(key, data) for the current hash algorithm.
func (e *hmacEngine) hmacOnce(key []byte, data *chain) []byte {
	h := hmac.New(e.desc.hash.New, key)
	data.writeTo(h)
	return h.Sum(nil)
}

// update is the shared HMAC_DRBG_Update procedure of §10.1.2. If reseed
// is false, V is reset to 0x01-repeated before the mixing rounds begin.
// If providedData is empty, only the first round runs.
func (e *hmacEngine) update(providedData *chain, reseed bool) error {
	if !reseed {
		for i := range e.v {
			e.v[i] = 0x01
		}
	}

	e.k = e.hmacOnce(e.k, newChain(e.v, []byte{0x00}, providedData.bytes()))
	e.v = e.hmacOnce(e.k, newChain(e.v))

	if providedData.length() == 0 {
		return nil
	}

	e.k = e.hmacOnce(e.k, newChain(e.v, []byte{0x01}, providedData.bytes()))
	e.v = e.hmacOnce(e.k, newChain(e.v))

	return nil
}

func (e *hmacEngine) generate(additionalInput *chain, out []byte, _ uint64) error {
	if additionalInput.length() > 0 {
		if err := e.update(additionalInput, true); err != nil {
			return err
		}
	}

	produced := 0
	for produced < len(out) {
		e.v = e.hmacOnce(e.k, newChain(e.v))
		produced += copy(out[produced:], e.v)
	}

	return e.update(additionalInput, true)
}

func (e *hmacEngine) wipe() {
	wipeAll(e.v, e.k)
}
