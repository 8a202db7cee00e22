// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package drbg

// hashEngine implements Hash-DRBG as specified in §10.1.1 of SP-800-90A.
//
// State layout: v and c are both seedlen bytes. scratch is a
// seedlen+outlen scratchpad reused across update/generate so that
// generate doesn't allocate per call; spec.md §4.3.1 calls for this
// reuse explicitly.
type hashEngine struct {
	desc descriptor

	v, c    []byte
	scratch []byte
}

func newHashEngine(d descriptor) *hashEngine {
	return &hashEngine{
		desc:    d,
		v:       make([]byte, d.seedLen),
		c:       make([]byte, d.seedLen),
		scratch: make([]byte, d.seedLen+d.outLen),
	}
}

func (e *hashEngine) seedLen() int { return e.desc.seedLen }

// update implements the shared Hash-DRBG update procedure: derive a fresh
// V via Hash_df, then a fresh C via Hash_df(0x00‖V'). reseed selects
// whether the previous V and a 0x01 separator are folded into the seed
// material (reseed case) or the seed chain is used bare (instantiate
// case).
func (e *hashEngine) update(seedChain *chain, reseed bool) error {
	var chain1 *chain
	if reseed {
		chain1 = prefix([]byte{0x01}, prefix(e.v, seedChain))
	} else {
		chain1 = seedChain
	}

	newV := hashDF(e.desc.hash, chain1, e.seedLen())

	chain2 := prefix([]byte{0x00}, newChain(newV))
	newC := hashDF(e.desc.hash, chain2, e.seedLen())

	copy(e.v, newV)
	copy(e.c, newC)
	wipeAll(newV, newC)

	return nil
}

// hashgen is the Hashgen sub-procedure of §10.1.1's generate: produce L
// bytes by repeatedly hashing a running copy of V (stored in data) and
// incrementing it modulo 2^(8*seedlen).
func (e *hashEngine) hashgen(out []byte) {
	data := e.scratch[:e.seedLen()]
	copy(data, e.v)
	defer wipe(data)

	produced := 0
	for produced < len(out) {
		h := e.desc.hash.New()
		h.Write(data)
		block := h.Sum(nil)

		n := copy(out[produced:], block)
		produced += n

		addOneBE(data)
	}
}

func (e *hashEngine) generate(additionalInput *chain, out []byte, reseedCounter uint64) error {
	if additionalInput.length() > 0 {
		h := e.desc.hash.New()
		h.Write([]byte{0x02})
		h.Write(e.v)
		additionalInput.writeTo(h)
		w := h.Sum(nil)
		addBufBE(e.v, w)
	}

	e.hashgen(out)

	h := e.desc.hash.New()
	h.Write([]byte{0x03})
	h.Write(e.v)
	hOut := h.Sum(nil)

	addBufBE(e.v, hOut)
	addBufBE(e.v, e.c)
	addUint64BE(e.v, reseedCounter)

	return nil
}

func (e *hashEngine) wipe() {
	wipeAll(e.v, e.c, e.scratch)
}
