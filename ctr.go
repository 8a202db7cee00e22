// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package drbg

import "crypto/aes"

// ctrEngine implements CTR-DRBG with a derivation function, as specified
// in §10.2.1 of SP-800-90A. Only the df variant is implemented —
// spec.md's scope never asks for CTR-DRBG without a df.
//
// State: v is aes.BlockSize bytes, key is keyLen bytes (16/24/32 for
// AES-128/192/256). scratch holds the combined seedlen+blocklen temp
// buffer update() needs, pre-sized once so generate/reseed never
// allocate it per call.
type ctrEngine struct {
	desc descriptor

	v, key  []byte
	scratch []byte
}

func newCTREngine(d descriptor) *ctrEngine {
	return &ctrEngine{
		desc:    d,
		v:       make([]byte, aes.BlockSize),
		key:     make([]byte, d.keyLen),
		scratch: make([]byte, d.seedLen+aes.BlockSize),
	}
}

func (e *ctrEngine) seedLen() int { return e.desc.seedLen }

// updateWithDFOutput is the CTR_DRBG_Update core procedure of §10.2.1,
// step 4; provided must be exactly seedLen bytes (the caller either ran
// it through Block_Cipher_df already, or it is all-zero).
func (e *ctrEngine) updateWithDFOutput(provided []byte) {
	temp := e.scratch[:0]
	for len(temp) < e.seedLen() {
		addOneBE(e.v)
		temp = append(temp, blockEncrypt(e.key, e.v)...)
	}
	temp = temp[:e.seedLen()]

	for i := range temp {
		temp[i] ^= provided[i]
	}

	copy(e.key, temp[:len(e.key)])
	copy(e.v, temp[len(e.key):len(e.key)+aes.BlockSize])
}

// updateWithSeed runs Block_Cipher_df over seedChain to produce seedLen
// bytes of provided data, then applies updateWithDFOutput. This is the
// "update_with_seed" half of the cleaner two-function split spec.md §9
// recommends in place of the reference implementation's 4-way reseed
// flag; updateWithDFOutput is the "update_with_df_output" half, called
// directly wherever the df output is already in hand (CTR-DRBG's
// generate, which runs the df once and feeds the result through update
// both before and after the output blocks, per §10.2.1).
func (e *ctrEngine) updateWithSeed(seedChain *chain) {
	seed := blockCipherDF(len(e.key), seedChain, e.seedLen())
	e.updateWithDFOutput(seed)
}

func (e *ctrEngine) update(seedChain *chain, _ bool) error {
	e.updateWithSeed(seedChain)
	return nil
}

func (e *ctrEngine) generate(additionalInput *chain, out []byte, _ uint64) error {
	var provided []byte
	if additionalInput.length() > 0 {
		provided = blockCipherDF(len(e.key), additionalInput, e.seedLen())
		e.updateWithDFOutput(provided)
	} else {
		provided = make([]byte, e.seedLen())
	}

	produced := 0
	for produced < len(out) {
		addOneBE(e.v)
		block := blockEncrypt(e.key, e.v)
		produced += copy(out[produced:], block)
	}

	e.updateWithDFOutput(provided)

	return nil
}

func (e *ctrEngine) wipe() {
	wipeAll(e.v, e.key, e.scratch)
}
