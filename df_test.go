// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package drbg

import (
	"crypto"

	. "gopkg.in/check.v1"
)

type dfSuite struct{}

var _ = Suite(&dfSuite{})

func (s *dfSuite) TestHashDFProducesRequestedLength(c *C) {
	out := hashDF(crypto.SHA256, newChain([]byte("some input material")), 55)
	c.Check(len(out), Equals, 55)
}

func (s *dfSuite) TestHashDFIsDeterministic(c *C) {
	in := newChain([]byte("deterministic input"))
	out1 := hashDF(crypto.SHA256, in, 40)
	out2 := hashDF(crypto.SHA256, in, 40)
	c.Check(out1, DeepEquals, out2)
}

func (s *dfSuite) TestHashDFDiffersOnDifferentInput(c *C) {
	out1 := hashDF(crypto.SHA256, newChain([]byte("input one")), 40)
	out2 := hashDF(crypto.SHA256, newChain([]byte("input two")), 40)
	c.Check(out1, Not(DeepEquals), out2)
}

func (s *dfSuite) TestBlockCipherDFProducesRequestedLength(c *C) {
	out := blockCipherDF(16, newChain([]byte("some seed material, 31 bytes!!!")), 32)
	c.Check(len(out), Equals, 32)
}

func (s *dfSuite) TestBlockCipherDFPanicsOverCap(c *C) {
	c.Assert(func() {
		blockCipherDF(16, newChain([]byte("x")), maxBlockCipherDFBytes+1)
	}, Panics, "drbg: blockCipherDF: requested length exceeds the 64-byte cap")
}

func (s *dfSuite) TestBCCIsDeterministicAndBlockSized(c *C) {
	key := make([]byte, 16)
	data := make([]byte, 32)
	out1 := bcc(key, data)
	out2 := bcc(key, data)
	c.Check(out1, DeepEquals, out2)
	c.Check(len(out1), Equals, 16)
}

func (s *dfSuite) TestBlockEncryptChangesBlockAndKeepsSize(c *C) {
	key := make([]byte, 16)
	block := make([]byte, 16)
	for i := range block {
		block[i] = byte(i)
	}

	out := blockEncrypt(key, block)
	c.Check(len(out), Equals, 16)
	c.Check(out, Not(DeepEquals), block)
}
