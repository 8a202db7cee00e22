// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package drbg

import (
	"crypto/aes"

	. "gopkg.in/check.v1"
)

type ctrEngineSuite struct{}

var _ = Suite(&ctrEngineSuite{})

func (s *ctrEngineSuite) TestStateSizedToKeyAndBlock(c *C) {
	e := newCTREngine(descriptors[CTRAES256])
	c.Check(len(e.v), Equals, aes.BlockSize)
	c.Check(len(e.key), Equals, 32)
}

func (s *ctrEngineSuite) TestUpdateChangesKeyAndV(c *C) {
	e := newCTREngine(descriptors[CTRAES128])
	k0, v0 := append([]byte(nil), e.key...), append([]byte(nil), e.v...)

	c.Assert(e.update(newChain(make([]byte, 32)), false), IsNil)

	c.Check(e.key, Not(DeepEquals), k0)
	c.Check(e.v, Not(DeepEquals), v0)
}

func (s *ctrEngineSuite) TestGenerateProducesRequestedLength(c *C) {
	e := newCTREngine(descriptors[CTRAES128])
	c.Assert(e.update(newChain(make([]byte, 32)), false), IsNil)

	out := make([]byte, 47)
	c.Assert(e.generate(nil, out, 0), IsNil)

	allZero := true
	for _, b := range out {
		if b != 0 {
			allZero = false
			break
		}
	}
	c.Check(allZero, Equals, false)
}

func (s *ctrEngineSuite) TestGenerateWithAdditionalInputDiffersFromWithout(c *C) {
	e1 := newCTREngine(descriptors[CTRAES128])
	c.Assert(e1.update(newChain(make([]byte, 32)), false), IsNil)
	out1 := make([]byte, 16)
	c.Assert(e1.generate(nil, out1, 0), IsNil)

	e2 := newCTREngine(descriptors[CTRAES128])
	c.Assert(e2.update(newChain(make([]byte, 32)), false), IsNil)
	out2 := make([]byte, 16)
	c.Assert(e2.generate(newChain([]byte("some additional input, 31 bytes")), out2, 0), IsNil)

	c.Check(out1, Not(DeepEquals), out2)
}

func (s *ctrEngineSuite) TestWipeZeroes(c *C) {
	e := newCTREngine(descriptors[CTRAES192])
	c.Assert(e.update(newChain(make([]byte, 40)), false), IsNil)

	e.wipe()

	for _, b := range e.v {
		c.Assert(b, Equals, byte(0))
	}
	for _, b := range e.key {
		c.Assert(b, Equals, byte(0))
	}
}
