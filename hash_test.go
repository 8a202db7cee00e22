// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package drbg

import (
	. "gopkg.in/check.v1"
)

type hashEngineSuite struct{}

var _ = Suite(&hashEngineSuite{})

func (s *hashEngineSuite) TestStateSizedToSeedlen(c *C) {
	e := newHashEngine(descriptors[HashSHA256])
	c.Check(len(e.v), Equals, 55)
	c.Check(len(e.c), Equals, 55)
}

func (s *hashEngineSuite) TestUpdateChangesVAndC(c *C) {
	e := newHashEngine(descriptors[HashSHA256])
	v0, c0 := append([]byte(nil), e.v...), append([]byte(nil), e.c...)

	c.Assert(e.update(newChain(make([]byte, 48)), false), IsNil)

	c.Check(e.v, Not(DeepEquals), v0)
	c.Check(e.c, Not(DeepEquals), c0)
}

func (s *hashEngineSuite) TestWipeZeroes(c *C) {
	e := newHashEngine(descriptors[HashSHA256])
	c.Assert(e.update(newChain(make([]byte, 48)), false), IsNil)

	e.wipe()

	for _, b := range e.v {
		c.Assert(b, Equals, byte(0))
	}
	for _, b := range e.c {
		c.Assert(b, Equals, byte(0))
	}
}

func (s *hashEngineSuite) TestHashgenProducesRequestedLength(c *C) {
	e := newHashEngine(descriptors[HashSHA1])
	c.Assert(e.update(newChain(make([]byte, 24)), false), IsNil)

	out := make([]byte, 37)
	e.hashgen(out)

	// Not all zero: a Hash-DRBG generate over a freshly-updated state
	// should never produce an all-zero block.
	allZero := true
	for _, b := range out {
		if b != 0 {
			allZero = false
			break
		}
	}
	c.Check(allZero, Equals, false)
}

func (s *hashEngineSuite) TestSuccessiveGeneratesDiffer(c *C) {
	e := newHashEngine(descriptors[HashSHA256])
	c.Assert(e.update(newChain(make([]byte, 48)), false), IsNil)

	out1 := make([]byte, 16)
	c.Assert(e.generate(nil, out1, 1), IsNil)

	out2 := make([]byte, 16)
	c.Assert(e.generate(nil, out2, 2), IsNil)

	c.Check(out1, Not(DeepEquals), out2)
}
