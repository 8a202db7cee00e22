// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package drbg

import (
	. "gopkg.in/check.v1"
)

type hmacEngineSuite struct{}

var _ = Suite(&hmacEngineSuite{})

func (s *hmacEngineSuite) TestStateSizedToOutlen(c *C) {
	e := newHMACEngine(descriptors[HMACSHA256])
	c.Check(len(e.v), Equals, 32)
	c.Check(len(e.k), Equals, 32)
}

func (s *hmacEngineSuite) TestInstantiateMovesKAndVFromZero(c *C) {
	e := newHMACEngine(descriptors[HMACSHA1])
	c.Assert(e.update(newChain(make([]byte, 30)), false), IsNil)

	// V isn't 0x01-repeated after update returns (update mixes it
	// immediately), but K and V must both have moved from their
	// zero-valued construction state.
	allZeroV, allZeroK := true, true
	for _, b := range e.v {
		if b != 0 {
			allZeroV = false
		}
	}
	for _, b := range e.k {
		if b != 0 {
			allZeroK = false
		}
	}
	c.Check(allZeroV, Equals, false)
	c.Check(allZeroK, Equals, false)
}

func (s *hmacEngineSuite) TestUpdateWithEmptyProvidedDataChangesK(c *C) {
	e := newHMACEngine(descriptors[HMACSHA256])
	c.Assert(e.update(newChain(make([]byte, 48)), false), IsNil)

	kAfterSeed := append([]byte(nil), e.k...)

	// Reseeding with an empty chain must still change K/V (the update
	// procedure's first round always runs), but differently than a
	// non-empty provided_data would.
	c.Assert(e.update(nil, true), IsNil)
	c.Check(e.k, Not(DeepEquals), kAfterSeed)
}

func (s *hmacEngineSuite) TestGenerateConsumesAdditionalInput(c *C) {
	e1 := newHMACEngine(descriptors[HMACSHA256])
	c.Assert(e1.update(newChain(make([]byte, 48)), false), IsNil)
	out1 := make([]byte, 16)
	c.Assert(e1.generate(nil, out1, 0), IsNil)

	e2 := newHMACEngine(descriptors[HMACSHA256])
	c.Assert(e2.update(newChain(make([]byte, 48)), false), IsNil)
	out2 := make([]byte, 16)
	c.Assert(e2.generate(newChain([]byte("additional")), out2, 0), IsNil)

	c.Check(out1, Not(DeepEquals), out2)
}

func (s *hmacEngineSuite) TestWipeZeroes(c *C) {
	e := newHMACEngine(descriptors[HMACSHA256])
	c.Assert(e.update(newChain(make([]byte, 48)), false), IsNil)

	e.wipe()

	for _, b := range e.v {
		c.Assert(b, Equals, byte(0))
	}
	for _, b := range e.k {
		c.Assert(b, Equals, byte(0))
	}
}
