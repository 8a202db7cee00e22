// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package drbg

import (
	. "gopkg.in/check.v1"
)

type selftestSuite struct{}

var _ = Suite(&selftestSuite{})

func (s *selftestSuite) TestRunSelfTestPasses(c *C) {
	var lines []string
	err := RunSelfTest(func(l string) { lines = append(lines, l) })
	c.Assert(err, IsNil)
	c.Assert(len(lines) > 0, Equals, true)
	for _, l := range lines {
		c.Check(l[:4], Equals, "PASS")
	}
}

func (s *selftestSuite) TestRunSelfTestAcceptsNilReport(c *C) {
	c.Assert(RunSelfTest(nil), IsNil)
}

func (s *selftestSuite) TestSanityChecksCatchOversizedAddtl(c *C) {
	// maxAddtlLen runs into the gigabytes on a 64-bit platform, so the
	// bound is checked directly rather than by allocating a buffer that
	// size.
	c.Assert(checkAddtlLen(maxAddtlLen+1), Equals, true)
}

func (s *selftestSuite) TestForcedEntropyFailureIsReported(c *C) {
	hook := &testHook{failSeedSource: true}
	d := &DRBG{
		mechanism:     descriptors[HashSHA256],
		engine:        newEngine(descriptors[HashSHA256]),
		entropySource: hook,
	}
	err := d.instantiate(nil)
	c.Assert(IsKind(err, KindEntropySourceFailure), Equals, true)
}
