// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package drbg

import (
	"testing"

	"github.com/kr/pretty"

	. "gopkg.in/check.v1"
)

func Test(t *testing.T) { TestingT(t) }

type drbgSuite struct{}

var _ = Suite(&drbgSuite{})

// checkPretty asserts got and want are deep-equal, rendering both sides
// with kr/pretty on failure so a mismatched byte slice prints as an
// aligned diff instead of two giant hex blobs.
func checkPretty(c *C, got, want interface{}) {
	if diffs := pretty.Diff(got, want); len(diffs) != 0 {
		c.Errorf("mismatch:\n%s", pretty.Sprint(diffs))
	}
}

func vectorByName(c *C, name string) katVector {
	for _, v := range katVectors {
		if v.name == name {
			return v
		}
	}
	c.Fatalf("no such vector: %s", name)
	return katVector{}
}

func (s *drbgSuite) runVector(c *C, v katVector) {
	hook := &testHook{injected: append([]byte(nil), v.entropy...)}

	desc, err := lookupDescriptor(v.mechanism)
	c.Assert(err, IsNil)

	d, err := NewWithExternalEntropy(
		v.mechanism,
		v.entropy[:desc.secStrBytes],
		v.entropy[desc.secStrBytes:],
		v.personalization,
		v.predictionResistant,
		hook,
	)
	c.Assert(err, IsNil)

	if v.entropyReseed != nil {
		hook.injected = append([]byte(nil), v.entropyReseed...)
		c.Assert(d.ReseedWithExternalEntropy(v.entropyReseed, v.addtlReseed), IsNil)
	}

	out := make([]byte, len(v.expected))

	if v.entPRA != nil {
		hook.injected = append([]byte(nil), v.entPRA...)
	}
	c.Assert(d.Generate(v.addtlA, out), IsNil)

	if v.entPRB != nil {
		hook.injected = append([]byte(nil), v.entPRB...)
	}
	c.Assert(d.Generate(v.addtlB, out), IsNil)

	checkPretty(c, out, v.expected)
}

func (s *drbgSuite) TestHashSHA256NoPR(c *C) {
	s.runVector(c, vectorByName(c, "hash-sha256-nopr"))
}

func (s *drbgSuite) TestHMACSHA256NoPR(c *C) {
	s.runVector(c, vectorByName(c, "hmac-sha256-nopr"))
}

func (s *drbgSuite) TestCTRAES128NoPR(c *C) {
	s.runVector(c, vectorByName(c, "ctr-aes128-nopr"))
}

func (s *drbgSuite) TestHashSHA256PR(c *C) {
	s.runVector(c, vectorByName(c, "hash-sha256-pr"))
}

func (s *drbgSuite) TestHMACSHA256PR(c *C) {
	s.runVector(c, vectorByName(c, "hmac-sha256-pr"))
}

func (s *drbgSuite) TestCTRAES128PR(c *C) {
	s.runVector(c, vectorByName(c, "ctr-aes128-pr"))
}

func (s *drbgSuite) TestHashSHA1NoPRWithReseed(c *C) {
	s.runVector(c, vectorByName(c, "hash-sha1-nopr"))
}

func (s *drbgSuite) TestHashSHA1NoPRWithReseedAndAddtl(c *C) {
	s.runVector(c, vectorByName(c, "hash-sha1-nopr-2"))
}

func (s *drbgSuite) TestGenerateRejectsOversizedRequest(c *C) {
	d, err := New(HMACSHA256, nil, false, DefaultEntropySource)
	c.Assert(err, IsNil)

	err = d.Generate(nil, make([]byte, maxRequestBytes+1))
	c.Assert(IsKind(err, KindInvalidArgument), Equals, true)
}

func (s *drbgSuite) TestGenerateRejectsOversizedAdditionalInput(c *C) {
	// maxAddtlLen runs into the gigabytes on a 64-bit platform, so the
	// bound is checked directly rather than by allocating a buffer that
	// size.
	c.Assert(checkAddtlLen(maxAddtlLen+1), Equals, true)
	c.Assert(checkAddtlLen(maxAddtlLen), Equals, false)
}

func (s *drbgSuite) TestUninstantiateForcesReseedOnNextGenerate(c *C) {
	d, err := New(HMACSHA256, nil, false, DefaultEntropySource)
	c.Assert(err, IsNil)

	d.Uninstantiate()
	c.Assert(d.seeded, Equals, false)

	out := make([]byte, 16)
	c.Assert(d.Generate(nil, out), IsNil)
	c.Assert(d.seeded, Equals, true)
}

func (s *drbgSuite) TestForkSafetyForcesReseed(c *C) {
	d, err := New(HMACSHA256, nil, false, DefaultEntropySource)
	c.Assert(err, IsNil)

	d.seedOwnerPID = d.pid() + 1

	out := make([]byte, 16)
	c.Assert(d.Generate(nil, out), IsNil)
	c.Assert(d.seedOwnerPID, Equals, d.pid())
}

func (s *drbgSuite) TestPredictionResistanceReseedsEveryGenerate(c *C) {
	d, err := New(HMACSHA256, nil, true, DefaultEntropySource)
	c.Assert(err, IsNil)

	// Each Generate reseeds first (counter back to 1) and then counts
	// itself, so the counter stays at 2; without the reseeds two calls
	// would take it from 1 to 3.
	out := make([]byte, 16)
	c.Assert(d.Generate(nil, out), IsNil)
	c.Assert(d.Generate(nil, out), IsNil)
	c.Assert(d.reseedCounter, Equals, uint64(2))
}

func (s *drbgSuite) TestReadChunksAcrossMaxRequestBytes(c *C) {
	d, err := New(HMACSHA256, nil, false, DefaultEntropySource)
	c.Assert(err, IsNil)

	out := make([]byte, maxRequestBytes+16)
	n, err := d.Read(out)
	c.Assert(err, IsNil)
	c.Assert(n, Equals, len(out))
}
