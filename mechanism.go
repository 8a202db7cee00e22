// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package drbg

import (
	"crypto"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
)

// Family identifies which of the three SP 800-90A mechanisms a
// MechanismID selects.
type Family int

const (
	FamilyHash Family = iota
	FamilyHMAC
	FamilyCTR
)

// MechanismID names one of the mechanism/primitive combinations in
// Table 3 of SP 800-90A. The zero value is not a valid mechanism.
type MechanismID int

const (
	HashSHA1 MechanismID = iota + 1
	HashSHA256
	HashSHA384
	HashSHA512
	HMACSHA1
	HMACSHA256
	HMACSHA384
	HMACSHA512
	CTRAES128
	CTRAES192
	CTRAES256
)

// descriptor is the immutable, per-mechanism record described in spec.md
// §3: a tagged record of {kind, primitive, seedlen, outlen/blocklen}.
// Table 3 values are reproduced literally.
type descriptor struct {
	id        MechanismID
	family    Family
	hash      crypto.Hash // FamilyHash / FamilyHMAC only
	keyLen    int         // FamilyCTR only: AES key length in bytes
	seedLen   int         // bytes
	outLen    int         // bytes; hash output length, or AES block size for CTR
	secStrBytes int       // security_strength, in bytes
}

var descriptors = map[MechanismID]descriptor{
	HashSHA1:   {id: HashSHA1, family: FamilyHash, hash: crypto.SHA1, seedLen: 55, outLen: 20, secStrBytes: 16},
	HashSHA256: {id: HashSHA256, family: FamilyHash, hash: crypto.SHA256, seedLen: 55, outLen: 32, secStrBytes: 32},
	HashSHA384: {id: HashSHA384, family: FamilyHash, hash: crypto.SHA384, seedLen: 111, outLen: 48, secStrBytes: 32},
	HashSHA512: {id: HashSHA512, family: FamilyHash, hash: crypto.SHA512, seedLen: 111, outLen: 64, secStrBytes: 32},

	HMACSHA1:   {id: HMACSHA1, family: FamilyHMAC, hash: crypto.SHA1, seedLen: 20, outLen: 20, secStrBytes: 16},
	HMACSHA256: {id: HMACSHA256, family: FamilyHMAC, hash: crypto.SHA256, seedLen: 32, outLen: 32, secStrBytes: 32},
	HMACSHA384: {id: HMACSHA384, family: FamilyHMAC, hash: crypto.SHA384, seedLen: 48, outLen: 48, secStrBytes: 32},
	HMACSHA512: {id: HMACSHA512, family: FamilyHMAC, hash: crypto.SHA512, seedLen: 64, outLen: 64, secStrBytes: 32},

	// CTR-DRBG: seedlen = keylen + blocklen (blocklen is always
	// aes.BlockSize == 16 for the AES family).
	CTRAES128: {id: CTRAES128, family: FamilyCTR, keyLen: 16, seedLen: 32, outLen: 16, secStrBytes: 16},
	CTRAES192: {id: CTRAES192, family: FamilyCTR, keyLen: 24, seedLen: 40, outLen: 16, secStrBytes: 24},
	CTRAES256: {id: CTRAES256, family: FamilyCTR, keyLen: 32, seedLen: 48, outLen: 16, secStrBytes: 32},
}

func lookupDescriptor(id MechanismID) (descriptor, error) {
	d, ok := descriptors[id]
	if !ok {
		return descriptor{}, newError("lookupDescriptor", KindInvalidArgument, errUnsupportedMechanism)
	}
	return d, nil
}

var errUnsupportedMechanism = errConst("unsupported mechanism")

type errConst string

func (e errConst) Error() string { return string(e) }
