// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

// Package facade implements the process-global control surface SP
// 800-90A's own reference implementation exposes as a handful of
// free functions over a single global state: init, reinit, randomize,
// add_bytes, selftest, and close_fds. The mechanism core
// (github.com/go-drbg/sp80090a) is a plain value type with no package
// -level state; this package supplies the singleton the outer library
// wants.
package facade

import (
	"github.com/pkg/errors"

	drbg "github.com/go-drbg/sp80090a"
)

// Flag bits, laid out the way the reference control surface packs a
// mechanism selection plus modifiers into one uint32: low bits select
// the family and primitive, a separate bit enables prediction
// resistance.
const (
	familyMask uint32 = 0x00000003

	familyHash uint32 = 0x00000000
	familyHMAC uint32 = 0x00000001
	familyCTR  uint32 = 0x00000002

	primitiveMask uint32 = 0x0000003c
	primitiveShift       = 2

	primitiveSHA1   uint32 = 0
	primitiveSHA256 uint32 = 1
	primitiveSHA384 uint32 = 2
	primitiveSHA512 uint32 = 3
	primitiveAES128 uint32 = 0
	primitiveAES192 uint32 = 1
	primitiveAES256 uint32 = 2

	// PredictionResist, when set, asks Reinit to instantiate a
	// prediction-resistant DRBG.
	PredictionResist uint32 = 0x00000040
)

// Preset flag combinations for the common cases; cmd/drbgctl exposes
// these as named choices so operators don't need to hand-assemble the
// bit pattern.
const (
	FlagsHashSHA1   = familyHash | (primitiveSHA1 << primitiveShift)
	FlagsHashSHA256 = familyHash | (primitiveSHA256 << primitiveShift)
	FlagsHashSHA384 = familyHash | (primitiveSHA384 << primitiveShift)
	FlagsHashSHA512 = familyHash | (primitiveSHA512 << primitiveShift)

	FlagsHMACSHA1   = familyHMAC | (primitiveSHA1 << primitiveShift)
	FlagsHMACSHA256 = familyHMAC | (primitiveSHA256 << primitiveShift)
	FlagsHMACSHA384 = familyHMAC | (primitiveSHA384 << primitiveShift)
	FlagsHMACSHA512 = familyHMAC | (primitiveSHA512 << primitiveShift)

	FlagsCTRAES128 = familyCTR | (primitiveAES128 << primitiveShift)
	FlagsCTRAES192 = familyCTR | (primitiveAES192 << primitiveShift)
	FlagsCTRAES256 = familyCTR | (primitiveAES256 << primitiveShift)
)

// mechanismFromFlags maps a packed flags value to a drbg.MechanismID via
// the Table 3 descriptor lookup the core package already owns.
func mechanismFromFlags(flags uint32) (drbg.MechanismID, error) {
	family := flags & familyMask
	primitive := (flags & primitiveMask) >> primitiveShift

	switch family {
	case familyHash:
		switch primitive {
		case primitiveSHA1:
			return drbg.HashSHA1, nil
		case primitiveSHA256:
			return drbg.HashSHA256, nil
		case primitiveSHA384:
			return drbg.HashSHA384, nil
		case primitiveSHA512:
			return drbg.HashSHA512, nil
		}
	case familyHMAC:
		switch primitive {
		case primitiveSHA1:
			return drbg.HMACSHA1, nil
		case primitiveSHA256:
			return drbg.HMACSHA256, nil
		case primitiveSHA384:
			return drbg.HMACSHA384, nil
		case primitiveSHA512:
			return drbg.HMACSHA512, nil
		}
	case familyCTR:
		switch primitive {
		case primitiveAES128:
			return drbg.CTRAES128, nil
		case primitiveAES192:
			return drbg.CTRAES192, nil
		case primitiveAES256:
			return drbg.CTRAES256, nil
		}
	}

	return 0, errors.Errorf("facade: unrecognized flags 0x%08x", flags)
}

// FlagsForMechanism is the inverse of mechanismFromFlags, used by
// cmd/drbgctl to translate a named --mechanism flag into the packed
// representation Reinit expects.
func FlagsForMechanism(id drbg.MechanismID, predictionResistant bool) (uint32, error) {
	var flags uint32

	switch id {
	case drbg.HashSHA1:
		flags = FlagsHashSHA1
	case drbg.HashSHA256:
		flags = FlagsHashSHA256
	case drbg.HashSHA384:
		flags = FlagsHashSHA384
	case drbg.HashSHA512:
		flags = FlagsHashSHA512
	case drbg.HMACSHA1:
		flags = FlagsHMACSHA1
	case drbg.HMACSHA256:
		flags = FlagsHMACSHA256
	case drbg.HMACSHA384:
		flags = FlagsHMACSHA384
	case drbg.HMACSHA512:
		flags = FlagsHMACSHA512
	case drbg.CTRAES128:
		flags = FlagsCTRAES128
	case drbg.CTRAES192:
		flags = FlagsCTRAES192
	case drbg.CTRAES256:
		flags = FlagsCTRAES256
	default:
		return 0, errors.Errorf("facade: unrecognized mechanism id %d", id)
	}

	if predictionResistant {
		flags |= PredictionResist
	}

	return flags, nil
}
