// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package drbg

import (
	"os"
	"strconv"
	"strings"
)

// Config is the default mechanism/prediction-resistance selection the
// process-global facade instantiates with, per spec.md §6's "mechanism
// selected by flags" control surface. It mirrors that control surface's
// fields rather than introducing a parallel configuration model.
type Config struct {
	Mechanism           MechanismID
	PredictionResistant bool
	Personalization     []byte
}

// DefaultConfig is Config's zero-entropy-source, non-prediction-resistant
// default: HMAC-SHA256, the mechanism SP 800-90A's own reference
// implementation defaults to when no flags are supplied.
func DefaultConfig() Config {
	return Config{Mechanism: HMACSHA256}
}

const (
	envMechanism  = "DRBG_MECHANISM"
	envPredictRes = "DRBG_PREDICTION_RESISTANT"
	envPersonal   = "DRBG_PERSONALIZATION_HEX"
)

var mechanismNames = map[string]MechanismID{
	"hash-sha1":   HashSHA1,
	"hash-sha256": HashSHA256,
	"hash-sha384": HashSHA384,
	"hash-sha512": HashSHA512,
	"hmac-sha1":   HMACSHA1,
	"hmac-sha256": HMACSHA256,
	"hmac-sha384": HMACSHA384,
	"hmac-sha512": HMACSHA512,
	"ctr-aes128":  CTRAES128,
	"ctr-aes192":  CTRAES192,
	"ctr-aes256":  CTRAES256,
}

// ParseMechanismName maps a CLI/env-style mechanism name (e.g.
// "hmac-sha256") to a MechanismID, the same table ConfigFromEnv uses for
// DRBG_MECHANISM.
func ParseMechanismName(name string) (MechanismID, error) {
	id, ok := mechanismNames[strings.ToLower(name)]
	if !ok {
		return 0, newError("ParseMechanismName", KindInvalidArgument, errConst("unrecognized mechanism name: "+name))
	}
	return id, nil
}

// ConfigFromEnv builds a Config from the environment, falling back to
// DefaultConfig for anything unset. It never returns an error for unset
// variables, only for a variable that is set to an unparseable value —
// matching spec.md §6's flag-parsing posture of rejecting malformed
// configuration rather than silently ignoring it.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv(envMechanism); v != "" {
		id, ok := mechanismNames[strings.ToLower(v)]
		if !ok {
			return Config{}, newError("ConfigFromEnv", KindInvalidArgument, errConst("unrecognized "+envMechanism+" value: "+v))
		}
		cfg.Mechanism = id
	}

	if v := os.Getenv(envPredictRes); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, newError("ConfigFromEnv", KindInvalidArgument, errConst("unparseable "+envPredictRes+" value: "+v))
		}
		cfg.PredictionResistant = b
	}

	if v := os.Getenv(envPersonal); v != "" {
		b, err := hexDecode(v)
		if err != nil {
			return Config{}, newError("ConfigFromEnv", KindInvalidArgument, errConst("unparseable "+envPersonal+" value"))
		}
		cfg.Personalization = b
	}

	return cfg, nil
}

// hexDecode is a small wrapper kept local to config.go so it can return
// this package's own error type; encoding/hex.DecodeString's error
// doesn't carry a Kind.
func hexDecode(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, errConst("odd-length hex string")
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi, ok1 := hexVal(s[2*i])
		lo, ok2 := hexVal(s[2*i+1])
		if !ok1 || !ok2 {
			return nil, errConst("invalid hex digit")
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
