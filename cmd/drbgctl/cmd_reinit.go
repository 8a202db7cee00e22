// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package main

import (
	"encoding/hex"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"

	drbg "github.com/go-drbg/sp80090a"
	"github.com/go-drbg/sp80090a/internal/facade"
)

type reinitCmd struct {
	Mechanism           string `default:"hmac-sha256" help:"Mechanism to instantiate."`
	PredictionResistant bool   `help:"Reseed before every generate call."`
	Personalization     string `help:"Hex-encoded personalization string."`
}

func (cmd *reinitCmd) Run(_ *kong.Context) error {
	id, err := drbg.ParseMechanismName(cmd.Mechanism)
	if err != nil {
		return errors.Wrap(err, "drbgctl reinit")
	}

	flags, err := facade.FlagsForMechanism(id, cmd.PredictionResistant)
	if err != nil {
		return errors.Wrap(err, "drbgctl reinit")
	}

	var personalization []byte
	if cmd.Personalization != "" {
		personalization, err = hex.DecodeString(cmd.Personalization)
		if err != nil {
			return errors.Wrap(err, "drbgctl reinit: --personalization")
		}
	}

	return errors.Wrap(facade.Reinit(flags, personalization), "drbgctl reinit")
}
