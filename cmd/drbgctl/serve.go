// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package main

import (
	"fmt"
	"log"

	"github.com/alecthomas/kong"

	"github.com/go-drbg/sp80090a/internal/facade"
)

type serveCmd struct {
	Addr string `default:":8090" help:"Address to serve /healthz on."`
}

func (cmd *serveCmd) Run(_ *kong.Context) error {
	if err := facade.Init(true); err != nil {
		return fmt.Errorf("drbgctl serve: %w", err)
	}

	srv := facade.NewHealthServer(cmd.Addr)
	log.Printf("drbgctl: serving /healthz on %s", cmd.Addr)
	return srv.ListenAndServe()
}
