// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package main

import (
	"github.com/alecthomas/kong"
)

type cli struct {
	Generate generateCmd `cmd:"" help:"Generate random bytes from the global DRBG instance."`
	Selftest selftestCmd `cmd:"" help:"Run the bundled known-answer-test harness."`
	Reinit   reinitCmd   `cmd:"" help:"Re-instantiate the global DRBG with a chosen mechanism."`
	Serve    serveCmd    `cmd:"" help:"Serve the /healthz endpoint until terminated."`
}

func main() {
	var cli cli

	ctx := kong.Parse(&cli,
		kong.Name("drbgctl"),
		kong.Description("Operate a process-global SP 800-90A DRBG instance."),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
