// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/go-drbg/sp80090a/internal/facade"
)

type selftestCmd struct {
	Watch time.Duration `help:"Re-run the self-test on this interval instead of exiting after one pass (e.g. 1h)." optional:""`
}

func (cmd *selftestCmd) Run(_ *kong.Context) error {
	if cmd.Watch <= 0 {
		return cmd.runOnce()
	}

	ticker := time.NewTicker(cmd.Watch)
	defer ticker.Stop()

	if err := cmd.runOnce(); err != nil {
		return err
	}
	for range ticker.C {
		if err := cmd.runOnce(); err != nil {
			return err
		}
	}
	return nil
}

func (cmd *selftestCmd) runOnce() error {
	err := facade.Selftest(func(line string) {
		fmt.Println(line)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "drbgctl selftest: FAILED:", err)
		os.Exit(1)
	}
	return nil
}
