// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package drbg

// wipe overwrites b with zeroes. It is written so the compiler cannot prove
// the writes are dead and elide them the way it's permitted to with a plain
// loop whose result is never read.
//
//go:noinline
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func wipeAll(bs ...[]byte) {
	for _, b := range bs {
		wipe(b)
	}
}
