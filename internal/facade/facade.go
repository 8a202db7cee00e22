// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package facade

import (
	"sync"

	"github.com/pkg/errors"

	drbg "github.com/go-drbg/sp80090a"
)

// facade owns the single process-global *drbg.DRBG instance, guarded by
// its own mutex rather than relying on drbg.DRBG's internal one — the
// control surface's init/reinit/close_fds transitions need to replace
// the instance entirely, which the core's own locking can't express.
type facade struct {
	mu sync.Mutex

	instance *drbg.DRBG
	flags    uint32

	logger drbg.Logger

	lastSelftestOK   bool
	lastSelftestDone bool
}

var global = &facade{logger: drbg.DefaultLogger}

// SetLogger replaces the logger the global facade reports state
// transitions through. Passing nil installs drbg.NullLogger.
func SetLogger(l drbg.Logger) {
	global.mu.Lock()
	defer global.mu.Unlock()
	if l == nil {
		l = drbg.NullLogger
	}
	global.logger = l
}

// Init lazily instantiates the default mechanism (HMAC-SHA-256, no
// prediction resistance) the first time full is true, matching spec.md
// §6's init(full) contract. A false call returns nil without
// instantiating; it runs no checks of its own.
func Init(full bool) error {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.instance != nil {
		return nil
	}
	if !full {
		return nil
	}

	cfg := drbg.DefaultConfig()
	flags, err := FlagsForMechanism(cfg.Mechanism, cfg.PredictionResistant)
	if err != nil {
		return errors.Wrap(err, "facade: init")
	}

	return global.reinitLocked(flags, cfg.Personalization)
}

// Reinit uninstantiates the current global instance, if any, and
// re-instantiates it with the mechanism selected by flags. flags == 0
// retains the previously selected mechanism (or the default, if none was
// ever selected).
func Reinit(flags uint32, personalization []byte) error {
	global.mu.Lock()
	defer global.mu.Unlock()

	if flags == 0 {
		flags = global.flags
		if flags == 0 {
			cfg := drbg.DefaultConfig()
			var err error
			flags, err = FlagsForMechanism(cfg.Mechanism, cfg.PredictionResistant)
			if err != nil {
				return errors.Wrap(err, "facade: reinit")
			}
		}
	}

	return global.reinitLocked(flags, personalization)
}

func (f *facade) reinitLocked(flags uint32, personalization []byte) error {
	if f.instance != nil {
		f.instance.Uninstantiate()
	}

	id, err := mechanismFromFlags(flags)
	if err != nil {
		return errors.Wrap(err, "facade: reinit")
	}

	predictionResistant := flags&PredictionResist != 0

	inst, err := drbg.New(id, personalization, predictionResistant, drbg.DefaultEntropySource)
	if err != nil {
		return errors.Wrap(err, "facade: reinit: instantiate")
	}

	f.instance = inst
	f.flags = flags
	f.lastSelftestDone = false
	f.logger.Printf("facade: reinitialized, mechanism flags=0x%08x prediction_resistant=%v", flags, predictionResistant)

	return nil
}

// Randomize fills out with len(out) random bytes, mixing in addtl as
// per-call additional input, per spec.md §6's randomize(buf, len, level)
// contract. level is accepted for interface parity with the reference
// control surface but otherwise unused: this package has only one
// strength tier per mechanism, selected at Reinit time.
func Randomize(out, addtl []byte, level int) error {
	global.mu.Lock()
	needsInit := global.instance == nil
	global.mu.Unlock()

	if needsInit {
		if err := Init(true); err != nil {
			return err
		}
	}

	global.mu.Lock()
	defer global.mu.Unlock()

	if global.instance == nil {
		return errors.New("facade: randomize: not instantiated")
	}

	return global.instance.Generate(addtl, out)
}

// AddBytes reseeds the global instance using buf as additional input,
// per spec.md §6's add_bytes(buf, len, quality) contract: quality is
// accepted for interface parity (the reference control surface uses it
// to decide whether buf alone is trusted as full entropy) but this
// package always also pulls from the configured entropy source during
// the reseed, so a low-quality buf only ever supplements, never
// replaces, real entropy.
func AddBytes(buf []byte, quality int) error {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.instance == nil {
		return errors.New("facade: add_bytes: not instantiated")
	}

	_ = quality

	return global.instance.Reseed(buf)
}

// Selftest runs the bundled known-answer-test harness against a fresh,
// throwaway DRBG per mechanism (it must not perturb the global
// instance's state), reporting progress through report.
func Selftest(report func(string)) error {
	err := drbg.RunSelfTest(report)

	global.mu.Lock()
	global.lastSelftestDone = true
	global.lastSelftestOK = err == nil
	if err != nil {
		global.logger.Printf("facade: selftest failed: %v", err)
	} else {
		global.logger.Printf("facade: selftest passed")
	}
	global.mu.Unlock()

	return err
}

// CloseFDs releases the global instance, zeroizing its state, without
// closing any file descriptor: crypto/rand.Reader never holds one open
// past the read it's used for, so there's nothing this package must
// release beyond the in-memory secret state Uninstantiate already wipes.
// Kept as its own entry point for interface parity with spec.md §6's
// close_fds() and because a future EntropySource backed by an open
// device file would need exactly this hook.
func CloseFDs() {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.instance != nil {
		global.instance.Uninstantiate()
		global.instance = nil
	}
}

// Status reports whether the global instance is instantiated and the
// outcome of the most recent Selftest call, for internal/facade/health.go
// to publish.
func Status() (instantiated bool, selftestDone bool, selftestOK bool) {
	global.mu.Lock()
	defer global.mu.Unlock()
	return global.instance != nil, global.lastSelftestDone, global.lastSelftestOK
}
