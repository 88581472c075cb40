// SPDX-License-Identifier: MPL-2.0

// Package cleanup keeps the process-wide registry of exit-time actions
// used to tear down temporary resources created while running tools. The
// registry is append-only and drains exactly once, whether the process
// leaves through main or through SIGINT/SIGTERM.
package cleanup

import (
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	mu      sync.Mutex
	actions []func()

	installOnce sync.Once
	drained     bool
)

// Register appends an exit-time action. The first registration installs
// the signal handler; later registrations only grow the list. Actions run
// in registration order when the registry drains.
func Register(fn func()) {
	mu.Lock()
	actions = append(actions, fn)
	mu.Unlock()

	installOnce.Do(install)
}

// Drain runs every registered action in registration order, exactly once
// per process. Later calls (and actions registered after draining) are
// no-ops. Deferred from main for the normal exit path; the signal handler
// calls it for abnormal termination.
func Drain() {
	mu.Lock()
	if drained {
		mu.Unlock()
		return
	}
	drained = true
	pending := actions
	actions = nil
	mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// install starts the termination watcher. Signal delivery drains the
// registry and then exits with the conventional 128+signum status.
func install() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-ch
		slog.Debug("draining cleanup registry on signal", "signal", sig.String())
		Drain()
		if num, ok := sig.(syscall.Signal); ok {
			os.Exit(128 + int(num))
		}
		os.Exit(1)
	}()
}

// Reset clears the registry and its drained state. Test-only: production
// code must never re-arm a drained registry.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	actions = nil
	drained = false
}
