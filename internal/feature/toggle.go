// Package feature wraps the record store with the user-facing bookmark and
// history features: input validation, an enable/disable switch and derived
// read views. Features never cache; every call round-trips to the store.
package feature

import (
	"sync/atomic"

	"github.com/MrSnakeDoc/nitron/internal/logger"
)

// Toggle is the named on/off switch shared by every feature.
// It starts enabled and is safe for concurrent use.
type Toggle struct {
	name    string
	enabled atomic.Bool
	log     logger.Logger
}

func (t *Toggle) init(name string, log logger.Logger) {
	if log == nil {
		log = logger.NewNop()
	}
	t.name = name
	t.log = log.With(logger.String("feature", name))
	t.enabled.Store(true)
}

func (t *Toggle) Name() string { return t.name }

func (t *Toggle) Enabled() bool { return t.enabled.Load() }

func (t *Toggle) Enable() {
	t.enabled.Store(true)
	t.log.Info("feature enabled")
}

func (t *Toggle) Disable() {
	t.enabled.Store(false)
	t.log.Info("feature disabled")
}

// Initialize forces the feature on. Calling it again changes nothing.
func (t *Toggle) Initialize() {
	t.enabled.Store(true)
	t.log.Debug("feature initialized")
}

// String renders "<name> [ENABLED]" or "<name> [DISABLED]".
func (t *Toggle) String() string {
	state := "DISABLED"
	if t.Enabled() {
		state = "ENABLED"
	}
	return t.name + " [" + state + "]"
}
