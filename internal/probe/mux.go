package probe

import (
	"context"
	"time"

	"github.com/hamed0406/infrawatch/internal/domain"
)

// Mux dispatches a check to the checker registered for the target's kind.
// It keeps everything downstream of the probe boundary kind-agnostic.
type Mux struct {
	checkers map[domain.Kind]Checker
}

// NewMux wires the default checker for every kind.
func NewMux() *Mux {
	return &Mux{checkers: map[domain.Kind]Checker{
		domain.KindServer:    NewPingChecker(),
		domain.KindPort:      NewPortChecker(),
		domain.KindWebsite:   NewHTTPChecker(),
		domain.KindContainer: NewDockerChecker(),
		domain.KindService:   NewSystemdChecker(),
	}}
}

// Register replaces the checker for a kind. Mostly useful in tests.
func (m *Mux) Register(k domain.Kind, c Checker) {
	m.checkers[k] = c
}

func (m *Mux) Check(ctx context.Context, t domain.Target) domain.ProbeResult {
	c, ok := m.checkers[t.Kind]
	if !ok {
		return domain.ProbeResult{
			Up:  false,
			Err: "no checker for kind " + string(t.Kind),
			At:  time.Now(),
		}
	}
	return c.Check(ctx, t)
}
