package probe

import (
	"context"
	"fmt"
	"strings"
	"time"

	sd "github.com/coreos/go-systemd/v22/dbus"

	"github.com/hamed0406/infrawatch/internal/domain"
)

// SystemdChecker reads a unit's ActiveState over D-Bus.
type SystemdChecker struct{}

func NewSystemdChecker() *SystemdChecker {
	return &SystemdChecker{}
}

func (s *SystemdChecker) Check(ctx context.Context, t domain.Target) domain.ProbeResult {
	start := time.Now()
	conn, err := sd.NewWithContext(ctx)
	if err != nil {
		return domain.ProbeResult{Up: false, Err: "dbus: " + err.Error(), At: time.Now()}
	}
	defer conn.Close()

	prop, err := conn.GetUnitPropertyContext(ctx, unitName(t.Service), "ActiveState")
	latency := time.Since(start)
	if err != nil {
		return domain.ProbeResult{Up: false, Err: err.Error(), At: time.Now()}
	}

	state, ok := prop.Value.Value().(string)
	if !ok {
		return domain.ProbeResult{Up: false, Err: "unexpected ActiveState type", At: time.Now()}
	}
	if state != "active" {
		return domain.ProbeResult{
			Up:  false,
			Err: fmt.Sprintf("unit state: %s", state),
			At:  time.Now(),
		}
	}
	return domain.ProbeResult{Up: true, Latency: latency, At: time.Now()}
}

func unitName(service string) string {
	if strings.Contains(service, ".") {
		return service
	}
	return service + ".service"
}
