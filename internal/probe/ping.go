package probe

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/hamed0406/infrawatch/internal/domain"
)

// PingChecker shells out to the system ping binary with a single echo
// request. ICMP sockets need elevated privileges, the binary does not.
type PingChecker struct{}

func NewPingChecker() *PingChecker {
	return &PingChecker{}
}

func (p *PingChecker) Check(ctx context.Context, t domain.Target) domain.ProbeResult {
	start := time.Now()
	cmd := exec.CommandContext(ctx, "ping", "-c", "1", "-W", "5", t.Host)
	err := cmd.Run()
	latency := time.Since(start)

	if err != nil {
		msg := "host unreachable"
		switch {
		case ctx.Err() != nil:
			msg = "ping timeout"
		case errors.Is(err, exec.ErrNotFound):
			msg = "ping binary not found"
		}
		return domain.ProbeResult{Up: false, Err: msg, At: time.Now()}
	}
	return domain.ProbeResult{Up: true, Latency: latency, At: time.Now()}
}
