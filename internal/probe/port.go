package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"syscall"
	"time"

	"github.com/hamed0406/infrawatch/internal/domain"
)

// PortChecker opens and immediately closes a TCP connection.
type PortChecker struct {
	Dialer net.Dialer
}

func NewPortChecker() *PortChecker {
	return &PortChecker{}
}

func (p *PortChecker) Check(ctx context.Context, t domain.Target) domain.ProbeResult {
	addr := net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
	start := time.Now()
	conn, err := p.Dialer.DialContext(ctx, "tcp", addr)
	latency := time.Since(start)

	if err != nil {
		msg := err.Error()
		var nerr net.Error
		switch {
		case errors.Is(err, syscall.ECONNREFUSED):
			msg = fmt.Sprintf("connection refused on port %d", t.Port)
		case ctx.Err() != nil || (errors.As(err, &nerr) && nerr.Timeout()):
			msg = fmt.Sprintf("timeout on port %d", t.Port)
		}
		return domain.ProbeResult{Up: false, Err: msg, At: time.Now()}
	}
	_ = conn.Close()
	return domain.ProbeResult{Up: true, Latency: latency, At: time.Now()}
}
