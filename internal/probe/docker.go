package probe

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/hamed0406/infrawatch/internal/domain"
)

// DockerChecker asks the docker CLI whether a container is running.
type DockerChecker struct{}

func NewDockerChecker() *DockerChecker {
	return &DockerChecker{}
}

func (d *DockerChecker) Check(ctx context.Context, t domain.Target) domain.ProbeResult {
	start := time.Now()
	out, err := exec.CommandContext(
		ctx, "docker", "inspect", "-f", "{{.State.Running}}", t.Container,
	).Output()
	latency := time.Since(start)

	if err != nil {
		msg := "docker inspect failed"
		if ctx.Err() != nil {
			msg = "docker inspect timeout"
		}
		return domain.ProbeResult{Up: false, Err: msg, At: time.Now()}
	}
	if !bytes.Equal(bytes.TrimSpace(bytes.ToLower(out)), []byte("true")) {
		return domain.ProbeResult{Up: false, Err: "container not running", At: time.Now()}
	}
	return domain.ProbeResult{Up: true, Latency: latency, At: time.Now()}
}
