package probe

import (
	"context"

	"github.com/hamed0406/infrawatch/internal/domain"
)

// Checker performs a single check against one target. Implementations must
// honor ctx for cancellation and normalize every failure mode into a down
// result with an error detail; they never return a Go error.
type Checker interface {
	Check(ctx context.Context, t domain.Target) domain.ProbeResult
}
