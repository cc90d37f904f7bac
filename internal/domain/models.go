package domain

import (
	"fmt"
	"time"
)

// Kind identifies how a target is probed.
type Kind string

const (
	KindServer    Kind = "server"
	KindPort      Kind = "port"
	KindWebsite   Kind = "website"
	KindContainer Kind = "container"
	KindService   Kind = "service"
)

// Kinds lists every kind in display order. Snapshots group targets in this order.
var Kinds = []Kind{KindServer, KindPort, KindWebsite, KindContainer, KindService}

// Target is one monitored entity. The registry is loaded once at startup and
// never mutated afterwards. Name+Kind is the unique identity.
type Target struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`

	// Kind-specific connection parameters.
	Host           string `json:"host,omitempty"`            // server, port
	Port           int    `json:"port,omitempty"`            // port
	URL            string `json:"url,omitempty"`             // website
	ExpectedStatus int    `json:"expected_status,omitempty"` // website, 0 means 200
	Container      string `json:"container,omitempty"`       // container
	Service        string `json:"service,omitempty"`         // service
}

// ID keys the status store.
func (t Target) ID() string {
	return string(t.Kind) + "/" + t.Name
}

// Label is the human-readable kind tag used in alerts.
func (t Target) Label() string {
	switch t.Kind {
	case KindServer:
		return "Server (Ping)"
	case KindPort:
		return fmt.Sprintf("TCP:%d", t.Port)
	case KindWebsite:
		return "HTTP/HTTPS"
	case KindContainer:
		return "Docker"
	case KindService:
		return "Systemd"
	}
	return string(t.Kind)
}

type Status string

const (
	StatusUnknown Status = "unknown"
	StatusUp      Status = "up"
	StatusDown    Status = "down"
)

// ProbeResult is the outcome of a single check. A failed probe is a value
// (Up=false plus Err), never a Go error at the detector boundary.
type ProbeResult struct {
	Up      bool          `json:"up"`
	Latency time.Duration `json:"latency"`
	Err     string        `json:"error,omitempty"`
	At      time.Time     `json:"at"`
}

// Status maps the binary outcome onto the status enum.
func (r ProbeResult) Status() Status {
	if r.Up {
		return StatusUp
	}
	return StatusDown
}

// StatusRecord is the per-target mutable state kept by the store. Since marks
// when the current status began and is only moved on an actual transition.
type StatusRecord struct {
	Status Status      `json:"status"`
	Since  time.Time   `json:"since"`
	Last   ProbeResult `json:"last"`
}

// Transition is emitted when a fresh probe result disagrees with the stored
// status. Downtime is set only when recovering (down -> up).
type Transition struct {
	Target   Target
	From     Status
	To       Status
	At       time.Time
	Downtime time.Duration
	Result   ProbeResult
}
