package domain

import "testing"

func TestTarget_Label(t *testing.T) {
	cases := []struct {
		target Target
		want   string
	}{
		{Target{Name: "a", Kind: KindServer, Host: "1.2.3.4"}, "Server (Ping)"},
		{Target{Name: "b", Kind: KindPort, Host: "1.2.3.4", Port: 22}, "TCP:22"},
		{Target{Name: "c", Kind: KindWebsite, URL: "https://x"}, "HTTP/HTTPS"},
		{Target{Name: "d", Kind: KindContainer, Container: "pg"}, "Docker"},
		{Target{Name: "e", Kind: KindService, Service: "docker"}, "Systemd"},
	}
	for _, c := range cases {
		if got := c.target.Label(); got != c.want {
			t.Fatalf("label for %s: want %q, got %q", c.target.Kind, c.want, got)
		}
	}
}

func TestTarget_IDUniquePerKind(t *testing.T) {
	a := Target{Name: "ssh", Kind: KindPort}
	b := Target{Name: "ssh", Kind: KindService}
	if a.ID() == b.ID() {
		t.Fatalf("same name across kinds must not collide: %q", a.ID())
	}
}

func TestProbeResult_Status(t *testing.T) {
	if (ProbeResult{Up: true}).Status() != StatusUp {
		t.Fatal("up result should map to StatusUp")
	}
	if (ProbeResult{Up: false, Err: "boom"}).Status() != StatusDown {
		t.Fatal("failed result should map to StatusDown")
	}
}
