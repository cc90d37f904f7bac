package alert

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hamed0406/infrawatch/internal/domain"
	"github.com/hamed0406/infrawatch/internal/status"
)

// Telegram HTML templates. Everything here is pure formatting: the same
// transition always renders to the same bytes.

const timeLayout = "02/01/2006 15:04:05"

func statusEmoji(s domain.Status) string {
	switch s {
	case domain.StatusUp:
		return "🟢"
	case domain.StatusDown:
		return "🔴"
	}
	return "🟡"
}

// Render picks the down or recovered template for a transition.
func Render(tr domain.Transition) string {
	if tr.To == domain.StatusDown {
		return Down(tr)
	}
	return Recovered(tr)
}

// Down renders the outage alert block.
func Down(tr domain.Transition) string {
	var b strings.Builder
	b.WriteString("🚨 <b>ALERT: SERVICE DOWN</b> 🚨\n\n")
	fmt.Fprintf(&b, "🔴 <b>%s</b>\n", tr.Target.Name)
	fmt.Fprintf(&b, "📋 Type: <code>%s</code>\n", tr.Target.Label())
	b.WriteString("📊 Status: <b>DOWN</b>\n")
	fmt.Fprintf(&b, "🕐 Time: <code>%s</code>\n", tr.At.Format(timeLayout))
	if tr.Result.Err != "" {
		fmt.Fprintf(&b, "❗ Error: <code>%s</code>\n", tr.Result.Err)
	}
	return b.String()
}

// Recovered renders the recovery block, including the response latency of the
// successful probe and the total downtime.
func Recovered(tr domain.Transition) string {
	var b strings.Builder
	b.WriteString("✅ <b>SERVICE RECOVERED</b> ✅\n\n")
	fmt.Fprintf(&b, "✅ <b>%s</b>\n", tr.Target.Name)
	fmt.Fprintf(&b, "📋 Type: <code>%s</code>\n", tr.Target.Label())
	b.WriteString("📊 Status: <b>RECOVERED</b>\n")
	fmt.Fprintf(&b, "🕐 Time: <code>%s</code>\n", tr.At.Format(timeLayout))
	if tr.Result.Latency > 0 {
		fmt.Fprintf(&b, "⚡ Response: <code>%s</code>\n", FormatLatency(tr.Result.Latency))
	}
	fmt.Fprintf(&b, "⏱️ Downtime: <code>%s</code>\n", FormatDowntime(tr.Downtime))
	return b.String()
}

// StatusReport renders the /status reply: totals first, then every target
// with the down ones on top.
func StatusReport(snap []status.TargetStatus, now time.Time) string {
	up, down := 0, 0
	for _, st := range snap {
		switch st.Record.Status {
		case domain.StatusUp:
			up++
		case domain.StatusDown:
			down++
		}
	}

	rows := make([]status.TargetStatus, len(snap))
	copy(rows, snap)
	sort.SliceStable(rows, func(i, j int) bool {
		di := rows[i].Record.Status == domain.StatusDown
		dj := rows[j].Record.Status == domain.StatusDown
		if di != dj {
			return di
		}
		return rows[i].Target.Name < rows[j].Target.Name
	})

	var b strings.Builder
	b.WriteString("📊 <b>STATUS REPORT</b>\n")
	fmt.Fprintf(&b, "🕐 <code>%s</code>\n\n", now.Format(timeLayout))
	fmt.Fprintf(&b, "✅ Online: <b>%d</b>\n", up)
	fmt.Fprintf(&b, "🔴 Offline: <b>%d</b>\n", down)
	b.WriteString("━━━━━━━━━━━━━━━━━━━━\n")
	for _, st := range rows {
		fmt.Fprintf(&b, "%s %s\n", statusEmoji(st.Record.Status), st.Target.Name)
		if st.Record.Status == domain.StatusDown && st.Record.Last.Err != "" {
			fmt.Fprintf(&b, "   ❗ <code>%s</code>\n", st.Record.Last.Err)
		}
	}
	return b.String()
}

// Startup announces the monitor coming online.
func Startup(targets int, interval time.Duration) string {
	var b strings.Builder
	b.WriteString("🚀 <b>Monitor started</b>\n\n")
	fmt.Fprintf(&b, "📋 Targets: <b>%d</b>\n", targets)
	fmt.Fprintf(&b, "⏱️ Interval: <b>%ds</b>\n\n", int(interval.Seconds()))
	b.WriteString("Send /status to see the state of every target")
	return b.String()
}

// Help is the /help reply.
func Help() string {
	return "🤖 <b>Commands</b>\n\n" +
		"/status - current state of every target\n" +
		"/help - this message\n\n" +
		"Alerts are pushed automatically when a target goes DOWN or comes back UP"
}

// FormatDowntime renders an elapsed duration as hours, minutes and seconds,
// e.g. 3661s -> "1h 1m 1s".
func FormatDowntime(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

// FormatLatency renders a probe latency in milliseconds, e.g. "12.34ms".
func FormatLatency(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
}
