package bot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/infrawatch/internal/domain"
	"github.com/hamed0406/infrawatch/internal/notify"
	"github.com/hamed0406/infrawatch/internal/status"
)

// botAPI fakes the two Bot API endpoints the listener touches.
type botAPI struct {
	mu      sync.Mutex
	updates []string // JSON bodies served one per getUpdates call
	sent    []string // texts received on sendMessage
	sends   chan struct{}
}

func newBotAPI(updates ...string) *botAPI {
	return &botAPI{updates: updates, sends: make(chan struct{}, 16)}
}

func (b *botAPI) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			b.mu.Lock()
			body := `{"ok":true,"result":[]}`
			if len(b.updates) > 0 {
				body = b.updates[0]
				b.updates = b.updates[1:]
			}
			b.mu.Unlock()
			_, _ = w.Write([]byte(body))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var p map[string]string
			_ = json.NewDecoder(r.Body).Decode(&p)
			b.mu.Lock()
			b.sent = append(b.sent, p["text"])
			b.mu.Unlock()
			b.sends <- struct{}{}
			_, _ = w.Write([]byte(`{"ok":true}`))
		default:
			w.WriteHeader(404)
		}
	})
}

func (b *botAPI) sentTexts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.sent))
	copy(out, b.sent)
	return out
}

func newTestListener(t *testing.T, api *botAPI) (*Listener, *status.Store) {
	t.Helper()
	ts := httptest.NewServer(api.handler())
	t.Cleanup(ts.Close)

	tg := notify.NewTelegram("token", "42")
	tg.BaseURL = ts.URL

	store := status.NewStore([]domain.Target{
		{Name: "API", Kind: domain.KindWebsite, URL: "https://api"},
	})
	store.Apply(store.Targets()[0], domain.ProbeResult{Up: true, At: time.Now()})

	return NewListener(zap.NewNop(), tg, store, 10*time.Millisecond), store
}

func TestHandle_StatusCommand(t *testing.T) {
	api := newBotAPI()
	l, _ := newTestListener(t, api)

	l.handle(context.Background(), "/status")

	sent := api.sentTexts()
	if len(sent) != 1 {
		t.Fatalf("want one reply, got %d", len(sent))
	}
	if !strings.Contains(sent[0], "STATUS REPORT") || !strings.Contains(sent[0], "API") {
		t.Fatalf("status reply missing content:\n%s", sent[0])
	}
}

func TestHandle_HelpAndAliases(t *testing.T) {
	api := newBotAPI()
	l, _ := newTestListener(t, api)

	l.handle(context.Background(), "/help")
	l.handle(context.Background(), "  STATUS  ") // aliases are case/space tolerant

	sent := api.sentTexts()
	if len(sent) != 2 {
		t.Fatalf("want two replies, got %d", len(sent))
	}
	if !strings.Contains(sent[0], "/status") {
		t.Fatalf("help reply should list commands:\n%s", sent[0])
	}
}

func TestHandle_UnknownCommandIgnored(t *testing.T) {
	api := newBotAPI()
	l, _ := newTestListener(t, api)

	l.handle(context.Background(), "/restart")
	l.handle(context.Background(), "hello there")

	if sent := api.sentTexts(); len(sent) != 0 {
		t.Fatalf("unknown commands must be ignored, got %v", sent)
	}
}

func TestRun_FiltersForeignChatAndTracksOffset(t *testing.T) {
	api := newBotAPI(
		`{"ok":true,"result":[
			{"update_id":1,"message":{"chat":{"id":999},"text":"/status"}},
			{"update_id":2,"message":{"chat":{"id":42},"text":"/status"}}
		]}`,
	)
	l, _ := newTestListener(t, api)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()

	select {
	case <-api.sends:
	case <-time.After(2 * time.Second):
		t.Fatal("no reply to the authorized chat")
	}
	cancel()
	<-done

	if sent := api.sentTexts(); len(sent) != 1 {
		t.Fatalf("foreign chat must be ignored, got %d replies", len(sent))
	}
	if l.offset != 2 {
		t.Fatalf("offset should track the last update, got %d", l.offset)
	}
}
