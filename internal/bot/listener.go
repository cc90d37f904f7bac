package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/infrawatch/internal/alert"
	"github.com/hamed0406/infrawatch/internal/notify"
	"github.com/hamed0406/infrawatch/internal/status"
)

// Listener long-polls the Bot API for chat commands and answers them from
// the status store. It only ever reads; the poll loop owns all writes.
type Listener struct {
	Logger        *zap.Logger
	API           *notify.Telegram
	Store         *status.Store
	RetryInterval time.Duration

	offset int64
}

func NewListener(logger *zap.Logger, api *notify.Telegram, store *status.Store, retry time.Duration) *Listener {
	if retry <= 0 {
		retry = 10 * time.Second
	}
	return &Listener{Logger: logger, API: api, Store: store, RetryInterval: retry}
}

// Run polls until ctx is cancelled. Poll errors back off for the retry
// interval and continue; they never take the monitor down.
func (l *Listener) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			l.Logger.Info("bot_stopped")
			return
		}

		updates, err := l.API.GetUpdates(ctx, l.offset+1)
		if err != nil {
			if ctx.Err() != nil {
				l.Logger.Info("bot_stopped")
				return
			}
			l.Logger.Warn("bot_poll_error", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(l.RetryInterval):
			}
			continue
		}

		for _, u := range updates {
			l.offset = u.UpdateID
			if u.Message == nil {
				continue
			}
			if strconv.FormatInt(u.Message.Chat.ID, 10) != l.API.ChatID {
				continue
			}
			l.handle(ctx, u.Message.Text)
		}
	}
}

// handle answers a recognized command; anything else is ignored.
func (l *Listener) handle(ctx context.Context, text string) {
	var reply string
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "/status", "status":
		reply = alert.StatusReport(l.Store.Snapshot(), time.Now())
	case "/help", "help":
		reply = alert.Help()
	default:
		return
	}

	if err := l.API.Send(ctx, reply); err != nil {
		l.Logger.Warn("bot_reply_failed", zap.Error(err))
	}
}
