package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// pollTimeout is the server-side long-poll window for getUpdates; the poll
// client's own timeout must sit above it.
const pollTimeout = 25 * time.Second

// Telegram talks to the Bot API: sendMessage outbound, getUpdates inbound.
type Telegram struct {
	Token   string
	ChatID  string
	BaseURL string // overridable for tests

	Client     *http.Client // short-lived sends
	PollClient *http.Client // long-poll getUpdates
}

func NewTelegram(token, chatID string) *Telegram {
	if token == "" || chatID == "" {
		return nil
	}
	return &Telegram{
		Token:      token,
		ChatID:     chatID,
		BaseURL:    "https://api.telegram.org",
		Client:     &http.Client{Timeout: 10 * time.Second},
		PollClient: &http.Client{Timeout: pollTimeout + 10*time.Second},
	}
}

type sendMessagePayload struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

func (t *Telegram) Send(ctx context.Context, text string) error {
	if t == nil {
		return errors.New("telegram disabled")
	}
	body, _ := json.Marshal(sendMessagePayload{
		ChatID:    t.ChatID,
		Text:      text,
		ParseMode: "HTML",
	})
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, t.Token)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("telegram sendMessage: HTTP %d", resp.StatusCode)
	}
	return nil
}

// Update is one entry from getUpdates.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	Chat Chat   `json:"chat"`
	Text string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type updatesResponse struct {
	OK     bool     `json:"ok"`
	Result []Update `json:"result"`
}

// GetUpdates long-polls the Bot API for messages with update_id >= offset.
func (t *Telegram) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	if t == nil {
		return nil, errors.New("telegram disabled")
	}
	q := url.Values{}
	q.Set("offset", strconv.FormatInt(offset, 10))
	q.Set("timeout", strconv.Itoa(int(pollTimeout.Seconds())))
	endpoint := fmt.Sprintf("%s/bot%s/getUpdates?%s", t.BaseURL, t.Token, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := t.PollClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("telegram getUpdates: HTTP %d", resp.StatusCode)
	}

	var out updatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, errors.New("telegram getUpdates: not ok")
	}
	return out.Result, nil
}
