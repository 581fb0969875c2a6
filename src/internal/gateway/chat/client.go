package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"timebank-service/src/pkg/log"

	"github.com/spf13/viper"
)

// Channel is the outbound chat-platform boundary. Every call is
// best-effort: callers log failures and never fail the primary operation.
type Channel interface {
	Push(ctx context.Context, externalUserID, message string) error
	SwitchMenu(ctx context.Context, externalUserID, menuState string) error
}

type httpChannel struct {
	baseURL string
	token   string
	client  *http.Client
	log     log.Log
}

func NewHTTPChannel(v *viper.Viper, logger log.Log) Channel {
	if !v.GetBool("chat.enabled") {
		return &noopChannel{}
	}

	return &httpChannel{
		baseURL: v.GetString("chat.base_url"),
		token:   v.GetString("chat.access_token"),
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		log: logger,
	}
}

type pushBody struct {
	To       string        `json:"to"`
	Messages []messageBody `json:"messages"`
}

type messageBody struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (c *httpChannel) Push(ctx context.Context, externalUserID, message string) error {
	body := pushBody{
		To: externalUserID,
		Messages: []messageBody{
			{Type: "text", Text: message},
		},
	}
	return c.post(ctx, "/v2/bot/message/push", body)
}

func (c *httpChannel) SwitchMenu(ctx context.Context, externalUserID, menuState string) error {
	path := fmt.Sprintf("/v2/bot/user/%s/richmenu/%s", externalUserID, menuState)
	return c.post(ctx, path, nil)
}

func (c *httpChannel) post(ctx context.Context, path string, body interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("chat platform returned status %d", resp.StatusCode)
	}
	return nil
}

// noopChannel is used when the chat integration is disabled.
type noopChannel struct{}

func (n *noopChannel) Push(ctx context.Context, externalUserID, message string) error {
	return nil
}

func (n *noopChannel) SwitchMenu(ctx context.Context, externalUserID, menuState string) error {
	return nil
}
