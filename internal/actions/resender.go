package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"advisord/internal/recovery"
	"advisord/pkg/types"
)

const defaultResendTimeout = 10 * time.Second

// WebhookResender asks the chat service to regenerate a message by POSTing the
// message record to URL. The POST runs in the background; the caller only
// learns about configuration errors.
type WebhookResender struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
	Pub     EventPublisher
	Log     zerolog.Logger

	// done, when set, receives the outcome of each background POST.
	done func(error)
}

// ResendChatMessage implements recovery.Resender.
func (r *WebhookResender) ResendChatMessage(ctx context.Context, m recovery.Message) error {
	if strings.TrimSpace(r.URL) == "" {
		return fmt.Errorf("resend url not configured")
	}
	body, err := json.Marshal(types.MessageRecord{
		ID:        m.ID,
		ThreadID:  m.ThreadID,
		Status:    string(m.Status),
		ErrorCode: string(m.ErrorCode),
		Engine:    m.Engine,
	})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	r.publish(newEvent("resend_requested", m.ID, nil))
	// Detached from the request context: the caller does not wait for the chat service.
	go func() {
		err := r.post(body)
		if err != nil {
			r.Log.Error().Err(err).Str("message_id", m.ID).Msg("resend webhook failed")
			r.publish(newEvent("resend_failed", m.ID, map[string]any{"error": err.Error()}))
		} else {
			r.publish(newEvent("resend_sent", m.ID, nil))
		}
		if r.done != nil {
			r.done(err)
		}
	}()
	return nil
}

func (r *WebhookResender) post(body []byte) error {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultResendTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("chat service returned %s", resp.Status)
	}
	return nil
}

func (r *WebhookResender) publish(e Event) {
	if r.Pub != nil {
		r.Pub.Publish(e)
	}
}
