package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	forms "github.com/astraclub/club-platform-go/forms"
)

// WebhookPayload is the JSON body relayed to an event's webhook after a
// registration is persisted.
type WebhookPayload struct {
	EventID     string                 `json:"eventId"`
	EventTitle  string                 `json:"eventTitle"`
	SubmittedAt string                 `json:"submittedAt"` // ISO 8601
	Responses   map[string]forms.Entry `json:"responses"`
	ResponseID  string                 `json:"responseId"`
}

// WebhookResult reports a relay attempt. The caller is free to ignore it:
// relay is best-effort and never affects the persisted response.
type WebhookResult struct {
	Sent  bool
	Error error
}

var webhookClient = &http.Client{Timeout: 15 * time.Second}

// SendWebhook posts the payload to url. A transport error or non-2xx status
// is a relay failure.
func SendWebhook(ctx context.Context, url string, payload WebhookPayload) WebhookResult {
	body, err := json.Marshal(payload)
	if err != nil {
		return WebhookResult{Error: fmt.Errorf("webhook payload error: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return WebhookResult{Error: fmt.Errorf("webhook request error: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := webhookClient.Do(req)
	if err != nil {
		return WebhookResult{Error: fmt.Errorf("webhook error: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return WebhookResult{Error: fmt.Errorf("webhook failed: %d %s", resp.StatusCode, resp.Status)}
	}
	return WebhookResult{Sent: true}
}
