package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sender delivers one message to one destination address.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// TwilioSender sends SMS through the Twilio Messages REST endpoint.
type TwilioSender struct {
	log        *slog.Logger
	client     *http.Client
	accountSID string
	authToken  string
	fromNumber string
	baseURL    string
}

// NewTwilioSender creates a TwilioSender, or returns nil when any of the
// credentials is missing. A nil return means SMS alerting is disabled for
// this process lifetime.
func NewTwilioSender(log *slog.Logger, accountSID, authToken, fromNumber string, timeout time.Duration) *TwilioSender {
	if accountSID == "" || authToken == "" || fromNumber == "" {
		log.Warn("Twilio credentials not configured. SMS alerts will be disabled.")
		return nil
	}

	return &TwilioSender{
		log:        log,
		client:     &http.Client{Timeout: timeout},
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		baseURL:    "https://api.twilio.com",
	}
}

// Send posts one message to the carrier. The attempt is bounded by the
// client timeout; a non-2xx response is returned as an error carrying the
// carrier's reason text.
func (t *TwilioSender) Send(ctx context.Context, phone, message string) error {
	const opn = "alerts.TwilioSender.Send"

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", t.baseURL, t.accountSID)

	form := url.Values{}
	form.Set("To", phone)
	form.Set("From", t.fromNumber)
	form.Set("Body", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", opn, err)
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", opn, err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s: carrier error: %s", opn, carrierReason(res))
	}

	t.log.DebugContext(ctx, "Carrier accepted message", "to", phone, "status", res.StatusCode)

	return nil
}

// carrierReason extracts the error message from a Twilio error response,
// falling back to the HTTP status line.
func carrierReason(res *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(res.Body, 4096))
	if err == nil {
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			return payload.Message
		}
	}

	return fmt.Sprintf("[%d] %s", res.StatusCode, http.StatusText(res.StatusCode))
}
