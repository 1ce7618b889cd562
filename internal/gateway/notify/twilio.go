package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"course-go-avito-dispatch/internal/config"
)

const maxBodyBytes = 16 * 1024

// HTTPClient abstracts the http.Client Do method for easier testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Twilio sends WhatsApp messages through the Twilio REST API.
type Twilio struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	client     HTTPClient
}

// NewTwilio creates a Twilio-backed WhatsApp transport. Returns nil when the
// credentials are not configured, the caller decides whether that is fatal.
func NewTwilio(cfg config.Twilio, client HTTPClient) *Twilio {
	if strings.TrimSpace(cfg.AccountSID) == "" || strings.TrimSpace(cfg.AuthToken) == "" {
		return nil
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Twilio{
		accountSID: strings.TrimSpace(cfg.AccountSID),
		authToken:  strings.TrimSpace(cfg.AuthToken),
		from:       FormatWhatsApp(cfg.From),
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		client:     client,
	}
}

// Send delivers the offer message over WhatsApp.
func (t *Twilio) Send(ctx context.Context, phone string, offer Offer) error {
	params := url.Values{}
	params.Set("To", FormatWhatsApp(phone))
	params.Set("From", t.from)
	params.Set("Body", offerBody(offer))

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.baseURL, url.PathEscape(t.accountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("notify: new request: %w", err)
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: http do: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	return &SendError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(resp.Body),
	}
}

type twilioError struct {
	Message string `json:"message"`
}

func errorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return ""
	}
	var parsed twilioError
	if err := json.Unmarshal(data, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return strings.TrimSpace(string(data))
}
