package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kgwahlawifi/internal/config"
)

// SMSClient posts messages to an Africa's Talking style SMS gateway.
// Delivery failures never reach request handlers; the SMS worker logs them
// and moves the job to the DLQ.
type SMSClient struct {
	apiURL     string
	apiKey     string
	username   string
	senderID   string
	httpClient *http.Client
}

func NewSMSClient(cfg *config.Config) *SMSClient {
	return &SMSClient{
		apiURL:     cfg.SMSAPIURL,
		apiKey:     cfg.SMSAPIKey,
		username:   cfg.SMSUsername,
		senderID:   cfg.SMSSenderID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Send delivers a text message to a normalized 27XXXXXXXXX number.
func (c *SMSClient) Send(ctx context.Context, msisdn, message string) error {
	form := url.Values{
		"to":      {"+" + msisdn},
		"message": {message},
		"from":    {c.senderID},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("sms: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apiKey", c.apiKey)
	req.Header.Set("username", c.username)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms: gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms: gateway returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
