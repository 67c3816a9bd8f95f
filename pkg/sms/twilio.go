package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"uptime-monitor/config"
	"uptime-monitor/pkg/apperror"
)

const (
	// MinPhoneLength is the shortest number accepted, country code included.
	MinPhoneLength = 12
	MaxMessageLen  = 1600
)

// Client sends text messages through the Twilio REST API.
type Client struct {
	baseURL    string
	accountSID string
	authToken  string
	from       string
	httpClient *http.Client
}

func NewClient(cfg *config.TwilioConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.FromPhone,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Send(ctx context.Context, phone, message string) error {
	const op = "sms.twilio.send"

	phone = strings.TrimSpace(phone)
	message = strings.TrimSpace(message)
	if len(phone) < MinPhoneLength {
		return apperror.New(apperror.InvalidInput, op, fmt.Errorf("phone %q too short", phone)).
			WithMessage("invalid phone number")
	}
	if message == "" || len(message) > MaxMessageLen {
		return apperror.New(apperror.InvalidInput, op, fmt.Errorf("message length %d out of range", len(message))).
			WithMessage("invalid message")
	}

	form := url.Values{}
	form.Set("From", c.from)
	form.Set("To", "+"+phone)
	form.Set("Body", message)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, url.PathEscape(c.accountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return apperror.New(apperror.Internal, op, err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.New(apperror.Dependency, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return apperror.New(apperror.Dependency, op,
			fmt.Errorf("twilio answered %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
