package signalwire

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/onurcolak/sms-relay/environments"
	"github.com/onurcolak/sms-relay/internal/domain"
	"github.com/onurcolak/sms-relay/pkg/logger"
)

var ErrNoNumbersAvailable = errors.New("no phone numbers available")

// Client talks to the SignalWire REST APIs: LaML for outbound SMS and the
// relay REST API for number provisioning. Requests are never retried.
type Client struct {
	httpClient   *resty.Client
	projectID    string
	relayContext string
}

type availableNumbersResponse struct {
	Data []struct {
		E164 string `json:"e164"`
	} `json:"data"`
}

type purchasedNumber struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

type relayContextRequest struct {
	Name                string `json:"name"`
	MessageHandler      string `json:"message_handler"`
	MessageRelayContext string `json:"message_relay_context"`
}

type apiError struct {
	Message string `json:"message"`
	Code    any    `json:"code,omitempty"`
}

func NewClient(cfg environments.SignalWireConfig) *Client {
	client := resty.New().
		SetBaseURL(baseURL(cfg.Space)).
		SetTimeout(cfg.Timeout).
		SetBasicAuth(cfg.ProjectID, cfg.APIToken).
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient:   client,
		projectID:    cfg.ProjectID,
		relayContext: cfg.Context,
	}
}

// baseURL accepts a bare space host ("example.signalwire.com") or a full URL.
func baseURL(space string) string {
	if strings.HasPrefix(space, "http://") || strings.HasPrefix(space, "https://") {
		return strings.TrimSuffix(space, "/")
	}
	return "https://" + strings.TrimSuffix(space, "/")
}

// SendMessage sends body from one provisioned number to another. Numbers
// are given without a leading "+".
func (c *Client) SendMessage(ctx context.Context, from, to, body string) (*domain.SentSMS, error) {
	var sent domain.SentSMS
	var apiErr apiError

	startTime := time.Now()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"From": "+" + domain.NormalizeNumber(from),
			"To":   "+" + domain.NormalizeNumber(to),
			"Body": body,
		}).
		SetResult(&sent).
		SetError(&apiErr).
		Post(fmt.Sprintf("/api/laml/2010-04-01/Accounts/%s/Messages.json", c.projectID))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	logger.Infof("SignalWire message request completed in %v (status: %d)", time.Since(startTime), resp.StatusCode())

	if resp.IsError() {
		return nil, fmt.Errorf("send message failed with status %d: %s", resp.StatusCode(), errorText(resp, apiErr))
	}

	return &sent, nil
}

// BuyPhoneNumber buys the first available local number and points its
// inbound message handler at the configured relay context.
func (c *Client) BuyPhoneNumber(ctx context.Context) (string, error) {
	number, err := c.firstAvailableNumber(ctx)
	if err != nil {
		return "", err
	}

	var purchased purchasedNumber
	var apiErr apiError

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]string{"number": number}).
		SetResult(&purchased).
		SetError(&apiErr).
		Post("/api/relay/rest/phone_numbers")
	if err != nil {
		return "", fmt.Errorf("failed to buy phone number: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("buy phone number failed with status %d: %s", resp.StatusCode(), errorText(resp, apiErr))
	}

	resp, err = c.httpClient.R().
		SetContext(ctx).
		SetBody(relayContextRequest{
			Name:                number,
			MessageHandler:      "relay_context",
			MessageRelayContext: c.relayContext,
		}).
		SetError(&apiErr).
		Put("/api/relay/rest/phone_numbers/" + purchased.ID)
	if err != nil {
		return "", fmt.Errorf("failed to set relay context: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("set relay context failed with status %d: %s", resp.StatusCode(), errorText(resp, apiErr))
	}

	logger.Infof("Bought phone number %s (id %s)", number, purchased.ID)

	return number, nil
}

func (c *Client) firstAvailableNumber(ctx context.Context) (string, error) {
	var available availableNumbersResponse
	var apiErr apiError

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"number_type": "local",
			"max_results": "100",
		}).
		SetResult(&available).
		SetError(&apiErr).
		Get("/api/relay/rest/phone_numbers/search")
	if err != nil {
		return "", fmt.Errorf("failed to search phone numbers: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("search phone numbers failed with status %d: %s", resp.StatusCode(), errorText(resp, apiErr))
	}

	if len(available.Data) == 0 {
		return "", ErrNoNumbersAvailable
	}

	return available.Data[0].E164, nil
}

func errorText(resp *resty.Response, apiErr apiError) string {
	if apiErr.Message != "" {
		return apiErr.Message
	}
	return resp.String()
}
