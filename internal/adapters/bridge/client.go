// Package bridge implements the outbound client for the terminal bridge,
// the sidecar process that fronts the trading terminals and serves live
// account facts over HTTP.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/GerardFevill/trade-vision/internal/apperrors"
	"github.com/GerardFevill/trade-vision/internal/core/domain"
	portssvc "github.com/GerardFevill/trade-vision/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

const defaultTimeout = 10 * time.Second

// Client talks to the terminal bridge over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption is a functional option for configuring the bridge client
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a bridge client for the given base URL.
func NewClient(baseURL string, options ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

var _ portssvc.TerminalBridgeSvc = (*Client)(nil)

// accountInfoResponse is the bridge's wire format for one account.
type accountInfoResponse struct {
	Login         int64   `json:"login"`
	Name          string  `json:"name"`
	Broker        string  `json:"broker"`
	Server        string  `json:"server"`
	Balance       float64 `json:"balance"`
	Equity        float64 `json:"equity"`
	Profit        float64 `json:"profit"`
	ProfitPercent float64 `json:"profitPercent"`
	Drawdown      float64 `json:"drawdown"`
	Trades        int     `json:"trades"`
	WinRate       float64 `json:"winRate"`
	Currency      string  `json:"currency"`
	Leverage      int     `json:"leverage"`
	Connected     bool    `json:"connected"`
}

// FetchAccountInfo retrieves one account's live facts by login.
func (c *Client) FetchAccountInfo(ctx context.Context, login int64) (*domain.AccountSummary, error) {
	url := fmt.Sprintf("%s/api/accounts/%d", c.baseURL, login)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build bridge request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bridge unreachable: %w: %w", apperrors.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decoding
	case http.StatusNotFound:
		return nil, fmt.Errorf("account %d unknown to bridge: %w", login, apperrors.ErrNotFound)
	default:
		return nil, fmt.Errorf("bridge returned status %d for account %d: %w", resp.StatusCode, login, apperrors.ErrUnavailable)
	}

	var body accountInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode bridge response: %w", err)
	}

	summary := &domain.AccountSummary{
		AccountID:     body.Login,
		Name:          body.Name,
		Broker:        body.Broker,
		Server:        body.Server,
		Balance:       decimal.NewFromFloat(body.Balance),
		Equity:        decimal.NewFromFloat(body.Equity),
		Profit:        decimal.NewFromFloat(body.Profit),
		ProfitPercent: decimal.NewFromFloat(body.ProfitPercent),
		Drawdown:      decimal.NewFromFloat(body.Drawdown),
		Trades:        body.Trades,
		WinRate:       decimal.NewFromFloat(body.WinRate),
		Currency:      body.Currency,
		Leverage:      body.Leverage,
		Connected:     body.Connected,
		UpdatedAt:     time.Now().UTC(),
	}
	if summary.AccountID == 0 {
		summary.AccountID = login
	}
	return summary, nil
}

// Ping checks bridge reachability.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/ping", nil)
	if err != nil {
		return fmt.Errorf("failed to build bridge request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bridge unreachable: %w: %w", apperrors.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bridge returned status %d: %w", resp.StatusCode, apperrors.ErrUnavailable)
	}
	return nil
}
