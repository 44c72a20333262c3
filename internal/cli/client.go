package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	httpadapter "github.com/moonman369/Crowd-Funding-Contract/internal/adapter/http"
	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
)

const apiPrefix = "/api/v1"

// APIError is a failure answered by the ledger service.
type APIError struct {
	Status     int
	Code       string
	Message    string
	CampaignID *uint64
}

func (e *APIError) Error() string {
	if e.CampaignID != nil {
		return fmt.Sprintf("%s (HTTP %d, campaign %d): %s", e.Code, e.Status, *e.CampaignID, e.Message)
	}
	return fmt.Sprintf("%s (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// Client talks to the /api/v1 routes of a ledger service. Reads are retried
// with exponential backoff on transport errors and 5xx answers; writes are
// sent once so that a donation is never submitted twice.
type Client struct {
	BaseURL  string
	Token    string
	MaxTries uint
	http     *http.Client
}

// NewClient returns a client for the service at baseURL authenticating with
// token, which may be empty for read-only use.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Token:    token,
		MaxTries: 4,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Time(ctx context.Context) (httpadapter.TimeResponse, error) {
	var resp httpadapter.TimeResponse
	err := c.get(ctx, "/time", &resp)
	return resp, err
}

func (c *Client) LedgerInfo(ctx context.Context) (httpadapter.LedgerInfoResponse, error) {
	var resp httpadapter.LedgerInfoResponse
	err := c.get(ctx, "/ledger", &resp)
	return resp, err
}

func (c *Client) CreateCampaign(ctx context.Context, req httpadapter.CreateCampaignRequest, dryRun bool) (httpadapter.CreateCampaignResponse, error) {
	var resp httpadapter.CreateCampaignResponse
	endpoint := "/campaigns"
	if dryRun {
		endpoint += "?dry_run=true"
	}
	err := c.post(ctx, endpoint, req, &resp)
	return resp, err
}

func (c *Client) Campaign(ctx context.Context, id uint64) (httpadapter.CampaignResponse, error) {
	var resp httpadapter.CampaignResponse
	err := c.get(ctx, campaignPath(id, ""), &resp)
	return resp, err
}

func (c *Client) CampaignCount(ctx context.Context) (uint64, error) {
	var resp httpadapter.CountResponse
	err := c.get(ctx, "/campaigns/count", &resp)
	return resp.Count, err
}

func (c *Client) ListCampaigns(ctx context.Context, offset, limit uint64) ([]httpadapter.CampaignResponse, error) {
	params := url.Values{}
	if offset > 0 {
		params.Set("offset", strconv.FormatUint(offset, 10))
	}
	if limit > 0 {
		params.Set("limit", strconv.FormatUint(limit, 10))
	}
	endpoint := "/campaigns"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	var resp []httpadapter.CampaignResponse
	err := c.get(ctx, endpoint, &resp)
	return resp, err
}

func (c *Client) Donate(ctx context.Context, id, amount uint64) (httpadapter.ContributionResponse, error) {
	var resp httpadapter.ContributionResponse
	err := c.post(ctx, campaignPath(id, "/donations"), httpadapter.AmountRequest{Amount: amount}, &resp)
	return resp, err
}

func (c *Client) Collect(ctx context.Context, id uint64) (httpadapter.WithdrawalResponse, error) {
	var resp httpadapter.WithdrawalResponse
	err := c.post(ctx, campaignPath(id, "/collect"), nil, &resp)
	return resp, err
}

func (c *Client) Refund(ctx context.Context, id uint64) (httpadapter.WithdrawalResponse, error) {
	var resp httpadapter.WithdrawalResponse
	err := c.post(ctx, campaignPath(id, "/refund"), nil, &resp)
	return resp, err
}

func (c *Client) Contributions(ctx context.Context, id uint64) ([]httpadapter.ContributionResponse, error) {
	var resp []httpadapter.ContributionResponse
	err := c.get(ctx, campaignPath(id, "/contributions"), &resp)
	return resp, err
}

func (c *Client) Events(ctx context.Context, id uint64) ([]domain.Event, error) {
	var resp []domain.Event
	err := c.get(ctx, campaignPath(id, "/events"), &resp)
	return resp, err
}

func (c *Client) TotalSupply(ctx context.Context) (uint64, error) {
	var resp httpadapter.SupplyResponse
	err := c.get(ctx, "/tokens/supply", &resp)
	return resp.TotalSupply, err
}

func (c *Client) Balance(ctx context.Context, account domain.Address) (uint64, error) {
	var resp httpadapter.BalanceResponse
	err := c.get(ctx, "/tokens/balances/"+account.String(), &resp)
	return resp.Balance, err
}

func (c *Client) Allowance(ctx context.Context, owner, spender domain.Address) (uint64, error) {
	var resp httpadapter.AllowanceResponse
	err := c.get(ctx, "/tokens/allowances/"+owner.String()+"/"+spender.String(), &resp)
	return resp.Allowance, err
}

func (c *Client) Approve(ctx context.Context, spender domain.Address, amount uint64) (httpadapter.AllowanceResponse, error) {
	var resp httpadapter.AllowanceResponse
	err := c.post(ctx, "/tokens/approve", httpadapter.ApproveRequest{Spender: spender, Amount: amount}, &resp)
	return resp, err
}

func (c *Client) Transfer(ctx context.Context, to domain.Address, amount uint64) (httpadapter.BalanceResponse, error) {
	var resp httpadapter.BalanceResponse
	err := c.post(ctx, "/tokens/transfer", httpadapter.TransferRequest{To: to, Amount: amount}, &resp)
	return resp, err
}

func campaignPath(id uint64, suffix string) string {
	return "/campaigns/" + strconv.FormatUint(id, 10) + suffix
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	operation := func() (struct{}, error) {
		err := c.do(ctx, http.MethodGet, endpoint, nil, out)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}
	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.MaxTries),
	)
	return err
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, body, out)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	} else if method == http.MethodPost {
		reqBody = strings.NewReader("{}")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+apiPrefix+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var e httpadapter.ErrorResponse
		if err := json.Unmarshal(respBody, &e); err != nil || e.Code == "" {
			return &APIError{Status: resp.StatusCode, Code: "HTTP_ERROR", Message: strings.TrimSpace(string(respBody))}
		}
		return &APIError{Status: resp.StatusCode, Code: e.Code, Message: e.Error, CampaignID: e.CampaignID}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
