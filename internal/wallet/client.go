package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"aff-commission-api/internal/constant"
)

const statusActive = "ACTIVE"

// Client 钱包服务商接口，只做账户状态查询
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

type walletResp struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// IsWalletActive 查询钱包是否可收款；服务商返回 404 视为不可用
func (c *Client) IsWalletActive(ctx context.Context, walletID string) (bool, error) {
	endpoint := fmt.Sprintf("%s/wallets/%s", c.baseURL, url.PathEscape(walletID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, constant.NewError(constant.CodeWalletProviderFailed).Wrap(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("access_token", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, constant.NewError(constant.CodeWalletProviderFailed).Wrap(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return false, constant.NewError(constant.CodeWalletProviderFailed).Wrap(err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode != http.StatusOK:
		return false, constant.NewError(constant.CodeWalletProviderFailed).
			Wrap(fmt.Errorf("bad status code: %d, body: %s", resp.StatusCode, string(body)))
	}

	var w walletResp
	if err := json.Unmarshal(body, &w); err != nil {
		return false, constant.NewError(constant.CodeWalletProviderFailed).Wrap(fmt.Errorf("decode wallet: %w", err))
	}
	return strings.EqualFold(w.Status, statusActive), nil
}
