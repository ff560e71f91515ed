package client

import (
	"context"
	"net/http"

	"github.com/robinbot/gohood/robinhood/types"
)

// GetAccount 获取账户信息
func (c *Client) GetAccount(ctx context.Context) (*types.Account, error) {
	return first[types.Account](ctx, c, EndpointAccounts)
}

// GetPortfolio 获取投资组合概况（净值、保证金、可提现金额等）
func (c *Client) GetPortfolio(ctx context.Context) (*types.Portfolio, error) {
	return first[types.Portfolio](ctx, c, EndpointPortfolios)
}

// GetHistoricalPortfolio 获取投资组合历史净值
// 注意：部分 interval 与 span 的组合会被服务端拒绝。
func (c *Client) GetHistoricalPortfolio(
	ctx context.Context,
	interval types.HistoricalInterval,
	span types.HistoricalSpan,
	extendedHours bool,
) (*types.PortfolioHistoricals, error) {
	if err := c.ensureAccount(ctx); err != nil {
		return nil, err
	}

	endpoint := EndpointPortfolios + "historicals/" + c.accountNumber + "/"
	query := map[string]string{
		"bounds":   bounds(extendedHours),
		"interval": string(interval),
		"span":     string(span),
	}

	var out types.PortfolioHistoricals
	if err := c.do(ctx, http.MethodGet, endpoint, &requestOptions{query: query}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ensureAccount 惰性解析账户 URL 与账号
// Load 恢复会话时不做任何网络调用，下单等依赖账户信息的路径
// 在第一次用到时通过 GetAccount 补齐并缓存。
func (c *Client) ensureAccount(ctx context.Context) error {
	if c.accountURL != "" {
		return nil
	}
	account, err := c.GetAccount(ctx)
	if err != nil {
		return err
	}
	c.accountURL = account.URL
	c.accountNumber = account.AccountNumber
	return nil
}

func bounds(extendedHours bool) string {
	if extendedHours {
		return "extended"
	}
	return "regular"
}
