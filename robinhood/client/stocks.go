package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/robinbot/gohood/robinhood/types"
)

// errExclusiveParams 互斥参数组合不合法（本地校验，不发请求）
var errExclusiveParams = errors.New("gohood: 必须且只能指定 symbols 与 instruments 之一")

// GetFundamentals 获取一组标的的基本面数据
// symbols 与 instruments（instrument URL 列表）必须且只能指定一个。
func (c *Client) GetFundamentals(ctx context.Context, symbols, instruments []string) ([]types.Fundamental, error) {
	query, err := securityQuery(symbols, instruments)
	if err != nil {
		return nil, err
	}

	var p page[types.Fundamental]
	if err := c.do(ctx, http.MethodGet, EndpointFundamentals, &requestOptions{query: query}, &p); err != nil {
		return nil, err
	}
	return p.Results, nil
}

// GetInstruments 获取标的元数据
// symbol 与 ids（instrument ID 列表）必须且只能指定一个；
// pages <= 0 表示拉完所有分页。
func (c *Client) GetInstruments(ctx context.Context, symbol string, ids []string, pages int) ([]types.Instrument, error) {
	if (symbol == "") == (len(ids) == 0) {
		return nil, errors.New("gohood: 必须且只能指定 symbol 与 ids 之一")
	}

	query := map[string]string{}
	if symbol != "" {
		query["symbol"] = symbol
	} else {
		query["ids"] = strings.Join(ids, ",")
	}
	return paginate[types.Instrument](ctx, c, EndpointInstruments, query, pages)
}

// GetQuotes 获取一组标的的实时报价
// symbols 与 instruments 必须且只能指定一个。
func (c *Client) GetQuotes(ctx context.Context, symbols, instruments []string) ([]types.Quote, error) {
	query, err := securityQuery(symbols, instruments)
	if err != nil {
		return nil, err
	}

	var p page[types.Quote]
	if err := c.do(ctx, http.MethodGet, EndpointQuotes, &requestOptions{query: query}, &p); err != nil {
		return nil, err
	}
	return p.Results, nil
}

// GetHistoricalQuotes 获取一组标的的历史报价
// symbols 与 instruments 必须且只能指定一个。
// 注意：部分 interval 与 span 的组合会被服务端拒绝。
func (c *Client) GetHistoricalQuotes(
	ctx context.Context,
	interval types.HistoricalInterval,
	span types.HistoricalSpan,
	extendedHours bool,
	symbols, instruments []string,
) ([]types.Historicals, error) {
	query, err := securityQuery(symbols, instruments)
	if err != nil {
		return nil, err
	}
	query["bounds"] = bounds(extendedHours)
	query["interval"] = string(interval)
	query["span"] = string(span)

	var p page[types.Historicals]
	if err := c.do(ctx, http.MethodGet, EndpointHistoricals, &requestOptions{query: query}, &p); err != nil {
		return nil, err
	}
	return p.Results, nil
}

// GetRatings 获取一组标的的分析师评级
// ids 为 instrument ID 列表；pages <= 0 表示拉完所有分页。
func (c *Client) GetRatings(ctx context.Context, ids []string, pages int) ([]types.Rating, error) {
	query := map[string]string{"ids": strings.Join(ids, ",")}
	return paginate[types.Rating](ctx, c, EndpointRatings, query, pages)
}

// GetTags 获取标的的标签列表（返回标签 slug）
func (c *Client) GetTags(ctx context.Context, instrumentID string) ([]string, error) {
	var out struct {
		Tags []struct {
			Slug string `json:"slug"`
		} `json:"tags"`
	}
	endpoint := EndpointTags + "instrument/" + instrumentID + "/"
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}

	slugs := make([]string, 0, len(out.Tags))
	for _, tag := range out.Tags {
		slugs = append(slugs, tag.Slug)
	}
	return slugs, nil
}

// GetTagMembers 获取某个标签下的标的（返回 instrument URL 列表）
func (c *Client) GetTagMembers(ctx context.Context, tag string) ([]string, error) {
	var out struct {
		Instruments []string `json:"instruments"`
	}
	endpoint := EndpointTags + "tag/" + tag + "/"
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return out.Instruments, nil
}

// securityQuery 构造 symbols / instruments 互斥查询参数
func securityQuery(symbols, instruments []string) (map[string]string, error) {
	if (len(symbols) == 0) == (len(instruments) == 0) {
		return nil, errExclusiveParams
	}
	if len(symbols) > 0 {
		return map[string]string{"symbols": strings.Join(symbols, ",")}, nil
	}
	return map[string]string{"instruments": strings.Join(instruments, ",")}, nil
}
