package client

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// requestOptions 单次请求参数
type requestOptions struct {
	headers    map[string]string
	query      map[string]string
	body       any
	noAuth     bool // 跳过认证检查与 Authorization 头（仅 OAuth 端点）
	wantStatus int  // 期望状态码，0 表示 200
}

// dispatch 所有出站请求的唯一通道
// 只负责前置检查、附加请求头与发出请求；状态码分类在 do 里完成。
// 传输层失败（连接拒绝、超时、DNS）包装为 *RequestError，绝不自动重试。
func (c *Client) dispatch(ctx context.Context, method, endpoint string, opt *requestOptions) (*resty.Response, error) {
	if c.http == nil {
		return nil, ErrUninitialized
	}
	if opt == nil {
		opt = &requestOptions{}
	}
	// 认证检查在本地完成，未登录直接失败，不产生网络调用
	if !opt.noAuth && !c.Authenticated() {
		return nil, ErrUnauthenticated
	}

	r := c.http.R().SetContext(ctx)
	if !opt.noAuth {
		r.SetHeader("Authorization", "Bearer "+c.accessToken)
	}
	for k, v := range opt.headers {
		r.SetHeader(k, v)
	}
	if len(opt.query) > 0 {
		r.SetQueryParams(opt.query)
	}
	if opt.body != nil {
		r.SetHeader("Content-Type", "application/json")
		r.SetBody(opt.body)
	}

	start := time.Now()
	resp, err := r.Execute(method, endpoint)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"method":   method,
			"endpoint": endpoint,
			"elapsed":  time.Since(start),
		}).WithError(err).Debug("请求失败")
		return nil, newRequestError(method, endpoint, err)
	}

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"endpoint": endpoint,
		"status":   resp.StatusCode(),
		"elapsed":  time.Since(start),
	}).Debug("请求完成")
	return resp, nil
}

// do 发出请求并分类响应
// 期望状态码 → 解析 JSON 响应体；其余状态码 → *APIError（携带状态与响应体）。
// 本层不在 401 上自动 refresh：是否刷新由调用方决定（见 Refresh）。
func (c *Client) do(ctx context.Context, method, endpoint string, opt *requestOptions, out any) error {
	resp, err := c.dispatch(ctx, method, endpoint, opt)
	if err != nil {
		return err
	}

	want := http.StatusOK
	if opt != nil && opt.wantStatus != 0 {
		want = opt.wantStatus
	}
	if resp.StatusCode() != want {
		return newAPIError(method, endpoint, resp.StatusCode(), resp.Body())
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return newRequestError(method, endpoint, errors.Wrap(err, "解析响应失败"))
		}
	}
	return nil
}

// page 列表端点的分页响应
type page[T any] struct {
	Next    *string `json:"next"`
	Results []T     `json:"results"`
}

// paginate 沿 next URL 拉取列表端点
// pages <= 0 表示拉完所有分页；next 是完整 URL，直接覆盖 baseURL 发出。
func paginate[T any](ctx context.Context, c *Client, endpoint string, query map[string]string, pages int) ([]T, error) {
	var out []T
	url := endpoint
	fetched := 0

	for url != "" {
		var p page[T]
		if err := c.do(ctx, http.MethodGet, url, &requestOptions{query: query}, &p); err != nil {
			return nil, err
		}
		out = append(out, p.Results...)

		fetched++
		if pages > 0 && fetched >= pages {
			break
		}
		if p.Next == nil || *p.Next == "" {
			break
		}
		url = *p.Next
		query = nil // next URL 已携带查询参数
	}
	return out, nil
}

// first 取分页端点的第一条结果（accounts / portfolios 等单结果端点）
func first[T any](ctx context.Context, c *Client, endpoint string) (*T, error) {
	var p page[T]
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &p); err != nil {
		return nil, err
	}
	if len(p.Results) == 0 {
		return nil, newRequestError(http.MethodGet, endpoint, errors.New("响应结果为空"))
	}
	return &p.Results[0], nil
}
