package client

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// clientID Robinhood 官方 Web 客户端的 OAuth client id
const clientID = "c82SH0WZOsabOXGP2sxqcj34FxkvfnWRZBKlBjFS"

const defaultUserAgent = "gohood"

// Client Robinhood HTTP 客户端
//
// 会话状态（access/refresh/device token）由实例独占，不跨实例共享。
// 所有请求经由单一 dispatch 链路发出：统一附加认证头、应用超时、
// 并把失败分类为 errors.go 中的错误类型。
//
// 并发说明：token 只会被 Login / Logout / Refresh / Load 修改，其余方法只读。
// 本层不对 token 的读写加锁；如果要在并发请求的同时刷新会话，
// 调用方需要自行串行化 Login / Refresh。
type Client struct {
	baseURL   string
	timeout   time.Duration
	userAgent string
	log       *logrus.Logger
	http      *resty.Client
	injected  *resty.Client

	deviceToken   string
	accessToken   string
	refreshToken  string
	accountURL    string
	accountNumber string
}

// Option 客户端构造参数
type Option func(*Client)

// WithTimeout 设置单次请求超时
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.timeout = timeout }
}

// WithBaseURL 覆盖 API 基础地址（测试用）
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithLogger 注入日志实例
func WithLogger(log *logrus.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithDeviceToken 指定设备标识
// 服务端通过设备标识记录信任关系，稳定的设备标识可以减少重复的 MFA 验证。
// 不指定时每次构造都会生成新的 UUID。
func WithDeviceToken(token string) Option {
	return func(c *Client) { c.deviceToken = token }
}

// WithUserAgent 覆盖 User-Agent
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithHTTPClient 注入预先配置好的 resty 客户端（代理、TLS 等传输层定制）
func WithHTTPClient(hc *resty.Client) Option {
	return func(c *Client) { c.injected = hc }
}

// New 创建客户端
// 返回的客户端处于未初始化状态，使用前必须先 Connect，用完 Close。
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		timeout:   30 * time.Second,
		userAgent: defaultUserAgent,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.deviceToken == "" {
		c.deviceToken = uuid.NewString()
	}
	return c
}

// Connect 获取传输层资源
// 与 Close 配对使用（defer c.Close()），保证所有退出路径都释放连接池。
func (c *Client) Connect() error {
	if c.http != nil {
		return nil
	}
	if c.injected != nil {
		c.http = c.injected
	} else {
		c.http = resty.New()
	}
	// 不设置任何自动重试：每次调用只发一次（重试策略由调用方实现）
	c.http.
		SetBaseURL(c.baseURL).
		SetTimeout(c.timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", c.userAgent).
		SetHeader("Accept", "application/json")
	return nil
}

// Close 释放传输层资源，之后所有请求返回 ErrUninitialized
func (c *Client) Close() error {
	if c.http == nil {
		return nil
	}
	c.http.GetClient().CloseIdleConnections()
	c.http = nil
	return nil
}

// Authenticated 当前是否处于已认证状态
func (c *Client) Authenticated() bool {
	return c.accessToken != ""
}

// DeviceToken 返回设备标识（在客户端生命周期内保持稳定）
func (c *Client) DeviceToken() string {
	return c.deviceToken
}
