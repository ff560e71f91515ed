package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/robinbot/gohood/robinhood/types"
)

// CodeProvider 第二因子验证码来源
// kind 为验证码渠道（sms / email）或服务端返回的 MFA 类型。
// 回调可能阻塞等待用户输入，应尊重 ctx 取消。
type CodeProvider func(ctx context.Context, kind string) (string, error)

// loginOptions 登录参数
type loginOptions struct {
	expiresIn     int
	challengeType types.ChallengeType
	provider      CodeProvider
}

// LoginOption 登录可选参数
type LoginOption func(*loginOptions)

// WithExpiresIn 设置会话有效期（秒）
func WithExpiresIn(seconds int) LoginOption {
	return func(o *loginOptions) { o.expiresIn = seconds }
}

// WithChallengeType 设置 challenge 下发渠道（仅 SFA 账户生效）
func WithChallengeType(ct types.ChallengeType) LoginOption {
	return func(o *loginOptions) { o.challengeType = ct }
}

// WithCodeProvider 设置验证码回调
// 服务端要求 MFA 或 challenge 验证时会同步调用该回调取码；
// 未设置回调而服务端又要求第二因子时，登录以 *RequestError 失败。
func WithCodeProvider(p CodeProvider) LoginOption {
	return func(o *loginOptions) { o.provider = p }
}

// loginPayload 凭证交换请求体
type loginPayload struct {
	ChallengeType string `json:"challenge_type"`
	ClientID      string `json:"client_id"`
	DeviceToken   string `json:"device_token"`
	ExpiresIn     int    `json:"expires_in"`
	GrantType     string `json:"grant_type"`
	MFACode       string `json:"mfa_code"`
	Password      string `json:"password"`
	Scope         string `json:"scope"`
	Username      string `json:"username"`
}

// loginResponse 凭证交换响应体（字段按场景部分出现）
type loginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	MFARequired  bool            `json:"mfa_required"`
	MFAType      string          `json:"mfa_type"`
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Challenge    *challengeState `json:"challenge"`
}

// challengeState 服务端下发的 challenge
type challengeState struct {
	ID                string `json:"id"`
	RemainingAttempts int    `json:"remaining_attempts"`
}

// Login 凭证交换登录（SFA 与 MFA 账户均适用）
//
// 服务端要求第二因子时同步进入子流程：challenge 通过 respond 端点应答后
// 带 challenge id 重新交换凭证；MFA 则把验证码附在请求体里重新交换。
// 成功后保存 access/refresh token，会话进入已认证状态。
func (c *Client) Login(ctx context.Context, username, password string, opts ...LoginOption) error {
	o := &loginOptions{
		expiresIn:     86400,
		challengeType: types.ChallengeTypeSMS,
	}
	for _, opt := range opts {
		opt(o)
	}
	return c.login(ctx, username, password, o, "", "", 0)
}

func (c *Client) login(ctx context.Context, username, password string, o *loginOptions, challengeID, mfaCode string, depth int) error {
	if depth > 3 {
		return newRequestError(http.MethodPost, EndpointLogin, errors.New("登录流程重试次数超限"))
	}

	payload := loginPayload{
		ChallengeType: string(o.challengeType),
		ClientID:      clientID,
		DeviceToken:   c.deviceToken,
		ExpiresIn:     o.expiresIn,
		GrantType:     "password",
		MFACode:       mfaCode,
		Password:      password,
		Scope:         "internal",
		Username:      username,
	}
	opt := &requestOptions{
		noAuth: true,
		body:   payload,
		headers: map[string]string{
			"x-robinhood-challenge-response-id": challengeID,
		},
	}

	resp, err := c.dispatch(ctx, http.MethodPost, EndpointLogin, opt)
	if err != nil {
		return err
	}

	// 无论状态码如何都先解析响应体：challenge / MFA 要求随 4xx 一起返回
	var lr loginResponse
	if err := json.Unmarshal(resp.Body(), &lr); err != nil {
		return newRequestError(http.MethodPost, EndpointLogin,
			errors.Wrap(err, "解析登录响应失败"))
	}

	if lr.Challenge != nil {
		passedID, err := c.answerChallenge(ctx, o, lr.Challenge)
		if err != nil {
			return err
		}
		// challenge 通过后带 response id 重新交换凭证
		return c.login(ctx, username, password, o, passedID, mfaCode, depth+1)
	}

	if lr.MFARequired {
		if o.provider == nil {
			return newRequestError(http.MethodPost, EndpointLogin,
				errors.New("服务端要求 MFA 验证码，但未设置 WithCodeProvider"))
		}
		if mfaCode != "" {
			// 已经带码重试过一次仍要求 MFA，判定验证码被拒
			return newRequestError(http.MethodPost, EndpointLogin,
				errors.New("MFA 验证码被服务端拒绝"))
		}
		code, err := o.provider(ctx, lr.MFAType)
		if err != nil {
			return newRequestError(http.MethodPost, EndpointLogin,
				errors.Wrap(err, "获取 MFA 验证码失败"))
		}
		return c.login(ctx, username, password, o, challengeID, code, depth+1)
	}

	if resp.StatusCode() != http.StatusOK {
		return newAPIError(http.MethodPost, EndpointLogin, resp.StatusCode(), resp.Body())
	}
	if lr.AccessToken == "" || lr.RefreshToken == "" {
		return newRequestError(http.MethodPost, EndpointLogin,
			errors.New("登录响应缺少 token 字段"))
	}

	c.accessToken = lr.AccessToken
	c.refreshToken = lr.RefreshToken
	c.accountURL = ""
	c.accountNumber = ""
	c.log.WithField("username", username).Info("登录成功")
	return nil
}

// answerChallenge 应答 challenge 子流程
// 在剩余尝试次数内循环取码应答；服务端判定 challenge 失效时返回 *RequestError。
func (c *Client) answerChallenge(ctx context.Context, o *loginOptions, ch *challengeState) (string, error) {
	if o.provider == nil {
		return "", newRequestError(http.MethodPost, EndpointLogin,
			errors.New("服务端要求 challenge 验证，但未设置 WithCodeProvider"))
	}

	for ch != nil && ch.RemainingAttempts > 0 {
		code, err := o.provider(ctx, string(o.challengeType))
		if err != nil {
			return "", newRequestError(http.MethodPost, EndpointLogin,
				errors.Wrap(err, "获取 challenge 验证码失败"))
		}

		endpoint := EndpointChallenge + ch.ID + "/respond/"
		resp, err := c.dispatch(ctx, http.MethodPost, endpoint, &requestOptions{
			noAuth: true,
			body:   map[string]string{"response": code},
		})
		if err != nil {
			return "", err
		}

		var cr loginResponse
		if err := json.Unmarshal(resp.Body(), &cr); err != nil {
			return "", newRequestError(http.MethodPost, endpoint,
				errors.Wrap(err, "解析 challenge 响应失败"))
		}
		if cr.ID != "" && cr.Challenge == nil {
			return cr.ID, nil
		}
		ch = cr.Challenge
	}

	return "", newRequestError(http.MethodPost, EndpointLogin,
		errors.New("challenge 验证失败：尝试次数已用尽"))
}

// Logout 撤销当前会话 token 并清空本地会话状态
// 撤销调用失败不会阻止本地登出：本地状态总是被清空，撤销错误原样返回。
// 未登录时为幂等空操作。
func (c *Client) Logout(ctx context.Context) error {
	if !c.Authenticated() {
		return nil
	}

	err := c.do(ctx, http.MethodPost, EndpointLogout, &requestOptions{
		noAuth: true,
		body: map[string]string{
			"client_id": clientID,
			"token":     c.refreshToken,
		},
	}, nil)

	c.clearSession()
	return err
}

// Refresh 用 refresh token 静默换取新的 access token
// refresh token 缺失或被拒时返回错误，且不改变当前会话状态（调用方需重新登录）。
// 本库不会在 401 上自动调用 Refresh，刷新时机完全由调用方决定。
func (c *Client) Refresh(ctx context.Context) error {
	if c.refreshToken == "" {
		return newRequestError(http.MethodPost, EndpointLogin,
			errors.New("没有可用的 refresh token"))
	}

	payload := map[string]any{
		"client_id":     clientID,
		"expires_in":    86400,
		"grant_type":    "refresh_token",
		"refresh_token": c.refreshToken,
		"scope":         "internal",
	}

	var lr loginResponse
	if err := c.do(ctx, http.MethodPost, EndpointLogin, &requestOptions{
		noAuth: true,
		body:   payload,
	}, &lr); err != nil {
		return err
	}
	if lr.AccessToken == "" || lr.RefreshToken == "" {
		return newRequestError(http.MethodPost, EndpointLogin,
			errors.New("刷新响应缺少 token 字段"))
	}

	c.accessToken = lr.AccessToken
	c.refreshToken = lr.RefreshToken
	return nil
}

// Snapshot 会话快照
// 三个字段经 JSON 序列化后必须能精确往返（见 Dump / Load）
type Snapshot struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	DeviceToken  string `json:"device_token"`
}

// Dump 导出当前会话快照（纯函数，无副作用）
// 未登录时返回 ErrUnauthenticated。
func (c *Client) Dump() (Snapshot, error) {
	if !c.Authenticated() {
		return Snapshot{}, ErrUnauthenticated
	}
	return Snapshot{
		AccessToken:  c.accessToken,
		RefreshToken: c.refreshToken,
		DeviceToken:  c.deviceToken,
	}, nil
}

// Load 从快照恢复会话
// 不向服务端校验 token 有效性：是否过期在后续第一次请求时才会暴露
// （服务端返回 401，以 *APIError 呈现）。
func (c *Client) Load(s Snapshot) {
	c.accessToken = s.AccessToken
	c.refreshToken = s.RefreshToken
	if s.DeviceToken != "" {
		c.deviceToken = s.DeviceToken
	}
	c.accountURL = ""
	c.accountNumber = ""
}

func (c *Client) clearSession() {
	c.accessToken = ""
	c.refreshToken = ""
	c.accountURL = ""
	c.accountNumber = ""
}
