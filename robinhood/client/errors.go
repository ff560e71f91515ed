package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// 错误分层（由一般到具体）：
//
//	ErrUninitialized   客户端在 Connect 之前 / Close 之后被使用
//	ErrUnauthenticated 未登录就调用需要认证的接口（本地快速失败，不发请求）
//	*RequestError      传输层失败（连接拒绝、超时、DNS）、MFA/challenge 被拒、
//	                   refresh token 缺失、响应体解析失败
//	*APIError          服务端返回非预期状态码；Unwrap 到 *RequestError，
//	                   因此 errors.As(err, &reqErr) 对两类错误都成立
//
// 本层不吞错误、不重试；重试 / 重新登录策略由调用方自行实现。
var (
	ErrUninitialized   = errors.New("gohood: 客户端未初始化，请先调用 Connect")
	ErrUnauthenticated = errors.New("gohood: 尚未登录，请先调用 Login 或 Load")
)

// RequestError 请求层错误
type RequestError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gohood: %s %s 请求失败: %v", e.Method, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("gohood: %s %s 请求失败", e.Method, e.Endpoint)
}

func (e *RequestError) Unwrap() error { return e.Err }

// APIError 服务端错误响应（携带状态码与原始响应体）
type APIError struct {
	RequestError
	Status int
	Body   json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gohood: %s %s 返回 %d: %s",
		e.Method, e.Endpoint, e.Status, e.Message())
}

// Unwrap 返回内嵌的 *RequestError，使 APIError 落入 RequestError 分类
func (e *APIError) Unwrap() error { return &e.RequestError }

// Message 从响应体提取服务端错误信息
// 依次尝试 detail / error / message 字段，都不存在时返回原始响应体
func (e *APIError) Message() string {
	var payload struct {
		Detail  string `json:"detail"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &payload); err == nil {
		switch {
		case payload.Detail != "":
			return payload.Detail
		case payload.Error != "":
			return payload.Error
		case payload.Message != "":
			return payload.Message
		}
	}
	return string(e.Body)
}

func newRequestError(method, endpoint string, err error) *RequestError {
	return &RequestError{Method: method, Endpoint: endpoint, Err: err}
}

func newAPIError(method, endpoint string, status int, body []byte) *APIError {
	raw := make(json.RawMessage, len(body))
	copy(raw, body)
	return &APIError{
		RequestError: RequestError{Method: method, Endpoint: endpoint},
		Status:       status,
		Body:         raw,
	}
}
