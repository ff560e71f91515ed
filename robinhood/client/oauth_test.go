package client

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robinbot/gohood/robinhood/types"
)

func TestLoginWithoutSecondFactor(t *testing.T) {
	var tokenHits atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc(EndpointLogin, func(w http.ResponseWriter, r *http.Request) {
		tokenHits.Add(1)

		var payload loginPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "password", payload.GrantType)
		assert.Equal(t, "internal", payload.Scope)
		assert.Equal(t, "test-device-token", payload.DeviceToken)
		assert.Equal(t, "user@example.com", payload.Username)

		_, _ = w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-1"}`))
	})

	c, _ := newTestClient(t, mux)
	err := c.Login(context.Background(), "user@example.com", "hunter2")
	require.NoError(t, err)

	assert.True(t, c.Authenticated())
	assert.Equal(t, int64(1), tokenHits.Load())

	snap, err := c.Dump()
	require.NoError(t, err)
	assert.Equal(t, Snapshot{
		AccessToken:  "at-1",
		RefreshToken: "rt-1",
		DeviceToken:  "test-device-token",
	}, snap)
}

func TestLoginWithMFA(t *testing.T) {
	var tokenHits atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc(EndpointLogin, func(w http.ResponseWriter, r *http.Request) {
		tokenHits.Add(1)

		var payload loginPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		if payload.MFACode == "" {
			_, _ = w.Write([]byte(`{"mfa_required":true,"mfa_type":"app"}`))
			return
		}
		assert.Equal(t, "123456", payload.MFACode)
		_, _ = w.Write([]byte(`{"access_token":"at-mfa","refresh_token":"rt-mfa"}`))
	})

	c, _ := newTestClient(t, mux)

	var promptedKind string
	provider := func(ctx context.Context, kind string) (string, error) {
		promptedKind = kind
		return "123456", nil
	}

	err := c.Login(context.Background(), "user@example.com", "hunter2",
		WithCodeProvider(provider))
	require.NoError(t, err)

	assert.True(t, c.Authenticated())
	assert.Equal(t, "app", promptedKind)
	assert.Equal(t, int64(2), tokenHits.Load(), "MFA 登录应恰好两次凭证交换")
}

func TestLoginMFAWithoutProvider(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(EndpointLogin, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"mfa_required":true,"mfa_type":"app"}`))
	})

	c, _ := newTestClient(t, mux)
	err := c.Login(context.Background(), "user@example.com", "hunter2")

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.False(t, c.Authenticated())
}

func TestLoginMFARejectedCode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(EndpointLogin, func(w http.ResponseWriter, r *http.Request) {
		// 无论是否带码都回 mfa_required：模拟验证码被拒
		_, _ = w.Write([]byte(`{"mfa_required":true,"mfa_type":"sms"}`))
	})

	c, _ := newTestClient(t, mux)
	provider := func(ctx context.Context, kind string) (string, error) {
		return "000000", nil
	}

	err := c.Login(context.Background(), "user@example.com", "hunter2",
		WithCodeProvider(provider))

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.False(t, c.Authenticated())
}

func TestLoginWithChallenge(t *testing.T) {
	var respondHits atomic.Int64
	mux := http.NewServeMux()

	mux.HandleFunc(EndpointLogin, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-robinhood-challenge-response-id") == "ch-1" {
			_, _ = w.Write([]byte(`{"access_token":"at-ch","refresh_token":"rt-ch"}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"challenge":{"id":"ch-1","remaining_attempts":3}}`))
	})
	mux.HandleFunc(EndpointChallenge+"ch-1/respond/", func(w http.ResponseWriter, r *http.Request) {
		respondHits.Add(1)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "424242", body["response"])
		_, _ = w.Write([]byte(`{"id":"ch-1","status":"validated"}`))
	})

	c, _ := newTestClient(t, mux)
	provider := func(ctx context.Context, kind string) (string, error) {
		assert.Equal(t, string(types.ChallengeTypeSMS), kind)
		return "424242", nil
	}

	err := c.Login(context.Background(), "user@example.com", "hunter2",
		WithCodeProvider(provider))
	require.NoError(t, err)

	assert.True(t, c.Authenticated())
	assert.Equal(t, int64(1), respondHits.Load())
}

func TestLoginChallengeExhausted(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(EndpointLogin, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"challenge":{"id":"ch-1","remaining_attempts":2}}`))
	})
	mux.HandleFunc(EndpointChallenge+"ch-1/respond/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"challenge":{"id":"ch-1","remaining_attempts":0}}`))
	})

	c, _ := newTestClient(t, mux)
	provider := func(ctx context.Context, kind string) (string, error) {
		return "000000", nil
	}

	err := c.Login(context.Background(), "user@example.com", "hunter2",
		WithCodeProvider(provider))

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.False(t, c.Authenticated())
}

func TestLoginBadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(EndpointLogin, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Unable to log in with provided credentials."}`))
	})

	c, _ := newTestClient(t, mux)
	err := c.Login(context.Background(), "user@example.com", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.False(t, c.Authenticated())
}

func TestRefreshWithoutToken(t *testing.T) {
	var hits atomic.Int64
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	err := c.Refresh(context.Background())
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, int64(0), hits.Load())
}

func TestRefreshReplacesBothTokens(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(EndpointLogin, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "refresh_token", payload["grant_type"])
		assert.Equal(t, "test-refresh", payload["refresh_token"])
		_, _ = w.Write([]byte(`{"access_token":"at-2","refresh_token":"rt-2"}`))
	})

	c, _ := newTestClient(t, mux)
	authenticate(c)

	require.NoError(t, c.Refresh(context.Background()))

	snap, err := c.Dump()
	require.NoError(t, err)
	assert.Equal(t, "at-2", snap.AccessToken)
	assert.Equal(t, "rt-2", snap.RefreshToken)
}

func TestRefreshFailureKeepsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(EndpointLogin, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	})

	c, _ := newTestClient(t, mux)
	authenticate(c)

	err := c.Refresh(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)

	// 刷新失败不改变当前会话
	snap, err := c.Dump()
	require.NoError(t, err)
	assert.Equal(t, "test-access", snap.AccessToken)
	assert.Equal(t, "test-refresh", snap.RefreshToken)
}

func TestLogoutClearsSessionEvenOnServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(EndpointLogout, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c, _ := newTestClient(t, mux)
	authenticate(c)

	err := c.Logout(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)

	// 撤销失败也要完成本地登出
	assert.False(t, c.Authenticated())
	_, err = c.Dump()
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLogoutIdempotent(t *testing.T) {
	var hits atomic.Int64
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, int64(0), hits.Load())
}

func TestDumpLoadRoundTrip(t *testing.T) {
	var sawAuth string
	mux := http.NewServeMux()
	mux.HandleFunc(EndpointAccounts, func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"results":[{"url":"https://api.example.com/accounts/XY123/","account_number":"XY123"}]}`))
	})

	c, _ := newTestClient(t, mux)
	authenticate(c)

	snap, err := c.Dump()
	require.NoError(t, err)

	// 序列化往返后在新客户端恢复
	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	var restored Snapshot
	require.NoError(t, json.Unmarshal(raw, &restored))

	c2, _ := newTestClient(t, mux)
	c2.Load(restored)
	require.True(t, c2.Authenticated())

	_, err = c2.GetAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-access", sawAuth)
}
