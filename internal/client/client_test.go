package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAuthServer 只认 goodAccess 令牌；/auth/refresh 用 goodRefresh 换发新令牌对
func newAuthServer(t *testing.T, goodAccess, goodRefresh string, refreshCalls, protectedCalls *int32) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(refreshCalls, 1)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["refresh_token"] != goodRefresh {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data": map[string]string{
				"access_token":  goodAccess,
				"refresh_token": "rotated-refresh",
			},
		})
	})

	mux.HandleFunc("/protected", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(protectedCalls, 1)
		if r.Header.Get("Authorization") != "Bearer "+goodAccess {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": "success", "data": "ok"})
	})

	return httptest.NewServer(mux)
}

func TestDo_RefreshesOnceAndReplays(t *testing.T) {
	var refreshCalls, protectedCalls int32
	srv := newAuthServer(t, "fresh-access", "valid-refresh", &refreshCalls, &protectedCalls)
	defer srv.Close()

	c := New(srv.URL)
	c.SetTokens("stale-access", "valid-refresh")

	resp, err := c.Get(context.Background(), "/protected", nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, int32(1), refreshCalls)
	// 原请求一次 + 重放一次
	assert.Equal(t, int32(2), protectedCalls)
	// 刷新后的令牌对已落盘
	assert.Equal(t, "fresh-access", c.tokens.Access())
	assert.Equal(t, "rotated-refresh", c.tokens.Refresh())
}

func TestDo_ValidTokenNoRefresh(t *testing.T) {
	var refreshCalls, protectedCalls int32
	srv := newAuthServer(t, "fresh-access", "valid-refresh", &refreshCalls, &protectedCalls)
	defer srv.Close()

	c := New(srv.URL)
	c.SetTokens("fresh-access", "valid-refresh")

	resp, err := c.Get(context.Background(), "/protected", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, int32(0), refreshCalls)
	assert.Equal(t, int32(1), protectedCalls)
}

func TestDo_RefreshFailureSurfacesOriginal401(t *testing.T) {
	var refreshCalls, protectedCalls int32
	srv := newAuthServer(t, "fresh-access", "valid-refresh", &refreshCalls, &protectedCalls)
	defer srv.Close()

	c := New(srv.URL)
	c.SetTokens("stale-access", "bad-refresh")

	resp, err := c.Get(context.Background(), "/protected", nil)
	require.NoError(t, err)

	// 刷新失败不无限重试，把最初的 401 交回调用方
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	assert.Equal(t, int32(1), refreshCalls)
	assert.Equal(t, int32(1), protectedCalls)
}

func TestDo_SecondUnauthorizedNotRetried(t *testing.T) {
	var protectedCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data":   map[string]string{"access_token": "still-wrong", "refresh_token": "r2"},
		})
	})
	mux.HandleFunc("/protected", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&protectedCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	c.SetTokens("a1", "r1")

	resp, err := c.Get(context.Background(), "/protected", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	// 恰好重放一次，第二个 401 原样返回
	assert.Equal(t, int32(2), protectedCalls)
}

func TestDo_NoRefreshTokenNoAttempt(t *testing.T) {
	var refreshCalls, protectedCalls int32
	srv := newAuthServer(t, "fresh-access", "valid-refresh", &refreshCalls, &protectedCalls)
	defer srv.Close()

	c := New(srv.URL)

	resp, err := c.Get(context.Background(), "/protected", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	assert.Equal(t, int32(0), refreshCalls)
}
