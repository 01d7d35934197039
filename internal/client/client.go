package client

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// TokenStore 保存当前会话的令牌对，刷新后原地替换
type TokenStore struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func (s *TokenStore) Set(accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	s.refreshToken = refreshToken
}

func (s *TokenStore) Access() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *TokenStore) Refresh() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type refreshEnvelope struct {
	Status string    `json:"status"`
	Data   tokenPair `json:"data"`
}

// Client 服务端 API 的调用方封装：自动携带 Bearer，遇 401 先刷新一次再重放
type Client struct {
	http   *resty.Client
	tokens *TokenStore
}

func New(baseURL string) *Client {
	tokens := &TokenStore{}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:   httpClient,
		tokens: tokens,
	}
}

// SetTokens 登录成功后注入令牌对
func (s *Client) SetTokens(accessToken, refreshToken string) {
	s.tokens.Set(accessToken, refreshToken)
}

// Do 执行一次请求。首个响应为 401 时刷新令牌并恰好重放一次：
// 重放仍 401 原样返回；刷新本身失败则返回最初的 401。
func (s *Client) Do(ctx context.Context, method, path string, body, result interface{}) (*resty.Response, error) {
	resp, err := s.send(ctx, method, path, body, result)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusUnauthorized {
		return resp, nil
	}

	if !s.refreshTokens(ctx) {
		return resp, nil
	}

	return s.send(ctx, method, path, body, result)
}

func (s *Client) send(ctx context.Context, method, path string, body, result interface{}) (*resty.Response, error) {
	req := s.http.R().SetContext(ctx)
	if token := s.tokens.Access(); token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, errors.Wrapf(err, "request %s %s failed", method, path)
	}
	return resp, nil
}

// refreshTokens 用 refresh token 换新令牌对，失败只代表本轮放弃刷新
func (s *Client) refreshTokens(ctx context.Context) bool {
	refresh := s.tokens.Refresh()
	if refresh == "" {
		return false
	}

	var envelope refreshEnvelope
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"refresh_token": refresh}).
		SetResult(&envelope).
		Post("/auth/refresh")
	if err != nil || resp.StatusCode() != http.StatusOK {
		return false
	}
	if envelope.Data.AccessToken == "" {
		return false
	}

	s.tokens.Set(envelope.Data.AccessToken, envelope.Data.RefreshToken)
	return true
}

// Get 便捷方法
func (s *Client) Get(ctx context.Context, path string, result interface{}) (*resty.Response, error) {
	return s.Do(ctx, http.MethodGet, path, nil, result)
}

// Post 便捷方法
func (s *Client) Post(ctx context.Context, path string, body, result interface{}) (*resty.Response, error) {
	return s.Do(ctx, http.MethodPost, path, body, result)
}

// Patch 便捷方法
func (s *Client) Patch(ctx context.Context, path string, body, result interface{}) (*resty.Response, error) {
	return s.Do(ctx, http.MethodPatch, path, body, result)
}

// Delete 便捷方法
func (s *Client) Delete(ctx context.Context, path string) (*resty.Response, error) {
	return s.Do(ctx, http.MethodDelete, path, nil, nil)
}
