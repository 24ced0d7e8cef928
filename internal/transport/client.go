// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/syncvault/engine/models"
)

type httpClient struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewClient constructs a resty-backed [Client] against baseURL, normalising
// and validating it (defaulting to an http:// scheme, rejecting an address
// with no host) and applying timeout to every request.
func NewClient(baseURL string, timeout time.Duration) (Client, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server base url: %w", err)
	}

	cli := resty.New().
		SetBaseURL(normalized).
		SetTimeout(timeout)

	return &httpClient{client: cli}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "", fmt.Errorf("unsupported scheme in %q", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

func (c *httpClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *httpClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *httpClient) authedRequest(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func (c *httpClient) Signup(ctx context.Context, req models.SignupRequest) (models.SignupResponse, error) {
	var out models.SignupResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&out).
		Post("/sync/signup")
	if err != nil {
		return out, models.NewSyncError(models.CodeUnableToDecodeResponse, "signup request", err)
	}
	if sErr := mapHTTPError(resp); sErr != nil {
		return out, sErr
	}
	return out, nil
}

func (c *httpClient) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	var out models.LoginResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&out).
		Post("/sync/login")
	if err != nil {
		return out, models.NewSyncError(models.CodeUnableToDecodeResponse, "login request", err)
	}
	if sErr := mapHTTPError(resp); sErr != nil {
		return out, sErr
	}
	return out, nil
}

func (c *httpClient) LogoutDevice(ctx context.Context, req models.LogoutDeviceRequest) error {
	resp, err := c.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/sync/logout-device")
	if err != nil {
		return models.NewSyncError(models.CodeUnableToDecodeResponse, "logout-device request", err)
	}
	return mapHTTPError(resp)
}

// DeleteAccount is an addition beyond spec.md §6's explicit endpoint list,
// grounded on the reference server's chi resource-routing idiom
// (internal/server), needed to serve Account Manager's delete_account.
func (c *httpClient) DeleteAccount(ctx context.Context) error {
	resp, err := c.authedRequest(ctx).Delete("/sync/account")
	if err != nil {
		return models.NewSyncError(models.CodeUnableToDecodeResponse, "delete-account request", err)
	}
	return mapHTTPError(resp)
}

// FetchDevices is an addition beyond spec.md §6's explicit endpoint list,
// serving Account Manager's fetch_devices outside of the one-shot device
// list returned inline by login.
func (c *httpClient) FetchDevices(ctx context.Context) ([]models.Device, error) {
	var out []models.Device

	resp, err := c.authedRequest(ctx).
		SetResult(&out).
		Get("/sync/devices")
	if err != nil {
		return nil, models.NewSyncError(models.CodeUnableToDecodeResponse, "fetch-devices request", err)
	}
	if sErr := mapHTTPError(resp); sErr != nil {
		return nil, sErr
	}
	return out, nil
}

func (c *httpClient) GetSync(ctx context.Context, path string) (map[string]models.RawFeatureResponse, error) {
	resp, err := c.authedRequest(ctx).Get("/sync/" + path)
	if err != nil {
		return nil, models.NewSyncError(models.CodeUnableToDecodeResponse, "get sync request", err)
	}
	if sErr := mapHTTPError(resp); sErr != nil {
		return nil, sErr
	}
	return decodeEnvelope(resp.Body())
}

func (c *httpClient) PatchSync(ctx context.Context, body []byte, gzipped bool) (map[string]models.RawFeatureResponse, error) {
	req := c.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if gzipped {
		req.SetHeader("Content-Encoding", "gzip")
	}

	resp, err := req.Patch("/sync/data")
	if err != nil {
		return nil, models.NewSyncError(models.CodeUnableToDecodeResponse, "patch sync request", err)
	}
	if sErr := mapHTTPError(resp); sErr != nil {
		return nil, sErr
	}
	return decodeEnvelope(resp.Body())
}

func (c *httpClient) PostConnect(ctx context.Context, payload models.ConnectPayload) error {
	resp, err := c.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/sync/connect")
	if err != nil {
		return models.NewSyncError(models.CodeUnableToDecodeResponse, "post connect request", err)
	}
	return mapHTTPError(resp)
}

func (c *httpClient) GetConnect(ctx context.Context, deviceID string) (*models.ConnectPayload, error) {
	resp, err := c.authedRequest(ctx).Get("/sync/connect/" + deviceID)
	if err != nil {
		return nil, models.NewSyncError(models.CodeUnableToDecodeResponse, "get connect request", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if sErr := mapHTTPError(resp); sErr != nil {
		return nil, sErr
	}

	var payload models.ConnectPayload
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, models.NewSyncError(models.CodeUnableToDecodeResponse, "decode connect payload", err)
	}
	return &payload, nil
}

func decodeEnvelope(body []byte) (map[string]models.RawFeatureResponse, error) {
	if len(body) == 0 {
		return nil, models.NewSyncError(models.CodeNoResponseBody, "empty sync response body", nil)
	}

	var envelope map[string]models.RawFeatureResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, models.NewSyncError(models.CodeUnableToDecodeResponse, "decode sync response envelope", err)
	}
	return envelope, nil
}

// mapHTTPError converts a resty response into the spec's [models.SyncError]
// taxonomy. Every non-2xx status surfaces as [models.NewUnexpectedStatusCode];
// callers branch on StatusCode (401 unauthenticated, 409 object-limit, 413
// size-limit, 418/429 rate-limit, 400 validation) per spec.md §4.4.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}
	return models.NewUnexpectedStatusCode(resp.StatusCode())
}
