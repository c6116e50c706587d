// Package themeapi talks to the tenant's theme REST API.
package themeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	apphttp "theme-mapper/internal/common/http"
	"theme-mapper/internal/common/jsonvalue"
	"theme-mapper/internal/models"
)

type Config struct {
	Tenant string
	APIKey string
	// Scheme defaults to https.
	Scheme string
	// BaseURL replaces scheme://tenant when set.
	BaseURL string
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *apphttp.Client
}

func NewClient(cfg Config, httpClient *apphttp.Client) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL(cfg),
		httpClient: httpClient,
	}
}

func baseURL(cfg Config) string {
	if cfg.BaseURL != "" {
		return strings.TrimRight(cfg.BaseURL, "/")
	}
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = "https"
	}
	tenant := strings.TrimSpace(cfg.Tenant)
	tenant = strings.TrimPrefix(tenant, "https://")
	tenant = strings.TrimPrefix(tenant, "http://")
	tenant = strings.TrimRight(tenant, "/")
	return fmt.Sprintf("%s://%s", scheme, tenant)
}

// BaseURL returns the API origin requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListThemes returns the themes available on the tenant.
func (c *Client) ListThemes(ctx context.Context) ([]models.ThemeDescriptor, error) {
	endpoint := c.baseURL + "/api/v1/themes"

	body, err := c.httpClient.GetJSON(ctx, endpoint, c.apiKey)
	if err != nil {
		return nil, err
	}

	var list models.ThemeList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode theme list: %w", err)
	}
	return list.Data, nil
}

// GetThemeFile downloads theme.json for the given theme. A body of the form
// {"data": {...}} is unwrapped to its data member.
func (c *Client) GetThemeFile(ctx context.Context, themeID string) (jsonvalue.Value, error) {
	endpoint := fmt.Sprintf("%s/api/v1/themes/%s/file/theme.json", c.baseURL, url.PathEscape(themeID))

	body, err := c.httpClient.GetJSON(ctx, endpoint, c.apiKey)
	if err != nil {
		return nil, err
	}

	doc, err := jsonvalue.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode theme document: %w", err)
	}
	return unwrapData(doc), nil
}

func unwrapData(doc jsonvalue.Value) jsonvalue.Value {
	obj := jsonvalue.AsObject(doc)
	if obj == nil || obj.Len() != 1 {
		return doc
	}
	inner, ok := obj.Get("data")
	if !ok || jsonvalue.AsObject(inner) == nil {
		return doc
	}
	return inner
}
