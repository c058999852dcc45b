// Copyright 2026 Constellar Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client implements Service against the index service HTTP API.
type Client struct {
	baseURL      string
	apiKey       string
	containerTag string
	client       *http.Client
	logger       *slog.Logger
}

var _ Service = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates an index service client. containerTag scopes all
// documents to one logical collection namespace.
func NewClient(baseURL, apiKey, containerTag string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		apiKey:       apiKey,
		containerTag: containerTag,
		client:       &http.Client{Timeout: defaultTimeout},
		logger:       slog.Default().With("component", "index-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type listRequest struct {
	ContainerTags []string    `json:"containerTags"`
	Filters       listFilters `json:"filters"`
}

type listFilters struct {
	And []metadataFilter `json:"AND"`
}

type metadataFilter struct {
	FilterType string `json:"filterType"`
	Key        string `json:"key"`
	Value      string `json:"value"`
}

type listResponse struct {
	Documents []Document `json:"documents"`
	Results   []Document `json:"results"`
}

type createRequest struct {
	Content      string   `json:"content"`
	ContainerTag string   `json:"containerTag"`
	CustomID     string   `json:"customId"`
	Metadata     Metadata `json:"metadata"`
}

// ListByDocKey returns the documents whose metadata doc_key matches.
func (c *Client) ListByDocKey(ctx context.Context, docKey string) ([]Document, error) {
	body := listRequest{
		ContainerTags: []string{c.containerTag},
		Filters: listFilters{
			And: []metadataFilter{{FilterType: "metadata", Key: "doc_key", Value: docKey}},
		},
	}

	var resp listResponse
	if err := c.do(ctx, http.MethodPost, "/v3/documents/list", body, &resp); err != nil {
		return nil, err
	}
	if resp.Documents != nil {
		return resp.Documents, nil
	}
	return resp.Results, nil
}

// CreateDocument creates a new document in the configured container.
func (c *Client) CreateDocument(ctx context.Context, req CreateRequest) error {
	body := createRequest{
		Content:      req.Content,
		ContainerTag: c.containerTag,
		CustomID:     req.CustomID,
		Metadata:     req.Metadata,
	}
	return c.do(ctx, http.MethodPost, "/v3/documents", body, nil)
}

// PatchDocument updates content and/or metadata of an existing document.
func (c *Client) PatchDocument(ctx context.Context, id string, patch PatchRequest) error {
	return c.do(ctx, http.MethodPatch, "/v3/documents/"+id, patch, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("index request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("index request %s %s: status %s: %s", method, path, resp.Status, snippet)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
