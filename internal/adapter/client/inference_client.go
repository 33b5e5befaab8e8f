package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrEmptyResponse is returned when the inference endpoint returns no labels
var ErrEmptyResponse = errors.New("inference endpoint returned no labels")

// InferenceRequest represents a request to a Hugging Face style inference endpoint
type InferenceRequest struct {
	Inputs  string            `json:"inputs"`
	Options *InferenceOptions `json:"options,omitempty"`
}

// InferenceOptions controls endpoint behaviour
type InferenceOptions struct {
	WaitForModel bool `json:"wait_for_model,omitempty"`
	UseCache     bool `json:"use_cache,omitempty"`
}

// LabelScore represents a single label and its confidence
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// InferenceError represents the error body returned by the endpoint
type InferenceError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}

// InferenceClient is an HTTP client for a text-classification inference endpoint
type InferenceClient struct {
	baseURL    string
	modelID    string
	token      string
	httpClient *http.Client
}

// NewInferenceClient creates a new inference endpoint client
func NewInferenceClient(baseURL, modelID, token string, timeout time.Duration) *InferenceClient {
	return &InferenceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		modelID: modelID,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ModelID returns the model identifier the client targets
func (c *InferenceClient) ModelID() string {
	return c.modelID
}

// Classify sends a single text for classification and returns the labels
// reported by the endpoint.
func (c *InferenceClient) Classify(ctx context.Context, text string, opts *InferenceOptions) ([]LabelScore, error) {
	body, err := json.Marshal(InferenceRequest{Inputs: text, Options: opts})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.modelURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr InferenceError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("inference endpoint returned status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("inference endpoint returned status %d: %s", resp.StatusCode, string(respBody))
	}

	labels, err := decodeLabels(respBody)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, ErrEmptyResponse
	}

	return labels, nil
}

func (c *InferenceClient) modelURL() string {
	return c.baseURL + "/models/" + (&url.URL{Path: c.modelID}).EscapedPath()
}

// decodeLabels accepts both the nested [[...]] shape and the flat [...] shape
func decodeLabels(body []byte) ([]LabelScore, error) {
	var nested [][]LabelScore
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 {
			return nil, nil
		}
		return nested[0], nil
	}

	var flat []LabelScore
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return flat, nil
}
