package inscriber

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashgraph-online/collection-kit-go/pkg/shared"
)

const DefaultBaseURL = "https://v2-api.tier.bot/api"

type Config struct {
	APIKey                     string
	Network                    Network
	BaseURL                    string
	HTTPClient                 *http.Client
	ConnectionMode             ConnectionMode
	WebSocketBaseURL           string
	WebSocketInactivityTimeout time.Duration
}

type Client struct {
	apiKey                     string
	network                    Network
	baseURL                    string
	httpClient                 *http.Client
	connectionMode             ConnectionMode
	webSocketBaseURL           string
	webSocketInactivityTimeout time.Duration
}

type WaitOptions struct {
	MaxAttempts int
	Interval    time.Duration
}

// NewClient creates a new Client.
func NewClient(config Config) (*Client, error) {
	apiKey := strings.TrimSpace(config.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	network, err := ParseNetwork(string(config.Network))
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimSpace(config.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	connectionMode := config.ConnectionMode
	if connectionMode == "" {
		connectionMode = ConnectionModeWebSocket
	}
	if connectionMode != ConnectionModeHTTP && connectionMode != ConnectionModeWebSocket {
		return nil, fmt.Errorf("connection mode must be http or websocket")
	}

	inactivityTimeout := config.WebSocketInactivityTimeout
	if inactivityTimeout <= 0 {
		inactivityTimeout = 30 * time.Second
	}

	return &Client{
		apiKey:                     apiKey,
		network:                    network,
		baseURL:                    baseURL,
		httpClient:                 httpClient,
		connectionMode:             connectionMode,
		webSocketBaseURL:           strings.TrimSpace(config.WebSocketBaseURL),
		webSocketInactivityTimeout: inactivityTimeout,
	}, nil
}

// ParseNetwork maps a ledger network name onto the networks the inscription
// service supports. Empty input selects testnet.
func ParseNetwork(value string) (Network, error) {
	normalized, err := shared.NormalizeNetwork(value)
	if err != nil {
		return "", err
	}
	switch normalized {
	case shared.NetworkMainnet:
		return NetworkMainnet, nil
	case shared.NetworkTestnet:
		return NetworkTestnet, nil
	default:
		return "", fmt.Errorf("inscription service does not support network %q", normalized)
	}
}

// StartInscription creates an inscription job and returns the transaction the
// holder must execute to pay for it.
func (c *Client) StartInscription(
	ctx context.Context,
	request StartInscriptionRequest,
) (InscriptionJob, error) {
	if strings.TrimSpace(request.HolderID) == "" {
		return InscriptionJob{}, fmt.Errorf("holderId is required")
	}
	if request.Mode == "" {
		return InscriptionJob{}, fmt.Errorf("mode is required")
	}
	if request.File.Type != "url" && request.File.Type != "base64" {
		return InscriptionJob{}, fmt.Errorf("file.type must be url or base64")
	}

	body := map[string]any{
		"holderId": request.HolderID,
		"mode":     request.Mode,
		"network":  c.network,
	}
	if len(request.Metadata) > 0 {
		body["metadata"] = request.Metadata
	}
	if len(request.Tags) > 0 {
		body["tags"] = request.Tags
	}
	if request.ChunkSize > 0 {
		body["chunkSize"] = request.ChunkSize
	}
	if strings.TrimSpace(request.FileStandard) != "" {
		body["fileStandard"] = request.FileStandard
	}

	if request.File.Type == "url" {
		body["fileURL"] = request.File.URL
	} else {
		body["fileBase64"] = request.File.Base64
		body["fileName"] = request.File.FileName
		if request.File.MimeType != "" {
			body["fileMimeType"] = request.File.MimeType
		}
	}

	var raw map[string]any
	if err := c.postJSON(ctx, "/inscriptions/start-inscription", body, &raw); err != nil {
		return InscriptionJob{}, err
	}

	return parseInscriptionJob(raw)
}

// RetrieveInscription returns the current state of a job.
func (c *Client) RetrieveInscription(ctx context.Context, txID string) (InscriptionJob, error) {
	normalizedID := shared.FormatTransactionID(txID)
	if normalizedID == "" {
		return InscriptionJob{}, fmt.Errorf("transaction ID is required")
	}

	endpoint := fmt.Sprintf("/inscriptions/retrieve-inscription?id=%s", url.QueryEscape(normalizedID))
	var raw map[string]any
	if err := c.getJSON(ctx, endpoint, &raw); err != nil {
		return InscriptionJob{}, err
	}

	job, err := parseInscriptionJob(raw)
	if err != nil {
		return InscriptionJob{}, err
	}
	if strings.EqualFold(job.Status, "completed") {
		job.Completed = true
	}
	if job.TxID == "" {
		job.TxID = normalizedID
	}

	return job, nil
}

// WaitForInscription polls a job until it completes or fails.
func (c *Client) WaitForInscription(
	ctx context.Context,
	txID string,
	options WaitOptions,
) (InscriptionJob, error) {
	maxAttempts := options.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 60
	}
	interval := options.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	var latest InscriptionJob
	for attempt := 0; attempt < maxAttempts; attempt++ {
		job, err := c.RetrieveInscription(ctx, txID)
		if err != nil {
			if isRetryableWaitError(err) && attempt < maxAttempts-1 {
				select {
				case <-ctx.Done():
					return InscriptionJob{}, ctx.Err()
				case <-time.After(interval):
				}
				continue
			}
			return InscriptionJob{}, err
		}
		latest = job

		if strings.EqualFold(job.Status, "failed") {
			if job.Error == "" {
				job.Error = "inscription failed"
			}
			return job, errors.New(job.Error)
		}
		if job.Completed {
			return job, nil
		}

		select {
		case <-ctx.Done():
			return InscriptionJob{}, ctx.Err()
		case <-time.After(interval):
		}
	}

	return latest, fmt.Errorf("inscription did not complete within %d attempts", maxAttempts)
}

// Wait waits for a job using the configured connection mode. Websocket waits
// fall back to polling when the socket fails.
func (c *Client) Wait(ctx context.Context, txID string, options WaitOptions) (InscriptionJob, error) {
	if c.connectionMode == ConnectionModeWebSocket {
		job, err := c.waitForInscriptionWebSocket(ctx, txID)
		if err == nil {
			return job, nil
		}
		if ctx.Err() != nil {
			return InscriptionJob{}, ctx.Err()
		}
	}
	return c.WaitForInscription(ctx, txID, options)
}

func isRetryableWaitError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "timeout") ||
		strings.Contains(lower, "timed out") ||
		strings.Contains(lower, "temporarily unavailable") ||
		strings.Contains(lower, "connection reset") ||
		strings.Contains(lower, "broken pipe") ||
		strings.Contains(lower, "eof")
}

func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolveURL(endpoint), nil)
	if err != nil {
		return err
	}
	request.Header.Set("x-api-key", c.apiKey)
	request.Header.Set("Accept", "application/json")

	return c.do(request, "GET", endpoint, target)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolveURL(endpoint), bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("x-api-key", c.apiKey)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	return c.do(request, "POST", endpoint, target)
}

func (c *Client) do(request *http.Request, method string, endpoint string, target any) error {
	response, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf(
			"inscriber API %s %s failed with status %d: %s",
			method,
			endpoint,
			response.StatusCode,
			strings.TrimSpace(string(body)),
		)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode inscriber API response: %w", err)
	}
	return nil
}

func (c *Client) resolveURL(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if strings.HasPrefix(endpoint, "/") {
		return c.baseURL + endpoint
	}
	return c.baseURL + "/" + endpoint
}

func parseInscriptionJob(raw map[string]any) (InscriptionJob, error) {
	job := event(raw).job()
	if completed, ok := raw["completed"].(bool); ok {
		job.Completed = completed
	}
	if totalMessages, ok := raw["totalMessages"].(float64); ok {
		job.TotalMessages = int64(totalMessages)
	}

	transactionBytes, err := normalizeTransactionBytes(raw["transactionBytes"])
	if err != nil {
		return InscriptionJob{}, err
	}
	job.TransactionBytes = transactionBytes

	return job, nil
}

// normalizeTransactionBytes accepts base64 strings and serialized Node.js
// Buffer objects ({"type":"Buffer","data":[...]}) and returns base64.
func normalizeTransactionBytes(value any) (string, error) {
	switch typed := value.(type) {
	case nil:
		return "", nil
	case string:
		return typed, nil
	case map[string]any:
		typeValue, _ := typed["type"].(string)
		if typeValue != "Buffer" {
			return "", fmt.Errorf("unsupported transactionBytes object type %q", typeValue)
		}
		items, ok := typed["data"].([]any)
		if !ok {
			return "", fmt.Errorf("transactionBytes Buffer object missing data array")
		}

		byteValues := make([]byte, 0, len(items))
		for _, item := range items {
			number, ok := item.(float64)
			if !ok {
				return "", fmt.Errorf("transactionBytes data includes non-numeric value %T", item)
			}
			byteValues = append(byteValues, byte(number))
		}

		return base64.StdEncoding.EncodeToString(byteValues), nil
	default:
		return "", fmt.Errorf("unsupported transactionBytes type %T", value)
	}
}
