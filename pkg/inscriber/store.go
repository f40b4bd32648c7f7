package inscriber

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

const hcs1Prefix = "hcs://1/"

// TransactionExecutor signs and submits a serialized transaction prepared by
// the inscription service and returns its transaction ID.
type TransactionExecutor interface {
	ExecuteBytes(ctx context.Context, transactionBytes []byte) (string, error)
}

type StoreConfig struct {
	Network          string
	AccountID        string
	APIKey           string
	BaseURL          string
	AuthBaseURL      string
	HTTPClient       *http.Client
	ConnectionMode   ConnectionMode
	WebSocketBaseURL string
	Wait             WaitOptions
}

// Store uploads content as HCS-1 inscriptions. The API client is created on the
// first upload, authenticating with the signer when no API key is configured.
type Store struct {
	config   StoreConfig
	signer   MessageSigner
	executor TransactionExecutor

	mu     sync.Mutex
	client *Client
}

func NewStore(config StoreConfig, signer MessageSigner, executor TransactionExecutor) (*Store, error) {
	if strings.TrimSpace(config.AccountID) == "" {
		return nil, fmt.Errorf("holder account ID is required")
	}
	if executor == nil {
		return nil, fmt.Errorf("transaction executor is required")
	}
	if strings.TrimSpace(config.APIKey) == "" && signer == nil {
		return nil, fmt.Errorf("either an API key or a signer is required")
	}
	if _, err := ParseNetwork(config.Network); err != nil {
		return nil, err
	}

	return &Store{
		config:   config,
		signer:   signer,
		executor: executor,
	}, nil
}

// HRL returns the HCS-1 resource locator for a topic.
func HRL(topicID string) string {
	return hcs1Prefix + strings.TrimSpace(topicID)
}

// UploadBinary inscribes data and returns its hcs://1 URI.
func (s *Store) UploadBinary(ctx context.Context, data []byte, fileName string, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("cannot inscribe empty content")
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return "", fmt.Errorf("file name is required")
	}
	mimeType := strings.TrimSpace(contentType)
	if mimeType == "" {
		mimeType = guessMimeTypeFromName(fileName)
	}

	client, err := s.apiClient(ctx)
	if err != nil {
		return "", err
	}

	job, err := client.StartInscription(ctx, StartInscriptionRequest{
		File: FileInput{
			Type:     "base64",
			Base64:   base64.StdEncoding.EncodeToString(data),
			FileName: fileName,
			MimeType: mimeType,
		},
		HolderID: strings.TrimSpace(s.config.AccountID),
		Mode:     ModeFile,
	})
	if err != nil {
		return "", fmt.Errorf("failed to start inscription for %s: %w", fileName, err)
	}
	if strings.TrimSpace(job.TransactionBytes) == "" {
		return "", fmt.Errorf("inscription start did not return transaction bytes")
	}

	rawTransaction, err := base64.StdEncoding.DecodeString(job.TransactionBytes)
	if err != nil {
		return "", fmt.Errorf("transaction bytes must be base64: %w", err)
	}

	transactionID, err := s.executor.ExecuteBytes(ctx, rawTransaction)
	if err != nil {
		return "", fmt.Errorf("failed to execute inscription transaction: %w", err)
	}

	waited, err := client.Wait(ctx, transactionID, s.config.Wait)
	if err != nil {
		return "", fmt.Errorf("failed waiting for inscription of %s: %w", fileName, err)
	}

	topicID := strings.TrimSpace(waited.TopicID)
	if topicID == "" {
		topicID = strings.TrimSpace(job.TopicID)
	}
	if topicID == "" {
		return "", fmt.Errorf("inscription of %s completed without a topic ID", fileName)
	}

	return HRL(topicID), nil
}

// UploadMetadata inscribes a JSON metadata document.
func (s *Store) UploadMetadata(ctx context.Context, document []byte) (string, error) {
	return s.UploadBinary(ctx, document, "metadata.json", "application/json")
}

func (s *Store) apiClient(ctx context.Context) (*Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	network, err := ParseNetwork(s.config.Network)
	if err != nil {
		return nil, err
	}

	apiKey := strings.TrimSpace(s.config.APIKey)
	if apiKey == "" {
		authResult, err := NewAuthClient(s.config.AuthBaseURL).Authenticate(
			ctx,
			strings.TrimSpace(s.config.AccountID),
			s.signer,
			network,
		)
		if err != nil {
			return nil, err
		}
		apiKey = authResult.APIKey
	}

	client, err := NewClient(Config{
		APIKey:           apiKey,
		Network:          network,
		BaseURL:          s.config.BaseURL,
		HTTPClient:       s.config.HTTPClient,
		ConnectionMode:   s.config.ConnectionMode,
		WebSocketBaseURL: s.config.WebSocketBaseURL,
	})
	if err != nil {
		return nil, err
	}

	s.client = client
	return client, nil
}
