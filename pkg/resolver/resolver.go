package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashgraph-online/collection-kit-go/pkg/mirror"
)

const (
	DefaultIPFSGateway    = "https://ipfs.io/ipfs/"
	DefaultArweaveGateway = "https://arweave.net/"

	maxContentBytes = 32 << 20
)

// TopicReader reads the ordered messages of a topic.
type TopicReader interface {
	GetTopicMessages(
		ctx context.Context,
		topicID string,
		options mirror.MessageQueryOptions,
	) ([]mirror.TopicMessage, error)
}

type Config struct {
	Mirror         TopicReader
	HTTPClient     *http.Client
	IPFSGateway    string
	ArweaveGateway string
}

type Resolver struct {
	mirror         TopicReader
	httpClient     *http.Client
	ipfsGateway    string
	arweaveGateway string
}

func New(config Config) *Resolver {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	ipfsGateway := strings.TrimSpace(config.IPFSGateway)
	if ipfsGateway == "" {
		ipfsGateway = DefaultIPFSGateway
	}
	arweaveGateway := strings.TrimSpace(config.ArweaveGateway)
	if arweaveGateway == "" {
		arweaveGateway = DefaultArweaveGateway
	}

	return &Resolver{
		mirror:         config.Mirror,
		httpClient:     httpClient,
		ipfsGateway:    ensureTrailingSlash(ipfsGateway),
		arweaveGateway: ensureTrailingSlash(arweaveGateway),
	}
}

// Fetch returns the bytes behind uri.
func (r *Resolver) Fetch(ctx context.Context, uri string) ([]byte, error) {
	reference := strings.TrimSpace(uri)
	switch {
	case reference == "":
		return nil, fmt.Errorf("metadata URI is empty")
	case strings.HasPrefix(reference, "hcs://"):
		if r.mirror == nil {
			return nil, fmt.Errorf("cannot resolve %s: mirror client is not configured", reference)
		}
		return r.resolveHCS1(ctx, reference)
	case strings.HasPrefix(reference, "ipfs://"):
		return r.fetchURL(ctx, r.ipfsGateway+strings.TrimPrefix(strings.TrimPrefix(reference, "ipfs://"), "ipfs/"))
	case strings.HasPrefix(reference, "ar://"):
		return r.fetchURL(ctx, r.arweaveGateway+strings.TrimPrefix(reference, "ar://"))
	case strings.HasPrefix(reference, "https://"), strings.HasPrefix(reference, "http://"):
		return r.fetchURL(ctx, reference)
	default:
		return nil, fmt.Errorf("unsupported metadata URI scheme: %s", reference)
	}
}

func (r *Resolver) fetchURL(ctx context.Context, endpoint string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	response, err := r.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxContentBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", endpoint, err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch %s: %s", endpoint, response.Status)
	}

	return body, nil
}

func ensureTrailingSlash(value string) string {
	if strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
