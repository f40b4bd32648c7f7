package shared

import (
	"fmt"
	"sort"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

const (
	NetworkMainnet    = "mainnet"
	NetworkTestnet    = "testnet"
	NetworkPreviewnet = "previewnet"
)

// NormalizeNetwork lowercases and validates a network name. Empty input selects testnet.
func NormalizeNetwork(network string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(network))
	if normalized == "" {
		return NetworkTestnet, nil
	}

	switch normalized {
	case NetworkMainnet, NetworkTestnet, NetworkPreviewnet:
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported network %q", network)
	}
}

// NewHederaClient creates a client for a named network.
func NewHederaClient(network string) (*hedera.Client, error) {
	normalized, err := NormalizeNetwork(network)
	if err != nil {
		return nil, err
	}

	switch normalized {
	case NetworkMainnet:
		return hedera.ClientForMainnet(), nil
	case NetworkPreviewnet:
		return hedera.ClientForPreviewnet(), nil
	default:
		return hedera.ClientForTestnet(), nil
	}
}

// NewHederaClientForNodes creates a client bound to an explicit consensus node
// list such as "127.0.0.1:50211=0.0.3". An empty list falls back to the named network.
func NewHederaClientForNodes(network string, rawNodes string) (*hedera.Client, error) {
	if strings.TrimSpace(rawNodes) == "" {
		return NewHederaClient(network)
	}

	nodes, err := ParseNodeList(rawNodes)
	if err != nil {
		return nil, err
	}

	return hedera.ClientForNetwork(nodes), nil
}

// ParseNodeList parses comma separated "host:port=0.0.N" entries.
func ParseNodeList(raw string) (map[string]hedera.AccountID, error) {
	nodes := map[string]hedera.AccountID{}
	for _, entry := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}

		address, nodeAccount, found := strings.Cut(trimmed, "=")
		address = strings.TrimSpace(address)
		if !found || address == "" {
			return nil, fmt.Errorf("invalid node entry %q: expected host:port=0.0.N", trimmed)
		}
		if !strings.Contains(address, ":") {
			return nil, fmt.Errorf("invalid node entry %q: address must include a port", trimmed)
		}

		accountID, err := hedera.AccountIDFromString(strings.TrimSpace(nodeAccount))
		if err != nil {
			return nil, fmt.Errorf("invalid node account in %q: %w", trimmed, err)
		}
		nodes[address] = accountID
	}

	if len(nodes) == 0 {
		return nil, fmt.Errorf("node list is empty")
	}

	return nodes, nil
}

// NodeAddresses returns the sorted addresses of a parsed node list.
func NodeAddresses(nodes map[string]hedera.AccountID) []string {
	addresses := make([]string, 0, len(nodes))
	for address := range nodes {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)
	return addresses
}

// DefaultMirrorURL returns the public mirror node for a network.
func DefaultMirrorURL(network string) string {
	switch network {
	case NetworkMainnet:
		return "https://mainnet-public.mirrornode.hedera.com"
	case NetworkPreviewnet:
		return "https://previewnet.mirrornode.hedera.com"
	default:
		return "https://testnet.mirrornode.hedera.com"
	}
}
