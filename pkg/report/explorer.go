// Package report prints the progress and results of the collection commands
// together with HashScan explorer links.
package report

import (
	"fmt"
	"strings"

	"github.com/hashgraph-online/collection-kit-go/pkg/shared"
)

const DefaultExplorerURL = "https://hashscan.io"

type Explorer struct {
	BaseURL string
	Network string
}

func NewExplorer(network string) Explorer {
	return Explorer{BaseURL: DefaultExplorerURL, Network: network}
}

// TransactionURL links a transaction. Both SDK ("0.0.1@1.2") and mirror
// ("0.0.1-1-2") transaction ID forms are accepted.
func (e Explorer) TransactionURL(transactionID string) string {
	return fmt.Sprintf("%s/transaction/%s", e.root(), shared.FormatTransactionID(transactionID))
}

func (e Explorer) TokenURL(tokenID string) string {
	return fmt.Sprintf("%s/token/%s", e.root(), strings.TrimSpace(tokenID))
}

func (e Explorer) AccountURL(accountID string) string {
	return fmt.Sprintf("%s/account/%s", e.root(), strings.TrimSpace(accountID))
}

// AssetURL links one serial given an asset address "serial@token".
func (e Explorer) AssetURL(address string) string {
	serial, tokenID, found := strings.Cut(strings.TrimSpace(address), "@")
	if !found {
		return e.TokenURL(address)
	}
	return fmt.Sprintf("%s/token/%s/%s", e.root(), tokenID, serial)
}

func (e Explorer) root() string {
	base := strings.TrimRight(strings.TrimSpace(e.BaseURL), "/")
	if base == "" {
		base = DefaultExplorerURL
	}
	network := strings.TrimSpace(e.Network)
	if network == "" {
		network = shared.NetworkTestnet
	}
	return base + "/" + network
}
