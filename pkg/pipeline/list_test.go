package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashgraph-online/collection-kit-go/pkg/ledger"
	"github.com/hashgraph-online/collection-kit-go/pkg/report"
)

func TestListAssetsDefaultsToIdentity(t *testing.T) {
	h := newHarness(t)
	h.ledger.owned[walletAddress] = []ledger.Asset{
		{Address: "1@0.0.500", URI: "hcs://1/0.0.701"},
		{Address: "2@0.0.500", URI: "hcs://1/0.0.702"},
		{Address: "3@0.0.500"},
	}
	h.fetcher["hcs://1/0.0.701"] = []byte(`{"name":"My NFT #1"}`)
	h.fetcher["hcs://1/0.0.702"] = []byte(`not json`)

	listed, err := ListAssets(context.Background(), h.deps, "")
	require.NoError(t, err)
	assert.Equal(t, []report.ListedAsset{
		{Address: "1@0.0.500", Name: "My NFT #1"},
		{Address: "2@0.0.500", Name: "(unknown)"},
		{Address: "3@0.0.500", Name: "(unknown)"},
	}, listed)

	output := h.out.String()
	assert.Contains(t, output, "Fetching assets owned by: 0.0.1001")
	assert.Contains(t, output, "FOUND 3 asset(s)")
}

func TestListAssetsNone(t *testing.T) {
	h := newHarness(t)

	listed, err := ListAssets(context.Background(), h.deps, otherAddress)
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Contains(t, h.out.String(), "No assets found for this account.")
}

func TestListAssetsWithoutWallet(t *testing.T) {
	h := newHarness(t)
	h.deps.Identity = nil

	_, err := ListAssets(context.Background(), h.deps, "")
	require.Error(t, err)
	assert.True(t, IsPrecondition(err))

	_, err = ListAssets(context.Background(), h.deps, otherAddress)
	require.NoError(t, err)
}
