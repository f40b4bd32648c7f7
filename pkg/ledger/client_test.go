package ledger

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/hashgraph-online/collection-kit-go/pkg/mirror"
)

type fakeMirror struct {
	tokens map[string]mirror.TokenInfo
	nfts   map[string][]mirror.NFT
}

func (f *fakeMirror) GetToken(_ context.Context, tokenID string) (mirror.TokenInfo, error) {
	token, ok := f.tokens[tokenID]
	if !ok {
		return mirror.TokenInfo{}, &mirror.NotFoundError{Path: "/api/v1/tokens/" + tokenID}
	}
	return token, nil
}

func (f *fakeMirror) GetNFT(_ context.Context, tokenID string, serialNumber int64) (mirror.NFT, error) {
	for _, list := range f.nfts {
		for _, nft := range list {
			if nft.TokenID == tokenID && nft.SerialNumber == serialNumber {
				return nft, nil
			}
		}
	}
	return mirror.NFT{}, &mirror.NotFoundError{Path: "/api/v1/tokens/" + tokenID + "/nfts"}
}

func (f *fakeMirror) GetAccountNFTs(_ context.Context, accountID string) ([]mirror.NFT, error) {
	return f.nfts[accountID], nil
}

func encodeMetadata(value string) string {
	return base64.StdEncoding.EncodeToString([]byte(value))
}

func newReadOnlyClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(Config{Mirror: &fakeMirror{
		tokens: map[string]mirror.TokenInfo{
			"0.0.500": {
				TokenID:           "0.0.500",
				Name:              "My Collection",
				Symbol:            "MYC",
				Type:              mirror.TokenTypeNonFungibleUnique,
				Metadata:          encodeMetadata("hcs://1/0.0.600"),
				TreasuryAccountID: "0.0.1001",
				TotalSupply:       "2",
			},
			"0.0.501": {TokenID: "0.0.501", Type: "FUNGIBLE_COMMON"},
		},
		nfts: map[string][]mirror.NFT{
			"0.0.1001": {
				{AccountID: "0.0.1001", TokenID: "0.0.500", SerialNumber: 1, Metadata: encodeMetadata("hcs://1/0.0.701")},
				{AccountID: "0.0.1001", TokenID: "0.0.500", SerialNumber: 2, Metadata: encodeMetadata("hcs://1/0.0.702")},
			},
		},
	}})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatalf("expected error without mirror reader")
	}
}

func TestFetchCollection(t *testing.T) {
	client := newReadOnlyClient(t)

	collection, err := client.FetchCollection(context.Background(), "0.0.500")
	if err != nil {
		t.Fatalf("FetchCollection failed: %v", err)
	}
	if collection.URI != "hcs://1/0.0.600" || collection.Name != "My Collection" {
		t.Fatalf("unexpected collection: %+v", collection)
	}

	if _, err := client.FetchCollection(context.Background(), "0.0.501"); err == nil {
		t.Fatalf("expected error for fungible token")
	}

	_, err = client.FetchCollection(context.Background(), "0.0.999")
	if !mirror.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestFetchAsset(t *testing.T) {
	client := newReadOnlyClient(t)

	asset, err := client.FetchAsset(context.Background(), "2@0.0.500")
	if err != nil {
		t.Fatalf("FetchAsset failed: %v", err)
	}
	if asset.Owner != "0.0.1001" || asset.URI != "hcs://1/0.0.702" || asset.Address != "2@0.0.500" {
		t.Fatalf("unexpected asset: %+v", asset)
	}

	if _, err := client.FetchAsset(context.Background(), "9@0.0.500"); err == nil {
		t.Fatalf("expected error for missing serial")
	}
}

func TestFetchAssetRejectsAddressWithoutSerial(t *testing.T) {
	client := newReadOnlyClient(t)

	for _, address := range []string{"0.0.4321", "abc", "0.0.1-zzzzz"} {
		_, err := client.FetchAsset(context.Background(), address)
		if err == nil {
			t.Fatalf("expected error for %q", address)
		}
		if !strings.Contains(err.Error(), "expected serial@token") {
			t.Fatalf("unexpected error for %q: %v", address, err)
		}
	}
}

func TestAssetsByOwner(t *testing.T) {
	client := newReadOnlyClient(t)

	assets, err := client.AssetsByOwner(context.Background(), "0.0.1001")
	if err != nil {
		t.Fatalf("AssetsByOwner failed: %v", err)
	}
	if len(assets) != 2 || assets[0].Address != "1@0.0.500" || assets[1].Serial != 2 {
		t.Fatalf("unexpected assets: %+v", assets)
	}

	assets, err = client.AssetsByOwner(context.Background(), "0.0.2002")
	if err != nil || len(assets) != 0 {
		t.Fatalf("expected no assets, got %v (%v)", assets, err)
	}

	if _, err := client.AssetsByOwner(context.Background(), "alice"); err == nil {
		t.Fatalf("expected error for invalid owner")
	}
}

func TestReadOnlyClientRejectsWrites(t *testing.T) {
	client := newReadOnlyClient(t)
	ctx := context.Background()

	if _, err := client.Balance(ctx, "0.0.1001"); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly from Balance, got %v", err)
	}
	if _, err := client.CreateCollection(ctx, CreateCollectionRequest{}); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly from CreateCollection, got %v", err)
	}
	if _, err := client.MintAsset(ctx, MintRequest{}); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly from MintAsset, got %v", err)
	}
	if _, err := client.TransferAsset(ctx, TransferRequest{}); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly from TransferAsset, got %v", err)
	}
	if _, err := client.UpdateCollection(ctx, UpdateCollectionRequest{}); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly from UpdateCollection, got %v", err)
	}
	if _, err := client.ExecuteBytes(ctx, []byte{1}); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly from ExecuteBytes, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}
