package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/hashgraph-online/collection-kit-go/pkg/journal"
	"github.com/hashgraph-online/collection-kit-go/pkg/ledger"
	"github.com/hashgraph-online/collection-kit-go/pkg/metadata"
	"github.com/hashgraph-online/collection-kit-go/pkg/report"
)

// Signer is the identity the flows act as.
type Signer interface {
	Address() string
}

type Ledger interface {
	Balance(ctx context.Context, address string) (decimal.Decimal, error)
	CreateCollection(ctx context.Context, request ledger.CreateCollectionRequest) (ledger.Receipt, error)
	FetchCollection(ctx context.Context, address string) (ledger.Collection, error)
	MintAsset(ctx context.Context, request ledger.MintRequest) (ledger.Receipt, error)
	FetchAsset(ctx context.Context, address string) (ledger.Asset, error)
	TransferAsset(ctx context.Context, request ledger.TransferRequest) (ledger.Receipt, error)
	UpdateCollection(ctx context.Context, request ledger.UpdateCollectionRequest) (ledger.Receipt, error)
	AssetsByOwner(ctx context.Context, owner string) ([]ledger.Asset, error)
}

type AssetStore interface {
	UploadBinary(ctx context.Context, data []byte, fileName string, contentType string) (string, error)
	UploadMetadata(ctx context.Context, document []byte) (string, error)
}

type ContentFetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// Settings are the values the flows read instead of fixed paths and constants.
type Settings struct {
	MinBalance decimal.Decimal
	// CollectionImage is the image uploaded for a new collection.
	CollectionImage string
	// AssetImagesDir holds the *.png files minted by MintAssets.
	AssetImagesDir string
	Manifest       metadata.Manifest
}

// Deps are the collaborators of a flow. Identity may be nil for ListAssets
// with an explicit owner. Journal, Reporter and Logger are optional.
type Deps struct {
	Identity Signer
	Ledger   Ledger
	Store    AssetStore
	Fetcher  ContentFetcher
	Journal  journal.Journal
	Reporter *report.Reporter
	Logger   *slog.Logger
	Settings Settings
}

// withDefaults fills the optional collaborators with silent implementations.
func (d Deps) withDefaults() Deps {
	if d.Reporter == nil {
		d.Reporter = report.New(io.Discard, report.Explorer{})
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.DiscardHandler)
	}
	if d.Journal == nil {
		d.Journal = journal.NewNop("")
	}
	return d
}

func (d Deps) identity() (Signer, error) {
	if d.Identity == nil || d.Identity.Address() == "" {
		return nil, preconditionf("a wallet identity is required")
	}
	return d.Identity, nil
}

func (d Deps) requireLedger() error {
	if d.Ledger == nil {
		return fmt.Errorf("ledger client is required")
	}
	return nil
}

func (d Deps) requireStore() error {
	if d.Store == nil {
		return fmt.Errorf("asset store is required")
	}
	return nil
}

func (d Deps) requireFetcher() error {
	if d.Fetcher == nil {
		return fmt.Errorf("content fetcher is required")
	}
	return nil
}
