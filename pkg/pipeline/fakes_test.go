package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hashgraph-online/collection-kit-go/pkg/ledger"
	"github.com/hashgraph-online/collection-kit-go/pkg/metadata"
	"github.com/hashgraph-online/collection-kit-go/pkg/report"
)

const (
	walletAddress = "0.0.1001"
	otherAddress  = "0.0.2002"
)

type fakeSigner string

func (f fakeSigner) Address() string { return string(f) }

type fakeLedger struct {
	balance     decimal.Decimal
	collections map[string]ledger.Collection
	assets      map[string]ledger.Asset
	owned       map[string][]ledger.Asset

	calls     []string
	creates   []ledger.CreateCollectionRequest
	mints     []ledger.MintRequest
	transfers []ledger.TransferRequest
	updates   []ledger.UpdateCollectionRequest

	fetchErr   error
	mintErrAt  int
	mintSerial int64
	txCounter  int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		balance:     decimal.NewFromInt(1),
		collections: map[string]ledger.Collection{},
		assets:      map[string]ledger.Asset{},
		owned:       map[string][]ledger.Asset{},
	}
}

func (f *fakeLedger) nextTransactionID() string {
	f.txCounter++
	return fmt.Sprintf("%s@1700000000.%09d", walletAddress, f.txCounter)
}

func (f *fakeLedger) writes() int {
	return len(f.creates) + len(f.mints) + len(f.transfers) + len(f.updates)
}

func (f *fakeLedger) Balance(_ context.Context, _ string) (decimal.Decimal, error) {
	f.calls = append(f.calls, "Balance")
	return f.balance, nil
}

func (f *fakeLedger) CreateCollection(_ context.Context, request ledger.CreateCollectionRequest) (ledger.Receipt, error) {
	f.calls = append(f.calls, "CreateCollection")
	f.creates = append(f.creates, request)
	address := fmt.Sprintf("0.0.%d", 500+len(f.creates)-1)
	f.collections[address] = ledger.Collection{Address: address, Name: request.Name, URI: request.URI}
	return ledger.Receipt{TransactionID: f.nextTransactionID(), Address: address}, nil
}

func (f *fakeLedger) FetchCollection(_ context.Context, address string) (ledger.Collection, error) {
	f.calls = append(f.calls, "FetchCollection")
	if f.fetchErr != nil {
		return ledger.Collection{}, f.fetchErr
	}
	collection, ok := f.collections[address]
	if !ok {
		return ledger.Collection{}, fmt.Errorf("collection %s not found", address)
	}
	return collection, nil
}

func (f *fakeLedger) MintAsset(_ context.Context, request ledger.MintRequest) (ledger.Receipt, error) {
	f.calls = append(f.calls, "MintAsset")
	if f.mintErrAt > 0 && len(f.mints)+1 == f.mintErrAt {
		f.mintErrAt = 0
		return ledger.Receipt{}, errors.New("INSUFFICIENT_TX_FEE")
	}
	f.mints = append(f.mints, request)
	f.mintSerial++
	return ledger.Receipt{
		TransactionID: f.nextTransactionID(),
		Address:       fmt.Sprintf("%d@%s", f.mintSerial, request.Collection),
	}, nil
}

func (f *fakeLedger) FetchAsset(_ context.Context, address string) (ledger.Asset, error) {
	f.calls = append(f.calls, "FetchAsset")
	asset, ok := f.assets[address]
	if !ok {
		return ledger.Asset{}, fmt.Errorf("asset %s not found", address)
	}
	return asset, nil
}

func (f *fakeLedger) TransferAsset(_ context.Context, request ledger.TransferRequest) (ledger.Receipt, error) {
	f.calls = append(f.calls, "TransferAsset")
	f.transfers = append(f.transfers, request)
	return ledger.Receipt{TransactionID: f.nextTransactionID(), Address: request.Asset}, nil
}

func (f *fakeLedger) UpdateCollection(_ context.Context, request ledger.UpdateCollectionRequest) (ledger.Receipt, error) {
	f.calls = append(f.calls, "UpdateCollection")
	f.updates = append(f.updates, request)
	return ledger.Receipt{TransactionID: f.nextTransactionID(), Address: request.Collection}, nil
}

func (f *fakeLedger) AssetsByOwner(_ context.Context, owner string) ([]ledger.Asset, error) {
	f.calls = append(f.calls, "AssetsByOwner")
	return f.owned[owner], nil
}

type upload struct {
	data        []byte
	fileName    string
	contentType string
	uri         string
}

type fakeStore struct {
	binaries  []upload
	documents []upload
	err       error
}

func (f *fakeStore) uploads() int {
	return len(f.binaries) + len(f.documents)
}

func (f *fakeStore) nextURI() string {
	return fmt.Sprintf("hcs://1/0.0.%d", 900+f.uploads())
}

func (f *fakeStore) UploadBinary(_ context.Context, data []byte, fileName string, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	uri := f.nextURI()
	f.binaries = append(f.binaries, upload{data: data, fileName: fileName, contentType: contentType, uri: uri})
	return uri, nil
}

func (f *fakeStore) UploadMetadata(_ context.Context, document []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	uri := f.nextURI()
	f.documents = append(f.documents, upload{data: document, uri: uri})
	return uri, nil
}

type fakeFetcher map[string][]byte

func (f fakeFetcher) Fetch(_ context.Context, uri string) ([]byte, error) {
	data, ok := f[uri]
	if !ok {
		return nil, fmt.Errorf("no content at %s", uri)
	}
	return data, nil
}

type harness struct {
	ledger  *fakeLedger
	store   *fakeStore
	fetcher fakeFetcher
	out     *bytes.Buffer
	dir     string
	deps    Deps
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	dir := t.TempDir()
	h := &harness{
		ledger:  newFakeLedger(),
		store:   &fakeStore{},
		fetcher: fakeFetcher{},
		out:     &bytes.Buffer{},
		dir:     dir,
	}
	h.deps = Deps{
		Identity: fakeSigner(walletAddress),
		Ledger:   h.ledger,
		Store:    h.store,
		Fetcher:  h.fetcher,
		Reporter: report.New(h.out, report.NewExplorer("testnet")),
		Settings: Settings{
			MinBalance:      decimal.RequireFromString("0.2"),
			CollectionImage: filepath.Join(dir, "collection.png"),
			AssetImagesDir:  filepath.Join(dir, "nfts"),
			Manifest:        metadata.DefaultManifest(),
		},
	}
	return h
}

func (h *harness) writeFile(t *testing.T, relative string, data []byte) {
	t.Helper()
	path := filepath.Join(h.dir, relative)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o600))
}
