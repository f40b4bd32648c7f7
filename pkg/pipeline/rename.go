package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashgraph-online/collection-kit-go/pkg/ledger"
	"github.com/hashgraph-online/collection-kit-go/pkg/metadata"
)

// RenameCollection replaces the name in a collection's metadata document,
// keeping every other byte of the document, uploads it and points the
// collection at the new document.
func RenameCollection(ctx context.Context, deps Deps, collection string, names NameProvider) (ledger.Receipt, error) {
	deps = deps.withDefaults()
	identity, err := deps.identity()
	if err != nil {
		return ledger.Receipt{}, err
	}
	if err := deps.requireLedger(); err != nil {
		return ledger.Receipt{}, err
	}
	if err := deps.requireStore(); err != nil {
		return ledger.Receipt{}, err
	}
	if err := deps.requireFetcher(); err != nil {
		return ledger.Receipt{}, err
	}
	if names == nil {
		return ledger.Receipt{}, fmt.Errorf("name provider is required")
	}
	if strings.TrimSpace(collection) == "" {
		return ledger.Receipt{}, preconditionf("collection address is required")
	}
	deps.Reporter.Wallet(identity.Address())

	deps.Reporter.Step("Fetching collection data...")
	loaded, err := deps.Ledger.FetchCollection(ctx, collection)
	if err != nil {
		return ledger.Receipt{}, fmt.Errorf("failed to load collection %s: %w", collection, err)
	}
	if strings.TrimSpace(loaded.URI) == "" {
		return ledger.Receipt{}, fmt.Errorf("collection %s has no metadata URI", loaded.Address)
	}

	document, err := deps.Fetcher.Fetch(ctx, loaded.URI)
	if err != nil {
		return ledger.Receipt{}, fmt.Errorf("failed to download metadata %s: %w", loaded.URI, err)
	}
	currentName, err := metadata.Name(document)
	if err != nil {
		return ledger.Receipt{}, err
	}
	deps.Reporter.CurrentMetadata(loaded.URI, currentName)

	requested, err := names.Name(ctx, currentName)
	if err != nil {
		return ledger.Receipt{}, err
	}
	newName, err := metadata.NormalizeName(requested)
	if err != nil {
		if errors.Is(err, metadata.ErrEmptyName) {
			return ledger.Receipt{}, &PreconditionError{Message: "invalid new name", Err: err}
		}
		return ledger.Receipt{}, err
	}

	updated, err := metadata.ReplaceName(document, newName)
	if err != nil {
		return ledger.Receipt{}, err
	}

	deps.Reporter.Step("Uploading updated metadata...")
	uri, err := uploadDocument(ctx, deps, updated)
	if err != nil {
		return ledger.Receipt{}, err
	}
	deps.Reporter.MetadataUploaded(uri)

	deps.Reporter.Step("Updating collection...")
	receipt, err := deps.Ledger.UpdateCollection(ctx, ledger.UpdateCollectionRequest{
		Collection: loaded.Address,
		Name:       newName,
		URI:        uri,
	})
	if err != nil {
		return ledger.Receipt{}, fmt.Errorf("failed to update collection %s: %w", loaded.Address, err)
	}

	deps.Reporter.CollectionRenamed(loaded.Address, uri, receipt.TransactionID)
	return receipt, nil
}
