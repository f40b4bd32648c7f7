package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashgraph-online/collection-kit-go/pkg/journal"
	"github.com/hashgraph-online/collection-kit-go/pkg/ledger"
	"github.com/hashgraph-online/collection-kit-go/pkg/metadata"
)

// CreateCollection uploads the collection image and metadata document and
// creates the collection on the ledger.
func CreateCollection(ctx context.Context, deps Deps) (ledger.Receipt, error) {
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
	deps.Reporter.Wallet(identity.Address())

	balance, err := deps.Ledger.Balance(ctx, identity.Address())
	if err != nil {
		return ledger.Receipt{}, fmt.Errorf("failed to read wallet balance: %w", err)
	}
	deps.Reporter.Balance(balance)
	if balance.LessThan(deps.Settings.MinBalance) {
		return ledger.Receipt{}, preconditionf(
			"not enough HBAR: balance %s is below the required %s; fund the wallet first",
			balance.String(),
			deps.Settings.MinBalance.String(),
		)
	}

	imagePath := deps.Settings.CollectionImage
	image, err := os.ReadFile(imagePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ledger.Receipt{}, preconditionf("missing collection image %s", imagePath)
		}
		return ledger.Receipt{}, &PreconditionError{Message: "cannot read collection image " + imagePath, Err: err}
	}

	imageURI, err := uploadBinary(ctx, deps, image, filepath.Base(imagePath), metadata.ContentTypePNG)
	if err != nil {
		return ledger.Receipt{}, err
	}
	deps.Reporter.ImageUploaded(imageURI)

	manifest := deps.Settings.Manifest
	document, err := metadata.Encode(metadata.NewCollectionDocument(
		manifest.Name,
		manifest.Description,
		imageURI,
		metadata.ContentTypePNG,
	))
	if err != nil {
		return ledger.Receipt{}, err
	}

	metadataURI, err := uploadDocument(ctx, deps, document)
	if err != nil {
		return ledger.Receipt{}, err
	}
	deps.Reporter.MetadataUploaded(metadataURI)

	key, err := journal.CollectionKey(document)
	if err != nil {
		return ledger.Receipt{}, err
	}
	if entry, found, err := deps.Journal.Lookup(ctx, key); err != nil {
		return ledger.Receipt{}, err
	} else if found && entry.Address != "" {
		deps.Reporter.Reused("collection", entry.Address)
		deps.Reporter.CollectionCreated(entry.Address, entry.TransactionID)
		return ledger.Receipt{TransactionID: entry.TransactionID, Address: entry.Address}, nil
	}

	deps.Reporter.Step("\nCreating collection...")
	receipt, err := deps.Ledger.CreateCollection(ctx, ledger.CreateCollectionRequest{
		Name:      manifest.Name,
		Symbol:    manifest.Symbol,
		URI:       metadataURI,
		MaxSupply: manifest.MaxSupply,
	})
	if err != nil {
		return ledger.Receipt{}, fmt.Errorf("failed to create collection: %w", err)
	}

	if err := deps.Journal.Record(ctx, journal.Entry{
		Key:           key,
		URI:           metadataURI,
		Address:       receipt.Address,
		TransactionID: receipt.TransactionID,
	}); err != nil {
		return ledger.Receipt{}, err
	}

	deps.Reporter.CollectionCreated(receipt.Address, receipt.TransactionID)
	return receipt, nil
}
