package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashgraph-online/collection-kit-go/pkg/journal"
	"github.com/hashgraph-online/collection-kit-go/pkg/ledger"
	"github.com/hashgraph-online/collection-kit-go/pkg/metadata"
)

// MintAssets mints every *.png in the asset images directory into collection,
// one at a time in file name order. Positions are 1-based.
func MintAssets(ctx context.Context, deps Deps, collection string) ([]ledger.Receipt, error) {
	deps = deps.withDefaults()
	identity, err := deps.identity()
	if err != nil {
		return nil, err
	}
	if err := deps.requireLedger(); err != nil {
		return nil, err
	}
	if err := deps.requireStore(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(collection) == "" {
		return nil, preconditionf("collection address is required")
	}
	deps.Reporter.Wallet(identity.Address())

	images, err := listImages(deps.Settings.AssetImagesDir)
	if err != nil {
		return nil, err
	}

	loaded, err := deps.Ledger.FetchCollection(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", collection, err)
	}
	deps.Reporter.CollectionLoaded(loaded.Address)
	deps.Reporter.ImagesFound(len(images))

	manifest := deps.Settings.Manifest
	receipts := make([]ledger.Receipt, 0, len(images))
	for index, imagePath := range images {
		position := index + 1
		fileName := filepath.Base(imagePath)
		deps.Reporter.Minting(position, fileName)

		image, err := os.ReadFile(imagePath)
		if err != nil {
			return receipts, fmt.Errorf("failed to read %s: %w", imagePath, err)
		}

		key, err := journal.MintKey(loaded.Address, image, position)
		if err != nil {
			return receipts, err
		}
		if entry, found, err := deps.Journal.Lookup(ctx, key); err != nil {
			return receipts, err
		} else if found && entry.Address != "" {
			deps.Reporter.Reused("mint", entry.Address)
			receipts = append(receipts, ledger.Receipt{TransactionID: entry.TransactionID, Address: entry.Address})
			continue
		}

		imageURI, err := uploadBinary(ctx, deps, image, fileName, metadata.ContentTypePNG)
		if err != nil {
			return receipts, err
		}

		document, err := metadata.Encode(metadata.NewAssetDocument(
			manifest.AssetName(position),
			manifest.Asset.Description,
			imageURI,
			metadata.ContentTypePNG,
		))
		if err != nil {
			return receipts, err
		}
		metadataURI, err := uploadDocument(ctx, deps, document)
		if err != nil {
			return receipts, err
		}

		receipt, err := deps.Ledger.MintAsset(ctx, ledger.MintRequest{
			Collection: loaded.Address,
			URI:        metadataURI,
		})
		if err != nil {
			return receipts, fmt.Errorf("failed to mint asset #%d (%s): %w", position, fileName, err)
		}
		if err := deps.Journal.Record(ctx, journal.Entry{
			Key:           key,
			URI:           metadataURI,
			Address:       receipt.Address,
			TransactionID: receipt.TransactionID,
		}); err != nil {
			return receipts, err
		}

		deps.Reporter.Minted(position, receipt.Address, receipt.TransactionID)
		receipts = append(receipts, receipt)
	}

	deps.Reporter.MintingComplete(len(receipts))
	return receipts, nil
}

// listImages returns the *.png files of dir sorted by name.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, preconditionf("asset directory %s does not exist", dir)
		}
		return nil, &PreconditionError{Message: "cannot read asset directory " + dir, Err: err}
	}

	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
			continue
		}
		images = append(images, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(images)

	if len(images) == 0 {
		return nil, preconditionf("no PNG files found in %s", dir)
	}
	return images, nil
}
